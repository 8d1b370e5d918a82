// Package httpapi is the thin HTTP shell over the business core. Handlers
// bind request DTOs, call a service, and translate error kinds to status
// codes; no business rule lives here.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avosk/threadhub/internal/logging"
	"github.com/avosk/threadhub/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Server hosts the public HTTP endpoint.
type Server struct {
	address       string
	logger        logging.Logger
	users         *services.UserService
	topics        *services.TopicService
	subscriptions *services.SubscriptionService
	identity      *services.IdentityService
	posts         *services.PostService
	jwtSecret     []byte
}

func NewServer(
	address string,
	logger logging.Logger,
	us *services.UserService,
	ts *services.TopicService,
	ss *services.SubscriptionService,
	is *services.IdentityService,
	ps *services.PostService,
	secretKey string,
) *Server {
	return &Server{
		address:       address,
		logger:        logger.With("module", "http_server"),
		users:         us,
		topics:        ts,
		subscriptions: ss,
		identity:      is,
		posts:         ps,
		jwtSecret:     []byte(secretKey),
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestIDMiddleware(), s.accessLogMiddleware())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/refresh", s.handleRefresh)
	}

	protected := api.Group("")
	protected.Use(s.authMiddleware())
	{
		protected.GET("/users", s.handleListUsers)
		protected.GET("/users/:id", s.handleGetUser)
		protected.PUT("/users/:id", s.handleUpdateUser)
		protected.DELETE("/users/:id", s.handleDeleteUser)

		protected.GET("/topics", s.handleListTopics)
		protected.POST("/topics", s.handleCreateTopic)
		protected.GET("/topics/:id", s.handleGetTopic)
		protected.PUT("/topics/:id", s.handleUpdateTopic)
		protected.DELETE("/topics/:id", s.handleDeleteTopic)

		protected.POST("/topics/:id/subscribe", s.handleSubscribe)
		protected.DELETE("/topics/:id/subscribe", s.handleUnsubscribe)
		protected.GET("/subscriptions", s.handleMySubscriptions)

		protected.GET("/feed", s.handleFeed)
		protected.GET("/topics/:id/posts", s.handleListPosts)
		protected.POST("/topics/:id/posts", s.handleCreatePost)
		protected.GET("/posts/:id", s.handleGetPost)
		protected.GET("/posts/:id/comments", s.handleListComments)
		protected.POST("/posts/:id/comments", s.handleAddComment)
	}

	return r
}
