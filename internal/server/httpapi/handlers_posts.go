package httpapi

import (
	"net/http"

	"github.com/avosk/threadhub/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleFeed(c *gin.Context) {
	result, err := s.posts.Feed(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(result))
}

func (s *Server) handleListPosts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := s.posts.FindByTopic(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponses(result))
}

func (s *Server) handleCreatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.posts.Create(c.Request.Context(), &models.Post{
		TopicID:  id,
		AuthorID: currentUser(c).ID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(created))
}

func (s *Server) handleGetPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, err := s.posts.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

func (s *Server) handleListComments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := s.posts.CommentsByPost(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponses(result))
}

func (s *Server) handleAddComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.posts.AddComment(c.Request.Context(), &models.Comment{
		PostID:   id,
		AuthorID: currentUser(c).ID,
		Content:  req.Content,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(created))
}
