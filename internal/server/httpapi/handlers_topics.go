package httpapi

import (
	"net/http"

	"github.com/avosk/threadhub/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleListTopics(c *gin.Context) {
	result, err := s.topics.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTopicResponses(result))
}

func (s *Server) handleGetTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	topic, err := s.topics.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	subscribers, err := s.subscriptions.CountSubscribers(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTopicDetailResponse(topic, subscribers))
}

func (s *Server) handleCreateTopic(c *gin.Context) {
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := s.topics.Create(c.Request.Context(), &models.Topic{Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTopicResponse(created))
}

func (s *Server) handleUpdateTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.topics.Update(c.Request.Context(), &models.Topic{ID: id, Name: req.Name})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTopicResponse(updated))
}

func (s *Server) handleDeleteTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.topics.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "topic deleted"})
}

func (s *Server) handleSubscribe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.subscriptions.Subscribe(c.Request.Context(), id, currentUser(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscribed"})
}

func (s *Server) handleUnsubscribe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.subscriptions.Unsubscribe(c.Request.Context(), id, currentUser(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

func (s *Server) handleMySubscriptions(c *gin.Context) {
	result, err := s.subscriptions.MySubscriptions(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTopicResponses(result))
}
