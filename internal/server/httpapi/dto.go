package httpapi

import (
	"time"

	"github.com/avosk/threadhub/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type updateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// userResponse never carries the credential.
type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*models.User) []userResponse {
	result := make([]userResponse, 0, len(users))
	for _, u := range users {
		result = append(result, toUserResponse(u))
	}
	return result
}

type topicRequest struct {
	Name string `json:"name" binding:"required"`
}

type topicResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toTopicResponse(t *models.Topic) topicResponse {
	return topicResponse{ID: t.ID, Name: t.Name}
}

// topicDetailResponse is the single-topic view; it additionally carries the
// size of the membership set.
type topicDetailResponse struct {
	topicResponse
	Subscribers int64 `json:"subscribers"`
}

func toTopicDetailResponse(t *models.Topic, subscribers int64) topicDetailResponse {
	return topicDetailResponse{topicResponse: toTopicResponse(t), Subscribers: subscribers}
}

func toTopicResponses(topics []*models.Topic) []topicResponse {
	result := make([]topicResponse, 0, len(topics))
	for _, t := range topics {
		result = append(result, toTopicResponse(t))
	}
	return result
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// postResponse exposes author and topic display names instead of full
// records.
type postResponse struct {
	ID         int64     `json:"id"`
	TopicID    int64     `json:"topic_id"`
	TopicName  string    `json:"topic_name"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:         p.ID,
		TopicID:    p.TopicID,
		TopicName:  p.TopicName,
		AuthorName: p.AuthorName,
		Title:      p.Title,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPostResponses(posts []*models.Post) []postResponse {
	result := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, toPostResponse(p))
	}
	return result
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

type commentResponse struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCommentResponse(cm *models.Comment) commentResponse {
	return commentResponse{
		ID:         cm.ID,
		PostID:     cm.PostID,
		AuthorName: cm.AuthorName,
		Content:    cm.Content,
		CreatedAt:  cm.CreatedAt,
	}
}

func toCommentResponses(comments []*models.Comment) []commentResponse {
	result := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		result = append(result, toCommentResponse(cm))
	}
	return result
}
