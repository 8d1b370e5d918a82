// Package posts declares the persistence contract for posts and comments.
package posts

import (
	"context"

	"github.com/avosk/threadhub/internal/server/models"
)

// Repository defines storage access for the content side of the system.
// List queries populate the read-side AuthorName/TopicName join columns.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	FindByTopic(ctx context.Context, topicID int64) ([]*models.Post, error)

	// FindFeed returns posts published in the topics the user subscribes
	// to, newest first.
	FindFeed(ctx context.Context, userID int64) ([]*models.Post, error)

	AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	FindCommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
}
