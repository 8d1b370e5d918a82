package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avosk/threadhub/internal/common"
	"github.com/avosk/threadhub/internal/dbx"
	"github.com/avosk/threadhub/internal/logging"
	"github.com/avosk/threadhub/internal/server/models"
	"github.com/avosk/threadhub/internal/server/repositories/repomanager"
)

// PostService handles the content side: publishing posts into topics,
// commenting, and assembling the subscription-driven feed.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "post_service"),
	}
}

// Create publishes a post into an existing topic (common.ErrorNotFound for
// an unknown topic id).
func (s *PostService) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	s.logger.Info(ctx, "createPost", "topic_id", post.TopicID, "author_id", post.AuthorID)

	var created *models.Post

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Topics(tx).FindByID(ctx, post.TopicID); err != nil {
			return err
		}

		now := time.Now()
		post.ID = 0
		post.CreatedAt = now
		post.UpdatedAt = now

		var err error
		created, err = s.repomanager.Posts(tx).Create(ctx, post)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "createPost failed", "topic_id", post.TopicID, "error", err)
		return nil, fmt.Errorf("%w: create post: %v", common.ErrorValidation, err)
	}

	return created, nil
}

// FindByID resolves a post by id, common.ErrorNotFound when absent.
func (s *PostService) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.repomanager.Posts(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "findPostById failed", "post_id", id, "error", err)
		return nil, fmt.Errorf("%w: find post %d", common.ErrorLookup, id)
	}
	return post, nil
}

// FindByTopic lists the posts of a topic, newest first.
func (s *PostService) FindByTopic(ctx context.Context, topicID int64) ([]*models.Post, error) {
	result, err := s.repomanager.Posts(s.db).FindByTopic(ctx, topicID)
	if err != nil {
		s.logger.Error(ctx, "findPostsByTopic failed", "topic_id", topicID, "error", err)
		return nil, fmt.Errorf("%w: posts of topic %d", common.ErrorLookup, topicID)
	}
	return result, nil
}

// Feed returns the posts published in the user's subscribed topics,
// newest first.
func (s *PostService) Feed(ctx context.Context, user *models.User) ([]*models.Post, error) {
	s.logger.Debug(ctx, "feed", "user_id", user.ID)

	result, err := s.repomanager.Posts(s.db).FindFeed(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "feed failed", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: feed of user %d", common.ErrorLookup, user.ID)
	}
	return result, nil
}

// AddComment attaches a comment to an existing post (common.ErrorNotFound
// for an unknown post id).
func (s *PostService) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	s.logger.Info(ctx, "addComment", "post_id", comment.PostID, "author_id", comment.AuthorID)

	var created *models.Comment

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		if _, err := repo.FindByID(ctx, comment.PostID); err != nil {
			return err
		}

		comment.ID = 0
		comment.CreatedAt = time.Now()

		var err error
		created, err = repo.AddComment(ctx, comment)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "addComment failed", "post_id", comment.PostID, "error", err)
		return nil, fmt.Errorf("%w: add comment: %v", common.ErrorValidation, err)
	}

	return created, nil
}

// CommentsByPost lists the comments of a post in publication order.
func (s *PostService) CommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	result, err := s.repomanager.Posts(s.db).FindCommentsByPost(ctx, postID)
	if err != nil {
		s.logger.Error(ctx, "commentsByPost failed", "post_id", postID, "error", err)
		return nil, fmt.Errorf("%w: comments of post %d", common.ErrorLookup, postID)
	}
	return result, nil
}
