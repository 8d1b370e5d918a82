package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avosk/threadhub/internal/common"
	"github.com/avosk/threadhub/internal/dbx"
	"github.com/avosk/threadhub/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postSelect = `
	SELECT p.id, p.topic_id, p.author_id, p.title, p.content,
	       p.created_at, p.updated_at, u.username, t.name
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN topics t ON t.id = p.topic_id
`

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (topic_id, author_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		post.TopicID, post.AuthorID, post.Title, post.Content, post.CreatedAt, post.UpdatedAt).Scan(&post.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	query := postSelect + ` WHERE p.id = $1`

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.TopicID, &post.AuthorID, &post.Title, &post.Content,
		&post.CreatedAt, &post.UpdatedAt, &post.AuthorName, &post.TopicName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) FindByTopic(ctx context.Context, topicID int64) ([]*models.Post, error) {
	query := postSelect + ` WHERE p.topic_id = $1 ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PostgresRepository) FindFeed(ctx context.Context, userID int64) ([]*models.Post, error) {
	query := postSelect + `
		JOIN topic_subscribers s ON s.topic_id = p.topic_id
		WHERE s.user_id = $1
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PostgresRepository) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (post_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt).Scan(&comment.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) FindCommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at, u.username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Comment{}
	for rows.Next() {
		comment := &models.Comment{}
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.Content, &comment.CreatedAt, &comment.AuthorName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func collectPosts(rows *sql.Rows) ([]*models.Post, error) {
	result := []*models.Post{}
	for rows.Next() {
		post := &models.Post{}
		if err := rows.Scan(&post.ID, &post.TopicID, &post.AuthorID, &post.Title, &post.Content,
			&post.CreatedAt, &post.UpdatedAt, &post.AuthorName, &post.TopicName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
