package topics

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

func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Topic, error) {
	query := `SELECT id, name FROM topics`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectTopics(rows)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Topic, error) {
	query := `SELECT id, name FROM topics WHERE id = $1`

	topic := &models.Topic{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&topic.ID, &topic.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return topic, nil
}

func (r *PostgresRepository) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	query := `INSERT INTO topics (name) VALUES ($1) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, topic.Name).Scan(&topic.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return topic, nil
}

func (r *PostgresRepository) Update(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	query := `UPDATE topics SET name = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, topic.Name, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	return topic, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM topics WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// AddSubscriber inserts a membership row. The composite primary key plus
// ON CONFLICT DO NOTHING makes re-subscribing a no-op.
func (r *PostgresRepository) AddSubscriber(ctx context.Context, topicID, userID int64) error {
	query := `
		INSERT INTO topic_subscribers (topic_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (topic_id, user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, topicID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RemoveSubscriber deletes a membership row. Removing a user who is not a
// member affects zero rows and is not an error.
func (r *PostgresRepository) RemoveSubscriber(ctx context.Context, topicID, userID int64) error {
	query := `
		DELETE FROM topic_subscribers
		WHERE topic_id = $1 AND user_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, topicID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindBySubscriberID is the reverse join: all topics whose membership set
// contains the given user. Duplicate-free by primary-key construction.
func (r *PostgresRepository) FindBySubscriberID(ctx context.Context, userID int64) ([]*models.Topic, error) {
	query := `
		SELECT t.id, t.name
		FROM topics t
		JOIN topic_subscribers s ON s.topic_id = t.id
		WHERE s.user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectTopics(rows)
}

func (r *PostgresRepository) CountSubscribers(ctx context.Context, topicID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM topic_subscribers WHERE topic_id = $1`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, topicID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func collectTopics(rows *sql.Rows) ([]*models.Topic, error) {
	result := []*models.Topic{}
	for rows.Next() {
		topic := &models.Topic{}
		if err := rows.Scan(&topic.ID, &topic.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
