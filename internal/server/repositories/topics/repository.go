// Package topics declares the persistence contract for topics and the
// user↔topic membership relation.
package topics

import (
	"context"

	"github.com/avosk/threadhub/internal/server/models"
)

// Repository defines topic CRUD plus atomic set-membership primitives.
//
// AddSubscriber and RemoveSubscriber mutate the membership set directly in
// the store instead of load-mutate-save, so concurrent subscribe/unsubscribe
// calls on the same topic cannot lose updates. Both are idempotent: adding
// an existing member and removing a non-member are silent no-ops.
type Repository interface {
	FindAll(ctx context.Context) ([]*models.Topic, error)
	FindByID(ctx context.Context, id int64) (*models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) (*models.Topic, error)
	Update(ctx context.Context, topic *models.Topic) (*models.Topic, error)
	Delete(ctx context.Context, id int64) error

	AddSubscriber(ctx context.Context, topicID, userID int64) error
	RemoveSubscriber(ctx context.Context, topicID, userID int64) error
	FindBySubscriberID(ctx context.Context, userID int64) ([]*models.Topic, error)
	CountSubscribers(ctx context.Context, topicID int64) (int64, error)
}
