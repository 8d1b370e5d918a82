package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avosk/threadhub/internal/common"
	"github.com/avosk/threadhub/internal/dbx"
	"github.com/avosk/threadhub/internal/logging"
	"github.com/avosk/threadhub/internal/server/models"
	"github.com/avosk/threadhub/internal/server/repositories/repomanager"
)

// SubscriptionService owns the user↔topic membership relation.
//
// Membership is a set keyed by (topic_id, user_id): subscribing twice or
// unsubscribing a non-member are silent no-ops. Mutations go through the
// repository's atomic add/remove primitives inside a transaction, so
// concurrent calls against the same topic cannot lose updates.
type SubscriptionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewSubscriptionService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *SubscriptionService {
	return &SubscriptionService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "subscription_service"),
	}
}

// Subscribe adds user to the membership set of the topic. The topic must
// exist (common.ErrorNotFound otherwise); re-subscribing is idempotent.
func (s *SubscriptionService) Subscribe(ctx context.Context, topicID int64, user *models.User) error {
	s.logger.Info(ctx, "subscribe", "topic_id", topicID, "user_id", user.ID)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Topics(tx)

		if _, err := repo.FindByID(ctx, topicID); err != nil {
			return err
		}
		return repo.AddSubscriber(ctx, topicID, user.ID)
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "subscribe failed", "topic_id", topicID, "user_id", user.ID, "error", err)
		return fmt.Errorf("%w: subscribe user %d to topic %d: %v", common.ErrorSubscription, user.ID, topicID, err)
	}

	return nil
}

// Unsubscribe removes user from the membership set of the topic. The topic
// must exist; removing a user who is not a member succeeds without effect.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, topicID int64, user *models.User) error {
	s.logger.Info(ctx, "unsubscribe", "topic_id", topicID, "user_id", user.ID)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Topics(tx)

		if _, err := repo.FindByID(ctx, topicID); err != nil {
			return err
		}
		return repo.RemoveSubscriber(ctx, topicID, user.ID)
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "unsubscribe failed", "topic_id", topicID, "user_id", user.ID, "error", err)
		return fmt.Errorf("%w: unsubscribe user %d from topic %d: %v", common.ErrorSubscription, user.ID, topicID, err)
	}

	return nil
}

// CountSubscribers returns the size of the topic's membership set.
func (s *SubscriptionService) CountSubscribers(ctx context.Context, topicID int64) (int64, error) {
	s.logger.Debug(ctx, "countSubscribers", "topic_id", topicID)

	n, err := s.repomanager.Topics(s.db).CountSubscribers(ctx, topicID)
	if err != nil {
		s.logger.Error(ctx, "countSubscribers failed", "topic_id", topicID, "error", err)
		return 0, fmt.Errorf("%w: subscriber count of topic %d", common.ErrorLookup, topicID)
	}

	return n, nil
}

// MySubscriptions returns the topics whose membership set contains the user.
// The result is duplicate-free and carries no ordering guarantee.
func (s *SubscriptionService) MySubscriptions(ctx context.Context, user *models.User) ([]*models.Topic, error) {
	s.logger.Debug(ctx, "mySubscriptions", "user_id", user.ID)

	result, err := s.repomanager.Topics(s.db).FindBySubscriberID(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "mySubscriptions failed", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: subscriptions of user %d", common.ErrorLookup, user.ID)
	}

	return result, nil
}
