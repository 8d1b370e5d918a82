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

// TopicService is the topic catalog: plain CRUD over topic entities with the
// same NotFound/ValidationFailure contract as the user directory. Topic
// names are not unique.
type TopicService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewTopicService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *TopicService {
	return &TopicService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "topic_service"),
	}
}

// FindAll returns every topic. An empty catalog is success.
func (s *TopicService) FindAll(ctx context.Context) ([]*models.Topic, error) {
	s.logger.Debug(ctx, "findAllTopics")

	result, err := s.repomanager.Topics(s.db).FindAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "findAllTopics failed", "error", err)
		return nil, fmt.Errorf("%w: find all topics", common.ErrorLookup)
	}

	return result, nil
}

// FindByID resolves a topic by id, common.ErrorNotFound when absent.
func (s *TopicService) FindByID(ctx context.Context, id int64) (*models.Topic, error) {
	s.logger.Debug(ctx, "findTopicById", "topic_id", id)

	topic, err := s.repomanager.Topics(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "findTopicById failed", "topic_id", id, "error", err)
		return nil, fmt.Errorf("%w: find topic %d", common.ErrorLookup, id)
	}

	return topic, nil
}

// Create stores a new topic. A client-supplied id is discarded.
func (s *TopicService) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	s.logger.Info(ctx, "createTopic", "name", topic.Name)

	topic.ID = 0
	created, err := s.repomanager.Topics(s.db).Create(ctx, topic)
	if err != nil {
		s.logger.Error(ctx, "createTopic failed", "error", err)
		return nil, fmt.Errorf("%w: create topic: %v", common.ErrorValidation, err)
	}

	return created, nil
}

// Update overwrites the name of an existing topic, common.ErrorNotFound for
// an unknown id.
func (s *TopicService) Update(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	s.logger.Info(ctx, "updateTopic", "topic_id", topic.ID)

	var updated *models.Topic

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Topics(tx)

		existing, err := repo.FindByID(ctx, topic.ID)
		if err != nil {
			return err
		}

		existing.Name = topic.Name
		updated, err = repo.Update(ctx, existing)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "updateTopic failed", "topic_id", topic.ID, "error", err)
		return nil, fmt.Errorf("%w: update topic %d: %v", common.ErrorValidation, topic.ID, err)
	}

	return updated, nil
}

// Delete removes a topic by id, common.ErrorNotFound when absent. Membership
// rows and posts are cascaded by the schema.
func (s *TopicService) Delete(ctx context.Context, id int64) error {
	s.logger.Info(ctx, "deleteTopic", "topic_id", id)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Topics(tx)

		if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "deleteTopic failed", "topic_id", id, "error", err)
		return fmt.Errorf("%w: delete topic %d: %v", common.ErrorValidation, id, err)
	}

	return nil
}
