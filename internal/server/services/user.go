// Package services implements the business core: the user directory, the
// topic catalog, the subscription manager, the identity resolver, and the
// content (posts/comments) service. Services return domain entities and
// sentinel-wrapped errors; transport and DTO mapping live elsewhere.
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

// UserService is the user directory: key-based resolution of accounts and
// full-replace mutations. Email is the canonical login key; uniqueness of
// both email and username is enforced on create.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "user_service"),
	}
}

// FindAll returns every registered user. An empty result is success.
func (s *UserService) FindAll(ctx context.Context) ([]*models.User, error) {
	s.logger.Debug(ctx, "findAllUsers")

	result, err := s.repomanager.Users(s.db).FindAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "findAllUsers failed", "error", err)
		return nil, fmt.Errorf("%w: find all users", common.ErrorLookup)
	}

	return result, nil
}

// FindByID resolves a user by id, common.ErrorNotFound when absent.
func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	s.logger.Debug(ctx, "findUserById", "user_id", id)

	user, err := s.repomanager.Users(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err, "id", id)
	}
	return user, nil
}

// FindByUsername resolves a user by username, common.ErrorNotFound when absent.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.logger.Debug(ctx, "findUserByUsername", "username", username)

	user, err := s.repomanager.Users(s.db).FindByUsername(ctx, username)
	if err != nil {
		return nil, s.lookupError(ctx, err, "username", username)
	}
	return user, nil
}

// FindByEmail resolves a user by email, common.ErrorNotFound when absent.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.logger.Debug(ctx, "findUserByEmail", "email", email)

	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		return nil, s.lookupError(ctx, err, "email", email)
	}
	return user, nil
}

func (s *UserService) lookupError(ctx context.Context, err error, key string, value any) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.logger.Error(ctx, "user lookup failed", key, value, "error", err)
	return fmt.Errorf("%w: find user by %s", common.ErrorLookup, key)
}

// Create registers a new user. A client-supplied id is discarded, the
// creation and update timestamps are stamped to the same instant, and both
// email and username must be unused (common.ErrorConflict otherwise, checked
// before any write).
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.logger.Info(ctx, "createUser", "email", user.Email)

	var created *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := s.checkUnused(ctx, repo.FindByEmail, user.Email); err != nil {
			return err
		}
		if err := s.checkUnused(ctx, repo.FindByUsername, user.Username); err != nil {
			return err
		}

		now := time.Now()
		user.ID = 0
		user.CreatedAt = now
		user.UpdatedAt = now

		var err error
		created, err = repo.Create(ctx, user)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			s.logger.Warn(ctx, "createUser conflict", "email", user.Email)
			return nil, err
		}
		s.logger.Error(ctx, "createUser failed", "error", err)
		return nil, fmt.Errorf("%w: create user: %v", common.ErrorValidation, err)
	}

	return created, nil
}

// checkUnused verifies that no user is resolvable through find for value.
// The expected outcome is ErrorNotFound; an existing row is a conflict.
func (s *UserService) checkUnused(ctx context.Context, find func(context.Context, string) (*models.User, error), value string) error {
	_, err := find(ctx, value)
	if err == nil {
		return fmt.Errorf("%w: user with %q already exists", common.ErrorConflict, value)
	}
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

// Update fully replaces the mutable fields of an existing user
// (last-write-wins, no merge). The user is loaded first so an unknown id
// fails with common.ErrorNotFound before anything is written.
func (s *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	s.logger.Info(ctx, "updateUser", "user_id", user.ID)

	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		existing, err := repo.FindByID(ctx, user.ID)
		if err != nil {
			return err
		}

		existing.Username = user.Username
		existing.Email = user.Email
		existing.Password = user.Password
		existing.UpdatedAt = time.Now()

		updated, err = repo.Update(ctx, existing)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "updateUser failed", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: update user %d: %v", common.ErrorValidation, user.ID, err)
	}

	return updated, nil
}

// Delete removes a user by id, common.ErrorNotFound when absent. Dependent
// rows (posts, comments, memberships, sessions) are cascaded by the schema.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	s.logger.Info(ctx, "deleteUser", "user_id", id)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		s.logger.Error(ctx, "deleteUser failed", "user_id", id, "error", err)
		return fmt.Errorf("%w: delete user %d: %v", common.ErrorValidation, id, err)
	}

	return nil
}
