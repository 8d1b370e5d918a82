// Package users declares the persistence contract for user accounts.
package users

import (
	"context"

	"github.com/avosk/threadhub/internal/server/models"
)

// Repository defines key-based lookup and mutation of user records.
// Point lookups return common.ErrorNotFound when no row matches; an empty
// FindAll result is success, not an error.
type Repository interface {
	FindAll(ctx context.Context) ([]*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
