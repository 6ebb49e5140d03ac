package repository

import (
	"context"
	"errors"

	"docconnect/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
)

// UserRepository is the user list behind the mock auth backend.
// Implementations compare emails exactly; callers normalize them.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Update(ctx context.Context, user models.User) error
	Count(ctx context.Context) (int, error)
}
