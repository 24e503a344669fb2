package repository

import (
	"context"
	"errors"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a user creation collides with
	// an existing email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
