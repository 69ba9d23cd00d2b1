package repository

import (
	"context"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Update writes the whole row, so a read-modify-Update sequence is the unit
// of mutation; concurrent writers on one user are last-writer-wins.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	// DeleteIfUnverified removes the user only when still unverified and
	// reports whether a row was deleted. Used by the deferred registration
	// cleanup so a verification that won the race is never erased.
	DeleteIfUnverified(ctx context.Context, id string) (bool, error)
}
