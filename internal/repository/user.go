package repository

import (
	"context"

	"github.com/avelichko/reviewhub/internal/domain"
)

type UserRepository interface {
	// FindOrCreate returns the user with exactly this username+email pair,
	// creating it when absent. A partial collision (username bound to a
	// different email, or email bound to a different username) returns
	// domain.ErrUsernameTaken or domain.ErrEmailTaken without mutating
	// anything.
	FindOrCreate(ctx context.Context, username, email string) (*domain.User, error)

	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// BumpConfirmationSeq increments the user's confirmation sequence and
	// returns the updated record. Every previously derived confirmation
	// code becomes invalid after this call.
	BumpConfirmationSeq(ctx context.Context, id string) (*domain.User, error)

	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}
