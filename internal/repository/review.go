package repository

import (
	"context"

	"github.com/avelichko/reviewhub/internal/domain"
)

type ReviewRepository interface {
	ListByTitle(ctx context.Context, titleID string, limit, offset int) ([]*domain.Review, error)
	// FindByID is scoped to the parent title so that a review cannot be
	// addressed through another title's URL.
	FindByID(ctx context.Context, titleID, reviewID string) (*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	Update(ctx context.Context, reviewID, text string, score int) (*domain.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

type CommentRepository interface {
	ListByReview(ctx context.Context, reviewID string, limit, offset int) ([]*domain.Comment, error)
	FindByID(ctx context.Context, reviewID, commentID string) (*domain.Comment, error)
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Update(ctx context.Context, commentID, text string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID string) error
}
