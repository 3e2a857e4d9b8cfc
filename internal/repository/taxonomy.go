package repository

import (
	"context"

	"github.com/avelichko/reviewhub/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context, search string, limit, offset int) ([]*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Create(ctx context.Context, name, slug string) (*domain.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type GenreRepository interface {
	List(ctx context.Context, search string, limit, offset int) ([]*domain.Genre, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Genre, error)
	Create(ctx context.Context, name, slug string) (*domain.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}
