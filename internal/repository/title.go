package repository

import (
	"context"

	"github.com/avelichko/reviewhub/internal/domain"
)

type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
	Limit        int
	Offset       int
}

type TitleWrite struct {
	Name        string
	Year        int
	Description *string
	CategoryID  string
	GenreIDs    []string
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter) ([]*domain.Title, error)
	FindByID(ctx context.Context, id string) (*domain.Title, error)
	Create(ctx context.Context, input TitleWrite) (*domain.Title, error)
	Update(ctx context.Context, id string, input TitleWrite) (*domain.Title, error)
	Delete(ctx context.Context, id string) error

	// Exists is a cheap parent check for the nested review routes.
	Exists(ctx context.Context, id string) (bool, error)
}
