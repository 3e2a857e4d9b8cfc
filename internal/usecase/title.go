package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/repository"
)

type TitleUsecase struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
}

func NewTitleUsecase(titles repository.TitleRepository, categories repository.CategoryRepository, genres repository.GenreRepository) *TitleUsecase {
	return &TitleUsecase{titles: titles, categories: categories, genres: genres}
}

type TitleInput struct {
	Name         string
	Year         int
	Description  *string
	CategorySlug string
	GenreSlugs   []string
}

func (u *TitleUsecase) List(ctx context.Context, filter repository.TitleFilter) ([]*domain.Title, error) {
	titles, err := u.titles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	return titles, nil
}

func (u *TitleUsecase) Get(ctx context.Context, id string) (*domain.Title, error) {
	return u.titles.FindByID(ctx, id)
}

func (u *TitleUsecase) Create(ctx context.Context, input TitleInput) (*domain.Title, error) {
	write, errs := u.resolve(ctx, input)
	if errs != nil {
		return nil, errs
	}
	created, err := u.titles.Create(ctx, write)
	if err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}
	return created, nil
}

func (u *TitleUsecase) Update(ctx context.Context, id string, input TitleInput) (*domain.Title, error) {
	write, errs := u.resolve(ctx, input)
	if errs != nil {
		return nil, errs
	}
	return u.titles.Update(ctx, id, write)
}

func (u *TitleUsecase) Delete(ctx context.Context, id string) error {
	return u.titles.Delete(ctx, id)
}

// resolve validates the input and maps category/genre slugs to IDs, turning
// unknown slugs into field errors rather than opaque FK failures.
func (u *TitleUsecase) resolve(ctx context.Context, input TitleInput) (repository.TitleWrite, domain.FieldErrors) {
	errs := domain.FieldErrors{}

	if input.Name == "" {
		errs.Add("name", "this field is required")
	}
	if year := time.Now().Year(); input.Year > year {
		errs.Add("year", fmt.Sprintf("cannot be later than %d", year))
	}

	write := repository.TitleWrite{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	if input.CategorySlug == "" {
		errs.Add("category", "this field is required")
	} else {
		category, err := u.categories.FindBySlug(ctx, input.CategorySlug)
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			errs.Add("category", fmt.Sprintf("unknown category %q", input.CategorySlug))
		case err != nil:
			errs.Add("category", "could not be resolved")
		default:
			write.CategoryID = category.ID
		}
	}

	for _, slug := range input.GenreSlugs {
		genre, err := u.genres.FindBySlug(ctx, slug)
		switch {
		case errors.Is(err, domain.ErrGenreNotFound):
			errs.Add("genre", fmt.Sprintf("unknown genre %q", slug))
		case err != nil:
			errs.Add("genre", "could not be resolved")
		default:
			write.GenreIDs = append(write.GenreIDs, genre.ID)
		}
	}

	if len(errs) > 0 {
		return repository.TitleWrite{}, errs
	}
	return write, nil
}
