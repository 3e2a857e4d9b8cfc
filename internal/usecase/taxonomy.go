package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/repository"
	"github.com/patrickmn/go-cache"
)

const (
	taxonomyCacheTTL      = 5 * time.Minute
	categoriesCachePrefix = "categories:"
	genresCachePrefix     = "genres:"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// TaxonomyUsecase serves the category and genre lists. The unfiltered first
// page is what every title form and browse page hits, so it is cached
// in-process and invalidated on writes.
type TaxonomyUsecase struct {
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	cache      *cache.Cache
}

func NewTaxonomyUsecase(categories repository.CategoryRepository, genres repository.GenreRepository) *TaxonomyUsecase {
	return &TaxonomyUsecase{
		categories: categories,
		genres:     genres,
		cache:      cache.New(taxonomyCacheTTL, 10*time.Minute),
	}
}

type ListInput struct {
	Search string
	Limit  int
	Offset int
}

func (i ListInput) cacheable() bool {
	return i.Search == "" && i.Offset == 0
}

// cacheKey includes the page size: the same list is requested under different
// limits, and a page built for one limit must never serve another.
func (i ListInput) cacheKey(prefix string) string {
	return fmt.Sprintf("%slimit=%d", prefix, i.Limit)
}

// invalidate drops every cached page of the given kind.
func (u *TaxonomyUsecase) invalidate(prefix string) {
	for key := range u.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			u.cache.Delete(key)
		}
	}
}

func (u *TaxonomyUsecase) ListCategories(ctx context.Context, input ListInput) ([]*domain.Category, error) {
	key := input.cacheKey(categoriesCachePrefix)
	if input.cacheable() {
		if cached, ok := u.cache.Get(key); ok {
			return cached.([]*domain.Category), nil
		}
	}

	list, err := u.categories.List(ctx, input.Search, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if input.cacheable() {
		u.cache.Set(key, list, cache.DefaultExpiration)
	}
	return list, nil
}

func (u *TaxonomyUsecase) CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error) {
	if errs := validateSlugInput(name, slug); len(errs) > 0 {
		return nil, errs
	}
	created, err := u.categories.Create(ctx, name, slug)
	if err != nil {
		return nil, err
	}
	u.invalidate(categoriesCachePrefix)
	return created, nil
}

func (u *TaxonomyUsecase) DeleteCategory(ctx context.Context, slug string) error {
	if err := u.categories.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	u.invalidate(categoriesCachePrefix)
	return nil
}

func (u *TaxonomyUsecase) ListGenres(ctx context.Context, input ListInput) ([]*domain.Genre, error) {
	key := input.cacheKey(genresCachePrefix)
	if input.cacheable() {
		if cached, ok := u.cache.Get(key); ok {
			return cached.([]*domain.Genre), nil
		}
	}

	list, err := u.genres.List(ctx, input.Search, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	if input.cacheable() {
		u.cache.Set(key, list, cache.DefaultExpiration)
	}
	return list, nil
}

func (u *TaxonomyUsecase) CreateGenre(ctx context.Context, name, slug string) (*domain.Genre, error) {
	if errs := validateSlugInput(name, slug); len(errs) > 0 {
		return nil, errs
	}
	created, err := u.genres.Create(ctx, name, slug)
	if err != nil {
		return nil, err
	}
	u.invalidate(genresCachePrefix)
	return created, nil
}

func (u *TaxonomyUsecase) DeleteGenre(ctx context.Context, slug string) error {
	if err := u.genres.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	u.invalidate(genresCachePrefix)
	return nil
}

func validateSlugInput(name, slug string) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if name == "" {
		errs.Add("name", "this field is required")
	}
	switch {
	case slug == "":
		errs.Add("slug", "this field is required")
	case len(slug) > 50:
		errs.Add("slug", "must be at most 50 characters")
	case !slugPattern.MatchString(slug):
		errs.Add("slug", "may contain only lowercase letters, digits, hyphens and underscores")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
