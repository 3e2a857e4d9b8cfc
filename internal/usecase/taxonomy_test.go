package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/usecase"
)

// ---- fakes ----

type fakeCategoryRepo struct {
	listCalls    int
	list         func(ctx context.Context, search string, limit, offset int) ([]*domain.Category, error)
	create       func(ctx context.Context, name, slug string) (*domain.Category, error)
	deleteBySlug func(ctx context.Context, slug string) error
}

func (r *fakeCategoryRepo) List(ctx context.Context, search string, limit, offset int) ([]*domain.Category, error) {
	r.listCalls++
	return r.list(ctx, search, limit, offset)
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, _ string) (*domain.Category, error) {
	panic("not used")
}

func (r *fakeCategoryRepo) Create(ctx context.Context, name, slug string) (*domain.Category, error) {
	return r.create(ctx, name, slug)
}

func (r *fakeCategoryRepo) DeleteBySlug(ctx context.Context, slug string) error {
	return r.deleteBySlug(ctx, slug)
}

type fakeGenreRepo struct {
	list func(ctx context.Context, search string, limit, offset int) ([]*domain.Genre, error)
}

func (r *fakeGenreRepo) List(ctx context.Context, search string, limit, offset int) ([]*domain.Genre, error) {
	return r.list(ctx, search, limit, offset)
}

func (r *fakeGenreRepo) FindBySlug(_ context.Context, _ string) (*domain.Genre, error) {
	panic("not used")
}

func (r *fakeGenreRepo) Create(_ context.Context, _, _ string) (*domain.Genre, error) {
	panic("not used")
}

func (r *fakeGenreRepo) DeleteBySlug(_ context.Context, _ string) error {
	panic("not used")
}

func staticCategories() []*domain.Category {
	return []*domain.Category{
		{ID: "cat-1", Name: "Movies", Slug: "movies"},
		{ID: "cat-2", Name: "Books", Slug: "books"},
	}
}

// ---- caching ----

func TestListCategories_DefaultPage_HitsRepoOnce(t *testing.T) {
	repo := &fakeCategoryRepo{
		list: func(_ context.Context, _ string, _, _ int) ([]*domain.Category, error) {
			return staticCategories(), nil
		},
	}
	genres := &fakeGenreRepo{}
	uc := usecase.NewTaxonomyUsecase(repo, genres)

	input := usecase.ListInput{Limit: 20}
	for i := 0; i < 3; i++ {
		got, err := uc.ListCategories(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d categories, want 2", len(got))
		}
	}

	if repo.listCalls != 1 {
		t.Errorf("repo hit %d times, want 1 (cached)", repo.listCalls)
	}
}

func TestListCategories_CachedPerLimit(t *testing.T) {
	repo := &fakeCategoryRepo{
		list: func(_ context.Context, _ string, limit, _ int) ([]*domain.Category, error) {
			out := make([]*domain.Category, limit)
			for i := range out {
				out[i] = &domain.Category{ID: fmt.Sprintf("cat-%d", i)}
			}
			return out, nil
		},
	}
	uc := usecase.NewTaxonomyUsecase(repo, &fakeGenreRepo{})

	got, err := uc.ListCategories(context.Background(), usecase.ListInput{Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("limit=5 returned %d categories", len(got))
	}

	// A different limit must not be served the page cached for limit=5.
	got, err = uc.ListCategories(context.Background(), usecase.ListInput{Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("limit=1 returned %d categories, want 1", len(got))
	}

	// The limit=5 page itself is still cached.
	if _, err := uc.ListCategories(context.Background(), usecase.ListInput{Limit: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listCalls != 2 {
		t.Errorf("repo hit %d times, want 2 (one per distinct limit)", repo.listCalls)
	}
}

func TestListCategories_SearchBypassesCache(t *testing.T) {
	repo := &fakeCategoryRepo{
		list: func(_ context.Context, _ string, _, _ int) ([]*domain.Category, error) {
			return staticCategories(), nil
		},
	}
	uc := usecase.NewTaxonomyUsecase(repo, &fakeGenreRepo{})

	input := usecase.ListInput{Search: "mov", Limit: 20}
	for i := 0; i < 3; i++ {
		if _, err := uc.ListCategories(context.Background(), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if repo.listCalls != 3 {
		t.Errorf("repo hit %d times, want 3 (search is never cached)", repo.listCalls)
	}
}

func TestCreateCategory_InvalidatesCache(t *testing.T) {
	repo := &fakeCategoryRepo{
		list: func(_ context.Context, _ string, _, _ int) ([]*domain.Category, error) {
			return staticCategories(), nil
		},
		create: func(_ context.Context, name, slug string) (*domain.Category, error) {
			return &domain.Category{ID: "cat-3", Name: name, Slug: slug}, nil
		},
	}
	uc := usecase.NewTaxonomyUsecase(repo, &fakeGenreRepo{})

	input := usecase.ListInput{Limit: 20}
	if _, err := uc.ListCategories(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.CreateCategory(context.Background(), "Music", "music"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.ListCategories(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.listCalls != 2 {
		t.Errorf("repo hit %d times, want 2 (write invalidates the cached page)", repo.listCalls)
	}
}

// ---- validation ----

func TestCreateCategory_SlugValidation(t *testing.T) {
	repo := &fakeCategoryRepo{
		create: func(_ context.Context, _, _ string) (*domain.Category, error) {
			t.Fatal("repo must not be reached on validation failure")
			return nil, nil
		},
	}
	uc := usecase.NewTaxonomyUsecase(repo, &fakeGenreRepo{})

	cases := []struct {
		name      string
		slugValue string
	}{
		{"empty", ""},
		{"uppercase", "Movies"},
		{"spaces", "my movies"},
		{"unicode", "фильмы"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateCategory(context.Background(), "Movies", tc.slugValue)

			var fieldErrs domain.FieldErrors
			if !errors.As(err, &fieldErrs) {
				t.Fatalf("want FieldErrors, got %v", err)
			}
			if len(fieldErrs["slug"]) == 0 {
				t.Errorf("want slug field error, got %v", fieldErrs)
			}
		})
	}
}

func TestCreateCategory_SlugTaken_Propagates(t *testing.T) {
	repo := &fakeCategoryRepo{
		create: func(_ context.Context, _, _ string) (*domain.Category, error) {
			return nil, domain.ErrSlugTaken
		},
	}
	uc := usecase.NewTaxonomyUsecase(repo, &fakeGenreRepo{})

	_, err := uc.CreateCategory(context.Background(), "Movies", "movies")
	if !errors.Is(err, domain.ErrSlugTaken) {
		t.Errorf("want ErrSlugTaken, got %v", err)
	}
}
