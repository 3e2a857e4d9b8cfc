package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Categories and genres share a schema (id, name, unique slug), so both
// repositories delegate to the same slug-table helpers.

type CategoryRepository struct {
	db DB
}

func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context, search string, limit, offset int) ([]*domain.Category, error) {
	rows, err := listSlugTable(ctx, r.db, "categories", search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Category, len(rows))
	for i, row := range rows {
		out[i] = &domain.Category{ID: row.id, Name: row.name, Slug: row.slug}
	}
	return out, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	row, err := findSlugRow(ctx, r.db, "categories", slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &domain.Category{ID: row.id, Name: row.name, Slug: row.slug}, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name, slug string) (*domain.Category, error) {
	row, err := insertSlugRow(ctx, r.db, "categories", name, slug)
	if err != nil {
		return nil, err
	}
	return &domain.Category{ID: row.id, Name: row.name, Slug: row.slug}, nil
}

func (r *CategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return deleteSlugRow(ctx, r.db, "categories", slug, domain.ErrCategoryNotFound)
}

type GenreRepository struct {
	db DB
}

func NewGenreRepository(db DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) List(ctx context.Context, search string, limit, offset int) ([]*domain.Genre, error) {
	rows, err := listSlugTable(ctx, r.db, "genres", search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Genre, len(rows))
	for i, row := range rows {
		out[i] = &domain.Genre{ID: row.id, Name: row.name, Slug: row.slug}
	}
	return out, nil
}

func (r *GenreRepository) FindBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	row, err := findSlugRow(ctx, r.db, "genres", slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGenreNotFound
		}
		return nil, err
	}
	return &domain.Genre{ID: row.id, Name: row.name, Slug: row.slug}, nil
}

func (r *GenreRepository) Create(ctx context.Context, name, slug string) (*domain.Genre, error) {
	row, err := insertSlugRow(ctx, r.db, "genres", name, slug)
	if err != nil {
		return nil, err
	}
	return &domain.Genre{ID: row.id, Name: row.name, Slug: row.slug}, nil
}

func (r *GenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return deleteSlugRow(ctx, r.db, "genres", slug, domain.ErrGenreNotFound)
}

type slugRow struct {
	id, name, slug string
}

func listSlugTable(ctx context.Context, db DB, table, search string, limit, offset int) ([]slugRow, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug
		FROM %s
		WHERE $1 = '' OR name ILIKE '%%' || $1 || '%%'
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`, table)

	rows, err := db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []slugRow
	for rows.Next() {
		var row slugRow
		if err := rows.Scan(&row.id, &row.name, &row.slug); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func findSlugRow(ctx context.Context, db DB, table, slug string) (slugRow, error) {
	query := fmt.Sprintf(`SELECT id, name, slug FROM %s WHERE slug = $1`, table)

	var row slugRow
	err := db.QueryRow(ctx, query, slug).Scan(&row.id, &row.name, &row.slug)
	return row, err
}

func insertSlugRow(ctx context.Context, db DB, table, name, slug string) (slugRow, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug)
		VALUES ($1, $2)
		RETURNING id, name, slug`, table)

	var row slugRow
	err := db.QueryRow(ctx, query, name, slug).Scan(&row.id, &row.name, &row.slug)
	if err != nil {
		if isUniqueViolation(err, "") {
			return slugRow{}, domain.ErrSlugTaken
		}
		return slugRow{}, fmt.Errorf("insert %s: %w", table, err)
	}
	return row, nil
}

func deleteSlugRow(ctx context.Context, db DB, table, slug string, notFound error) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE slug = $1`, table)

	tag, err := db.Exec(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
