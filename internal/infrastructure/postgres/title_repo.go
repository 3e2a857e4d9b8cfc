package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/avelichko/reviewhub/internal/repository"
	"github.com/jackc/pgx/v5"
)

type TitleRepository struct {
	db DB
}

func NewTitleRepository(db DB) *TitleRepository {
	return &TitleRepository{db: db}
}

// titleSelect aggregates the category and genre joins into a single row per
// title; genres come back as a JSON array to avoid an N+1 per-title query.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description, t.rating, t.created_at,
	       c.id, c.name, c.slug,
	       COALESCE(
	           json_agg(json_build_object('id', g.id, 'name', g.name, 'slug', g.slug)
	                    ORDER BY g.name)
	           FILTER (WHERE g.id IS NOT NULL),
	           '[]'
	       )
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN title_genres tg ON tg.title_id = t.id
	LEFT JOIN genres g ON g.id = tg.genre_id`

const titleGroupBy = ` GROUP BY t.id, c.id`

func (r *TitleRepository) List(ctx context.Context, filter repository.TitleFilter) ([]*domain.Title, error) {
	var args []any
	var where []string

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		where = append(where, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if filter.GenreSlug != "" {
		args = append(args, filter.GenreSlug)
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM title_genres tg2
			         JOIN genres g2 ON g2.id = tg2.genre_id
			         WHERE tg2.title_id = t.id AND g2.slug = $%d)`, len(args)))
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		where = append(where, fmt.Sprintf("t.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		where = append(where, fmt.Sprintf("t.year = $%d", len(args)))
	}

	query := titleSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += titleGroupBy + fmt.Sprintf(" ORDER BY t.name ASC, t.id ASC LIMIT $%d OFFSET $%d",
		len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []*domain.Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

func (r *TitleRepository) FindByID(ctx context.Context, id string) (*domain.Title, error) {
	query := titleSelect + ` WHERE t.id = $1` + titleGroupBy

	row := r.db.QueryRow(ctx, query, id)
	return scanTitle(row)
}

func (r *TitleRepository) Create(ctx context.Context, input repository.TitleWrite) (*domain.Title, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		input.Name, input.Year, input.Description, input.CategoryID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert title: %w", err)
	}

	if err := replaceTitleGenres(ctx, tx, id, input.GenreIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *TitleRepository) Update(ctx context.Context, id string, input repository.TitleWrite) (*domain.Title, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE titles
		SET name = $2, year = $3, description = $4, category_id = $5
		WHERE id = $1`,
		id, input.Name, input.Year, input.Description, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTitleNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, id); err != nil {
		return nil, fmt.Errorf("clear title genres: %w", err)
	}
	if err := replaceTitleGenres(ctx, tx, id, input.GenreIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *TitleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTitleNotFound
	}
	return nil
}

func (r *TitleRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM titles WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("title exists: %w", err)
	}
	return exists, nil
}

func replaceTitleGenres(ctx context.Context, tx pgx.Tx, titleID string, genreIDs []string) error {
	for _, gid := range genreIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO title_genres (title_id, genre_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, titleID, gid)
		if err != nil {
			return fmt.Errorf("link genre: %w", err)
		}
	}
	return nil
}

func scanTitle(row rowScanner) (*domain.Title, error) {
	var (
		t         domain.Title
		catID     *string
		catName   *string
		catSlug   *string
		genresRaw []byte
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Year, &t.Description, &t.Rating, &t.CreatedAt,
		&catID, &catName, &catSlug, &genresRaw,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTitleNotFound
		}
		return nil, fmt.Errorf("scan title: %w", err)
	}

	if catID != nil {
		t.Category = &domain.Category{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	// json keys match domain.Genre fields case-insensitively.
	if err := json.Unmarshal(genresRaw, &t.Genres); err != nil {
		return nil, fmt.Errorf("decode title genres: %w", err)
	}
	return &t, nil
}
