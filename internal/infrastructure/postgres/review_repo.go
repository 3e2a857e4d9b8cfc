package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/jackc/pgx/v5"
)

const reviewColumns = `r.id, r.title_id, r.author_id, u.username, r.text, r.score, r.created_at, r.updated_at`

type ReviewRepository struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) ListByTitle(ctx context.Context, titleID string, limit, offset int) ([]*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) FindByID(ctx context.Context, titleID, reviewID string) (*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1 AND r.title_id = $2`

	row := r.db.QueryRow(ctx, query, reviewID, titleID)
	return scanReview(row)
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	query := `
		WITH ins AS (
			INSERT INTO reviews (title_id, author_id, text, score)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		)
		SELECT ins.id, ins.title_id, ins.author_id, u.username, ins.text,
		       ins.score, ins.created_at, ins.updated_at
		FROM ins
		JOIN users u ON u.id = ins.author_id`

	row := r.db.QueryRow(ctx, query, review.TitleID, review.AuthorID, review.Text, review.Score)
	created, err := scanReview(row)
	if err != nil {
		if isUniqueViolation(err, "reviews_title_author_key") {
			return nil, domain.ErrDuplicateReview
		}
		return nil, err
	}

	r.refreshRating(ctx, created.TitleID)
	return created, nil
}

func (r *ReviewRepository) Update(ctx context.Context, reviewID, text string, score int) (*domain.Review, error) {
	query := `
		WITH upd AS (
			UPDATE reviews
			SET text = $2, score = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT upd.id, upd.title_id, upd.author_id, u.username, upd.text,
		       upd.score, upd.created_at, upd.updated_at
		FROM upd
		JOIN users u ON u.id = upd.author_id`

	row := r.db.QueryRow(ctx, query, reviewID, text, score)
	updated, err := scanReview(row)
	if err != nil {
		return nil, err
	}

	r.refreshRating(ctx, updated.TitleID)
	return updated, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, reviewID string) error {
	var titleID string
	err := r.db.QueryRow(ctx,
		`DELETE FROM reviews WHERE id = $1 RETURNING title_id`, reviewID).Scan(&titleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrReviewNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}

	r.refreshRating(ctx, titleID)
	return nil
}

// refreshRating keeps the denormalized titles.rating column in step with
// review writes. Not transactional with the write; the stats collector
// reconciles any drift on its next pass.
func (r *ReviewRepository) refreshRating(ctx context.Context, titleID string) {
	_, _ = r.db.Exec(ctx, `
		UPDATE titles
		SET rating = (SELECT ROUND(AVG(score))::int FROM reviews WHERE title_id = $1)
		WHERE id = $1`, titleID)
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var rev domain.Review
	err := row.Scan(
		&rev.ID, &rev.TitleID, &rev.AuthorID, &rev.Author,
		&rev.Text, &rev.Score, &rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return &rev, nil
}
