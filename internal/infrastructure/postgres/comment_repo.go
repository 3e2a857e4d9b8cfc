package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelichko/reviewhub/internal/domain"
	"github.com/jackc/pgx/v5"
)

type CommentRepository struct {
	db DB
}

func NewCommentRepository(db DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) ListByReview(ctx context.Context, reviewID string, limit, offset int) ([]*domain.Comment, error) {
	query := `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.created_at, c.updated_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) FindByID(ctx context.Context, reviewID, commentID string) (*domain.Comment, error) {
	query := `
		SELECT c.id, c.review_id, c.author_id, u.username, c.text, c.created_at, c.updated_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 AND c.review_id = $2`

	row := r.db.QueryRow(ctx, query, commentID, reviewID)
	return scanComment(row)
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	query := `
		WITH ins AS (
			INSERT INTO comments (review_id, author_id, text)
			VALUES ($1, $2, $3)
			RETURNING *
		)
		SELECT ins.id, ins.review_id, ins.author_id, u.username, ins.text,
		       ins.created_at, ins.updated_at
		FROM ins
		JOIN users u ON u.id = ins.author_id`

	row := r.db.QueryRow(ctx, query, comment.ReviewID, comment.AuthorID, comment.Text)
	return scanComment(row)
}

func (r *CommentRepository) Update(ctx context.Context, commentID, text string) (*domain.Comment, error) {
	query := `
		WITH upd AS (
			UPDATE comments
			SET text = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT upd.id, upd.review_id, upd.author_id, u.username, upd.text,
		       upd.created_at, upd.updated_at
		FROM upd
		JOIN users u ON u.id = upd.author_id`

	row := r.db.QueryRow(ctx, query, commentID, text)
	return scanComment(row)
}

func (r *CommentRepository) Delete(ctx context.Context, commentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID, &c.ReviewID, &c.AuthorID, &c.Author,
		&c.Text, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return &c, nil
}
