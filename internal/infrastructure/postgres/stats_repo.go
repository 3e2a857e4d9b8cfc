package postgres

import (
	"context"
	"fmt"

	"github.com/avelichko/reviewhub/internal/domain"
)

type StatsRepository struct {
	db DB
}

func NewStatsRepository(db DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ContentStats(ctx context.Context) (domain.ContentStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM titles),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COUNT(*) FROM comments),
			(SELECT AVG(score) FROM reviews)`

	var s domain.ContentStats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.Users, &s.Titles, &s.Reviews, &s.Comments, &s.MeanScore,
	)
	if err != nil {
		return domain.ContentStats{}, fmt.Errorf("content stats: %w", err)
	}
	return s, nil
}

// RefreshRatings reconciles the denormalized rating column for every title
// whose stored value drifted from the live average.
func (r *StatsRepository) RefreshRatings(ctx context.Context) (int, error) {
	query := `
		UPDATE titles t
		SET rating = agg.rating
		FROM (
			SELECT ti.id, (SELECT ROUND(AVG(score))::int FROM reviews WHERE title_id = ti.id) AS rating
			FROM titles ti
		) agg
		WHERE t.id = agg.id
		  AND t.rating IS DISTINCT FROM agg.rating`

	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("refresh ratings: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
