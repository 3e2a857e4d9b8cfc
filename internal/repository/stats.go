package repository

import (
	"context"

	"github.com/avelichko/reviewhub/internal/domain"
)

type StatsRepository interface {
	ContentStats(ctx context.Context) (domain.ContentStats, error)

	// RefreshRatings recomputes the denormalized rating column on titles
	// from the current review scores. Returns the number of titles touched.
	RefreshRatings(ctx context.Context) (int, error)
}
