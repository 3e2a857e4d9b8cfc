package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/avelichko/reviewhub/internal/metrics"
	"github.com/avelichko/reviewhub/internal/repository"
	"github.com/robfig/cron/v3"
)

// Collector periodically exports content counts as Prometheus gauges and
// reconciles the denormalized title ratings against the live review scores.
type Collector struct {
	repo     repository.StatsRepository
	logger   *slog.Logger
	interval time.Duration
}

func NewCollector(repo repository.StatsRepository, logger *slog.Logger, interval time.Duration) *Collector {
	return &Collector{
		repo:     repo,
		logger:   logger.With("component", "stats_collector"),
		interval: interval,
	}
}

// Start runs one pass immediately, then on the configured schedule until ctx
// is cancelled. Blocks; run it in its own goroutine.
func (c *Collector) Start(ctx context.Context) {
	c.logger.Info("stats collector started", "interval", c.interval)
	c.Refresh(ctx)

	cr := cron.New()
	cr.Schedule(cron.Every(c.interval), cron.FuncJob(func() {
		c.Refresh(ctx)
	}))
	cr.Start()

	<-ctx.Done()
	<-cr.Stop().Done()
	c.logger.Info("stats collector shut down")
}

// Refresh performs a single collection pass.
func (c *Collector) Refresh(ctx context.Context) {
	start := time.Now()

	reconciled, err := c.repo.RefreshRatings(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "refresh ratings", "error", err)
	} else if reconciled > 0 {
		metrics.RatingsReconciled.Add(float64(reconciled))
		c.logger.InfoContext(ctx, "reconciled title ratings", "count", reconciled)
	}

	stats, err := c.repo.ContentStats(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "content stats", "error", err)
		return
	}

	metrics.ContentTotal.WithLabelValues("users").Set(float64(stats.Users))
	metrics.ContentTotal.WithLabelValues("titles").Set(float64(stats.Titles))
	metrics.ContentTotal.WithLabelValues("reviews").Set(float64(stats.Reviews))
	metrics.ContentTotal.WithLabelValues("comments").Set(float64(stats.Comments))
	if stats.MeanScore != nil {
		metrics.MeanReviewScore.Set(*stats.MeanScore)
	} else {
		metrics.MeanReviewScore.Set(0)
	}

	metrics.StatsRefreshDuration.Observe(time.Since(start).Seconds())
}
