package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelichko/reviewhub/config"
	"github.com/avelichko/reviewhub/internal/confirm"
	"github.com/avelichko/reviewhub/internal/email"
	"github.com/avelichko/reviewhub/internal/health"
	"github.com/avelichko/reviewhub/internal/infrastructure/postgres"
	ctxlog "github.com/avelichko/reviewhub/internal/log"
	"github.com/avelichko/reviewhub/internal/metrics"
	"github.com/avelichko/reviewhub/internal/stats"
	httptransport "github.com/avelichko/reviewhub/internal/transport/http"
	"github.com/avelichko/reviewhub/internal/transport/http/handler"
	"github.com/avelichko/reviewhub/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		stop()
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Auth and users
	userRepo := postgres.NewUserRepository(pool)
	codes := confirm.New([]byte(cfg.CodeSecret))
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(userRepo, sender, codes, []byte(cfg.JWTSecret), logger)
	userUsecase := usecase.NewUserUsecase(userRepo)

	// Content
	categoryRepo := postgres.NewCategoryRepository(pool)
	genreRepo := postgres.NewGenreRepository(pool)
	titleRepo := postgres.NewTitleRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)

	taxonomyUsecase := usecase.NewTaxonomyUsecase(categoryRepo, genreRepo)
	titleUsecase := usecase.NewTitleUsecase(titleRepo, categoryRepo, genreRepo)
	reviewUsecase := usecase.NewReviewUsecase(reviewRepo, titleRepo)
	commentUsecase := usecase.NewCommentUsecase(commentRepo, reviewRepo)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	statsRepo := postgres.NewStatsRepository(pool)
	collector := stats.NewCollector(statsRepo, logger, time.Duration(cfg.StatsIntervalSec)*time.Second)
	go collector.Start(ctx)

	handlers := httptransport.Handlers{
		Auth:     handler.NewAuthHandler(authUsecase, logger),
		User:     handler.NewUserHandler(userUsecase, logger),
		Category: handler.NewCategoryHandler(taxonomyUsecase, logger),
		Genre:    handler.NewGenreHandler(taxonomyUsecase, logger),
		Title:    handler.NewTitleHandler(titleUsecase, logger),
		Review:   handler.NewReviewHandler(reviewUsecase, logger),
		Comment:  handler.NewCommentHandler(commentUsecase, logger),
	}

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, handlers, []byte(cfg.JWTSecret)),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
