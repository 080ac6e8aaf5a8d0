package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"dream_match/internal/config"
	httpserver "dream_match/internal/http"
	"dream_match/internal/lib/cache"
	"dream_match/internal/lib/metrics"
	"dream_match/internal/repository/listing_repository"
	"dream_match/internal/services/admin"
	"dream_match/internal/services/presentation"
	"dream_match/internal/services/scoring"
	"dream_match/internal/storage/analytics"
)

// App — собранное приложение движка матчинга.
type App struct {
	HTTPServer *httpserver.Server
	Cache      *cache.MatchCache
	Analytics  *analytics.Store // nil, если аналитика выключена
	Pool       *pgxpool.Pool
}

// New собирает зависимости: пул Postgres, кэш, аналитика, сервисы,
// HTTP-сервер.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	listingRepository := listing_repository.NewListingRepository(pool, log)

	matchCache := cache.New(cfg.Cache, log)

	var analyticsStore *analytics.Store
	if cfg.Analytics.Enabled {
		analyticsStore, err = analytics.Open(cfg.Analytics.Path)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	calculator := scoring.New(log)
	selector := presentation.New(log, calculator, presentation.Config{
		FewMax:           cfg.Matching.FewMax,
		OptimalMax:       cfg.Matching.OptimalMax,
		ClusterDominance: cfg.Matching.ClusterDominance,
		PageSize:         cfg.Matching.PageSize,
		NarrowingHintAt:  cfg.Matching.NarrowingHintAt,
	})
	adminService := admin.New(log, cfg.Auth)
	matchMetrics := metrics.GetMatchMetrics(log)

	log.Info("services initialized",
		slog.Bool("cache_enabled", matchCache.IsEnabled()),
		slog.Bool("analytics_enabled", analyticsStore != nil),
		slog.Int("candidate_limit", cfg.Matching.CandidateLimit),
	)

	deps := httpserver.Deps{
		Repo:     listingRepository,
		Calc:     calculator,
		Selector: selector,
		Admin:    adminService,
		Cache:    matchCache,
		Metrics:  matchMetrics,
	}
	if analyticsStore != nil {
		deps.Analytics = analyticsStore
	}

	server := httpserver.New(log, cfg.HTTP, cfg.Matching, deps)

	return &App{
		HTTPServer: server,
		Cache:      matchCache,
		Analytics:  analyticsStore,
		Pool:       pool,
	}, nil
}

// Stop освобождает ресурсы приложения после остановки сервера.
func (a *App) Stop() {
	if a.Analytics != nil {
		_ = a.Analytics.Close()
	}
	_ = a.Cache.Close()
	a.Pool.Close()
}
