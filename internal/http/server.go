package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"dream_match/internal/config"
	"dream_match/internal/domain"
	"dream_match/internal/lib/cache"
	"dream_match/internal/lib/jsonld"
	"dream_match/internal/lib/metrics"
	"dream_match/internal/repository/listing_repository"
	"dream_match/internal/services/admin"
	"dream_match/internal/services/presentation"
	"dream_match/internal/services/scoring"
	"dream_match/internal/storage/analytics"
)

// ListingProvider — источник кандидатов для матчинга.
type ListingProvider interface {
	ListCandidates(ctx context.Context, filter listing_repository.CandidateFilter) ([]domain.Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error)
}

// AnalyticsRecorder — запись и чтение аналитики матчинга. nil-реализация
// допустима: аналитика может быть выключена конфигурацией.
type AnalyticsRecorder interface {
	RecordMatch(ctx context.Context, e analytics.MatchEvent) error
	ScenarioStats(ctx context.Context) ([]analytics.ScenarioStat, error)
}

// Server — HTTP-сервер движка матчинга.
type Server struct {
	log *slog.Logger
	srv *http.Server

	repo      ListingProvider
	calc      *scoring.Calculator
	selector  *presentation.Selector
	adminSvc  *admin.Service
	cache     *cache.MatchCache
	analytics AnalyticsRecorder
	metrics   *metrics.MatchMetrics
	jsonld    *jsonld.Generator

	candidateLimit int
}

// Deps — зависимости HTTP-сервера.
type Deps struct {
	Repo      ListingProvider
	Calc      *scoring.Calculator
	Selector  *presentation.Selector
	Admin     *admin.Service
	Cache     *cache.MatchCache
	Analytics AnalyticsRecorder // может быть nil
	Metrics   *metrics.MatchMetrics
}

// New собирает сервер с роутером и middleware.
func New(log *slog.Logger, cfg config.HTTPConfig, matching config.MatchingConfig, deps Deps) *Server {
	s := &Server{
		log:            log,
		repo:           deps.Repo,
		calc:           deps.Calc,
		selector:       deps.Selector,
		adminSvc:       deps.Admin,
		cache:          deps.Cache,
		analytics:      deps.Analytics,
		metrics:        deps.Metrics,
		jsonld:         jsonld.NewGenerator(),
		candidateLimit: matching.CandidateLimit,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	r.Use(c.Handler)

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/match", s.handleMatch)
		r.Post("/score", s.handleScore)
		r.Get("/presets", s.handlePresets)
		r.Get("/listings/{id}/jsonld", s.handleListingJSONLD)

		r.Post("/admin/login", s.handleAdminLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/admin/analytics", s.handleAdminAnalytics)
			r.Get("/admin/metrics", s.handleAdminMetrics)
		})
	})

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Run запускает сервер и блокируется до его остановки.
func (s *Server) Run() error {
	const op = "http.Server.Run"

	s.log.Info("http server is running", slog.String("addr", s.srv.Addr))

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Stop останавливает сервер, дожидаясь обработки активных запросов.
func (s *Server) Stop(ctx context.Context) error {
	const op = "http.Server.Stop"

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		next.ServeHTTP(w, r)
	})
}
