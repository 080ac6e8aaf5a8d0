package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"dream_match/internal/domain"
	"dream_match/internal/lib/cache"
	"dream_match/internal/lib/logger/sl"
	"dream_match/internal/repository"
	"dream_match/internal/repository/listing_repository"
	"dream_match/internal/services/admin"
	"dream_match/internal/storage/analytics"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MatchRequest — запрос на подбор: профиль покупателя и, опционально,
// кастомные веса компонентов.
type MatchRequest struct {
	Profile ProfileDTO         `json:"profile"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// handleMatch — основной эндпоинт движка: загрузка кандидатов,
// скоринг, выбор сценария показа, запись аналитики.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	const op = "http.Server.handleMatch"
	start := time.Now()

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := profileFromDTO(req.Profile)

	var weights *domain.ComponentWeights
	if len(req.Weights) > 0 {
		cw, err := domain.WeightsFromMap(req.Weights)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		weights = &cw
	}

	ctx := r.Context()
	cacheKey := cache.Key(profile, weights)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		s.metrics.RecordCacheHit()
		s.metrics.RecordMatch(cached.Scenario, time.Since(start), nil)
		writeJSON(w, http.StatusOK, cached)
		return
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("cache lookup failed", slog.String("op", op), sl.Err(err))
	}
	if s.cache.IsEnabled() {
		s.metrics.RecordCacheMiss()
	}

	filter := listing_repository.CandidateFilterFromProfile(profile, s.candidateLimit)
	candidates, err := s.repo.ListCandidates(ctx, filter)
	if err != nil {
		s.log.Error("failed to load candidates", slog.String("op", op), sl.Err(err))
		s.metrics.RecordMatch("", time.Since(start), err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	pres, err := s.selector.Present(candidates, profile, weights)
	if err != nil {
		s.log.Error("failed to build presentation", slog.String("op", op), sl.Err(err))
		s.metrics.RecordMatch("", time.Since(start), err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	elapsed := time.Since(start)
	s.metrics.RecordMatch(pres.Scenario, elapsed, nil)
	s.recordAnalytics(r, pres, elapsed)
	s.cache.Set(ctx, cacheKey, pres)

	writeJSON(w, http.StatusOK, pres)
}

// recordAnalytics пишет событие матчинга; ошибки не прерывают ответ.
func (s *Server) recordAnalytics(r *http.Request, pres domain.Presentation, elapsed time.Duration) {
	if s.analytics == nil {
		return
	}

	var topScore float64
	if len(pres.Listings) > 0 {
		topScore = lo.MaxBy(pres.Listings, func(a, b domain.RankedListing) bool {
			return a.Score.Composite > b.Score.Composite
		}).Score.Composite
	}

	event := analytics.MatchEvent{
		Scenario:     pres.Scenario,
		MatchedCount: pres.Stats.TotalCount,
		TopScore:     topScore,
		Duration:     elapsed,
	}
	if err := s.analytics.RecordMatch(r.Context(), event); err != nil {
		s.log.Warn("failed to record match event", sl.Err(err))
	}
}

// ScoreRequest — запрос на скоринг одного объявления против профиля.
type ScoreRequest struct {
	Listing ListingDTO         `json:"listing"`
	Profile ProfileDTO         `json:"profile"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// handleScore считает скор одного объявления с разбивкой и объяснением.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listing := listingFromDTO(req.Listing)
	profile := profileFromDTO(req.Profile)

	var weights *domain.ComponentWeights
	if len(req.Weights) > 0 {
		cw, err := domain.WeightsFromMap(req.Weights)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		weights = &cw
	}

	result, err := s.calc.ScoreWithWeights(listing, profile, weights)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handlePresets возвращает предопределённые пресеты весов.
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := lo.Map(domain.GetWeightPresets(), func(p domain.WeightPreset, _ int) presetDTO {
		return presetToDTO(p)
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{"presets": presets})
}

// handleListingJSONLD отдаёт schema.org-разметку объявления.
func (s *Server) handleListingJSONLD(w http.ResponseWriter, r *http.Request) {
	const op = "http.Server.handleListingJSONLD"

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	listing, err := s.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		s.log.Error("failed to load listing", slog.String("op", op), sl.Err(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	doc, err := s.jsonld.Generate(listing)
	if err != nil {
		s.log.Error("failed to generate json-ld", slog.String("op", op), sl.Err(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/ld+json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.adminSvc.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handleAdminAnalytics(w http.ResponseWriter, r *http.Request) {
	const op = "http.Server.handleAdminAnalytics"

	if s.analytics == nil {
		writeError(w, http.StatusServiceUnavailable, "analytics disabled")
		return
	}

	stats, err := s.analytics.ScenarioStats(r.Context())
	if err != nil {
		s.log.Error("failed to load analytics", slog.String("op", op), sl.Err(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"scenarios": stats})
}

func (s *Server) handleAdminMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}
