package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dream_match/internal/config"
	"dream_match/internal/domain"
	"dream_match/internal/lib/cache"
	"dream_match/internal/lib/metrics"
	"dream_match/internal/repository"
	"dream_match/internal/repository/listing_repository"
	"dream_match/internal/services/admin"
	"dream_match/internal/services/presentation"
	"dream_match/internal/services/scoring"
)

func ptr[T any](v T) *T { return &v }

// mockListingProvider — подмена репозитория объявлений.
type mockListingProvider struct {
	ListCandidatesFunc func(ctx context.Context, filter listing_repository.CandidateFilter) ([]domain.Listing, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Listing, error)
}

func (m *mockListingProvider) ListCandidates(ctx context.Context, filter listing_repository.CandidateFilter) ([]domain.Listing, error) {
	if m.ListCandidatesFunc != nil {
		return m.ListCandidatesFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockListingProvider) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Listing{}, repository.ErrListingNotFound
}

func newTestServer(t *testing.T, repo ListingProvider) *Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	calc := scoring.New(log)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	m := metrics.GetMatchMetrics(log)
	m.Reset()

	return New(log,
		config.HTTPConfig{Port: 0, ReadTimeout: time.Second, WriteTimeout: time.Second},
		config.MatchingConfig{CandidateLimit: 500},
		Deps{
			Repo:     repo,
			Calc:     calc,
			Selector: presentation.New(log, calc, presentation.DefaultConfig()),
			Admin: admin.New(log, config.AuthConfig{
				Secret:            "test-secret",
				TokenTTL:          time.Hour,
				AdminUser:         "admin",
				AdminPasswordHash: string(hash),
			}),
			Cache:   cache.New(config.CacheConfig{Enabled: false}, log),
			Metrics: m,
		},
	)
}

func doRequest(s *Server, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &mockListingProvider{})

	rec := doRequest(s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleMatch(t *testing.T) {
	listings := make([]domain.Listing, 5)
	for i := range listings {
		listings[i] = domain.Listing{
			ID:    uuid.New(),
			Price: int64(15_000_000 + i*1_000_000),
			Rooms: ptr(int32(2)),
		}
	}

	var gotFilter listing_repository.CandidateFilter
	repo := &mockListingProvider{
		ListCandidatesFunc: func(ctx context.Context, filter listing_repository.CandidateFilter) ([]domain.Listing, error) {
			gotFilter = filter
			return listings, nil
		},
	}
	s := newTestServer(t, repo)

	rec := doRequest(s, http.MethodPost, "/v1/match", MatchRequest{
		Profile: ProfileDTO{
			DealType:  "BUY",
			BudgetMax: ptr(int64(20_000_000)),
			RoomsMin:  ptr(int32(2)),
		},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pres domain.Presentation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pres))
	assert.Equal(t, domain.ScenarioFew, pres.Scenario)
	assert.Len(t, pres.Listings, 5)
	assert.Equal(t, 5, pres.Stats.TotalCount)

	// Бюджетный фильтр расширен на перерасход.
	require.NotNil(t, gotFilter.PriceMax)
	assert.Equal(t, int64(25_000_000), *gotFilter.PriceMax)
	assert.Equal(t, domain.DealTypeBuy, gotFilter.DealType)
}

func TestHandleMatch_InvalidWeights(t *testing.T) {
	s := newTestServer(t, &mockListingProvider{})

	rec := doRequest(s, http.MethodPost, "/v1/match", MatchRequest{
		Profile: ProfileDTO{DealType: "BUY"},
		Weights: map[string]float64{"price_match": 0.9, "unknown_component": 0.1},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMatch_BadBody(t *testing.T) {
	s := newTestServer(t, &mockListingProvider{})

	req := httptest.NewRequest(http.MethodPost, "/v1/match", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScore(t *testing.T) {
	s := newTestServer(t, &mockListingProvider{})

	rec := doRequest(s, http.MethodPost, "/v1/score", ScoreRequest{
		Listing: ListingDTO{
			Price:     17_000_000,
			Rooms:     ptr(int32(2)),
			TotalArea: ptr(60.0),
			Floor:     ptr(int32(5)),
		},
		Profile: ProfileDTO{
			BudgetMin: ptr(int64(15_000_000)),
			BudgetMax: ptr(int64(20_000_000)),
			RoomsMin:  ptr(int32(2)),
			RoomsMax:  ptr(int32(3)),
		},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result domain.ScoreResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.GreaterOrEqual(t, result.Composite, 0.0)
	assert.LessOrEqual(t, result.Composite, 100.0)
	assert.NotEmpty(t, result.Explanation)
	assert.Len(t, result.Components, 9)
}

func TestHandlePresets(t *testing.T) {
	s := newTestServer(t, &mockListingProvider{})

	rec := doRequest(s, http.MethodGet, "/v1/presets", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Presets []presetDTO `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Presets)
	for _, p := range resp.Presets {
		assert.NotEmpty(t, p.ID)
		assert.Len(t, p.Weights, 9)
	}
}

func TestHandleListingJSONLD(t *testing.T) {
	known := domain.Listing{ID: uuid.New(), Title: "Студия", Price: 9_000_000}
	repo := &mockListingProvider{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
			if id == known.ID {
				return known, nil
			}
			return domain.Listing{}, repository.ErrListingNotFound
		},
	}
	s := newTestServer(t, repo)

	t.Run("found", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, fmt.Sprintf("/v1/listings/%s/jsonld", known.ID), nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/ld+json")
		assert.Contains(t, rec.Body.String(), "RealEstateListing")
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, fmt.Sprintf("/v1/listings/%s/jsonld", uuid.New()), nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/v1/listings/not-a-uuid/jsonld", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminAuth(t *testing.T) {
	s := newTestServer(t, &mockListingProvider{})

	t.Run("login ok", func(t *testing.T) {
		rec := doRequest(s, http.MethodPost, "/v1/admin/login",
			loginRequest{Username: "admin", Password: "secret-pass"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp loginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)

		// Выданный токен открывает метрики.
		recMetrics := doRequest(s, http.MethodGet, "/v1/admin/metrics", nil,
			map[string]string{"Authorization": "Bearer " + resp.Token})
		assert.Equal(t, http.StatusOK, recMetrics.Code)

		// Аналитика выключена в тестовой сборке.
		recAnalytics := doRequest(s, http.MethodGet, "/v1/admin/analytics", nil,
			map[string]string{"Authorization": "Bearer " + resp.Token})
		assert.Equal(t, http.StatusServiceUnavailable, recAnalytics.Code)
	})

	t.Run("login rejected", func(t *testing.T) {
		rec := doRequest(s, http.MethodPost, "/v1/admin/login",
			loginRequest{Username: "admin", Password: "wrong"}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("guarded endpoints require token", func(t *testing.T) {
		for _, path := range []string{"/v1/admin/metrics", "/v1/admin/analytics"} {
			rec := doRequest(s, http.MethodGet, path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

			rec = doRequest(s, http.MethodGet, path, nil,
				map[string]string{"Authorization": "Bearer garbage"})
			assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		}
	})
}
