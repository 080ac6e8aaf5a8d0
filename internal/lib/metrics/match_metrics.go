package metrics

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"dream_match/internal/domain"
)

// MatchMetrics — счётчики движка матчинга: запросы по сценариям,
// попадания в кэш, задержки. Все инкременты атомарные, снимок
// консистентен на уровне отдельных счётчиков.
type MatchMetrics struct {
	log *slog.Logger

	requestsTotal int64
	errorsTotal   int64

	noResultsTotal int64
	fewTotal       int64
	optimalTotal   int64
	tooManyTotal   int64
	clusteredTotal int64

	cacheHitsTotal   int64
	cacheMissesTotal int64

	latencyTotalMs int64
	lastLatencyMs  int64
}

var (
	globalMetrics *MatchMetrics
	metricsOnce   sync.Once
)

// GetMatchMetrics возвращает глобальный экземпляр метрик.
func GetMatchMetrics(log *slog.Logger) *MatchMetrics {
	metricsOnce.Do(func() {
		globalMetrics = &MatchMetrics{log: log}
	})
	return globalMetrics
}

// RecordMatch записывает результат одного запроса матчинга.
func (m *MatchMetrics) RecordMatch(scenario domain.Scenario, latency time.Duration, err error) {
	atomic.AddInt64(&m.requestsTotal, 1)

	latencyMs := latency.Milliseconds()
	atomic.AddInt64(&m.latencyTotalMs, latencyMs)
	atomic.StoreInt64(&m.lastLatencyMs, latencyMs)

	if err != nil {
		atomic.AddInt64(&m.errorsTotal, 1)
		return
	}

	switch scenario {
	case domain.ScenarioNoResults:
		atomic.AddInt64(&m.noResultsTotal, 1)
	case domain.ScenarioFew:
		atomic.AddInt64(&m.fewTotal, 1)
	case domain.ScenarioOptimal:
		atomic.AddInt64(&m.optimalTotal, 1)
	case domain.ScenarioTooMany:
		atomic.AddInt64(&m.tooManyTotal, 1)
	case domain.ScenarioClustered:
		atomic.AddInt64(&m.clusteredTotal, 1)
	}
}

// RecordCacheHit отмечает попадание в кэш выдач.
func (m *MatchMetrics) RecordCacheHit() {
	atomic.AddInt64(&m.cacheHitsTotal, 1)
}

// RecordCacheMiss отмечает промах кэша выдач.
func (m *MatchMetrics) RecordCacheMiss() {
	atomic.AddInt64(&m.cacheMissesTotal, 1)
}

// Snapshot — срез метрик для отдачи наружу.
type Snapshot struct {
	RequestsTotal int64 `json:"requests_total"`
	ErrorsTotal   int64 `json:"errors_total"`

	ByScenario map[string]int64 `json:"by_scenario"`

	CacheHitsTotal   int64 `json:"cache_hits_total"`
	CacheMissesTotal int64 `json:"cache_misses_total"`

	AvgLatencyMs  int64 `json:"avg_latency_ms"`
	LastLatencyMs int64 `json:"last_latency_ms"`
}

// GetSnapshot возвращает текущий срез метрик.
func (m *MatchMetrics) GetSnapshot() Snapshot {
	requests := atomic.LoadInt64(&m.requestsTotal)

	var avgMs int64
	if requests > 0 {
		avgMs = atomic.LoadInt64(&m.latencyTotalMs) / requests
	}

	return Snapshot{
		RequestsTotal: requests,
		ErrorsTotal:   atomic.LoadInt64(&m.errorsTotal),
		ByScenario: map[string]int64{
			domain.ScenarioNoResults.String(): atomic.LoadInt64(&m.noResultsTotal),
			domain.ScenarioFew.String():       atomic.LoadInt64(&m.fewTotal),
			domain.ScenarioOptimal.String():   atomic.LoadInt64(&m.optimalTotal),
			domain.ScenarioTooMany.String():   atomic.LoadInt64(&m.tooManyTotal),
			domain.ScenarioClustered.String(): atomic.LoadInt64(&m.clusteredTotal),
		},
		CacheHitsTotal:   atomic.LoadInt64(&m.cacheHitsTotal),
		CacheMissesTotal: atomic.LoadInt64(&m.cacheMissesTotal),
		AvgLatencyMs:     avgMs,
		LastLatencyMs:    atomic.LoadInt64(&m.lastLatencyMs),
	}
}

// Reset обнуляет все счётчики. Используется в тестах.
func (m *MatchMetrics) Reset() {
	atomic.StoreInt64(&m.requestsTotal, 0)
	atomic.StoreInt64(&m.errorsTotal, 0)
	atomic.StoreInt64(&m.noResultsTotal, 0)
	atomic.StoreInt64(&m.fewTotal, 0)
	atomic.StoreInt64(&m.optimalTotal, 0)
	atomic.StoreInt64(&m.tooManyTotal, 0)
	atomic.StoreInt64(&m.clusteredTotal, 0)
	atomic.StoreInt64(&m.cacheHitsTotal, 0)
	atomic.StoreInt64(&m.cacheMissesTotal, 0)
	atomic.StoreInt64(&m.latencyTotalMs, 0)
	atomic.StoreInt64(&m.lastLatencyMs, 0)
}
