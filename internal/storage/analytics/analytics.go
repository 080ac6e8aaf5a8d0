package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"dream_match/internal/domain"
)

// Store — локальное SQLite-хранилище аналитики матчинга: по строке на
// запрос (сценарий, размер выдачи, лучший скор, длительность).
type Store struct {
	db *sql.DB
}

// Open открывает (или создаёт) SQLite-базу аналитики.
func Open(path string) (*Store, error) {
	const op = "analytics.Open"

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS match_events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  scenario TEXT NOT NULL,
  matched_count INTEGER NOT NULL,
  top_score REAL NOT NULL DEFAULT 0,
  duration_ms INTEGER NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_match_events_scenario ON match_events(scenario);`); err != nil {
		return err
	}
	return nil
}

// MatchEvent — одна запись аналитики.
type MatchEvent struct {
	Scenario     domain.Scenario
	MatchedCount int
	TopScore     float64
	Duration     time.Duration
}

// RecordMatch сохраняет событие матчинга.
func (s *Store) RecordMatch(ctx context.Context, e MatchEvent) error {
	const op = "analytics.Store.RecordMatch"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO match_events (scenario, matched_count, top_score, duration_ms)
		VALUES (?, ?, ?, ?)
	`, e.Scenario.String(), e.MatchedCount, e.TopScore, e.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ScenarioStat — агрегат по одному сценарию.
type ScenarioStat struct {
	Scenario     string  `json:"scenario"`
	Requests     int64   `json:"requests"`
	AvgMatched   float64 `json:"avg_matched"`
	AvgTopScore  float64 `json:"avg_top_score"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// ScenarioStats возвращает агрегаты по сценариям за всё время.
func (s *Store) ScenarioStats(ctx context.Context) ([]ScenarioStat, error) {
	const op = "analytics.Store.ScenarioStats"

	rows, err := s.db.QueryContext(ctx, `
		SELECT scenario,
		       COUNT(*),
		       AVG(matched_count),
		       AVG(top_score),
		       AVG(duration_ms)
		FROM match_events
		GROUP BY scenario
		ORDER BY scenario
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var stats []ScenarioStat
	for rows.Next() {
		var st ScenarioStat
		if err := rows.Scan(&st.Scenario, &st.Requests, &st.AvgMatched, &st.AvgTopScore, &st.AvgDurationMs); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
