package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `env:"ENV" env-default:"local"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
	HTTP        HTTPConfig
	Auth        AuthConfig
	Cache       CacheConfig
	Analytics   AnalyticsConfig
	Matching    MatchingConfig
}

type HTTPConfig struct {
	Port            int           `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// AuthConfig — доступ к админским эндпоинтам (аналитика, метрики).
type AuthConfig struct {
	Secret            string        `env:"AUTH_SECRET" env-required:"true"`
	TokenTTL          time.Duration `env:"AUTH_TOKEN_TTL" env-default:"1h"`
	AdminUser         string        `env:"AUTH_ADMIN_USER" env-default:"admin"`
	AdminPasswordHash string        `env:"AUTH_ADMIN_PASSWORD_HASH"` // bcrypt
}

// CacheConfig — Redis-кэш готовых выдач.
type CacheConfig struct {
	Enabled  bool          `env:"CACHE_ENABLE" env-default:"false"`
	Addr     string        `env:"CACHE_ADDR" env-default:"localhost:6379"`
	Password string        `env:"CACHE_PASSWORD"`
	DB       int           `env:"CACHE_DB" env-default:"0"`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"5m"`
}

// AnalyticsConfig — локальное SQLite-хранилище аналитики матчинга.
type AnalyticsConfig struct {
	Enabled bool   `env:"ANALYTICS_ENABLE" env-default:"true"`
	Path    string `env:"ANALYTICS_PATH" env-default:"dream_match_analytics.db"`
}

// MatchingConfig — пороги машины сценариев показа результатов.
type MatchingConfig struct {
	// FewMax — верхняя граница сценария few_results
	FewMax int `env:"MATCH_FEW_MAX" env-default:"20"`
	// OptimalMax — верхняя граница сценария optimal_results
	OptimalMax int `env:"MATCH_OPTIMAL_MAX" env-default:"200"`
	// ClusterDominance — порог доминирования одного ЖК для кластеризации
	ClusterDominance int `env:"MATCH_CLUSTER_DOMINANCE" env-default:"100"`
	// PageSize — размер показываемой страницы
	PageSize int `env:"MATCH_PAGE_SIZE" env-default:"12"`
	// NarrowingHintAt — с какого размера выдачи предлагать сужение
	NarrowingHintAt int `env:"MATCH_NARROWING_HINT_AT" env-default:"100"`
	// CandidateLimit — максимум кандидатов, загружаемых из БД на запрос
	CandidateLimit int `env:"MATCH_CANDIDATE_LIMIT" env-default:"2000"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}
	return &cfg
}
