package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"dream_match/internal/config"
	"dream_match/internal/domain"
	"dream_match/internal/lib/logger/sl"
)

// ErrCacheMiss — ключ не найден в кэше.
var ErrCacheMiss = errors.New("cache: key not found")

// MatchCache — Redis-кэш готовых выдач. Движок детерминирован, поэтому
// выдача однозначно определяется парой (профиль, веса); TTL ограничивает
// расхождение с обновлениями базы объявлений. При выключенном кэше все
// операции — no-op.
type MatchCache struct {
	log     *slog.Logger
	rdb     *redis.Client
	ttl     time.Duration
	enabled bool
}

// New создаёт кэш выдач. При cfg.Enabled=false возвращает выключенный
// экземпляр без подключения к Redis.
func New(cfg config.CacheConfig, log *slog.Logger) *MatchCache {
	if !cfg.Enabled {
		return &MatchCache{log: log, enabled: false}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &MatchCache{
		log:     log,
		rdb:     rdb,
		ttl:     cfg.TTL,
		enabled: true,
	}
}

// IsEnabled сообщает, активен ли кэш.
func (c *MatchCache) IsEnabled() bool {
	return c.enabled
}

// Key строит детерминированный ключ кэша из профиля и весов.
func Key(profile domain.BuyerProfile, weights *domain.ComponentWeights) string {
	payload := struct {
		Profile domain.BuyerProfile      `json:"profile"`
		Weights *domain.ComponentWeights `json:"weights,omitempty"`
	}{Profile: profile, Weights: weights}

	data, err := json.Marshal(payload)
	if err != nil {
		// Профиль — плоская структура, сюда попасть нельзя.
		return ""
	}

	sum := sha256.Sum256(data)
	return "match:" + hex.EncodeToString(sum[:])
}

// Get возвращает закэшированную выдачу.
func (c *MatchCache) Get(ctx context.Context, key string) (domain.Presentation, error) {
	const op = "cache.MatchCache.Get"

	if !c.enabled || key == "" {
		return domain.Presentation{}, ErrCacheMiss
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Presentation{}, ErrCacheMiss
		}
		return domain.Presentation{}, fmt.Errorf("%s: %w", op, err)
	}

	var p domain.Presentation
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Presentation{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Set сохраняет выдачу с настроенным TTL. Ошибки записи логируются,
// но не считаются фатальными: кэш — оптимизация, а не источник истины.
func (c *MatchCache) Set(ctx context.Context, key string, p domain.Presentation) {
	const op = "cache.MatchCache.Set"

	if !c.enabled || key == "" {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		c.log.Warn("failed to marshal presentation for cache", slog.String("op", op), sl.Err(err))
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("failed to store presentation in cache", slog.String("op", op), sl.Err(err))
	}
}

// Close закрывает подключение к Redis.
func (c *MatchCache) Close() error {
	if !c.enabled {
		return nil
	}
	return c.rdb.Close()
}
