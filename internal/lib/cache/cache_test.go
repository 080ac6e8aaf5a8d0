package cache

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"dream_match/internal/config"
	"dream_match/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestKey_Deterministic(t *testing.T) {
	profile := domain.BuyerProfile{
		BudgetMax: ptr(int64(20_000_000)),
		Districts: []string{"Приморский"},
	}

	first := Key(profile, nil)
	if !strings.HasPrefix(first, "match:") {
		t.Errorf("key %q must have the match: prefix", first)
	}
	for i := 0; i < 5; i++ {
		if got := Key(profile, nil); got != first {
			t.Fatalf("key is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestKey_DistinguishesInputs(t *testing.T) {
	base := domain.BuyerProfile{BudgetMax: ptr(int64(20_000_000))}

	other := base
	other.BudgetMax = ptr(int64(21_000_000))
	if Key(base, nil) == Key(other, nil) {
		t.Error("different budgets must produce different keys")
	}

	weights := domain.DefaultComponentWeights()
	if Key(base, nil) == Key(base, &weights) {
		t.Error("explicit weights must change the key")
	}
}

func TestDisabledCache_IsNoOp(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	c := New(config.CacheConfig{Enabled: false}, log)

	if c.IsEnabled() {
		t.Fatal("cache must be disabled")
	}

	ctx := context.Background()
	key := Key(domain.BuyerProfile{}, nil)

	if _, err := c.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("disabled cache Get must miss, got: %v", err)
	}

	// Set и Close на выключенном кэше не падают.
	c.Set(ctx, key, domain.Presentation{Scenario: domain.ScenarioFew})
	if err := c.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}
