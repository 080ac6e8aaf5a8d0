package presentation

import (
	"testing"

	"github.com/google/uuid"

	"dream_match/internal/domain"
)

func TestComputeStats(t *testing.T) {
	mk := func(price int64, area *float64) domain.RankedListing {
		return domain.RankedListing{Listing: domain.Listing{ID: uuid.New(), Price: price, TotalArea: area}}
	}

	ranked := []domain.RankedListing{
		mk(10_000_000, ptr(40.0)),
		mk(20_000_000, nil), // площадь не указана — не участвует в агрегатах
		mk(30_000_000, ptr(80.0)),
	}

	stats := computeStats(ranked)

	if stats.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", stats.TotalCount)
	}
	if stats.PriceMin != 10_000_000 || stats.PriceMax != 30_000_000 {
		t.Errorf("price range = %d..%d, want 10000000..30000000", stats.PriceMin, stats.PriceMax)
	}
	if stats.PriceAvg != 20_000_000 {
		t.Errorf("PriceAvg = %.0f, want 20000000", stats.PriceAvg)
	}

	if stats.AreaMin == nil || stats.AreaAvg == nil || stats.AreaMax == nil {
		t.Fatal("area aggregates must be set when at least one listing has an area")
	}
	if *stats.AreaMin != 40 || *stats.AreaAvg != 60 || *stats.AreaMax != 80 {
		t.Errorf("area aggregates = %.0f/%.0f/%.0f, want 40/60/80",
			*stats.AreaMin, *stats.AreaAvg, *stats.AreaMax)
	}
}

func TestComputeStats_NoAreas(t *testing.T) {
	ranked := []domain.RankedListing{
		{Listing: domain.Listing{ID: uuid.New(), Price: 100}},
	}

	stats := computeStats(ranked)
	if stats.AreaMin != nil || stats.AreaAvg != nil || stats.AreaMax != nil {
		t.Error("area aggregates must stay nil when no listing has an area")
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := computeStats(nil)
	if stats.TotalCount != 0 || stats.PriceMin != 0 || stats.PriceMax != 0 {
		t.Errorf("empty input must give zero stats, got %+v", stats)
	}
}
