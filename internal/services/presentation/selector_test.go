package presentation

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"

	"dream_match/internal/domain"
	"dream_match/internal/services/scoring"
)

func ptr[T any](v T) *T { return &v }

func newTestSelector() *Selector {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return New(log, scoring.New(log), DefaultConfig())
}

// genListings создаёт n объявлений; complexFor задаёт название ЖК
// по индексу (пустая строка — без ЖК).
func genListings(n int, complexFor func(i int) string) []domain.Listing {
	listings := make([]domain.Listing, n)
	for i := range listings {
		l := domain.Listing{
			ID:        uuid.New(),
			Price:     int64(8_000_000 + (i*7919)%5_000_000),
			Rooms:     ptr(int32(i%4 + 1)),
			TotalArea: ptr(35.0 + float64(i%70)),
			Balcony:   domain.BalconyLoggia,
			Bathroom:  domain.BathroomSeparate,
		}
		if name := complexFor(i); name != "" {
			l.Complex = &name
		}
		listings[i] = l
	}
	return listings
}

func noComplex(int) string { return "" }

func TestPresent_ScenarioSelection(t *testing.T) {
	s := newTestSelector()

	tests := []struct {
		name     string
		listings []domain.Listing
		want     domain.Scenario
	}{
		{
			name:     "empty set",
			listings: nil,
			want:     domain.ScenarioNoResults,
		},
		{
			name:     "few results at 15",
			listings: genListings(15, noComplex),
			want:     domain.ScenarioFew,
		},
		{
			name:     "boundary 20 is still few",
			listings: genListings(20, noComplex),
			want:     domain.ScenarioFew,
		},
		{
			name:     "boundary 21 is optimal",
			listings: genListings(21, noComplex),
			want:     domain.ScenarioOptimal,
		},
		{
			name:     "optimal at 150",
			listings: genListings(150, noComplex),
			want:     domain.ScenarioOptimal,
		},
		{
			name:     "boundary 200 is still optimal",
			listings: genListings(200, noComplex),
			want:     domain.ScenarioOptimal,
		},
		{
			name: "too many without dominant complex",
			listings: genListings(250, func(i int) string {
				return fmt.Sprintf("ЖК №%d", i%50)
			}),
			want: domain.ScenarioTooMany,
		},
		{
			name: "clustered when one complex dominates",
			listings: genListings(250, func(i int) string {
				if i < 120 {
					return "ЖК Северный парк"
				}
				return fmt.Sprintf("ЖК №%d", i%40)
			}),
			want: domain.ScenarioClustered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pres, err := s.Present(tt.listings, domain.BuyerProfile{}, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pres.Scenario != tt.want {
				t.Errorf("scenario = %s, want %s", pres.Scenario, tt.want)
			}
			if pres.Message == "" {
				t.Error("message must not be empty")
			}
		})
	}
}

func TestPresent_NoResults(t *testing.T) {
	s := newTestSelector()

	profile := domain.BuyerProfile{
		MortgageRequired: true,
		BalconyRequired:  true,
		Bathroom:         ptr(domain.BathroomSeparate),
		BudgetMax:        ptr(int64(10_000_000)),
	}

	pres, err := s.Present(nil, profile, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pres.Suggestions) == 0 || len(pres.Suggestions) > maxRelaxationSuggestions {
		t.Fatalf("got %d suggestions, want 1..%d", len(pres.Suggestions), maxRelaxationSuggestions)
	}
	// Первым ослабляется самое жёсткое финансовое условие.
	if pres.Suggestions[0].Filter != "mortgage_required" {
		t.Errorf("first suggestion = %s, want mortgage_required", pres.Suggestions[0].Filter)
	}
	if pres.Stats.TotalCount != 0 {
		t.Errorf("stats.TotalCount = %d, want 0", pres.Stats.TotalCount)
	}
}

func TestPresent_FewSortedByPrice(t *testing.T) {
	s := newTestSelector()

	pres, err := s.Present(genListings(12, noComplex), domain.BuyerProfile{Districts: []string{"Приморский"}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pres.Listings) != 12 {
		t.Fatalf("few_results must show all %d listings, got %d", 12, len(pres.Listings))
	}
	for i := 1; i < len(pres.Listings); i++ {
		if pres.Listings[i].Listing.Price < pres.Listings[i-1].Listing.Price {
			t.Fatal("few_results listings must be sorted by price ascending")
		}
	}
	if len(pres.Suggestions) > maxExpansionSuggestions {
		t.Errorf("got %d expansion suggestions, cap is %d", len(pres.Suggestions), maxExpansionSuggestions)
	}
	// Районы заданы — расширение по районам должно быть предложено.
	if len(pres.Suggestions) == 0 || pres.Suggestions[0].Filter != "districts" {
		t.Errorf("expected districts expansion first, got %+v", pres.Suggestions)
	}
}

func TestPresent_OptimalPageAndStats(t *testing.T) {
	s := newTestSelector()

	total := 150
	pres, err := s.Present(genListings(total, noComplex), domain.BuyerProfile{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pres.Listings) != s.cfg.PageSize {
		t.Errorf("page size = %d, want %d", len(pres.Listings), s.cfg.PageSize)
	}
	// Статистика — по всей выдаче, не по странице.
	if pres.Stats.TotalCount != total {
		t.Errorf("stats.TotalCount = %d, want %d", pres.Stats.TotalCount, total)
	}
	// Страница упорядочена по убыванию скора.
	for i := 1; i < len(pres.Listings); i++ {
		if pres.Listings[i].Score.Composite > pres.Listings[i-1].Score.Composite {
			t.Fatal("optimal_results page must be sorted by score descending")
		}
	}
	// 150 > NarrowingHintAt и фильтры не заданы — подсказки сужения есть.
	if len(pres.Suggestions) == 0 {
		t.Error("expected narrowing hints for a large optimal result set")
	}

	// Маленькая optimal-выдача подсказок не получает.
	small, err := s.Present(genListings(40, noComplex), domain.BuyerProfile{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(small.Suggestions) != 0 {
		t.Errorf("no narrowing hints expected below the threshold, got %d", len(small.Suggestions))
	}
}

func TestPresent_TooManyQuestions(t *testing.T) {
	s := newTestSelector()

	listings := genListings(300, func(i int) string {
		return fmt.Sprintf("ЖК №%02d", i%30)
	})
	for i := range listings {
		listings[i].Renovation = []domain.RenovationType{
			domain.RenovationTurnkey, domain.RenovationFinished, domain.RenovationUnfinished,
		}[i%3]
	}

	pres, err := s.Present(listings, domain.BuyerProfile{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pres.Scenario != domain.ScenarioTooMany {
		t.Fatalf("scenario = %s, want too_many_results", pres.Scenario)
	}
	if len(pres.Suggestions) == 0 || len(pres.Suggestions) > maxNarrowingQuestions {
		t.Fatalf("got %d questions, want 1..%d", len(pres.Suggestions), maxNarrowingQuestions)
	}
	// 30 различных ЖК — первый вопрос про выбор ЖК, с топ-5 вариантами.
	first := pres.Suggestions[0]
	if first.Filter != "complex" {
		t.Errorf("first question filter = %s, want complex", first.Filter)
	}
	if len(first.Options) != topComplexOptions {
		t.Errorf("complex question has %d options, want %d", len(first.Options), topComplexOptions)
	}
	if pres.Stats.ComplexCount != 30 {
		t.Errorf("stats.ComplexCount = %d, want 30", pres.Stats.ComplexCount)
	}
	if len(pres.Listings) != s.cfg.PageSize {
		t.Errorf("preview size = %d, want %d", len(pres.Listings), s.cfg.PageSize)
	}
}

func TestPresent_Clustered(t *testing.T) {
	s := newTestSelector()

	dominant := "ЖК Северный парк"
	listings := genListings(260, func(i int) string {
		if i < 150 {
			return dominant
		}
		return fmt.Sprintf("ЖК №%d", i%20)
	})

	pres, err := s.Present(listings, domain.BuyerProfile{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pres.Scenario != domain.ScenarioClustered {
		t.Fatalf("scenario = %s, want clustered_results", pres.Scenario)
	}
	if len(pres.Clusters) == 0 {
		t.Fatal("clusters must not be empty")
	}

	// Кластеры покрывают все объявления доминирующего ЖК.
	total := 0
	for _, c := range pres.Clusters {
		total += c.Count
		if c.Layout == "" {
			t.Error("cluster without layout label")
		}
	}
	if total != 150 {
		t.Errorf("cluster counts sum to %d, want 150", total)
	}

	// Сводки упорядочены по возрастанию средней цены.
	for i := 1; i < len(pres.Clusters); i++ {
		if pres.Clusters[i].PriceAvg < pres.Clusters[i-1].PriceAvg {
			t.Fatal("cluster summaries must be sorted by average price ascending")
		}
	}

	// Единственная подсказка — выбор планировки со всеми вариантами.
	if len(pres.Suggestions) != 1 || pres.Suggestions[0].Type != domain.SuggestionSelectLayout {
		t.Fatalf("expected a single select_layout suggestion, got %+v", pres.Suggestions)
	}
	if len(pres.Suggestions[0].Options) != len(pres.Clusters) {
		t.Errorf("layout options = %d, want %d", len(pres.Suggestions[0].Options), len(pres.Clusters))
	}
}

func TestPresent_InvalidWeights(t *testing.T) {
	s := newTestSelector()

	bad := domain.ComponentWeights{PriceMatch: 0.5}
	if _, err := s.Present(genListings(5, noComplex), domain.BuyerProfile{}, &bad); err == nil {
		t.Error("expected error for invalid weights")
	}
}
