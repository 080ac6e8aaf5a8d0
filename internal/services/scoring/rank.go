package scoring

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"dream_match/internal/domain"
)

// ScoreAll оценивает набор объявлений параллельно. Скоринг одного
// объявления не зависит от остальных, поэтому работа раздаётся пулу
// воркеров без какой-либо координации; результаты пишутся каждым воркером
// в свой индекс. Порядок результатов совпадает с порядком входа.
func (c *Calculator) ScoreAll(listings []domain.Listing, profile domain.BuyerProfile, weights *domain.ComponentWeights) ([]domain.RankedListing, error) {
	const op = "scoring.Calculator.ScoreAll"

	// Валидируем веса один раз до запуска воркеров.
	w, err := resolveWeights(profile, weights)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(listings) == 0 {
		return nil, nil
	}

	ranked := make([]domain.RankedListing, len(listings))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(listings) {
		workers = len(listings)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Веса уже провалидированы, ошибка невозможна.
				res, _ := c.ScoreWithWeights(listings[i], profile, &w)
				ranked[i] = domain.RankedListing{Listing: listings[i], Score: res}
			}
		}()
	}
	for i := range listings {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return ranked, nil
}

// SortByScoreDesc сортирует по убыванию композитного скора.
// Сортировка стабильная, ничьи разрешаются по ID объявления,
// поэтому порядок воспроизводим между запусками.
func SortByScoreDesc(ranked []domain.RankedListing) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score.Composite != ranked[j].Score.Composite {
			return ranked[i].Score.Composite > ranked[j].Score.Composite
		}
		return ranked[i].Listing.ID.String() < ranked[j].Listing.ID.String()
	})
}

// SortByPriceAsc сортирует по возрастанию цены со стабильным
// разрешением ничьих по ID объявления.
func SortByPriceAsc(ranked []domain.RankedListing) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Listing.Price != ranked[j].Listing.Price {
			return ranked[i].Listing.Price < ranked[j].Listing.Price
		}
		return ranked[i].Listing.ID.String() < ranked[j].Listing.ID.String()
	})
}
