package presentation

import (
	"math"

	"dream_match/internal/domain"
)

// computeStats считает статистику по всему набору совпадений — не по
// показанной странице. Площадь агрегируется только по объявлениям,
// где она указана.
func computeStats(ranked []domain.RankedListing) domain.ResultStats {
	stats := domain.ResultStats{TotalCount: len(ranked)}
	if len(ranked) == 0 {
		return stats
	}

	var priceSum int64
	stats.PriceMin = ranked[0].Listing.Price
	stats.PriceMax = ranked[0].Listing.Price

	var areaSum, areaMin, areaMax float64
	var areaCount int

	for _, r := range ranked {
		price := r.Listing.Price
		priceSum += price
		if price < stats.PriceMin {
			stats.PriceMin = price
		}
		if price > stats.PriceMax {
			stats.PriceMax = price
		}

		if r.Listing.TotalArea != nil {
			a := *r.Listing.TotalArea
			if areaCount == 0 {
				areaMin, areaMax = a, a
			}
			areaSum += a
			areaMin = math.Min(areaMin, a)
			areaMax = math.Max(areaMax, a)
			areaCount++
		}
	}

	stats.PriceAvg = float64(priceSum) / float64(len(ranked))

	if areaCount > 0 {
		avg := areaSum / float64(areaCount)
		stats.AreaMin = &areaMin
		stats.AreaAvg = &avg
		stats.AreaMax = &areaMax
	}

	return stats
}
