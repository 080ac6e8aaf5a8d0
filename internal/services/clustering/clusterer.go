package clustering

import (
	"fmt"

	"github.com/samber/lo"

	"dream_match/internal/domain"
)

// Cluster разбивает объявления на кластеры планировок по ключу
// (комнаты, диапазон площади, тип балкона, тип санузла).
//
// Разбиение двухфазное: сначала для каждого объявления считается ключ,
// затем объявление ДОБАВЛЯЕТСЯ в список своего кластера. Каждое входное
// объявление попадает ровно в один кластер — ничего не теряется и не
// дублируется. Порядок кластеров соответствует первому появлению ключа,
// представитель кластера — первое встреченное объявление.
func Cluster(listings []domain.Listing) []domain.Cluster {
	groups := make(map[domain.ClusterKey][]domain.Listing, len(listings))
	var order []domain.ClusterKey

	for _, l := range listings {
		key := keyOf(l)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], l)
	}

	clusters := make([]domain.Cluster, 0, len(order))
	for _, key := range order {
		members := groups[key]

		var sum int64
		minPrice, maxPrice := members[0].Price, members[0].Price
		for _, m := range members {
			sum += m.Price
			if m.Price < minPrice {
				minPrice = m.Price
			}
			if m.Price > maxPrice {
				maxPrice = m.Price
			}
		}

		clusters = append(clusters, domain.Cluster{
			Key:            key,
			Listings:       members,
			Representative: members[0],
			PriceMin:       minPrice,
			PriceAvg:       float64(sum) / float64(len(members)),
			PriceMax:       maxPrice,
		})
	}

	return clusters
}

// keyOf сводит объявление к ключу кластера. Отсутствующие поля
// заменяются нулевыми значениями ключа: 0 комнат, площадь 0 (диапазон
// "<40"), балкон NONE, санузел UNKNOWN.
func keyOf(l domain.Listing) domain.ClusterKey {
	balcony := l.Balcony
	if balcony == domain.BalconyUnknown {
		balcony = domain.BalconyNone
	}

	return domain.ClusterKey{
		Rooms:    lo.FromPtr(l.Rooms),
		AreaBand: domain.AreaBandOf(lo.FromPtr(l.TotalArea)),
		Balcony:  balcony,
		Bathroom: l.Bathroom,
	}
}

// LayoutLabel строит человекочитаемое описание планировки кластера.
func LayoutLabel(key domain.ClusterKey) string {
	rooms := "студия"
	if key.Rooms > 0 {
		rooms = fmt.Sprintf("%d-комн.", key.Rooms)
	}

	balcony := "без балкона"
	switch key.Balcony {
	case domain.BalconyBalcony:
		balcony = "с балконом"
	case domain.BalconyLoggia:
		balcony = "с лоджией"
	case domain.BalconyTerrace:
		balcony = "с террасой"
	}

	bathroom := "санузел не указан"
	switch key.Bathroom {
	case domain.BathroomCombined:
		bathroom = "совмещённый санузел"
	case domain.BathroomSeparate:
		bathroom = "раздельный санузел"
	}

	return fmt.Sprintf("%s, %s м², %s, %s", rooms, key.AreaBand, balcony, bathroom)
}
