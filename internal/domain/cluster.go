package domain

// AreaBand — фиксированный диапазон площади, одно из пяти значений.
// Используется как измерение при кластеризации планировок.
type AreaBand string

const (
	AreaBandUnder40 AreaBand = "<40"
	AreaBand40to60  AreaBand = "40-60"
	AreaBand60to80  AreaBand = "60-80"
	AreaBand80to100 AreaBand = "80-100"
	AreaBandOver100 AreaBand = "100+"
)

func (b AreaBand) String() string {
	return string(b)
}

// AreaBandOf возвращает диапазон для заданной площади в м².
func AreaBandOf(area float64) AreaBand {
	switch {
	case area < 40:
		return AreaBandUnder40
	case area < 60:
		return AreaBand40to60
	case area < 80:
		return AreaBand60to80
	case area < 100:
		return AreaBand80to100
	default:
		return AreaBandOver100
	}
}

// ClusterKey — ключ кластера планировок: комнаты, диапазон площади,
// тип балкона и тип санузла. Отсутствующие поля объявления сводятся
// к нулевым значениям ключа (0 комнат, BalconyNone, BathroomUnknown).
type ClusterKey struct {
	Rooms    int32        `json:"rooms"`
	AreaBand AreaBand     `json:"area_band"`
	Balcony  BalconyType  `json:"balcony"`
	Bathroom BathroomType `json:"bathroom"`
}

// Cluster — группа объявлений с одинаковой планировкой.
// Representative — первое встреченное объявление группы.
type Cluster struct {
	Key            ClusterKey `json:"key"`
	Listings       []Listing  `json:"listings"`
	Representative Listing    `json:"representative"`
	PriceMin       int64      `json:"price_min"`
	PriceAvg       float64    `json:"price_avg"`
	PriceMax       int64      `json:"price_max"`
}

// Count возвращает размер кластера.
func (c Cluster) Count() int {
	return len(c.Listings)
}
