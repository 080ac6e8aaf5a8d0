package domain

import (
	"errors"
	"fmt"
	"math"
)

// Component — имя компонента итогового скора.
type Component string

const (
	ComponentPriceMatch      Component = "price_match"
	ComponentLocation        Component = "location"
	ComponentSpace           Component = "space"
	ComponentFloor           Component = "floor"
	ComponentLayout          Component = "layout"
	ComponentBuildingQuality Component = "building_quality"
	ComponentFinancial       Component = "financial"
	ComponentInfrastructure  Component = "infrastructure"
	ComponentAmenities       Component = "amenities"
)

// Components — канонический порядок компонентов. Используется везде,
// где важна детерминированность обхода (объяснения, сериализация).
var Components = []Component{
	ComponentPriceMatch,
	ComponentLocation,
	ComponentSpace,
	ComponentFloor,
	ComponentLayout,
	ComponentBuildingQuality,
	ComponentFinancial,
	ComponentInfrastructure,
	ComponentAmenities,
}

// ErrInvalidWeights — конфигурация весов не прошла валидацию.
// Скоринг с битым набором весов даёт вводящие в заблуждение результаты,
// поэтому отклоняем на границе, до начала расчётов.
var ErrInvalidWeights = errors.New("invalid weight configuration")

// weightSumTolerance — допуск на сумму весов при валидации.
const weightSumTolerance = 0.001

// ComponentWeights — веса девяти компонентов скора (сумма = 1.0).
type ComponentWeights struct {
	PriceMatch      float64 `json:"price_match"`
	Location        float64 `json:"location"`
	Space           float64 `json:"space"`
	Floor           float64 `json:"floor"`
	Layout          float64 `json:"layout"`
	BuildingQuality float64 `json:"building_quality"`
	Financial       float64 `json:"financial"`
	Infrastructure  float64 `json:"infrastructure"`
	Amenities       float64 `json:"amenities"`
}

// DefaultComponentWeights возвращает веса по умолчанию (сумма 1.00).
func DefaultComponentWeights() ComponentWeights {
	return ComponentWeights{
		PriceMatch:      0.20,
		Location:        0.15,
		Space:           0.10,
		Floor:           0.05,
		Layout:          0.15,
		BuildingQuality: 0.15,
		Financial:       0.10,
		Infrastructure:  0.05,
		Amenities:       0.05,
	}
}

// Sum возвращает сумму всех весов.
func (w ComponentWeights) Sum() float64 {
	var total float64
	for _, v := range w.asList() {
		total += v
	}
	return total
}

// Validate проверяет, что веса неотрицательны, не больше 1 и в сумме дают 1.0.
func (w ComponentWeights) Validate() error {
	for i, v := range w.asList() {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: weight %q = %.4f is out of [0,1]", ErrInvalidWeights, Components[i], v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, must sum to 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// Of возвращает вес именованного компонента.
func (w ComponentWeights) Of(c Component) float64 {
	switch c {
	case ComponentPriceMatch:
		return w.PriceMatch
	case ComponentLocation:
		return w.Location
	case ComponentSpace:
		return w.Space
	case ComponentFloor:
		return w.Floor
	case ComponentLayout:
		return w.Layout
	case ComponentBuildingQuality:
		return w.BuildingQuality
	case ComponentFinancial:
		return w.Financial
	case ComponentInfrastructure:
		return w.Infrastructure
	case ComponentAmenities:
		return w.Amenities
	default:
		return 0
	}
}

func (w ComponentWeights) asList() []float64 {
	return []float64{
		w.PriceMatch, w.Location, w.Space, w.Floor, w.Layout,
		w.BuildingQuality, w.Financial, w.Infrastructure, w.Amenities,
	}
}

// WeightsFromMap собирает ComponentWeights из маппинга имя → вес.
// Неизвестные ключи отклоняются, итог валидируется.
func WeightsFromMap(m map[string]float64) (ComponentWeights, error) {
	var w ComponentWeights
	for name, v := range m {
		switch Component(name) {
		case ComponentPriceMatch:
			w.PriceMatch = v
		case ComponentLocation:
			w.Location = v
		case ComponentSpace:
			w.Space = v
		case ComponentFloor:
			w.Floor = v
		case ComponentLayout:
			w.Layout = v
		case ComponentBuildingQuality:
			w.BuildingQuality = v
		case ComponentFinancial:
			w.Financial = v
		case ComponentInfrastructure:
			w.Infrastructure = v
		case ComponentAmenities:
			w.Amenities = v
		default:
			return ComponentWeights{}, fmt.Errorf("%w: unknown component %q", ErrInvalidWeights, name)
		}
	}
	if err := w.Validate(); err != nil {
		return ComponentWeights{}, err
	}
	return w, nil
}

// WeightPreset — именованный пресет весов.
type WeightPreset struct {
	ID          string
	Name        string
	Description string
	Weights     ComponentWeights
}

// GetWeightPresets возвращает предустановленные наборы весов.
// Каждый пресет обязан проходить Validate (сумма ровно 1.0).
func GetWeightPresets() []WeightPreset {
	return []WeightPreset{
		{
			ID: "balanced", Name: "Сбалансированный", Description: "Веса по умолчанию",
			Weights: DefaultComponentWeights(),
		},
		{
			ID: "budget_first", Name: "Бюджет важнее", Description: "Приоритет на цену и условия сделки",
			Weights: ComponentWeights{
				PriceMatch: 0.35, Location: 0.10, Space: 0.10, Floor: 0.05, Layout: 0.10,
				BuildingQuality: 0.10, Financial: 0.15, Infrastructure: 0.025, Amenities: 0.025,
			},
		},
		{
			ID: "location_first", Name: "Локация важнее", Description: "Приоритет на район и метро",
			Weights: ComponentWeights{
				PriceMatch: 0.15, Location: 0.30, Space: 0.10, Floor: 0.05, Layout: 0.10,
				BuildingQuality: 0.15, Financial: 0.05, Infrastructure: 0.05, Amenities: 0.05,
			},
		},
		{
			ID: "family", Name: "Для семьи", Description: "Площадь, планировка и инфраструктура",
			Weights: ComponentWeights{
				PriceMatch: 0.15, Location: 0.10, Space: 0.20, Floor: 0.05, Layout: 0.20,
				BuildingQuality: 0.10, Financial: 0.05, Infrastructure: 0.10, Amenities: 0.05,
			},
		},
	}
}

// GetWeightPresetByID возвращает пресет по ID.
func GetWeightPresetByID(id string) *WeightPreset {
	for _, p := range GetWeightPresets() {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
