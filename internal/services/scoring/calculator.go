package scoring

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"dream_match/internal/domain"
)

// Calculator считает композитный "Dream Score" (0–100) объявления для
// профиля покупателя: девять взвешенных компонентов, жёсткие ограничения
// обнуляют свой компонент, отсутствующие поля дают нейтральные оценки.
// Calculator не хранит состояния и не мутирует входные данные.
type Calculator struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Calculator {
	return &Calculator{log: log}
}

// Нейтральные оценки для незаданных критериев. Половина шкалы компонента,
// если не указано иное.
const (
	neutralComponent = 50.0

	// price_match: цена ниже budget_min подозрительна, но не штрафуется дальше
	priceBelowMinScore = 60.0
	// price_match: задан только budget_min и цена не ниже него
	priceAboveMinOnly = 90.0
)

// Score считает ScoreResult с весами по умолчанию.
func (c *Calculator) Score(listing domain.Listing, profile domain.BuyerProfile) (domain.ScoreResult, error) {
	return c.ScoreWithWeights(listing, profile, nil)
}

// ScoreWithWeights считает ScoreResult с переопределёнными весами.
// nil означает веса из профиля, а при их отсутствии — веса по умолчанию.
// Невалидные веса отклоняются до начала расчётов (domain.ErrInvalidWeights).
func (c *Calculator) ScoreWithWeights(listing domain.Listing, profile domain.BuyerProfile, weights *domain.ComponentWeights) (domain.ScoreResult, error) {
	const op = "scoring.Calculator.ScoreWithWeights"

	w, err := resolveWeights(profile, weights)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("%s: %w", op, err)
	}

	components := map[domain.Component]float64{
		domain.ComponentPriceMatch:      scorePriceMatch(listing, profile),
		domain.ComponentLocation:        scoreLocation(listing, profile),
		domain.ComponentSpace:           scoreSpace(listing, profile),
		domain.ComponentFloor:           scoreFloor(listing, profile),
		domain.ComponentLayout:          scoreLayout(listing, profile),
		domain.ComponentBuildingQuality: scoreBuildingQuality(listing, profile),
		domain.ComponentFinancial:       scoreFinancial(listing, profile),
		domain.ComponentInfrastructure:  scoreInfrastructure(listing, profile),
		domain.ComponentAmenities:       scoreAmenities(listing, profile),
	}

	var composite float64
	for _, comp := range domain.Components {
		composite += components[comp] * w.Of(comp)
	}

	result := domain.ScoreResult{
		Composite:  round1(composite),
		Components: components,
	}
	result.Explanation = Explain(result)

	return result, nil
}

// resolveWeights выбирает действующий набор весов: явный аргумент,
// затем профиль, затем дефолт. Любой явный набор валидируется.
func resolveWeights(profile domain.BuyerProfile, weights *domain.ComponentWeights) (domain.ComponentWeights, error) {
	switch {
	case weights != nil:
		if err := weights.Validate(); err != nil {
			return domain.ComponentWeights{}, err
		}
		return *weights, nil
	case profile.Weights != nil:
		if err := profile.Weights.Validate(); err != nil {
			return domain.ComponentWeights{}, err
		}
		return *profile.Weights, nil
	default:
		return domain.DefaultComponentWeights(), nil
	}
}

// scorePriceMatch — соответствие цены бюджету (0–100).
// Внутри [budget_min, budget_max] скор падает линейно от 100 до 80:
// запас по бюджету ценится выше. Превышение budget_max штрафуется
// 10 баллами за каждые 10% перерасхода, до нуля.
func scorePriceMatch(l domain.Listing, p domain.BuyerProfile) float64 {
	if !p.HasBudget() {
		return neutralComponent
	}

	price := float64(l.Price)

	if p.BudgetMin != nil && price < float64(*p.BudgetMin) {
		return priceBelowMinScore
	}

	if p.BudgetMax == nil {
		// Задан только нижний край и цена не ниже него.
		return priceAboveMinOnly
	}

	budgetMax := float64(*p.BudgetMax)
	if budgetMax <= 0 {
		return neutralComponent
	}

	budgetMin := 0.0
	if p.BudgetMin != nil {
		budgetMin = float64(*p.BudgetMin)
	}

	if price <= budgetMax {
		if budgetMax == budgetMin {
			return round1(80)
		}
		// 100 на нижней границе, 80 на верхней.
		frac := (price - budgetMin) / (budgetMax - budgetMin)
		return round1(100 - 20*frac)
	}

	// Перерасход: 1 балл за каждый 1% сверх бюджета, от базовых 80.
	overshootPct := (price - budgetMax) / budgetMax * 100
	return round1(clamp(80-overshootPct, 0, 100))
}

// scoreLocation — расположение (0–100): 60% — удалённость от метро,
// 40% — совпадение района или станции.
func scoreLocation(l domain.Listing, p domain.BuyerProfile) float64 {
	// Метро: линейное убывание от 60 (0 минут) до 30 (на пороге),
	// дальше минус 2 балла за минуту, не ниже 10.
	metro := 30.0
	if l.MetroDistance != nil && p.MaxMetroDistance != nil && *p.MaxMetroDistance > 0 {
		d := float64(*l.MetroDistance)
		maxD := float64(*p.MaxMetroDistance)
		if d <= maxD {
			metro = 60 - 30*(d/maxD)
		} else {
			metro = math.Max(10, 30-2*(d-maxD))
		}
	}

	// Район/станция: 40 при совпадении, 10 если предпочтения заданы,
	// но не совпали, 20 нейтрально без предпочтений.
	area := 20.0
	if p.HasLocationPreference() {
		area = 10.0
		if l.District != nil {
			for _, d := range p.Districts {
				if domain.DistrictsMatch(*l.District, d) {
					area = 40.0
					break
				}
			}
		}
		if area < 40 && l.MetroStation != nil {
			for _, m := range p.MetroStations {
				if domain.MetroStationsMatch(*l.MetroStation, m) {
					area = 40.0
					break
				}
			}
		}
	}

	return round1(clamp(metro+area, 0, 100))
}

// scoreSpace — комнаты и площадь (0–100): 60% комнаты, 40% площадь.
func scoreSpace(l domain.Listing, p domain.BuyerProfile) float64 {
	// Комнаты: 60 внутри диапазона, минус 15 за каждую комнату отклонения
	// от ближайшей границы.
	rooms := 30.0
	if l.Rooms != nil && p.HasRoomsRange() {
		r := *l.Rooms
		dev := int32(0)
		if p.RoomsMin != nil && r < *p.RoomsMin {
			dev = *p.RoomsMin - r
		} else if p.RoomsMax != nil && r > *p.RoomsMax {
			dev = r - *p.RoomsMax
		}
		rooms = math.Max(0, 60-15*float64(dev))
	}

	// Площадь: 40 внутри диапазона, иначе пропорциональный штраф
	// (1 балл за процент отклонения от ближайшей границы), не ниже 5.
	area := 20.0
	if l.TotalArea != nil && p.HasAreaRange() {
		a := *l.TotalArea
		devPct := 0.0
		if p.AreaMin != nil && a < *p.AreaMin && *p.AreaMin > 0 {
			devPct = (*p.AreaMin - a) / *p.AreaMin * 100
		} else if p.AreaMax != nil && a > *p.AreaMax && *p.AreaMax > 0 {
			devPct = (a - *p.AreaMax) / *p.AreaMax * 100
		}
		if devPct == 0 {
			area = 40
		} else {
			area = math.Max(5, 40-devPct)
		}
	}

	return round1(clamp(rooms+area, 0, 100))
}

// scoreFloor — этаж (0–100). Жёсткие ограничения not_first_floor /
// not_last_floor обнуляют компонент без дальнейших расчётов.
// Внутри предпочтительного диапазона: 100 для этажей 3–7, иначе 85.
// Вне диапазона — минус 10 за этаж от ближайшей границы, не ниже 10.
func scoreFloor(l domain.Listing, p domain.BuyerProfile) float64 {
	if l.Floor == nil {
		return neutralComponent
	}
	floor := *l.Floor

	if p.NotFirstFloor && floor == 1 {
		return 0
	}
	if p.NotLastFloor && l.FloorsTotal != nil && *l.FloorsTotal > 0 && floor == *l.FloorsTotal {
		return 0
	}

	inRange := true
	dev := int32(0)
	if p.FloorMin != nil && floor < *p.FloorMin {
		inRange = false
		dev = *p.FloorMin - floor
	} else if p.FloorMax != nil && floor > *p.FloorMax {
		inRange = false
		dev = floor - *p.FloorMax
	}

	if inRange {
		if floor >= 3 && floor <= 7 {
			return 100
		}
		return 85
	}

	return round1(math.Max(10, 85-10*float64(dev)))
}

// scoreLayout — планировка (0–100): балкон (30), тип санузла (25),
// количество санузлов (20), высота потолков (15 + 5 бонус за запас
// больше 10 см), кухня (10). Незаданные критерии дают половину своего
// под-веса. Сумма с бонусом может достигать 105 и обрезается до 100.
func scoreLayout(l domain.Listing, p domain.BuyerProfile) float64 {
	total := 0.0

	// Балкон (30).
	switch {
	case l.Balcony == domain.BalconyUnknown:
		total += 15
	case p.BalconyRequired && l.Balcony == domain.BalconyNone:
		// нарушение требования — ноль за под-компонент
	case len(p.BalconyTypes) > 0:
		matched := false
		for _, t := range p.BalconyTypes {
			if l.Balcony == t {
				matched = true
				break
			}
		}
		if matched {
			total += 30
		} else if l.Balcony != domain.BalconyNone {
			total += 10
		}
	case l.Balcony != domain.BalconyNone:
		total += 25
	default:
		total += 12
	}

	// Тип санузла (25).
	switch {
	case p.Bathroom == nil || l.Bathroom == domain.BathroomUnknown:
		total += 12.5
	case l.Bathroom == *p.Bathroom:
		total += 25
	default:
		total += 8
	}

	// Количество санузлов (20).
	switch {
	case p.MinBathroomCount == nil || l.BathroomCount == nil:
		total += 10
	case *l.BathroomCount >= *p.MinBathroomCount:
		total += 20
	default:
		total += 5
	}

	// Потолки (15 + бонус 5 за запас > 10 см).
	switch {
	case p.MinCeilingHeight == nil || l.CeilingHeight == nil:
		total += 7.5
	case *l.CeilingHeight >= *p.MinCeilingHeight+0.10:
		total += 20
	case *l.CeilingHeight >= *p.MinCeilingHeight:
		total += 15
	default:
		total += 4
	}

	// Кухня (10).
	switch {
	case p.MinKitchenArea == nil || l.KitchenArea == nil:
		total += 5
	case *l.KitchenArea >= *p.MinKitchenArea:
		total += 10
	default:
		total += math.Max(2, 10*(*l.KitchenArea / *p.MinKitchenArea))
	}

	return round1(clamp(total, 0, 100))
}

// Внутреннее качество типов дома и отделки: используется, когда покупатель
// не выразил предпочтения.
var buildingQualityRank = map[domain.BuildingType]float64{
	domain.BuildingBrick:         40,
	domain.BuildingMonolith:      36,
	domain.BuildingBrickMonolith: 32,
	domain.BuildingPanel:         24,
}

var renovationQualityRank = map[domain.RenovationType]float64{
	domain.RenovationTurnkey:     35,
	domain.RenovationFinished:    30,
	domain.RenovationPreFinished: 22,
	domain.RenovationUnfinished:  14,
}

// scoreBuildingQuality — качество дома (0–100): тип дома (40),
// отделка (35), свежесть/готовность (25).
func scoreBuildingQuality(l domain.Listing, p domain.BuyerProfile) float64 {
	total := 0.0

	// Тип дома (40).
	excluded := false
	for _, t := range p.ExcludedBuildingTypes {
		if l.BuildingType != domain.BuildingUnknown && l.BuildingType == t {
			excluded = true
			break
		}
	}
	switch {
	case excluded:
		// исключённый тип — ноль за под-компонент
	case len(p.BuildingTypes) > 0:
		matched := false
		for _, t := range p.BuildingTypes {
			if l.BuildingType == t {
				matched = true
				break
			}
		}
		if matched {
			total += 40
		} else {
			total += 12
		}
	default:
		if rank, ok := buildingQualityRank[l.BuildingType]; ok {
			total += rank
		} else {
			total += 20
		}
	}

	// Отделка (35).
	if len(p.Renovations) > 0 {
		matched := false
		for _, r := range p.Renovations {
			if l.Renovation == r {
				matched = true
				break
			}
		}
		if matched {
			total += 35
		} else {
			total += 10
		}
	} else if rank, ok := renovationQualityRank[l.Renovation]; ok {
		total += rank
	} else {
		total += 17.5
	}

	// Свежесть (25): по году постройки либо по стадии строительства.
	total += recencyScore(l)

	return round1(clamp(total, 0, 100))
}

// recencyScore оценивает свежесть дома (0–25) по году постройки,
// для строящихся домов — по стадии.
func recencyScore(l domain.Listing) float64 {
	if l.ConstructionState == domain.ConstructionInProgress {
		return 16
	}
	if l.BuildYear == nil {
		return 12
	}
	age := int32(time.Now().Year()) - *l.BuildYear
	switch {
	case age <= 5:
		return 25
	case age <= 15:
		return 20
	case age <= 30:
		return 14
	default:
		return 8
	}
}

// scoreFinancial — условия сделки (0–100): ипотека (50, ноль если
// требуется, но недоступна), пересечение способов оплаты (30,
// пропорционально доле предпочтений покупателя), торг (20 против 8).
func scoreFinancial(l domain.Listing, p domain.BuyerProfile) float64 {
	total := 0.0

	// Ипотека (50).
	switch {
	case p.MortgageRequired && l.MortgageAvailable != nil && !*l.MortgageAvailable:
		// deal-breaker: под-компонент остаётся нулевым
	case p.MortgageRequired && l.MortgageAvailable != nil && *l.MortgageAvailable:
		total += 50
	default:
		total += 25
	}

	// Способы оплаты (30).
	if len(p.PaymentMethods) == 0 || len(l.PaymentMethods) == 0 {
		total += 15
	} else {
		available := make(map[domain.PaymentMethod]struct{}, len(l.PaymentMethods))
		for _, m := range l.PaymentMethods {
			available[m] = struct{}{}
		}
		matched := 0
		for _, m := range p.PaymentMethods {
			if _, ok := available[m]; ok {
				matched++
			}
		}
		total += 30 * float64(matched) / float64(len(p.PaymentMethods))
	}

	// Торг (20 против 8) — фиксированный бонус независимо от профиля.
	if l.HaggleAllowed != nil && *l.HaggleAllowed {
		total += 20
	} else {
		total += 8
	}

	return round1(clamp(total, 0, 100))
}

// scoreInfrastructure — инфраструктура (0–100). Оцениваются только
// отмеченные покупателем пункты: есть — полный балл, явно нет — ноль,
// неизвестно — 20. Без отмеченных пунктов компонент нейтрален (50).
func scoreInfrastructure(l domain.Listing, p domain.BuyerProfile) float64 {
	type item struct {
		required bool
		present  *bool
	}
	items := []item{
		{p.NeedsSchool, l.SchoolNearby},
		{p.NeedsKindergarten, l.KindergartenNearby},
		{p.NeedsPark, l.ParkNearby},
	}

	var sum float64
	var n int
	for _, it := range items {
		if !it.required {
			continue
		}
		n++
		switch {
		case it.present == nil:
			sum += 20
		case *it.present:
			sum += 100
		default:
			// требуется, но отсутствует — ноль
		}
	}

	if n == 0 {
		return neutralComponent
	}
	return round1(sum / float64(n))
}

// scoreAmenities — удобства (0–100): лифт (40), паркинг (30),
// животные/дети (по 15). Лифт — deal-breaker: если он требуется,
// а его нет, весь компонент равен нулю.
func scoreAmenities(l domain.Listing, p domain.BuyerProfile) float64 {
	if p.ElevatorRequired && l.HasElevator != nil && !*l.HasElevator {
		return 0
	}

	total := 0.0

	// Лифт (40).
	switch {
	case p.ElevatorRequired && l.HasElevator != nil && *l.HasElevator:
		total += 40
	case l.HasElevator == nil:
		total += 20
	case *l.HasElevator:
		total += 30
	default:
		total += 12
	}

	// Паркинг (30).
	switch {
	case l.HasParking == nil:
		total += 15
	case *l.HasParking:
		total += 30
	default:
		total += 10
	}

	// Животные (15).
	total += allowanceScore(p.NeedsPetsAllowed, l.PetsAllowed)
	// Дети (15).
	total += allowanceScore(p.NeedsKidsAllowed, l.KidsAllowed)

	return round1(clamp(total, 0, 100))
}

// allowanceScore — под-оценка (0–15) за разрешение (животные/дети).
func allowanceScore(needed bool, allowed *bool) float64 {
	if !needed {
		return 7.5
	}
	switch {
	case allowed == nil:
		return 5
	case *allowed:
		return 15
	default:
		return 0
	}
}

// round1 округляет до одного знака после запятой.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
