package presentation

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/samber/lo"

	"dream_match/internal/domain"
	"dream_match/internal/services/clustering"
	"dream_match/internal/services/scoring"
)

// Config — пороги машины сценариев.
type Config struct {
	// FewMax — верхняя граница сценария few_results.
	FewMax int
	// OptimalMax — верхняя граница сценария optimal_results.
	OptimalMax int
	// ClusterDominance — минимальное число объявлений одного ЖК,
	// при котором большая выдача кластеризуется.
	ClusterDominance int
	// PageSize — размер показываемой страницы.
	PageSize int
	// NarrowingHintAt — с какого размера выдачи optimal_results начинает
	// предлагать сужение.
	NarrowingHintAt int
}

// DefaultConfig возвращает пороги по умолчанию.
func DefaultConfig() Config {
	return Config{
		FewMax:           20,
		OptimalMax:       200,
		ClusterDominance: 100,
		PageSize:         12,
		NarrowingHintAt:  100,
	}
}

// Selector — машина сценариев показа результатов. По размеру выдачи (и,
// для больших выдач, доминированию одного ЖК) выбирает один из пяти
// сценариев и наполняет его: ранжирование, статистика, подсказки,
// кластеры планировок.
type Selector struct {
	log  *slog.Logger
	calc *scoring.Calculator
	cfg  Config
}

func New(log *slog.Logger, calc *scoring.Calculator, cfg Config) *Selector {
	return &Selector{log: log, calc: calc, cfg: cfg}
}

// Present выбирает сценарий и собирает итоговую выдачу.
// Порядок проверок значим: clustered_results достижим только выше порога
// too_many_results и только когда один ЖК набирает ClusterDominance
// объявлений.
func (s *Selector) Present(listings []domain.Listing, profile domain.BuyerProfile, weights *domain.ComponentWeights) (domain.Presentation, error) {
	const op = "presentation.Selector.Present"

	count := len(listings)

	if count == 0 {
		return s.presentNoResults(profile), nil
	}

	ranked, err := s.calc.ScoreAll(listings, profile, weights)
	if err != nil {
		return domain.Presentation{}, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case count <= s.cfg.FewMax:
		return s.presentFew(ranked, profile), nil
	case count <= s.cfg.OptimalMax:
		return s.presentOptimal(ranked, profile), nil
	default:
		complexName, dominantCount := dominantComplex(listings)
		if dominantCount >= s.cfg.ClusterDominance {
			return s.presentClustered(listings, ranked, complexName), nil
		}
		return s.presentTooMany(listings, ranked, profile), nil
	}
}

// presentNoResults — пустая выдача: до трёх предложений ослабить фильтры
// в фиксированном порядке приоритета.
func (s *Selector) presentNoResults(profile domain.BuyerProfile) domain.Presentation {
	return domain.Presentation{
		Scenario:    domain.ScenarioNoResults,
		Message:     "По вашему запросу ничего не найдено. Попробуйте смягчить часть условий.",
		Suggestions: buildRelaxationSuggestions(profile, maxRelaxationSuggestions),
		Stats:       domain.ResultStats{TotalCount: 0},
	}
}

// presentFew — 1–20 совпадений: все результаты по возрастанию цены,
// ценовая статистика, до двух предложений расширить поиск — только для
// фильтров, которые покупатель действительно задал.
func (s *Selector) presentFew(ranked []domain.RankedListing, profile domain.BuyerProfile) domain.Presentation {
	scoring.SortByPriceAsc(ranked)

	return domain.Presentation{
		Scenario:    domain.ScenarioFew,
		Message:     fmt.Sprintf("Нашлось %d вариантов — показываем все, от дешёвых к дорогим.", len(ranked)),
		Listings:    ranked,
		Suggestions: buildExpansionSuggestions(profile, maxExpansionSuggestions),
		Stats:       computeStats(ranked),
	}
}

// presentOptimal — 21–200 совпадений: топ страницы по скору, статистика
// по ВСЕЙ выдаче; при выдаче больше NarrowingHintAt — подсказки сужения
// только по ещё не применённым фильтрам.
func (s *Selector) presentOptimal(ranked []domain.RankedListing, profile domain.BuyerProfile) domain.Presentation {
	stats := computeStats(ranked)

	scoring.SortByScoreDesc(ranked)
	page := ranked
	if len(page) > s.cfg.PageSize {
		page = page[:s.cfg.PageSize]
	}

	var suggestions []domain.Suggestion
	if len(ranked) > s.cfg.NarrowingHintAt {
		suggestions = buildNarrowingHints(profile)
	}

	return domain.Presentation{
		Scenario:    domain.ScenarioOptimal,
		Message:     fmt.Sprintf("Нашлось %d вариантов, показываем %d лучших по совпадению.", len(ranked), len(page)),
		Listings:    page,
		Suggestions: suggestions,
		Stats:       stats,
	}
}

// presentTooMany — больше 200 совпадений без доминирующего ЖК:
// распределения по ЖК, отделке и типу дома, до трёх уточняющих вопросов
// в фиксированном порядке, превью топ-12 по цене.
func (s *Selector) presentTooMany(listings []domain.Listing, ranked []domain.RankedListing, profile domain.BuyerProfile) domain.Presentation {
	stats := computeStats(ranked)

	complexes := countByComplex(listings)
	stats.ComplexCount = len(complexes)

	questions := buildNarrowingQuestions(narrowingContext{
		profile:       profile,
		complexes:     complexes,
		renovations:   countByRenovation(listings),
		buildingTypes: countByBuildingType(listings),
	}, maxNarrowingQuestions)

	scoring.SortByPriceAsc(ranked)
	preview := ranked
	if len(preview) > s.cfg.PageSize {
		preview = preview[:s.cfg.PageSize]
	}

	return domain.Presentation{
		Scenario:    domain.ScenarioTooMany,
		Message:     fmt.Sprintf("Нашлось %d вариантов — слишком много для осмысленного выбора. Уточните запрос.", len(listings)),
		Listings:    preview,
		Suggestions: questions,
		Stats:       stats,
	}
}

// presentClustered — один ЖК доминирует в большой выдаче: объявления
// этого ЖК группируются по планировкам, сводки кластеров сортируются по
// возрастанию средней цены.
func (s *Selector) presentClustered(listings []domain.Listing, ranked []domain.RankedListing, complexName string) domain.Presentation {
	stats := computeStats(ranked)
	stats.ComplexCount = len(countByComplex(listings))

	inComplex := lo.Filter(listings, func(l domain.Listing, _ int) bool {
		return l.Complex != nil && *l.Complex == complexName
	})

	clusters := clustering.Cluster(inComplex)

	summaries := lo.Map(clusters, func(c domain.Cluster, _ int) domain.ClusterSummary {
		return domain.ClusterSummary{
			Key:            c.Key,
			Layout:         clustering.LayoutLabel(c.Key),
			Count:          c.Count(),
			PriceMin:       c.PriceMin,
			PriceAvg:       c.PriceAvg,
			PriceMax:       c.PriceMax,
			Representative: c.Representative,
		}
	})
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].PriceAvg != summaries[j].PriceAvg {
			return summaries[i].PriceAvg < summaries[j].PriceAvg
		}
		return summaries[i].Layout < summaries[j].Layout
	})

	layouts := lo.Map(summaries, func(cs domain.ClusterSummary, _ int) string {
		return cs.Layout
	})

	return domain.Presentation{
		Scenario: domain.ScenarioClustered,
		Message: fmt.Sprintf("Большинство вариантов (%d) — в ЖК «%s». Сгруппировали их по планировкам: %d вариантов планировки.",
			len(inComplex), complexName, len(summaries)),
		Suggestions: []domain.Suggestion{{
			Type:    domain.SuggestionSelectLayout,
			Filter:  "layout",
			Message: "Выберите планировку, чтобы посмотреть конкретные квартиры.",
			Options: layouts,
		}},
		Stats:    stats,
		Clusters: summaries,
	}
}

// dominantComplex возвращает ЖК с наибольшим числом объявлений.
// Ничьи разрешаются по имени, чтобы выбор был детерминированным.
func dominantComplex(listings []domain.Listing) (string, int) {
	counts := countByComplex(listings)

	var bestName string
	var bestCount int
	for name, n := range counts {
		if n > bestCount || (n == bestCount && name < bestName) {
			bestName, bestCount = name, n
		}
	}
	return bestName, bestCount
}

func countByComplex(listings []domain.Listing) map[string]int {
	withComplex := lo.Filter(listings, func(l domain.Listing, _ int) bool {
		return l.Complex != nil && *l.Complex != ""
	})
	return lo.CountValuesBy(withComplex, func(l domain.Listing) string {
		return *l.Complex
	})
}

func countByRenovation(listings []domain.Listing) map[domain.RenovationType]int {
	known := lo.Filter(listings, func(l domain.Listing, _ int) bool {
		return l.Renovation != domain.RenovationUnknown
	})
	return lo.CountValuesBy(known, func(l domain.Listing) domain.RenovationType {
		return l.Renovation
	})
}

func countByBuildingType(listings []domain.Listing) map[domain.BuildingType]int {
	known := lo.Filter(listings, func(l domain.Listing, _ int) bool {
		return l.BuildingType != domain.BuildingUnknown
	})
	return lo.CountValuesBy(known, func(l domain.Listing) domain.BuildingType {
		return l.BuildingType
	})
}
