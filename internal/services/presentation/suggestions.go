package presentation

import (
	"fmt"
	"sort"

	"dream_match/internal/domain"
)

// Лимиты подсказок по сценариям.
const (
	maxRelaxationSuggestions = 3
	maxExpansionSuggestions  = 2
	maxNarrowingQuestions    = 3
)

// relaxRule — правило ослабления: предикат "фильтр задан" и билдер
// подсказки. Правила перечислены в порядке приоритета и применяются
// последовательно до достижения лимита — сначала финансовые условия,
// затем детали планировки, специфика дома, срок сдачи, застройщик,
// и только в последнюю очередь базовые параметры поиска.
type relaxRule struct {
	applies func(domain.BuyerProfile) bool
	build   func(domain.BuyerProfile) domain.Suggestion
}

var relaxRules = []relaxRule{
	{
		applies: func(p domain.BuyerProfile) bool { return p.MortgageRequired },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionRelaxFilter,
				Filter:  "mortgage_required",
				Message: "Убрать требование ипотеки — появятся варианты с оплатой наличными и рассрочкой.",
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return len(p.PaymentMethods) > 0 },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionRelaxFilter,
				Filter:  "payment_methods",
				Message: "Снять ограничение по способу оплаты.",
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return p.BalconyRequired || len(p.BalconyTypes) > 0 },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionRelaxFilter,
				Filter:  "balcony",
				Message: "Не требовать балкон или лоджию.",
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return p.Bathroom != nil },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionRelaxFilter,
				Filter:  "bathroom",
				Message: "Рассмотреть любой тип санузла.",
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return len(p.BuildingTypes) > 0 },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionRelaxFilter,
				Filter:  "building_types",
				Message: "Расширить список подходящих типов дома.",
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return len(p.Renovations) > 0 },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionRelaxFilter,
				Filter:  "renovations",
				Message: "Рассмотреть другие варианты отделки.",
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return p.MaxHandOverYear != nil },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			newValue := fmt.Sprintf("%d", *p.MaxHandOverYear+1)
			return domain.Suggestion{
				Type:     domain.SuggestionRelaxFilter,
				Filter:   "max_hand_over_year",
				Message:  "Расширить окно срока сдачи дома на год.",
				NewValue: &newValue,
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return len(p.Developers) > 0 },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionRelaxFilter,
				Filter:  "developers",
				Message: "Не ограничиваться выбранными застройщиками.",
			}
		},
	},
	// Базовые параметры — крайняя мера.
	{
		applies: func(p domain.BuyerProfile) bool { return p.BudgetMax != nil },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			newBudget := int64(float64(*p.BudgetMax) * 1.10)
			newValue := fmt.Sprintf("%d", newBudget)
			return domain.Suggestion{
				Type:     domain.SuggestionExpandSearch,
				Filter:   "budget_max",
				Message:  fmt.Sprintf("Увеличить бюджет на 10%% — до %d ₽.", newBudget),
				NewValue: &newValue,
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return p.HasRoomsRange() },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionExpandSearch,
				Filter:  "rooms",
				Message: "Рассмотреть квартиры на одну комнату больше или меньше.",
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return len(p.Districts) > 0 },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionExpandSearch,
				Filter:  "districts",
				Message: "Добавить соседние районы.",
			}
		},
	},
}

// buildRelaxationSuggestions применяет relaxRules по порядку и
// возвращает не больше limit подсказок.
func buildRelaxationSuggestions(profile domain.BuyerProfile, limit int) []domain.Suggestion {
	var out []domain.Suggestion
	for _, rule := range relaxRules {
		if len(out) >= limit {
			break
		}
		if rule.applies(profile) {
			out = append(out, rule.build(profile))
		}
	}
	return out
}

// expandRules — предложения расширить поиск для few_results.
// Предлагаются только фильтры, которые покупатель действительно задал.
var expandRules = []relaxRule{
	{
		applies: func(p domain.BuyerProfile) bool { return len(p.Districts) > 0 },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionExpandSearch,
				Filter:  "districts",
				Message: "Добавить соседние районы — вариантов станет заметно больше.",
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return p.BudgetMax != nil },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			newBudget := int64(float64(*p.BudgetMax) * 1.05)
			newValue := fmt.Sprintf("%d", newBudget)
			return domain.Suggestion{
				Type:     domain.SuggestionExpandSearch,
				Filter:   "budget_max",
				Message:  fmt.Sprintf("Поднять бюджет на 5%% — до %d ₽.", newBudget),
				NewValue: &newValue,
			}
		},
	},
	{
		applies: func(p domain.BuyerProfile) bool { return len(p.Renovations) > 0 },
		build: func(p domain.BuyerProfile) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionExpandSearch,
				Filter:  "renovations",
				Message: "Рассмотреть другие варианты отделки.",
			}
		},
	},
}

// buildExpansionSuggestions — до limit предложений расширения для
// few_results.
func buildExpansionSuggestions(profile domain.BuyerProfile, limit int) []domain.Suggestion {
	var out []domain.Suggestion
	for _, rule := range expandRules {
		if len(out) >= limit {
			break
		}
		if rule.applies(profile) {
			out = append(out, rule.build(profile))
		}
	}
	return out
}

// buildNarrowingHints — подсказки сужения для большой optimal_results
// выдачи: только ещё не применённые фильтры.
func buildNarrowingHints(profile domain.BuyerProfile) []domain.Suggestion {
	var out []domain.Suggestion

	if len(profile.Renovations) == 0 {
		out = append(out, domain.Suggestion{
			Type:    domain.SuggestionNarrowFilter,
			Filter:  "renovations",
			Message: "Уточните желаемую отделку — выдача станет компактнее.",
		})
	}
	if len(profile.BuildingTypes) == 0 {
		out = append(out, domain.Suggestion{
			Type:    domain.SuggestionNarrowFilter,
			Filter:  "building_types",
			Message: "Уточните тип дома.",
		})
	}
	if profile.MaxHandOverYear == nil {
		out = append(out, domain.Suggestion{
			Type:    domain.SuggestionNarrowFilter,
			Filter:  "max_hand_over_year",
			Message: "Уточните срок сдачи дома.",
		})
	}

	return out
}

// narrowingContext — данные для уточняющих вопросов too_many_results:
// профиль и распределения по всей выдаче.
type narrowingContext struct {
	profile       domain.BuyerProfile
	complexes     map[string]int
	renovations   map[domain.RenovationType]int
	buildingTypes map[domain.BuildingType]int
}

// minComplexesForQuestion — с какого числа различных ЖК имеет смысл
// просить покупателя выбрать ЖК.
const minComplexesForQuestion = 15

// topComplexOptions — сколько ЖК показывать в вариантах ответа.
const topComplexOptions = 5

// narrowRule — правило уточняющего вопроса для too_many_results.
type narrowRule struct {
	applies func(narrowingContext) bool
	build   func(narrowingContext) domain.Suggestion
}

// narrowRules перечислены в фиксированном порядке приоритета.
var narrowRules = []narrowRule{
	{
		applies: func(c narrowingContext) bool { return len(c.complexes) >= minComplexesForQuestion },
		build: func(c narrowingContext) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionQuestion,
				Filter:  "complex",
				Message: "В каком жилом комплексе хотите смотреть квартиры?",
				Options: topComplexes(c.complexes, topComplexOptions),
			}
		},
	},
	{
		applies: func(c narrowingContext) bool {
			return len(c.profile.Renovations) == 0 && len(c.renovations) > 1
		},
		build: func(c narrowingContext) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionQuestion,
				Filter:  "renovations",
				Message: "Какая отделка вам подходит?",
				Options: renovationOptions(c.renovations),
			}
		},
	},
	{
		applies: func(c narrowingContext) bool { return c.profile.MaxHandOverYear == nil },
		build: func(c narrowingContext) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionQuestion,
				Filter:  "max_hand_over_year",
				Message: "К какому сроку дом должен быть сдан?",
			}
		},
	},
	{
		applies: func(c narrowingContext) bool {
			return len(c.profile.BuildingTypes) == 0 && len(c.buildingTypes) > 2
		},
		build: func(c narrowingContext) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionQuestion,
				Filter:  "building_types",
				Message: "Какой тип дома предпочитаете?",
				Options: buildingTypeOptions(c.buildingTypes),
			}
		},
	},
	{
		applies: func(c narrowingContext) bool { return !c.profile.HasFloorPreference() },
		build: func(c narrowingContext) domain.Suggestion {
			return domain.Suggestion{
				Type:    domain.SuggestionQuestion,
				Filter:  "floor",
				Message: "Есть ли пожелания по этажу?",
			}
		},
	},
}

// buildNarrowingQuestions применяет narrowRules по порядку, не больше
// limit вопросов.
func buildNarrowingQuestions(ctx narrowingContext, limit int) []domain.Suggestion {
	var out []domain.Suggestion
	for _, rule := range narrowRules {
		if len(out) >= limit {
			break
		}
		if rule.applies(ctx) {
			out = append(out, rule.build(ctx))
		}
	}
	return out
}

// topComplexes возвращает n ЖК с наибольшим числом объявлений.
// Сортировка детерминированная: по убыванию количества, затем по имени.
func topComplexes(counts map[string]int, n int) []string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

func renovationOptions(counts map[domain.RenovationType]int) []string {
	out := make([]string, 0, len(counts))
	for t := range counts {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}

func buildingTypeOptions(counts map[domain.BuildingType]int) []string {
	out := make([]string, 0, len(counts))
	for t := range counts {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}
