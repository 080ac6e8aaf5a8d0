package domain

// Scenario — выбранная стратегия показа результатов.
type Scenario string

const (
	ScenarioNoResults Scenario = "no_results"
	ScenarioFew       Scenario = "few_results"
	ScenarioOptimal   Scenario = "optimal_results"
	ScenarioTooMany   Scenario = "too_many_results"
	ScenarioClustered Scenario = "clustered_results"
)

func (s Scenario) String() string {
	return string(s)
}

// SuggestionType — тип подсказки покупателю.
type SuggestionType string

const (
	SuggestionRelaxFilter  SuggestionType = "relax_filter"  // ослабить фильтр
	SuggestionExpandSearch SuggestionType = "expand_search" // расширить поиск
	SuggestionNarrowFilter SuggestionType = "narrow_filter" // сузить выдачу
	SuggestionQuestion     SuggestionType = "question"      // уточняющий вопрос
	SuggestionSelectLayout SuggestionType = "select_layout" // выбрать планировку
)

// Suggestion — одна подсказка: какой фильтр затрагивает, текст для
// покупателя и, опционально, конкретное новое значение или варианты выбора.
type Suggestion struct {
	Type     SuggestionType `json:"type"`
	Filter   string         `json:"filter"`
	Message  string         `json:"message"`
	NewValue *string        `json:"new_value,omitempty"`
	Options  []string       `json:"options,omitempty"`
}

// ResultStats — статистика по всему множеству совпадений (не только по
// показанной странице).
type ResultStats struct {
	TotalCount   int      `json:"total_count"`
	PriceMin     int64    `json:"price_min"`
	PriceAvg     float64  `json:"price_avg"`
	PriceMax     int64    `json:"price_max"`
	AreaMin      *float64 `json:"area_min,omitempty"`
	AreaAvg      *float64 `json:"area_avg,omitempty"`
	AreaMax      *float64 `json:"area_max,omitempty"`
	ComplexCount int      `json:"complex_count,omitempty"`
}

// ClusterSummary — сводка по кластеру планировок для показа покупателю.
type ClusterSummary struct {
	Key            ClusterKey `json:"key"`
	Layout         string     `json:"layout"` // человекочитаемое описание планировки
	Count          int        `json:"count"`
	PriceMin       int64      `json:"price_min"`
	PriceAvg       float64    `json:"price_avg"`
	PriceMax       int64      `json:"price_max"`
	Representative Listing    `json:"representative"`
}

// Presentation — итог работы движка: сценарий, упорядоченные объявления,
// сообщение, подсказки и статистика. Clusters заполняется только для
// сценария clustered_results.
type Presentation struct {
	Scenario    Scenario         `json:"scenario"`
	Message     string           `json:"message"`
	Listings    []RankedListing  `json:"listings"`
	Suggestions []Suggestion     `json:"suggestions"`
	Stats       ResultStats      `json:"stats"`
	Clusters    []ClusterSummary `json:"clusters,omitempty"`
}
