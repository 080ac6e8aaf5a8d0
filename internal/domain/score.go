package domain

// ScoreResult — итог скоринга одного объявления: композитный скор 0–100
// с одним знаком после запятой, разбивка по девяти компонентам и
// сгенерированное текстовое объяснение.
type ScoreResult struct {
	Composite   float64               `json:"composite"`
	Components  map[Component]float64 `json:"components"`
	Explanation string                `json:"explanation"`
}

// ComponentScore возвращает скор компонента (0, если компонент неизвестен).
func (r ScoreResult) ComponentScore(c Component) float64 {
	return r.Components[c]
}

// RankedListing — объявление вместе с результатом скоринга.
type RankedListing struct {
	Listing Listing     `json:"listing"`
	Score   ScoreResult `json:"score"`
}
