package scoring

import (
	"fmt"
	"strings"

	"dream_match/internal/domain"
)

// Пороговые значения для объяснения.
const (
	tierExcellent  = 80.0
	tierGood       = 60.0
	tierAcceptable = 40.0

	strengthThreshold = 70.0
	weaknessThreshold = 40.0
	maxStrengths      = 3
)

// componentLabels — человекочитаемые названия компонентов.
var componentLabels = map[domain.Component]string{
	domain.ComponentPriceMatch:      "цена",
	domain.ComponentLocation:        "локация",
	domain.ComponentSpace:           "площадь и комнаты",
	domain.ComponentFloor:           "этаж",
	domain.ComponentLayout:          "планировка",
	domain.ComponentBuildingQuality: "качество дома",
	domain.ComponentFinancial:       "условия сделки",
	domain.ComponentInfrastructure:  "инфраструктура",
	domain.ComponentAmenities:       "удобства",
}

// Explain строит детерминированное текстовое объяснение скора:
// общий уровень по композитному значению, до трёх сильных сторон
// (компоненты ≥ 70) и все слабые (компоненты < 40), каждая с числовой
// оценкой. Компоненты перебираются в каноническом порядке, поэтому
// одинаковый ScoreResult всегда даёт одинаковый текст.
func Explain(result domain.ScoreResult) string {
	var b strings.Builder

	switch {
	case result.Composite >= tierExcellent:
		b.WriteString("Отличное совпадение")
	case result.Composite >= tierGood:
		b.WriteString("Хорошее совпадение")
	case result.Composite >= tierAcceptable:
		b.WriteString("Приемлемый вариант с компромиссами")
	default:
		b.WriteString("Существенное несовпадение с запросом")
	}
	fmt.Fprintf(&b, " (%.1f из 100).", result.Composite)

	var strengths, weaknesses []string
	for _, comp := range domain.Components {
		score, ok := result.Components[comp]
		if !ok {
			continue
		}
		switch {
		case score >= strengthThreshold && len(strengths) < maxStrengths:
			strengths = append(strengths, fmt.Sprintf("%s (%.1f)", componentLabels[comp], score))
		case score < weaknessThreshold:
			weaknesses = append(weaknesses, fmt.Sprintf("%s (%.1f)", componentLabels[comp], score))
		}
	}

	if len(strengths) > 0 {
		b.WriteString(" Сильные стороны: ")
		b.WriteString(strings.Join(strengths, ", "))
		b.WriteString(".")
	}
	if len(weaknesses) > 0 {
		b.WriteString(" Слабые стороны: ")
		b.WriteString(strings.Join(weaknesses, ", "))
		b.WriteString(".")
	}

	return b.String()
}
