package domain

import (
	"strings"
)

// NormalizeDistrict приводит название района к единому виду:
// срезает пробелы и служебные слова ("район", "р-н"), сохраняет регистр
// первой буквы.
func NormalizeDistrict(district string) string {
	d := strings.TrimSpace(district)

	for _, suffix := range []string{" район", " р-н", " р-он"} {
		if strings.HasSuffix(strings.ToLower(d), suffix) {
			d = strings.TrimSpace(d[:len(d)-len(suffix)])
			break
		}
	}
	for _, prefix := range []string{"район ", "р-н "} {
		if strings.HasPrefix(strings.ToLower(d), prefix) {
			d = strings.TrimSpace(d[len(prefix):])
			break
		}
	}

	if len(d) > 0 {
		runes := []rune(d)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		return string(runes)
	}

	return d
}

// DistrictsMatch проверяет, совпадают ли два района (с учётом нормализации).
func DistrictsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(NormalizeDistrict(a), NormalizeDistrict(b))
}

// MetroStationsMatch проверяет совпадение станций метро.
// Нормализация мягче, чем у районов: только пробелы и регистр.
func MetroStationsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
