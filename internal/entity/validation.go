package entity

import (
	"strings"
	"unicode/utf8"
)

// ValidateItem проверяет итоговую (уже слитую) запись.
// Все нарушения накапливаются, проверка не прерывается на первом.
// rawName - имя до обрезки пробелов: ограничение длины проверяется именно по нему.
func ValidateItem(rawName *string, category *string) []string {
	var violations []string

	if rawName == nil || strings.TrimSpace(*rawName) == "" {
		violations = append(violations, "Name is required and must be a non-empty string")
	}

	if rawName != nil && utf8.RuneCountInString(*rawName) > MaxNameLength {
		violations = append(violations, "Name must be 100 characters or less")
	}

	if category != nil && !IsValidCategory(*category) {
		violations = append(violations, "Category must be one of: "+strings.Join(categories, ", "))
	}

	return violations
}
