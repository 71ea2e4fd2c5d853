package entity

import "slices"

var categories = []string{"General", "Work", "Personal", "Shopping", "Health", "Finance"}

// Categories возвращает упорядоченный список допустимых категорий (копию)
func Categories() []string {
	return slices.Clone(categories)
}

// DefaultCategory - категория для элементов, созданных без category
func DefaultCategory() string {
	return categories[0]
}

func IsValidCategory(name string) bool {
	return slices.Contains(categories, name)
}
