// Package query implements filtering, search and pagination over a snapshot
// of items. All functions are pure: they never modify their input.
package query

import (
	"strings"

	"github.com/St1cky1/item-service/internal/entity"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// List applies the category filter, then search, then the page window.
func List(records []entity.Item, q entity.ListItemsQuery) entity.ItemPage {
	filtered := FilterByCategory(records, q.Category)
	filtered = Search(filtered, q.Search)

	page, limit := normalize(q.Page, q.Limit)
	total := len(filtered)

	totalPages := (total + limit - 1) / limit

	// page ограничен totalPages до умножения, иначе (page-1)*limit переполняется
	items := []entity.Item{}
	if page <= totalPages {
		start := (page - 1) * limit
		items = append(items, filtered[start:min(start+limit, total)]...)
	}

	return entity.ItemPage{
		Items: items,
		Pagination: entity.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       limit,
			HasNext:     page < totalPages,
			HasPrev:     page > 1,
		},
	}
}

// FilterByCategory keeps records whose category matches exactly.
// An empty category disables the filter.
func FilterByCategory(records []entity.Item, category string) []entity.Item {
	if category == "" {
		return records
	}

	out := make([]entity.Item, 0, len(records))
	for _, item := range records {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Search keeps records whose name or description contains term, ignoring case.
func Search(records []entity.Item, term string) []entity.Item {
	if term == "" {
		return records
	}
	term = strings.ToLower(term)

	out := make([]entity.Item, 0, len(records))
	for _, item := range records {
		if strings.Contains(strings.ToLower(item.Name), term) {
			out = append(out, item)
			continue
		}
		if item.Description != nil && strings.Contains(strings.ToLower(*item.Description), term) {
			out = append(out, item)
		}
	}
	return out
}

// normalize: a zero page or limit means "not requested".
func normalize(page, limit int) (int, int) {
	if page == 0 {
		page = DefaultPage
	}
	page = max(1, page)

	if limit == 0 {
		limit = DefaultLimit
	}
	limit = min(max(limit, 1), MaxLimit)

	return page, limit
}

// Stats aggregates counts over a snapshot. Every known category is present in
// ByCategory, even with a zero count.
func Stats(records []entity.Item) entity.ItemStats {
	categories := entity.Categories()

	stats := entity.ItemStats{
		TotalItems: len(records),
		ByCategory: make(map[string]int, len(categories)),
		ByPriority: make(map[string]int),
		Categories: categories,
	}
	for _, c := range categories {
		stats.ByCategory[c] = 0
	}

	for _, item := range records {
		if item.Completed {
			stats.CompletedItems++
		}
		stats.ByCategory[item.Category]++
		stats.ByPriority[item.Priority]++
	}
	stats.PendingItems = stats.TotalItems - stats.CompletedItems

	return stats
}
