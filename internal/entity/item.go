package entity

import "time"

const (
	DefaultPriority = "medium"
	MaxNameLength   = 100
)

type Item struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone возвращает копию без общих указателей
func (i Item) Clone() Item {
	if i.Description != nil {
		desc := *i.Description
		i.Description = &desc
	}
	return i
}

// CreateItemRequest - nil означает что поле не передано
type CreateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
}

// UpdateItemRequest - частичное обновление, применяются только переданные поля
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
}

type BulkDeleteRequest struct {
	IDs []any `json:"ids"`
}

type BulkDeleteResult struct {
	Deleted  []Item `json:"deleted"`
	NotFound []any  `json:"notFound"`
}

type ListItemsQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

type ItemPage struct {
	Items      []Item     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type ItemStats struct {
	TotalItems     int            `json:"totalItems"`
	CompletedItems int            `json:"completedItems"`
	PendingItems   int            `json:"pendingItems"`
	ByCategory     map[string]int `json:"byCategory"`
	ByPriority     map[string]int `json:"byPriority"`
	Categories     []string       `json:"categories"`
}
