package entity

import (
	"time"
)

type ActionType string

const (
	ActionCreate ActionType = "Create"
	ActionUpdate ActionType = "Update"
	ActionDelete ActionType = "Delete"
)

const AuditEntityType = "item"

// источники изменений
const (
	SourceHTTP = "http"
	SourceGRPC = "grpc"
)

type ItemAudit struct {
	ID         int        `json:"id"`
	Source     string     `json:"source"`
	Action     ActionType `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   int        `json:"entity_id"`
	OldValues  *string    `json:"old_values"`
	NewValues  *string    `json:"new_values"`
	Changes    *string    `json:"changes"`
	ChangesAt  time.Time  `json:"changed_at"`
}

type AuditMessage struct {
	Source    string         `json:"source"`
	Action    ActionType     `json:"action"`
	EntityID  int            `json:"entity_id"`
	OldValues map[string]any `json:"old_values"`
	NewValues map[string]any `json:"new_values"`
	Changes   map[string]any `json:"changes"`
	Timestamp time.Time      `json:"timestamp"`
}

// AuditValues - снимок полей элемента для аудита
func (i Item) AuditValues() map[string]any {
	values := map[string]any{
		"name":      i.Name,
		"category":  i.Category,
		"completed": i.Completed,
		"priority":  i.Priority,
	}
	if i.Description != nil {
		values["description"] = *i.Description
	}
	return values
}
