package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidItemData = errors.New("invalid item data")
	ErrUnauthorized    = errors.New("unauthorized: missing or invalid access header")
)

// ValidationError содержит все нарушенные правила в порядке проверки
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidItemData
}

// NotFoundError хранит запрошенный идентификатор в исходном виде
type NotFoundError struct {
	ID any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %v not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrItemNotFound
}
