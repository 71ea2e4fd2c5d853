package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/St1cky1/item-service/internal/entity"
)

// ItemRepository хранит элементы в памяти процесса.
// Все изменения выполняются под одной блокировкой на запись,
// наружу отдаются только копии.
type ItemRepository struct {
	mu     sync.RWMutex
	items  []entity.Item
	nextID int
	now    func() time.Time
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		nextID: 1,
		now:    time.Now,
	}
}

// Reset очищает коллекцию и сбрасывает счётчик идентификаторов
func (r *ItemRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
	r.nextID = 1
}

func (r *ItemRepository) Create(ctx context.Context, req *entity.CreateItemRequest) (*entity.Item, error) {
	category := entity.DefaultCategory()
	if req.Category != nil {
		category = *req.Category
	}

	if violations := entity.ValidateItem(req.Name, req.Category); len(violations) > 0 {
		return nil, &entity.ValidationError{Violations: violations}
	}

	item := entity.Item{
		Name:        strings.TrimSpace(*req.Name),
		Description: trimmed(req.Description),
		Category:    category,
		Priority:    entity.DefaultPriority,
	}
	if req.Completed != nil {
		item.Completed = *req.Completed
	}
	if req.Priority != nil && *req.Priority != "" {
		item.Priority = *req.Priority
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	now := r.now()
	item.CreatedAt = now
	item.UpdatedAt = now

	r.items = append(r.items, item)

	created := item.Clone()
	return &created, nil
}

func (r *ItemRepository) GetById(ctx context.Context, id int) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, &entity.NotFoundError{ID: id}
	}

	item := r.items[idx].Clone()
	return &item, nil
}

// Update - слияние переданных полей с текущей записью и валидация результата целиком
func (r *ItemRepository) Update(ctx context.Context, id int, req *entity.UpdateItemRequest) (*entity.Item, *entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, nil, &entity.NotFoundError{ID: id}
	}

	previous := r.items[idx].Clone()
	candidate := r.items[idx].Clone()
	rawName := candidate.Name

	if req.Name != nil {
		rawName = *req.Name
	}
	if req.Description != nil {
		candidate.Description = trimmed(req.Description)
	}
	if req.Category != nil {
		candidate.Category = *req.Category
	}
	if req.Completed != nil {
		candidate.Completed = *req.Completed
	}
	if req.Priority != nil && *req.Priority != "" {
		candidate.Priority = *req.Priority
	}

	if violations := entity.ValidateItem(&rawName, &candidate.Category); len(violations) > 0 {
		return nil, nil, &entity.ValidationError{Violations: violations}
	}

	candidate.Name = strings.TrimSpace(rawName)
	candidate.UpdatedAt = r.now()
	r.items[idx] = candidate

	updated := candidate.Clone()
	return &previous, &updated, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, &entity.NotFoundError{ID: id}
	}

	deleted := r.items[idx]
	r.items = append(r.items[:idx], r.items[idx+1:]...)

	return &deleted, nil
}

// BulkDelete удаляет элементы по одному, без отката при частичном успехе.
// Ненайденные идентификаторы возвращаются в исходном виде.
func (r *ItemRepository) BulkDelete(ctx context.Context, ids []any) (*entity.BulkDeleteResult, error) {
	result := &entity.BulkDeleteResult{
		Deleted:  []entity.Item{},
		NotFound: []any{},
	}

	for _, raw := range ids {
		id, ok := entity.ParseItemID(raw)
		if !ok {
			result.NotFound = append(result.NotFound, raw)
			continue
		}

		item, err := r.Delete(ctx, id)
		if err != nil {
			result.NotFound = append(result.NotFound, raw)
			continue
		}
		result.Deleted = append(result.Deleted, *item)
	}

	return result, nil
}

// List возвращает снимок коллекции в порядке создания
func (r *ItemRepository) List(ctx context.Context) ([]entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]entity.Item, len(r.items))
	for i, item := range r.items {
		items[i] = item.Clone()
	}

	return items, nil
}

// indexOf вызывается под блокировкой
func (r *ItemRepository) indexOf(id int) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
