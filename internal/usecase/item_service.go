package usecase

import (
	"context"
	"log"
	"time"

	"github.com/St1cky1/item-service/internal/entity"
	"github.com/St1cky1/item-service/internal/query"
	"github.com/St1cky1/item-service/internal/repository"
)

// AuditPublisher интерфейс для публикации аудита (RabbitMQ)
type AuditPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

type sourceKey struct{}

// WithSource помечает контекст транспортом, через который пришёл запрос
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

func sourceFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok {
		return s
	}
	return "unknown"
}

type ItemService struct {
	itemRepo repository.IItemRepository
	audit    AuditPublisher
}

// NewItemService - audit может быть nil, тогда аудит не отправляется
func NewItemService(itemRepo repository.IItemRepository, audit AuditPublisher) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		audit:    audit,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, req *entity.CreateItemRequest) (*entity.Item, error) {
	item, err := s.itemRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.sendAuditMessage(ctx, entity.ActionCreate, item.ID, nil, item)

	return item, nil
}

// GetItem - id может прийти строкой из пути или числом из тела запроса
func (s *ItemService) GetItem(ctx context.Context, rawID any) (*entity.Item, error) {
	id, ok := entity.ParseItemID(rawID)
	if !ok {
		return nil, &entity.NotFoundError{ID: rawID}
	}

	return s.itemRepo.GetById(ctx, id)
}

func (s *ItemService) ListItems(ctx context.Context, q entity.ListItemsQuery) (*entity.ItemPage, error) {
	snapshot, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	page := query.List(snapshot, q)
	return &page, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, rawID any, req *entity.UpdateItemRequest) (*entity.Item, error) {
	id, ok := entity.ParseItemID(rawID)
	if !ok {
		return nil, &entity.NotFoundError{ID: rawID}
	}

	// Слияние и валидация выполняются в репозитории атомарно,
	// старое состояние для аудита снимается под той же блокировкой
	oldItem, updatedItem, err := s.itemRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.sendAuditMessage(ctx, entity.ActionUpdate, id, oldItem, updatedItem)

	return updatedItem, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, rawID any) (*entity.Item, error) {
	id, ok := entity.ParseItemID(rawID)
	if !ok {
		return nil, &entity.NotFoundError{ID: rawID}
	}

	item, err := s.itemRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.sendAuditMessage(ctx, entity.ActionDelete, id, item, nil)

	return item, nil
}

// BulkDeleteItems не атомарна: частичный успех возвращается как есть
func (s *ItemService) BulkDeleteItems(ctx context.Context, ids []any) (*entity.BulkDeleteResult, error) {
	result, err := s.itemRepo.BulkDelete(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range result.Deleted {
		s.sendAuditMessage(ctx, entity.ActionDelete, result.Deleted[i].ID, &result.Deleted[i], nil)
	}

	return result, nil
}

func (s *ItemService) ListCategories() []string {
	return entity.Categories()
}

func (s *ItemService) GetStats(ctx context.Context) (*entity.ItemStats, error) {
	snapshot, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := query.Stats(snapshot)
	return &stats, nil
}

// BuildAuditMessage собирает сообщение аудита; для Update считает изменённые поля
func BuildAuditMessage(source string, action entity.ActionType, itemID int, oldItem, newItem *entity.Item) *entity.AuditMessage {
	auditMsg := &entity.AuditMessage{
		Source:    source,
		Action:    action,
		EntityID:  itemID,
		Timestamp: time.Now(),
	}

	if oldItem != nil {
		auditMsg.OldValues = oldItem.AuditValues()
	}
	if newItem != nil {
		auditMsg.NewValues = newItem.AuditValues()
	}

	if action == entity.ActionUpdate && oldItem != nil && newItem != nil {
		changes := make(map[string]any)
		for field, newValue := range auditMsg.NewValues {
			oldValue, existed := auditMsg.OldValues[field]
			if !existed || oldValue != newValue {
				changes[field] = map[string]any{"old": oldValue, "new": newValue}
			}
		}
		for field, oldValue := range auditMsg.OldValues {
			if _, exists := auditMsg.NewValues[field]; !exists {
				changes[field] = map[string]any{"old": oldValue, "new": nil}
			}
		}
		auditMsg.Changes = changes
	}

	return auditMsg
}

// Вспомогательный метод для отправки аудита
func (s *ItemService) sendAuditMessage(ctx context.Context, action entity.ActionType, itemID int, oldItem, newItem *entity.Item) {
	if s.audit == nil {
		return
	}

	auditMsg := BuildAuditMessage(sourceFrom(ctx), action, itemID, oldItem, newItem)

	// Асинхронная отправка, результат операции от неё не зависит
	go func() {
		if err := s.audit.PublishAuditMessage(context.Background(), auditMsg); err != nil {
			log.Printf("❌ Ошибка отправки аудита: %v", err)
		}
	}()
}
