package repository

import (
	"context"

	"github.com/St1cky1/item-service/internal/entity"
)

// IItemRepository - интерфейс для ItemRepository
type IItemRepository interface {
	Create(ctx context.Context, req *entity.CreateItemRequest) (*entity.Item, error)
	GetById(ctx context.Context, id int) (*entity.Item, error)
	// Update возвращает запись до и после слияния, снятые под одной блокировкой
	Update(ctx context.Context, id int, req *entity.UpdateItemRequest) (old, updated *entity.Item, err error)
	Delete(ctx context.Context, id int) (*entity.Item, error)
	BulkDelete(ctx context.Context, ids []any) (*entity.BulkDeleteResult, error)
	List(ctx context.Context) ([]entity.Item, error)
}

// IItemAuditRepository - интерфейс для ItemAuditRepository
type IItemAuditRepository interface {
	Create(ctx context.Context, audit *entity.ItemAudit) error
}
