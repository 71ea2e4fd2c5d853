package repository

import (
	"context"

	"github.com/St1cky1/item-service/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemAuditRepository struct {
	db *pgxpool.Pool
}

func NewItemAuditRepository(db *pgxpool.Pool) *ItemAuditRepository {
	return &ItemAuditRepository{
		db: db,
	}
}

func (r *ItemAuditRepository) Create(ctx context.Context, audit *entity.ItemAudit) error {
	query := `
	INSERT INTO "item_audit" (source, action, entity_type, entity_id, old_values, new_values, changes, changed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, changed_at
	`

	return r.db.QueryRow(
		ctx,
		query,
		audit.Source,
		audit.Action,
		audit.EntityType,
		audit.EntityID,
		audit.OldValues,
		audit.NewValues,
		audit.Changes,
		audit.ChangesAt,
	).Scan(&audit.ID, &audit.ChangesAt)
}
