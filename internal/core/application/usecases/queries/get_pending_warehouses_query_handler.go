package queries

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/worktask"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingWarehousesQueryHandler finds warehouses with Pending tasks.
type GetPendingWarehousesQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingWarehousesQueryHandler creates a handler for pending warehouse queries.
func NewGetPendingWarehousesQueryHandler(db *gorm.DB) GetPendingWarehousesQueryHandler {
	return GetPendingWarehousesQueryHandler{db: db}
}

// Handle executes the query. Warehouses are ordered by pending count, busiest
// first, so the assignment job serves the deepest queue soonest.
func (h GetPendingWarehousesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingWarehousesQuery,
) ([]GetPendingWarehousesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	warehouses := make([]GetPendingWarehousesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			warehouse_id,
			COUNT(*) AS pending_tasks
		FROM work_tasks
		WHERE status = ?
		  AND deleted_at IS NULL
		GROUP BY warehouse_id
		ORDER BY pending_tasks DESC, warehouse_id ASC
	`, worktask.Pending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var warehouse GetPendingWarehousesQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &warehouse.PendingTasks); err != nil {
			return nil, err
		}

		if warehouse.WarehouseID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, warehouse)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return warehouses, nil
}
