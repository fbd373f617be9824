package queries

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/worktask"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveTasksQueryHandler lists a company's non-terminal tasks straight
// from the database. Uses direct SQL for optimal read performance in the
// CQRS pattern.
type GetActiveTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveTasksQueryHandler creates a handler for active task queries.
// Requires a GORM database connection for query execution.
func NewGetActiveTasksQueryHandler(db *gorm.DB) GetActiveTasksQueryHandler {
	return GetActiveTasksQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by priority desc, then age,
// so dashboards show the most urgent work first.
func (h GetActiveTasksQueryHandler) Handle(
	ctx context.Context,
	query GetActiveTasksQuery,
) ([]GetActiveTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tasks := make([]GetActiveTasksQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			warehouse_id,
			type,
			status,
			priority,
			product_id,
			quantity,
			assigned_agent_id,
			created_at
		FROM work_tasks
		WHERE company_id = ?
		  AND status IN (?, ?, ?)
		  AND deleted_at IS NULL
		ORDER BY priority DESC, created_at ASC, id ASC
	`, query.CompanyID().String(),
		worktask.Pending, worktask.Assigned, worktask.InProgress).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var task GetActiveTasksQueryResponse
		var id, warehouseID, productID uuid.UUID
		var agentID uuid.NullUUID
		var taskType, status int

		err = rows.Scan(
			&id,
			&warehouseID,
			&taskType,
			&status,
			&task.Priority,
			&productID,
			&task.Quantity,
			&agentID,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if task.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if task.WarehouseID, err = kernel.UUIDFromBytes(warehouseID[:]); err != nil {
			return nil, err
		}
		if task.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if agentID.Valid {
			assigned, idErr := kernel.UUIDFromBytes(agentID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			task.AssignedAgentID = &assigned
		}

		task.Type = worktask.Type(taskType).String()
		task.Status = worktask.Status(status).String()
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
