package queries

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/worktask"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrioritizeTasksQueryHandler computes the dispatch order of a warehouse's
// Pending queue. The ordering matches what the assignment pass uses, so the
// list predicts who gets served next.
type PrioritizeTasksQueryHandler struct {
	db *gorm.DB
}

// NewPrioritizeTasksQueryHandler creates a handler for queue ordering queries.
func NewPrioritizeTasksQueryHandler(db *gorm.DB) PrioritizeTasksQueryHandler {
	return PrioritizeTasksQueryHandler{db: db}
}

// Handle executes the query.
func (h PrioritizeTasksQueryHandler) Handle(
	ctx context.Context,
	query PrioritizeTasksQuery,
) ([]PrioritizeTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tasks := make([]PrioritizeTasksQueryResponse, 0)

	sql := `
		SELECT
			id,
			type,
			priority,
			created_at
		FROM work_tasks
		WHERE warehouse_id = ?
		  AND status = ?
		  AND deleted_at IS NULL`
	args := []any{query.WarehouseID().String(), worktask.Pending}

	if taskIDs := query.TaskIDs(); len(taskIDs) > 0 {
		ids := make([]string, len(taskIDs))
		for i, id := range taskIDs {
			ids[i] = id.String()
		}
		sql += `
		  AND id IN ?`
		args = append(args, ids)
	}

	sql += `
		ORDER BY priority DESC, created_at ASC, id ASC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var task PrioritizeTasksQueryResponse
		var id uuid.UUID
		var taskType int

		err = rows.Scan(
			&id,
			&taskType,
			&task.Priority,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if task.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		task.Type = worktask.Type(taskType).String()
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
