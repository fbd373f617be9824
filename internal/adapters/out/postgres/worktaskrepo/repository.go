package worktaskrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWorkTaskRepository implements WorkTaskRepository using GORM.
type GormWorkTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkTaskRepository creates a new GORM task repository.
func NewGormWorkTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkTaskRepository {
	return &GormWorkTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new task to the database.
func (r *GormWorkTaskRepository) Add(ctx context.Context, aggregate *worktask.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing task, guarded by its optimistic version. The row
// is touched only when the stored version still matches the version the
// aggregate was loaded with; the write bumps it by one. A failed match from
// a concurrent writer surfaces as ports.ErrConcurrencyConflict, not as an
// SQL error, so an enclosing transaction stays usable.
func (r *GormWorkTaskRepository) Update(ctx context.Context, aggregate *worktask.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	// Select("*") forces zero and nil columns through, so clearing the
	// assigned agent on completion actually clears the column.
	result := r.db.WithContext(ctx).
		Model(&WorkTaskDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Omit("created_at", "deleted_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&WorkTaskDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("task", aggregate.ID().String())
		}
		return ports.ErrConcurrencyConflict
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a task by ID.
func (r *GormWorkTaskRepository) Get(ctx context.Context, id kernel.UUID) (*worktask.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkTaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBatch retrieves the tasks with the given identifiers. Unknown ids are
// skipped silently.
func (r *GormWorkTaskRepository) GetBatch(
	ctx context.Context, ids []kernel.UUID,
) ([]*worktask.Task, error) {
	if len(ids) == 0 {
		return []*worktask.Task{}, nil
	}

	raw := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw[i] = id.Bytes()
	}

	var dtos []WorkTaskDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllPending retrieves every Pending task of one warehouse.
func (r *GormWorkTaskRepository) GetAllPending(
	ctx context.Context, warehouseID kernel.UUID,
) ([]*worktask.Task, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}

	var dtos []WorkTaskDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "warehouse_id = ? AND status = ?", warehouseID.Bytes(), worktask.Pending).
		Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []WorkTaskDTO) ([]*worktask.Task, error) {
	tasks := make([]*worktask.Task, 0, len(dtos))
	for _, dto := range dtos {
		task, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
