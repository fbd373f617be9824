package agentrepo

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgentRepository implements AgentRepository using GORM.
type GormAgentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgentRepository creates a new GORM agent repository.
func NewGormAgentRepository(db *gorm.DB, tracker aggregateTracker) *GormAgentRepository {
	return &GormAgentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new agent to the database.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate agent.Agent) error {
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

// Update saves an existing agent to the database.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AgentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("deleted_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves the available agents of one warehouse.
func (r *GormAgentRepository) GetAllAvailable(
	ctx context.Context, warehouseID kernel.UUID,
) ([]agent.Agent, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AgentDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "warehouse_id = ? AND available", warehouseID.Bytes()).Error; err != nil {
		return nil, err
	}

	agents := make([]agent.Agent, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}

	return agents, nil
}

// ApplyPosition performs the monotonic telemetry write in a single statement.
// The version of the check that loads, compares and saves in separate steps
// would let two concurrent reports interleave; the WHERE clause makes the
// comparison and the write atomic at the database.
func (r *GormAgentRepository) ApplyPosition(
	ctx context.Context,
	agentID kernel.UUID,
	position kernel.Location,
	reportedAt time.Time,
) (bool, error) {
	if err := agentID.Validate(); err != nil {
		return false, err
	}
	if err := position.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&AgentDTO{}).
		Where("id = ? AND (position_reported_at IS NULL OR position_reported_at < ?)",
			agentID.Bytes(), reportedAt).
		Updates(map[string]any{
			"position_x":           float64(position.X()),
			"position_y":           float64(position.Y()),
			"position_reported_at": reportedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&AgentDTO{}).
			Where("id = ?", agentID.Bytes()).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count == 0 {
			return false, errs.NewObjectNotFoundError("agent", agentID.String())
		}
		// A newer report is already applied; this one is stale.
		return false, nil
	}

	return true, nil
}
