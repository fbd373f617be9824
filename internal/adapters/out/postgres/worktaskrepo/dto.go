// Package worktaskrepo provides data transfer objects and mapping functions
// for work task persistence. Tasks are soft-deleted for audit retention and
// carry an optimistic concurrency version.
package worktaskrepo

import (
	"time"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/worktask"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkTaskDTO represents the database structure for persisting task
// aggregates. Indexed for the hot paths: pending scans per warehouse and
// active task listings per company.
type WorkTaskDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index:idx_work_tasks_warehouse_status"`
	Type        int       `gorm:"type:int;not null"`
	Status      int       `gorm:"type:int;not null;index:idx_work_tasks_warehouse_status"`
	Priority    int       `gorm:"type:int;not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	Quantity    int       `gorm:"type:int;not null"`

	TargetBinID        *uuid.UUID `gorm:"type:uuid;index"`
	TargetLocationCode string     `gorm:"type:varchar(64)"`

	SourceOrderID *uuid.UUID `gorm:"type:uuid;index"`
	SourceLineID  *uuid.UUID `gorm:"type:uuid"`

	AssignedAgentID   *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAgentType int        `gorm:"type:int"`

	Notes string `gorm:"type:text"`

	CreatedAt   time.Time `gorm:"not null"`
	AssignedAt  *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time

	Version   int            `gorm:"type:int;not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for task entities.
func (WorkTaskDTO) TableName() string {
	return "work_tasks"
}

// fromDomain converts a task domain aggregate to its database representation.
func fromDomain(task *worktask.Task) WorkTaskDTO {
	return WorkTaskDTO{
		ID:                 task.ID().Bytes(),
		CompanyID:          task.CompanyID().Bytes(),
		WarehouseID:        task.WarehouseID().Bytes(),
		Type:               int(task.Type()),
		Status:             int(task.Status()),
		Priority:           task.Priority(),
		ProductID:          task.ProductID().Bytes(),
		Quantity:           task.Quantity(),
		TargetBinID:        rawID(task.Target().BinID()),
		TargetLocationCode: task.Target().LocationCode(),
		SourceOrderID:      rawID(task.Source().OrderID()),
		SourceLineID:       rawID(task.Source().LineID()),
		AssignedAgentID:    rawID(task.AssignedAgentID()),
		AssignedAgentType:  int(task.AssignedAgentType()),
		Notes:              task.Notes(),
		CreatedAt:          task.CreatedAt(),
		AssignedAt:         task.AssignedAt(),
		StartedAt:          task.StartedAt(),
		CompletedAt:        task.CompletedAt(),
		Version:            task.Version(),
	}
}

// toDomain converts a database DTO to a task domain aggregate.
func toDomain(dto WorkTaskDTO) (*worktask.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	targetBinID, err := domainID(dto.TargetBinID)
	if err != nil {
		return nil, err
	}
	target, err := worktask.RestoreTarget(targetBinID, dto.TargetLocationCode)
	if err != nil {
		return nil, err
	}

	sourceOrderID, err := domainID(dto.SourceOrderID)
	if err != nil {
		return nil, err
	}
	sourceLineID, err := domainID(dto.SourceLineID)
	if err != nil {
		return nil, err
	}
	source, err := worktask.RestoreSource(sourceOrderID, sourceLineID)
	if err != nil {
		return nil, err
	}

	assignedAgentID, err := domainID(dto.AssignedAgentID)
	if err != nil {
		return nil, err
	}

	return worktask.RestoreTask(
		id,
		companyID,
		warehouseID,
		worktask.Type(dto.Type),
		dto.Priority,
		worktask.Status(dto.Status),
		assignedAgentID,
		agent.Type(dto.AssignedAgentType),
		productID,
		dto.Quantity,
		target,
		source,
		dto.Notes,
		dto.CreatedAt,
		dto.AssignedAt,
		dto.StartedAt,
		dto.CompletedAt,
		dto.Version,
	)
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil //absence is a valid state
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
