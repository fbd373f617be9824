// Package agentrepo provides data transfer objects and mapping functions for
// agent persistence. Human workers and robots share one table, discriminated
// by a type column, and are restored behind the agent.Agent interface.
package agentrepo

import (
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgentDTO represents the database structure for persisting agents of both
// kinds. Position columns are null until the first telemetry report.
type AgentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type        int       `gorm:"type:int;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Model       string    `gorm:"type:varchar(255)"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index:idx_agents_warehouse_available"`
	Available   bool      `gorm:"not null;index:idx_agents_warehouse_available"`

	PositionX          *float64
	PositionY          *float64
	PositionReportedAt *time.Time

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

// fromDomain converts an agent to its database representation.
func fromDomain(a agent.Agent) AgentDTO {
	dto := AgentDTO{
		ID:          a.ID().Bytes(),
		Type:        int(a.Type()),
		Name:        a.DisplayName(),
		WarehouseID: a.WarehouseID().Bytes(),
		Available:   a.IsAvailable(),
	}

	if robot, ok := a.(*agent.Robot); ok {
		dto.Model = robot.Model()
	}

	if position := a.Position(); position != nil {
		x := float64(position.X())
		y := float64(position.Y())
		dto.PositionX = &x
		dto.PositionY = &y
		dto.PositionReportedAt = a.PositionReportedAt()
	}

	return dto
}

// toDomain converts a database DTO to the matching agent variant.
func toDomain(dto AgentDTO) (agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	var position *kernel.Location
	if dto.PositionX != nil && dto.PositionY != nil {
		location, locErr := kernel.NewLocation(
			kernel.Coordinate(*dto.PositionX),
			kernel.Coordinate(*dto.PositionY),
		)
		if locErr != nil {
			return nil, locErr
		}
		position = &location
	}

	switch agent.Type(dto.Type) {
	case agent.TypeHuman:
		return agent.RestoreHumanWorker(
			id, dto.Name, warehouseID, dto.Available, position, dto.PositionReportedAt)
	case agent.TypeRobot:
		return agent.RestoreRobot(
			id, dto.Name, dto.Model, warehouseID, dto.Available, position, dto.PositionReportedAt)
	default:
		return nil, fmt.Errorf("unknown agent type %d for agent %s", dto.Type, id)
	}
}
