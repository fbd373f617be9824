package ports

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for agents of both kinds.
// Implementations store human workers and robots polymorphically and return
// them behind the agent.Agent interface.
type AgentRepository interface {
	// Add persists a new agent.
	Add(ctx context.Context, aggregate agent.Agent) error

	// Update persists changes to an existing agent.
	Update(ctx context.Context, aggregate agent.Agent) error

	// Get retrieves an agent by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (agent.Agent, error)

	// GetAllAvailable retrieves the agents of one warehouse that are
	// currently available for assignment.
	GetAllAvailable(ctx context.Context, warehouseID kernel.UUID) ([]agent.Agent, error)

	// ApplyPosition records a position report if and only if reportedAt is
	// strictly newer than the agent's last applied report. The check and the
	// write are atomic, so concurrent telemetry cannot interleave into a
	// stale overwrite. A dropped stale report returns applied=false and no
	// error.
	ApplyPosition(
		ctx context.Context,
		agentID kernel.UUID,
		position kernel.Location,
		reportedAt time.Time,
	) (applied bool, err error)
}
