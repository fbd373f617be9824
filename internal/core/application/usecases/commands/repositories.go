// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the narrow slice of repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// WorkTaskRepoFactory provides access to the task repository within a transaction.
	WorkTaskRepoFactory interface {
		WorkTaskRepository() ports.WorkTaskRepository
	}

	// AgentRepoFactory provides access to the agent repository within a transaction.
	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// WarehouseMapRepoFactory provides access to the map repository within a transaction.
	WarehouseMapRepoFactory interface {
		WarehouseMapRepository() ports.WarehouseMapRepository
	}

	// WorkTaskUoW manages transactions for task-only operations
	// (start, complete, cancel).
	WorkTaskUoW interface {
		TxManager
		WorkTaskRepoFactory
	}

	// WorkTaskUoWFactory creates new task unit of work instances.
	WorkTaskUoWFactory interface {
		Create() WorkTaskUoW
	}

	// AgentUoW manages transactions for agent-only operations
	// (registration, position telemetry).
	AgentUoW interface {
		TxManager
		AgentRepoFactory
	}

	// AgentUoWFactory creates new agent unit of work instances.
	AgentUoWFactory interface {
		Create() AgentUoW
	}

	// PlanningUoW manages transactions for order planning, which creates
	// tasks and reads the spatial map.
	PlanningUoW interface {
		TxManager
		WorkTaskRepoFactory
		WarehouseMapRepoFactory
	}

	// PlanningUoWFactory creates new planning unit of work instances.
	PlanningUoWFactory interface {
		Create() PlanningUoW
	}

	// UoW manages transactions across all three aggregates. Used by the
	// assignment pass, which reads the map and agents and mutates tasks.
	UoW interface {
		TxManager
		WorkTaskRepoFactory
		AgentRepoFactory
		WarehouseMapRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
