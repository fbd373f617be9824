package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrGetPendingWarehousesQueryIsNotConstructed = errors.New(
	"GetPendingWarehousesQuery must be created via NewGetPendingWarehousesQuery constructor",
)

// GetPendingWarehousesQuery lists the warehouses that currently have Pending
// tasks. The background assignment job uses it to know where a pass is worth
// running.
type GetPendingWarehousesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingWarehousesQuery creates a query for warehouses with waiting work.
func NewGetPendingWarehousesQuery() GetPendingWarehousesQuery {
	return GetPendingWarehousesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingWarehousesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingWarehousesQueryIsNotConstructed)
}

// GetPendingWarehousesQueryResponse is one warehouse with waiting work.
type GetPendingWarehousesQueryResponse struct {
	WarehouseID  kernel.UUID
	PendingTasks int
}
