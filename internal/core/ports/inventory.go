package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
)

// InventoryReader is the read-side contract to the external Inventory
// collaborator. The planner uses it to resolve pick locations and putaway
// capacities; stock quantities themselves live outside this core.
type InventoryReader interface {
	// FindBinWithStock returns the map bin holding at least the given
	// available quantity of a product in the warehouse, or nil when no
	// single bin can satisfy the line.
	FindBinWithStock(
		ctx context.Context,
		warehouseID kernel.UUID,
		productID kernel.UUID,
		quantity int,
	) (*kernel.UUID, error)

	// BinCapacities returns the fill levels of the warehouse's bins,
	// feeding the putaway placement policy.
	BinCapacities(ctx context.Context, warehouseID kernel.UUID) ([]services.BinCapacity, error)
}
