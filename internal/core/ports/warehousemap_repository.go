package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehousemap"
)

// WarehouseMapRepository defines the persistence contract for warehouse map
// aggregates. The whole hierarchy is saved and loaded as one aggregate;
// nodes removed from the tree are soft-deleted on Update, cascading to their
// subtree.
type WarehouseMapRepository interface {
	// Add persists a new map aggregate and its hierarchy.
	Add(ctx context.Context, aggregate *warehousemap.Map) error

	// Update persists the aggregate's current hierarchy. Nodes that
	// disappeared from the tree since load are soft-deleted together with
	// everything beneath them.
	Update(ctx context.Context, aggregate *warehousemap.Map) error

	// Get retrieves a map aggregate with its full hierarchy.
	Get(ctx context.Context, id kernel.UUID) (*warehousemap.Map, error)

	// GetActiveByWarehouse retrieves the active map of one warehouse.
	GetActiveByWarehouse(ctx context.Context, warehouseID kernel.UUID) (*warehousemap.Map, error)

	// Delete soft-deletes a whole map with its hierarchy.
	Delete(ctx context.Context, id kernel.UUID) error
}
