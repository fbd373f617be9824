package maprepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehousemap"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseMapRepository implements WarehouseMapRepository using GORM.
type GormWarehouseMapRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWarehouseMapRepository creates a new GORM map repository.
func NewGormWarehouseMapRepository(db *gorm.DB, tracker aggregateTracker) *GormWarehouseMapRepository {
	return &GormWarehouseMapRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new map aggregate with its full hierarchy.
func (r *GormWarehouseMapRepository) Add(ctx context.Context, aggregate *warehousemap.Map) error {
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

// Update saves the aggregate's current hierarchy. Nodes that disappeared
// from the tree since load are soft-deleted together with their subtree, so
// a removed zone takes its aisles, racks and bins with it while the rows
// stay around for audit.
func (r *GormWarehouseMapRepository) Update(ctx context.Context, aggregate *warehousemap.Map) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("map", aggregate.ID().String())
	}

	if err := r.softDeleteVanished(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a map aggregate with its full hierarchy.
func (r *GormWarehouseMapRepository) Get(ctx context.Context, id kernel.UUID) (*warehousemap.Map, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MapDTO
	if err := r.db.WithContext(ctx).
		Preload("Zones.Aisles.Racks.Bins").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("map", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByWarehouse retrieves the active map of one warehouse.
func (r *GormWarehouseMapRepository) GetActiveByWarehouse(
	ctx context.Context, warehouseID kernel.UUID,
) (*warehousemap.Map, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}

	var dto MapDTO
	if err := r.db.WithContext(ctx).
		Preload("Zones.Aisles.Racks.Bins").
		First(&dto, "warehouse_id = ? AND active", warehouseID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active map for warehouse", warehouseID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete soft-deletes a whole map with everything beneath it.
func (r *GormWarehouseMapRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&MapDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("map", id.String())
	}

	// Empty keep-lists sweep the entire subtree.
	return r.cascade(ctx, id.Bytes(), nil, nil, nil, nil)
}

// softDeleteVanished sweeps rows that are no longer part of the aggregate.
func (r *GormWarehouseMapRepository) softDeleteVanished(ctx context.Context, dto MapDTO) error {
	var zoneIDs, aisleIDs, rackIDs, binIDs []uuid.UUID
	for _, zone := range dto.Zones {
		zoneIDs = append(zoneIDs, zone.ID)
		for _, aisle := range zone.Aisles {
			aisleIDs = append(aisleIDs, aisle.ID)
			for _, rack := range aisle.Racks {
				rackIDs = append(rackIDs, rack.ID)
				for _, bin := range rack.Bins {
					binIDs = append(binIDs, bin.ID)
				}
			}
		}
	}

	return r.cascade(ctx, dto.ID, zoneIDs, aisleIDs, rackIDs, binIDs)
}

// cascade soft-deletes every hierarchy row under mapID whose id is not in
// the matching keep-list. The subqueries deliberately ignore the soft-delete
// scope so that children of already-deleted parents are swept too.
func (r *GormWarehouseMapRepository) cascade(
	ctx context.Context,
	mapID uuid.UUID,
	zoneIDs, aisleIDs, rackIDs, binIDs []uuid.UUID,
) error {
	db := r.db.WithContext(ctx)

	if err := scopedDelete(db.Where("map_id = ?", mapID), zoneIDs, &ZoneDTO{}); err != nil {
		return err
	}

	aisleScope := db.Where("zone_id IN (SELECT id FROM map_zones WHERE map_id = ?)", mapID)
	if err := scopedDelete(aisleScope, aisleIDs, &AisleDTO{}); err != nil {
		return err
	}

	rackScope := db.Where(
		`aisle_id IN (
			SELECT a.id FROM map_aisles a
			JOIN map_zones z ON z.id = a.zone_id
			WHERE z.map_id = ?
		)`, mapID)
	if err := scopedDelete(rackScope, rackIDs, &RackDTO{}); err != nil {
		return err
	}

	binScope := db.Where(
		`rack_id IN (
			SELECT r.id FROM map_racks r
			JOIN map_aisles a ON a.id = r.aisle_id
			JOIN map_zones z ON z.id = a.zone_id
			WHERE z.map_id = ?
		)`, mapID)
	return scopedDelete(binScope, binIDs, &BinDTO{})
}

func scopedDelete(scope *gorm.DB, keep []uuid.UUID, model any) error {
	if len(keep) > 0 {
		scope = scope.Where("id NOT IN ?", keep)
	}
	return scope.Delete(model).Error
}
