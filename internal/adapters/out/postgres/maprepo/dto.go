// Package maprepo provides data transfer objects and mapping functions for
// warehouse map persistence. The Map/Zone/Aisle/Rack/Bin hierarchy is stored
// across five tables and always saved and loaded as one aggregate.
package maprepo

import (
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehousemap"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MapDTO represents the database structure for persisting map aggregates.
// CompanyID tags the hierarchy's root for tenant isolation; child rows reach
// the tenant through their parent chain.
type MapDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Active      bool      `gorm:"not null"`

	Zones []ZoneDTO `gorm:"foreignKey:MapID;constraint:OnDelete:CASCADE"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for map entities.
func (MapDTO) TableName() string {
	return "warehouse_maps"
}

// ZoneDTO represents one zone row within a map.
type ZoneDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	MapID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Code         string    `gorm:"type:varchar(64);not null"`
	DisplayOrder int       `gorm:"type:int;not null"`

	Aisles []AisleDTO `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for zone entities.
func (ZoneDTO) TableName() string {
	return "map_zones"
}

// AisleDTO represents one aisle row within a zone.
type AisleDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ZoneID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Code         string    `gorm:"type:varchar(64);not null"`
	DisplayOrder int       `gorm:"type:int;not null"`

	Racks []RackDTO `gorm:"foreignKey:AisleID;constraint:OnDelete:CASCADE"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for aisle entities.
func (AisleDTO) TableName() string {
	return "map_aisles"
}

// RackDTO represents one rack row within an aisle.
type RackDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AisleID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Code         string    `gorm:"type:varchar(64);not null"`
	DisplayOrder int       `gorm:"type:int;not null"`

	Bins []BinDTO `gorm:"foreignKey:RackID;constraint:OnDelete:CASCADE"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for rack entities.
func (RackDTO) TableName() string {
	return "map_racks"
}

// BinDTO represents one bin row within a rack. LocationX/Y are the absolute
// floor coordinates routing resolves task targets to.
type BinDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RackID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Code         string     `gorm:"type:varchar(64);not null"`
	LocationX    float64    `gorm:"not null"`
	LocationY    float64    `gorm:"not null"`
	StorageBinID *uuid.UUID `gorm:"type:uuid;index"`
	DisplayOrder int        `gorm:"type:int;not null"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for bin entities.
func (BinDTO) TableName() string {
	return "map_bins"
}

// fromDomain converts a map domain aggregate to its database representation.
func fromDomain(aggregate *warehousemap.Map) MapDTO {
	mapID := aggregate.ID().Bytes()
	zones := aggregate.Zones()
	zoneDTOs := make([]ZoneDTO, 0, len(zones))

	for _, zone := range zones {
		zoneID := zone.ID().Bytes()
		aisles := zone.Aisles()
		aisleDTOs := make([]AisleDTO, 0, len(aisles))

		for _, aisle := range aisles {
			aisleID := aisle.ID().Bytes()
			racks := aisle.Racks()
			rackDTOs := make([]RackDTO, 0, len(racks))

			for _, rack := range racks {
				rackID := rack.ID().Bytes()
				bins := rack.Bins()
				binDTOs := make([]BinDTO, 0, len(bins))

				for _, bin := range bins {
					var storageBinID *uuid.UUID
					if id := bin.StorageBinID(); id != nil {
						raw := id.Bytes()
						storageBinID = &raw
					}

					binDTOs = append(binDTOs, BinDTO{
						ID:           bin.ID().Bytes(),
						RackID:       rackID,
						Name:         bin.Name(),
						Code:         bin.Code(),
						LocationX:    float64(bin.Location().X()),
						LocationY:    float64(bin.Location().Y()),
						StorageBinID: storageBinID,
						DisplayOrder: bin.DisplayOrder(),
					})
				}

				rackDTOs = append(rackDTOs, RackDTO{
					ID:           rackID,
					AisleID:      aisleID,
					Name:         rack.Name(),
					Code:         rack.Code(),
					DisplayOrder: rack.DisplayOrder(),
					Bins:         binDTOs,
				})
			}

			aisleDTOs = append(aisleDTOs, AisleDTO{
				ID:           aisleID,
				ZoneID:       zoneID,
				Name:         aisle.Name(),
				Code:         aisle.Code(),
				DisplayOrder: aisle.DisplayOrder(),
				Racks:        rackDTOs,
			})
		}

		zoneDTOs = append(zoneDTOs, ZoneDTO{
			ID:           zoneID,
			MapID:        mapID,
			Name:         zone.Name(),
			Code:         zone.Code(),
			DisplayOrder: zone.DisplayOrder(),
			Aisles:       aisleDTOs,
		})
	}

	return MapDTO{
		ID:          mapID,
		CompanyID:   aggregate.CompanyID().Bytes(),
		WarehouseID: aggregate.WarehouseID().Bytes(),
		Name:        aggregate.Name(),
		Active:      aggregate.IsActive(),
		Zones:       zoneDTOs,
	}
}

// toDomain converts a database DTO to a map domain aggregate.
func toDomain(dto MapDTO) (*warehousemap.Map, error) {
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

	zones := make([]*warehousemap.Zone, 0, len(dto.Zones))
	for _, zoneDTO := range dto.Zones {
		zone, zoneErr := zoneToDomain(zoneDTO)
		if zoneErr != nil {
			return nil, zoneErr
		}
		zones = append(zones, zone)
	}

	return warehousemap.RestoreMap(id, companyID, warehouseID, dto.Name, dto.Active, zones)
}

func zoneToDomain(dto ZoneDTO) (*warehousemap.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	aisles := make([]*warehousemap.Aisle, 0, len(dto.Aisles))
	for _, aisleDTO := range dto.Aisles {
		aisle, aisleErr := aisleToDomain(aisleDTO)
		if aisleErr != nil {
			return nil, aisleErr
		}
		aisles = append(aisles, aisle)
	}

	return warehousemap.RestoreZone(id, dto.Name, dto.Code, dto.DisplayOrder, aisles)
}

func aisleToDomain(dto AisleDTO) (*warehousemap.Aisle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	racks := make([]*warehousemap.Rack, 0, len(dto.Racks))
	for _, rackDTO := range dto.Racks {
		rack, rackErr := rackToDomain(rackDTO)
		if rackErr != nil {
			return nil, rackErr
		}
		racks = append(racks, rack)
	}

	return warehousemap.RestoreAisle(id, dto.Name, dto.Code, dto.DisplayOrder, racks)
}

func rackToDomain(dto RackDTO) (*warehousemap.Rack, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	bins := make([]*warehousemap.MapBin, 0, len(dto.Bins))
	for _, binDTO := range dto.Bins {
		bin, binErr := binToDomain(binDTO)
		if binErr != nil {
			return nil, binErr
		}
		bins = append(bins, bin)
	}

	return warehousemap.RestoreRack(id, dto.Name, dto.Code, dto.DisplayOrder, bins)
}

func binToDomain(dto BinDTO) (*warehousemap.MapBin, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(
		kernel.Coordinate(dto.LocationX),
		kernel.Coordinate(dto.LocationY),
	)
	if err != nil {
		return nil, err
	}

	var storageBinID *kernel.UUID
	if dto.StorageBinID != nil {
		sID, sErr := kernel.UUIDFromBytes((*dto.StorageBinID)[:])
		if sErr != nil {
			return nil, sErr
		}
		storageBinID = &sID
	}

	return warehousemap.NewMapBin(id, dto.Name, dto.Code, location, storageBinID, dto.DisplayOrder)
}
