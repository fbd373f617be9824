package warehousemap

import (
	"errors"
	"sort"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// Domain errors for warehouse map operations.
var (
	// ErrMapIsNotConstructed is returned when using an improperly initialized Map.
	ErrMapIsNotConstructed = errors.New("Map must be created via NewMap constructor")
	// ErrMapNameIsRequired is returned when creating a map without a name.
	ErrMapNameIsRequired = errs.NewValueIsRequiredError("map name")
)

// Map is the aggregate root of the spatial hierarchy for one warehouse.
// It owns the Zone, Aisle, Rack, and MapBin tree and is the single entry
// point for structural changes and coordinate lookups.
//
// Key responsibilities:
//   - Adding, updating, and removing nodes at every level of the hierarchy
//   - Resolving a bin id to its (x,y) floor position
//   - Listing bins scoped to a zone, aisle, or rack
//
// Business rules:
//   - Every child references exactly one parent; nodes are reached only
//     through the tree
//   - Sibling codes are unique at each level
//   - Removal cascades: deleting a node removes its entire subtree
type Map struct {
	// id uniquely identifies the map
	id kernel.UUID
	// companyID is the owning tenant
	companyID kernel.UUID
	// warehouseID is the warehouse this map describes
	warehouseID kernel.UUID
	// name is the human-readable map label
	name string
	// active marks the map currently in use for the warehouse
	active bool
	// zones are the top-level nodes of the hierarchy
	zones []*Zone
	// guard ensures the map was properly constructed
	guard guard.ConstructorGuard
}

// NewMap creates an active, empty Map for a warehouse.
// Zones and deeper levels are added afterwards through the Add operations.
func NewMap(id kernel.UUID, companyID kernel.UUID, warehouseID kernel.UUID, name string) (*Map, error) {
	m := &Map{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setCompanyID(companyID),
		m.setWarehouseID(warehouseID),
		m.setName(name),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMap reconstructs a Map aggregate with its full hierarchy from
// persistent storage.
func RestoreMap(
	id kernel.UUID,
	companyID kernel.UUID,
	warehouseID kernel.UUID,
	name string,
	active bool,
	zones []*Zone,
) (*Map, error) {
	m, err := NewMap(id, companyID, warehouseID, name)
	if err != nil {
		return nil, err
	}

	for _, zone := range zones {
		if err := zone.Validate(); err != nil {
			return nil, err
		}
	}
	m.active = active
	m.zones = make([]*Zone, len(zones))
	copy(m.zones, zones)
	return m, nil
}

// Validate checks that the Map was created via a constructor.
func (m *Map) Validate() error {
	if m == nil {
		return ErrMapIsNotConstructed
	}
	return m.guard.Validate(ErrMapIsNotConstructed)
}

// IsEqual compares two maps by identifier.
func (m *Map) IsEqual(other *Map) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the map's unique identifier.
func (m *Map) ID() kernel.UUID { return m.id }

// CompanyID returns the owning tenant.
func (m *Map) CompanyID() kernel.UUID { return m.companyID }

// WarehouseID returns the warehouse this map describes.
func (m *Map) WarehouseID() kernel.UUID { return m.warehouseID }

// Name returns the human-readable map label.
func (m *Map) Name() string { return m.name }

// IsActive reports whether this is the map currently in use.
func (m *Map) IsActive() bool { return m.active }

// Zones returns the top-level zones ordered for display.
func (m *Map) Zones() []*Zone {
	out := make([]*Zone, len(m.zones))
	copy(out, m.zones)
	sortByDisplayOrder(out, func(z *Zone) (int, string) { return z.displayOrder, z.code })
	return out
}

// Rename changes the map's label.
func (m *Map) Rename(name string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return m.setName(name)
}

// Activate marks the map as the one in use for its warehouse.
func (m *Map) Activate() { m.active = true }

// Deactivate retires the map without removing it.
func (m *Map) Deactivate() { m.active = false }

// AddZone adds a top-level zone. Zone codes are unique within the map.
func (m *Map) AddZone(id kernel.UUID, name string, code string, displayOrder int) error {
	if err := m.Validate(); err != nil {
		return err
	}

	zone, err := NewZone(id, name, code, displayOrder)
	if err != nil {
		return err
	}

	for _, existing := range m.zones {
		if existing.code == zone.code {
			return errs.NewValueIsInvalidError("zone code " + zone.code + " already exists in map " + m.name)
		}
	}
	m.zones = append(m.zones, zone)
	return nil
}

// AddAisle adds an aisle to an existing zone.
func (m *Map) AddAisle(zoneID kernel.UUID, id kernel.UUID, name string, code string, displayOrder int) error {
	if err := m.Validate(); err != nil {
		return err
	}

	zone := m.findZone(zoneID)
	if zone == nil {
		return errs.NewObjectNotFoundError("zoneId", zoneID)
	}

	aisle, err := NewAisle(id, name, code, displayOrder)
	if err != nil {
		return err
	}
	return zone.addAisle(aisle)
}

// AddRack adds a rack to an existing aisle.
func (m *Map) AddRack(aisleID kernel.UUID, id kernel.UUID, name string, code string, displayOrder int) error {
	if err := m.Validate(); err != nil {
		return err
	}

	_, aisle := m.findAisle(aisleID)
	if aisle == nil {
		return errs.NewObjectNotFoundError("aisleId", aisleID)
	}

	rack, err := NewRack(id, name, code, displayOrder)
	if err != nil {
		return err
	}
	return aisle.addRack(rack)
}

// AddBin adds a bin to an existing rack.
func (m *Map) AddBin(
	rackID kernel.UUID,
	id kernel.UUID,
	name string,
	code string,
	location kernel.Location,
	storageBinID *kernel.UUID,
	displayOrder int,
) error {
	if err := m.Validate(); err != nil {
		return err
	}

	_, rack := m.findRack(rackID)
	if rack == nil {
		return errs.NewObjectNotFoundError("rackId", rackID)
	}

	bin, err := NewMapBin(id, name, code, location, storageBinID, displayOrder)
	if err != nil {
		return err
	}
	return rack.addBin(bin)
}

// UpdateZone changes a zone's attributes, keeping zone codes unique.
func (m *Map) UpdateZone(zoneID kernel.UUID, name string, code string, displayOrder int) error {
	if err := m.Validate(); err != nil {
		return err
	}

	zone := m.findZone(zoneID)
	if zone == nil {
		return errs.NewObjectNotFoundError("zoneId", zoneID)
	}

	for _, existing := range m.zones {
		if existing.code == code && !existing.id.IsEqual(zoneID) {
			return errs.NewValueIsInvalidError("zone code " + code + " already exists in map " + m.name)
		}
	}
	return zone.update(name, code, displayOrder)
}

// UpdateAisle changes an aisle's attributes, keeping codes unique in its zone.
func (m *Map) UpdateAisle(aisleID kernel.UUID, name string, code string, displayOrder int) error {
	if err := m.Validate(); err != nil {
		return err
	}

	zone, aisle := m.findAisle(aisleID)
	if aisle == nil {
		return errs.NewObjectNotFoundError("aisleId", aisleID)
	}

	for _, existing := range zone.aisles {
		if existing.code == code && !existing.id.IsEqual(aisleID) {
			return errs.NewValueIsInvalidError("aisle code " + code + " already exists in zone " + zone.code)
		}
	}
	return aisle.update(name, code, displayOrder)
}

// UpdateRack changes a rack's attributes, keeping codes unique in its aisle.
func (m *Map) UpdateRack(rackID kernel.UUID, name string, code string, displayOrder int) error {
	if err := m.Validate(); err != nil {
		return err
	}

	aisle, rack := m.findRack(rackID)
	if rack == nil {
		return errs.NewObjectNotFoundError("rackId", rackID)
	}

	for _, existing := range aisle.racks {
		if existing.code == code && !existing.id.IsEqual(rackID) {
			return errs.NewValueIsInvalidError("rack code " + code + " already exists in aisle " + aisle.code)
		}
	}
	return rack.update(name, code, displayOrder)
}

// UpdateBin changes a bin's attributes, keeping codes unique in its rack.
func (m *Map) UpdateBin(
	binID kernel.UUID,
	name string,
	code string,
	location kernel.Location,
	storageBinID *kernel.UUID,
	displayOrder int,
) error {
	if err := m.Validate(); err != nil {
		return err
	}

	rack, bin := m.findBin(binID)
	if bin == nil {
		return errs.NewObjectNotFoundError("mapBinId", binID)
	}

	for _, existing := range rack.bins {
		if existing.code == code && !existing.id.IsEqual(binID) {
			return errs.NewValueIsInvalidError("bin code " + code + " already exists in rack " + rack.code)
		}
	}
	return bin.update(name, code, location, storageBinID, displayOrder)
}

// RemoveZone removes a zone and cascades to all aisles, racks, and bins
// beneath it.
func (m *Map) RemoveZone(zoneID kernel.UUID) error {
	if err := m.Validate(); err != nil {
		return err
	}

	for i, zone := range m.zones {
		if zone.id.IsEqual(zoneID) {
			m.zones = append(m.zones[:i], m.zones[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("zoneId", zoneID)
}

// RemoveAisle removes an aisle and cascades to all racks and bins beneath it.
func (m *Map) RemoveAisle(aisleID kernel.UUID) error {
	if err := m.Validate(); err != nil {
		return err
	}

	zone, aisle := m.findAisle(aisleID)
	if aisle == nil {
		return errs.NewObjectNotFoundError("aisleId", aisleID)
	}
	zone.removeAisle(aisleID)
	return nil
}

// RemoveRack removes a rack and cascades to all bins beneath it.
func (m *Map) RemoveRack(rackID kernel.UUID) error {
	if err := m.Validate(); err != nil {
		return err
	}

	aisle, rack := m.findRack(rackID)
	if rack == nil {
		return errs.NewObjectNotFoundError("rackId", rackID)
	}
	aisle.removeRack(rackID)
	return nil
}

// RemoveBin removes a single bin.
func (m *Map) RemoveBin(binID kernel.UUID) error {
	if err := m.Validate(); err != nil {
		return err
	}

	rack, bin := m.findBin(binID)
	if bin == nil {
		return errs.NewObjectNotFoundError("mapBinId", binID)
	}
	rack.removeBin(binID)
	return nil
}

// BinLocation resolves a bin id to its floor position.
func (m *Map) BinLocation(binID kernel.UUID) (kernel.Location, error) {
	if err := m.Validate(); err != nil {
		return kernel.Location{}, err
	}

	_, bin := m.findBin(binID)
	if bin == nil {
		return kernel.Location{}, errs.NewObjectNotFoundError("mapBinId", binID)
	}
	return bin.location, nil
}

// Bins returns every bin in the hierarchy, ordered zone by zone for display.
func (m *Map) Bins() []*MapBin {
	var out []*MapBin
	for _, zone := range m.Zones() {
		for _, aisle := range zone.Aisles() {
			for _, rack := range aisle.Racks() {
				out = append(out, rack.Bins()...)
			}
		}
	}
	return out
}

// BinsInZone returns the bins beneath one zone, ordered for display.
func (m *Map) BinsInZone(zoneID kernel.UUID) ([]*MapBin, error) {
	zone := m.findZone(zoneID)
	if zone == nil {
		return nil, errs.NewObjectNotFoundError("zoneId", zoneID)
	}

	var out []*MapBin
	for _, aisle := range zone.Aisles() {
		for _, rack := range aisle.Racks() {
			out = append(out, rack.Bins()...)
		}
	}
	return out, nil
}

// BinsInAisle returns the bins beneath one aisle, ordered for display.
func (m *Map) BinsInAisle(aisleID kernel.UUID) ([]*MapBin, error) {
	_, aisle := m.findAisle(aisleID)
	if aisle == nil {
		return nil, errs.NewObjectNotFoundError("aisleId", aisleID)
	}

	var out []*MapBin
	for _, rack := range aisle.Racks() {
		out = append(out, rack.Bins()...)
	}
	return out, nil
}

// BinsInRack returns the bins of one rack, ordered for display.
func (m *Map) BinsInRack(rackID kernel.UUID) ([]*MapBin, error) {
	_, rack := m.findRack(rackID)
	if rack == nil {
		return nil, errs.NewObjectNotFoundError("rackId", rackID)
	}
	return rack.Bins(), nil
}

// findZone locates a zone by id, nil if absent.
func (m *Map) findZone(zoneID kernel.UUID) *Zone {
	for _, zone := range m.zones {
		if zone.id.IsEqual(zoneID) {
			return zone
		}
	}
	return nil
}

// findAisle locates an aisle by id along with its owning zone.
func (m *Map) findAisle(aisleID kernel.UUID) (*Zone, *Aisle) {
	for _, zone := range m.zones {
		if aisle := zone.findAisle(aisleID); aisle != nil {
			return zone, aisle
		}
	}
	return nil, nil
}

// findRack locates a rack by id along with its owning aisle.
func (m *Map) findRack(rackID kernel.UUID) (*Aisle, *Rack) {
	for _, zone := range m.zones {
		for _, aisle := range zone.aisles {
			if rack := aisle.findRack(rackID); rack != nil {
				return aisle, rack
			}
		}
	}
	return nil, nil
}

// findBin locates a bin by id along with its owning rack.
func (m *Map) findBin(binID kernel.UUID) (*Rack, *MapBin) {
	for _, zone := range m.zones {
		for _, aisle := range zone.aisles {
			for _, rack := range aisle.racks {
				if bin := rack.findBin(binID); bin != nil {
					return rack, bin
				}
			}
		}
	}
	return nil, nil
}

func (m *Map) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Map) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	m.companyID = id
	return nil
}

func (m *Map) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseId", err)
	}
	m.warehouseID = id
	return nil
}

func (m *Map) setName(name string) error {
	if name == "" {
		return ErrMapNameIsRequired
	}
	m.name = name
	return nil
}

// sortByDisplayOrder orders hierarchy siblings by display order, then code,
// so listings are stable regardless of insertion order.
func sortByDisplayOrder[T any](items []T, key func(T) (int, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		orderI, codeI := key(items[i])
		orderJ, codeJ := key(items[j])
		if orderI != orderJ {
			return orderI < orderJ
		}
		return codeI < codeJ
	})
}
