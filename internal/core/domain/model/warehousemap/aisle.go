package warehousemap

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrAisleIsNotConstructed is returned when using an improperly initialized Aisle.
var ErrAisleIsNotConstructed = errors.New("Aisle must be created via NewAisle constructor")

// Aisle is a level of the spatial hierarchy inside a zone, owning the racks.
type Aisle struct {
	id           kernel.UUID
	name         string
	code         string
	displayOrder int
	racks        []*Rack
	guard        guard.ConstructorGuard
}

// NewAisle creates an empty Aisle. Racks are added through the Map root.
func NewAisle(id kernel.UUID, name string, code string, displayOrder int) (*Aisle, error) {
	aisle := &Aisle{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		aisle.setID(id),
		aisle.setName(name),
		aisle.setCode(code),
		aisle.setDisplayOrder(displayOrder),
	); err != nil {
		return nil, err
	}

	return aisle, nil
}

// RestoreAisle reconstructs an Aisle with its racks from persistent storage.
func RestoreAisle(id kernel.UUID, name string, code string, displayOrder int, racks []*Rack) (*Aisle, error) {
	aisle, err := NewAisle(id, name, code, displayOrder)
	if err != nil {
		return nil, err
	}

	for _, rack := range racks {
		if err := rack.Validate(); err != nil {
			return nil, err
		}
	}
	aisle.racks = make([]*Rack, len(racks))
	copy(aisle.racks, racks)
	return aisle, nil
}

// Validate checks that the Aisle was created via a constructor.
func (a *Aisle) Validate() error {
	if a == nil {
		return ErrAisleIsNotConstructed
	}
	return a.guard.Validate(ErrAisleIsNotConstructed)
}

// ID returns the aisle's unique identifier.
func (a *Aisle) ID() kernel.UUID { return a.id }

// Name returns the human-readable aisle label.
func (a *Aisle) Name() string { return a.name }

// Code returns the short aisle code.
func (a *Aisle) Code() string { return a.code }

// DisplayOrder returns the aisle's position among its siblings.
func (a *Aisle) DisplayOrder() int { return a.displayOrder }

// Racks returns the aisle's racks ordered for display.
func (a *Aisle) Racks() []*Rack {
	out := make([]*Rack, len(a.racks))
	copy(out, a.racks)
	sortByDisplayOrder(out, func(r *Rack) (int, string) { return r.displayOrder, r.code })
	return out
}

func (a *Aisle) update(name string, code string, displayOrder int) error {
	return errors.Join(
		a.setName(name),
		a.setCode(code),
		a.setDisplayOrder(displayOrder),
	)
}

func (a *Aisle) addRack(rack *Rack) error {
	for _, existing := range a.racks {
		if existing.code == rack.code {
			return errs.NewValueIsInvalidError("rack code " + rack.code + " already exists in aisle " + a.code)
		}
	}
	a.racks = append(a.racks, rack)
	return nil
}

func (a *Aisle) findRack(rackID kernel.UUID) *Rack {
	for _, rack := range a.racks {
		if rack.id.IsEqual(rackID) {
			return rack
		}
	}
	return nil
}

func (a *Aisle) removeRack(rackID kernel.UUID) bool {
	for i, rack := range a.racks {
		if rack.id.IsEqual(rackID) {
			a.racks = append(a.racks[:i], a.racks[i+1:]...)
			return true
		}
	}
	return false
}

func (a *Aisle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Aisle) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("aisle name")
	}
	a.name = name
	return nil
}

func (a *Aisle) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("aisle code")
	}
	a.code = code
	return nil
}

func (a *Aisle) setDisplayOrder(displayOrder int) error {
	if displayOrder < 0 {
		return errs.NewValueIsOutOfRangeError("displayOrder", displayOrder, 0, "unbounded")
	}
	a.displayOrder = displayOrder
	return nil
}
