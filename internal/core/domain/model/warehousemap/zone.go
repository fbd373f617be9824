package warehousemap

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrZoneIsNotConstructed is returned when using an improperly initialized Zone.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// Zone is the top level of the spatial hierarchy below the map itself,
// owning the aisles.
type Zone struct {
	id           kernel.UUID
	name         string
	code         string
	displayOrder int
	aisles       []*Aisle
	guard        guard.ConstructorGuard
}

// NewZone creates an empty Zone. Aisles are added through the Map root.
func NewZone(id kernel.UUID, name string, code string, displayOrder int) (*Zone, error) {
	zone := &Zone{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		zone.setID(id),
		zone.setName(name),
		zone.setCode(code),
		zone.setDisplayOrder(displayOrder),
	); err != nil {
		return nil, err
	}

	return zone, nil
}

// RestoreZone reconstructs a Zone with its aisles from persistent storage.
func RestoreZone(id kernel.UUID, name string, code string, displayOrder int, aisles []*Aisle) (*Zone, error) {
	zone, err := NewZone(id, name, code, displayOrder)
	if err != nil {
		return nil, err
	}

	for _, aisle := range aisles {
		if err := aisle.Validate(); err != nil {
			return nil, err
		}
	}
	zone.aisles = make([]*Aisle, len(aisles))
	copy(zone.aisles, aisles)
	return zone, nil
}

// Validate checks that the Zone was created via a constructor.
func (z *Zone) Validate() error {
	if z == nil {
		return ErrZoneIsNotConstructed
	}
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// ID returns the zone's unique identifier.
func (z *Zone) ID() kernel.UUID { return z.id }

// Name returns the human-readable zone label.
func (z *Zone) Name() string { return z.name }

// Code returns the short zone code.
func (z *Zone) Code() string { return z.code }

// DisplayOrder returns the zone's position among its siblings.
func (z *Zone) DisplayOrder() int { return z.displayOrder }

// Aisles returns the zone's aisles ordered for display.
func (z *Zone) Aisles() []*Aisle {
	out := make([]*Aisle, len(z.aisles))
	copy(out, z.aisles)
	sortByDisplayOrder(out, func(a *Aisle) (int, string) { return a.displayOrder, a.code })
	return out
}

func (z *Zone) update(name string, code string, displayOrder int) error {
	return errors.Join(
		z.setName(name),
		z.setCode(code),
		z.setDisplayOrder(displayOrder),
	)
}

func (z *Zone) addAisle(aisle *Aisle) error {
	for _, existing := range z.aisles {
		if existing.code == aisle.code {
			return errs.NewValueIsInvalidError("aisle code " + aisle.code + " already exists in zone " + z.code)
		}
	}
	z.aisles = append(z.aisles, aisle)
	return nil
}

func (z *Zone) findAisle(aisleID kernel.UUID) *Aisle {
	for _, aisle := range z.aisles {
		if aisle.id.IsEqual(aisleID) {
			return aisle
		}
	}
	return nil
}

func (z *Zone) removeAisle(aisleID kernel.UUID) bool {
	for i, aisle := range z.aisles {
		if aisle.id.IsEqual(aisleID) {
			z.aisles = append(z.aisles[:i], z.aisles[i+1:]...)
			return true
		}
	}
	return false
}

func (z *Zone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	z.id = id
	return nil
}

func (z *Zone) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("zone name")
	}
	z.name = name
	return nil
}

func (z *Zone) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("zone code")
	}
	z.code = code
	return nil
}

func (z *Zone) setDisplayOrder(displayOrder int) error {
	if displayOrder < 0 {
		return errs.NewValueIsOutOfRangeError("displayOrder", displayOrder, 0, "unbounded")
	}
	z.displayOrder = displayOrder
	return nil
}
