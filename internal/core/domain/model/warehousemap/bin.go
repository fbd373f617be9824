package warehousemap

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrMapBinIsNotConstructed is returned when using an improperly initialized MapBin.
var ErrMapBinIsNotConstructed = errors.New("MapBin must be created via NewMapBin constructor")

// MapBin is a leaf of the spatial hierarchy: a named (x,y) location inside a
// rack. It may optionally link to an inventory storage bin when the spatial
// location and the stock-keeping location coincide.
type MapBin struct {
	// id uniquely identifies the bin
	id kernel.UUID
	// name is the human-readable bin label
	name string
	// code is the short identifier, unique among sibling bins
	code string
	// location is the bin's position on the warehouse floor
	location kernel.Location
	// storageBinID links to an inventory storage bin, nil if none
	storageBinID *kernel.UUID
	// displayOrder orders the bin among its siblings
	displayOrder int
	// guard ensures the entity was properly initialized
	guard guard.ConstructorGuard
}

// NewMapBin creates a MapBin entity. It is also used when restoring the
// hierarchy from persistence since bins carry no additional mutable state.
func NewMapBin(
	id kernel.UUID,
	name string,
	code string,
	location kernel.Location,
	storageBinID *kernel.UUID,
	displayOrder int,
) (*MapBin, error) {
	bin := &MapBin{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bin.setID(id),
		bin.setName(name),
		bin.setCode(code),
		bin.setLocation(location),
		bin.setStorageBinID(storageBinID),
		bin.setDisplayOrder(displayOrder),
	); err != nil {
		return nil, err
	}

	return bin, nil
}

// Validate checks that the MapBin was created via the constructor.
func (b *MapBin) Validate() error {
	if b == nil {
		return ErrMapBinIsNotConstructed
	}
	return b.guard.Validate(ErrMapBinIsNotConstructed)
}

// ID returns the bin's unique identifier.
func (b *MapBin) ID() kernel.UUID { return b.id }

// Name returns the human-readable bin label.
func (b *MapBin) Name() string { return b.name }

// Code returns the short bin code.
func (b *MapBin) Code() string { return b.code }

// Location returns the bin's position on the warehouse floor.
func (b *MapBin) Location() kernel.Location { return b.location }

// StorageBinID returns the linked inventory storage bin id, or nil.
func (b *MapBin) StorageBinID() *kernel.UUID {
	if b.storageBinID == nil {
		return nil
	}
	id := *b.storageBinID
	return &id
}

// DisplayOrder returns the bin's position among its siblings.
func (b *MapBin) DisplayOrder() int { return b.displayOrder }

// update applies new attributes to the bin. Sibling code uniqueness is
// checked by the aggregate root before this is called.
func (b *MapBin) update(
	name string,
	code string,
	location kernel.Location,
	storageBinID *kernel.UUID,
	displayOrder int,
) error {
	return errors.Join(
		b.setName(name),
		b.setCode(code),
		b.setLocation(location),
		b.setStorageBinID(storageBinID),
		b.setDisplayOrder(displayOrder),
	)
}

func (b *MapBin) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *MapBin) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("bin name")
	}
	b.name = name
	return nil
}

func (b *MapBin) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("bin code")
	}
	b.code = code
	return nil
}

func (b *MapBin) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	b.location = location
	return nil
}

func (b *MapBin) setStorageBinID(storageBinID *kernel.UUID) error {
	if storageBinID == nil {
		b.storageBinID = nil
		return nil
	}
	if err := storageBinID.Validate(); err != nil {
		return err
	}
	id := *storageBinID
	b.storageBinID = &id
	return nil
}

func (b *MapBin) setDisplayOrder(displayOrder int) error {
	if displayOrder < 0 {
		return errs.NewValueIsOutOfRangeError("displayOrder", displayOrder, 0, "unbounded")
	}
	b.displayOrder = displayOrder
	return nil
}
