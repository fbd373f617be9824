package warehousemap

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrRackIsNotConstructed is returned when using an improperly initialized Rack.
var ErrRackIsNotConstructed = errors.New("Rack must be created via NewRack constructor")

// Rack is a level of the spatial hierarchy inside an aisle, owning the bins.
type Rack struct {
	id           kernel.UUID
	name         string
	code         string
	displayOrder int
	bins         []*MapBin
	guard        guard.ConstructorGuard
}

// NewRack creates an empty Rack. Bins are added through the Map root.
func NewRack(id kernel.UUID, name string, code string, displayOrder int) (*Rack, error) {
	rack := &Rack{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rack.setID(id),
		rack.setName(name),
		rack.setCode(code),
		rack.setDisplayOrder(displayOrder),
	); err != nil {
		return nil, err
	}

	return rack, nil
}

// RestoreRack reconstructs a Rack with its bins from persistent storage.
func RestoreRack(id kernel.UUID, name string, code string, displayOrder int, bins []*MapBin) (*Rack, error) {
	rack, err := NewRack(id, name, code, displayOrder)
	if err != nil {
		return nil, err
	}

	for _, bin := range bins {
		if err := bin.Validate(); err != nil {
			return nil, err
		}
	}
	rack.bins = make([]*MapBin, len(bins))
	copy(rack.bins, bins)
	return rack, nil
}

// Validate checks that the Rack was created via a constructor.
func (r *Rack) Validate() error {
	if r == nil {
		return ErrRackIsNotConstructed
	}
	return r.guard.Validate(ErrRackIsNotConstructed)
}

// ID returns the rack's unique identifier.
func (r *Rack) ID() kernel.UUID { return r.id }

// Name returns the human-readable rack label.
func (r *Rack) Name() string { return r.name }

// Code returns the short rack code.
func (r *Rack) Code() string { return r.code }

// DisplayOrder returns the rack's position among its siblings.
func (r *Rack) DisplayOrder() int { return r.displayOrder }

// Bins returns the rack's bins ordered for display.
func (r *Rack) Bins() []*MapBin {
	out := make([]*MapBin, len(r.bins))
	copy(out, r.bins)
	sortByDisplayOrder(out, func(b *MapBin) (int, string) { return b.displayOrder, b.code })
	return out
}

func (r *Rack) update(name string, code string, displayOrder int) error {
	return errors.Join(
		r.setName(name),
		r.setCode(code),
		r.setDisplayOrder(displayOrder),
	)
}

func (r *Rack) addBin(bin *MapBin) error {
	for _, existing := range r.bins {
		if existing.code == bin.code {
			return errs.NewValueIsInvalidError("bin code " + bin.code + " already exists in rack " + r.code)
		}
	}
	r.bins = append(r.bins, bin)
	return nil
}

func (r *Rack) findBin(binID kernel.UUID) *MapBin {
	for _, bin := range r.bins {
		if bin.id.IsEqual(binID) {
			return bin
		}
	}
	return nil
}

func (r *Rack) removeBin(binID kernel.UUID) bool {
	for i, bin := range r.bins {
		if bin.id.IsEqual(binID) {
			r.bins = append(r.bins[:i], r.bins[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Rack) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rack) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("rack name")
	}
	r.name = name
	return nil
}

func (r *Rack) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("rack code")
	}
	r.code = code
	return nil
}

func (r *Rack) setDisplayOrder(displayOrder int) error {
	if displayOrder < 0 {
		return errs.NewValueIsOutOfRangeError("displayOrder", displayOrder, 0, "unbounded")
	}
	r.displayOrder = displayOrder
	return nil
}
