package kernel

import (
	"errors"
	"fmt"
	"math"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// Coordinate is a position component on the warehouse floor, in floor units.
// Coordinates are continuous and non-negative; the floor has no fixed upper
// bound, it grows with the configured map.
type Coordinate float64

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is a point on the warehouse floor. It is an immutable value object;
// the zero value is invalid and fails validation.
//
// Location carries the position of map bins and of agents that have reported
// telemetry. Distances between locations are Euclidean, matching free
// travel on an open floor rather than aisle-constrained movement.
type Location struct { //nolint:recvcheck //using for validation
	x     Coordinate
	y     Coordinate
	guard guard.ConstructorGuard
}

// NewLocation creates a Location with the given coordinates.
// Both coordinates must be non-negative.
func NewLocation(x Coordinate, y Coordinate) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setX(x), loc.setY(y)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was built via NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// X returns the X coordinate.
func (l Location) X() Coordinate {
	return l.x
}

// Y returns the Y coordinate.
func (l Location) Y() Coordinate {
	return l.y
}

// String implements fmt.Stringer as "Location(x,y)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%g,%g)", float64(l.x), float64(l.y))
}

// IsEqual compares two locations by coordinates.
// Both locations must be properly constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.x == other.x && l.y == other.y, nil
}

// Distance returns the Euclidean distance to other.
// Both locations must be properly constructed.
func (l Location) Distance(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dx := float64(l.x - other.x)
	dy := float64(l.y - other.y)
	return math.Hypot(dx, dy), nil
}

// setX sets the x coordinate with validation.
// Pointer receiver on a private setter keeps validation self-encapsulated
// during construction, mirroring the value-object construction pattern.
func (l *Location) setX(x Coordinate) error {
	if x < 0 || math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
		return errs.NewValueIsOutOfRangeError("x", x, 0, math.MaxFloat64)
	}

	l.x = x
	return nil
}

// setY sets the y coordinate with validation.
func (l *Location) setY(y Coordinate) error {
	if y < 0 || math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
		return errs.NewValueIsOutOfRangeError("y", y, 0, math.MaxFloat64)
	}

	l.y = y
	return nil
}
