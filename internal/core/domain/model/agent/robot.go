package agent

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

// ErrRobotIsNotConstructed is returned when using an improperly initialized Robot.
var ErrRobotIsNotConstructed = errors.New("Robot must be created via NewRobot constructor")

// Robot is an autonomous mobile robot. The planning core never controls robot
// motion; robots push position reports over the telemetry surface and confirm
// task completion the same way handhelds do for human workers.
type Robot struct {
	id       kernel.UUID
	name     string
	model    string
	presence presence
	guard    guard.ConstructorGuard
}

// NewRobot creates an available robot in the given warehouse, with no
// position reported yet. model is the hardware model label and may be empty.
func NewRobot(id kernel.UUID, name string, model string, warehouseID kernel.UUID) (*Robot, error) {
	r := &Robot{
		model: model,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setWarehouseID(warehouseID),
	); err != nil {
		return nil, err
	}

	r.presence.available = true
	return r, nil
}

// RestoreRobot reconstructs a robot from persistent storage.
func RestoreRobot(
	id kernel.UUID,
	name string,
	model string,
	warehouseID kernel.UUID,
	available bool,
	position *kernel.Location,
	reportedAt *time.Time,
) (*Robot, error) {
	r := &Robot{
		model: model,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setWarehouseID(warehouseID),
		r.presence.restorePosition(position, reportedAt),
	); err != nil {
		return nil, err
	}

	r.presence.available = available
	return r, nil
}

// Validate checks that the robot was created via its constructor.
func (r *Robot) Validate() error {
	if r == nil {
		return ErrRobotIsNotConstructed
	}
	return r.guard.Validate(ErrRobotIsNotConstructed)
}

// ID returns the robot's unique identifier.
func (r *Robot) ID() kernel.UUID { return r.id }

// Type returns TypeRobot.
func (r *Robot) Type() Type { return TypeRobot }

// DisplayName returns the robot's name.
func (r *Robot) DisplayName() string { return r.name }

// Model returns the hardware model label.
func (r *Robot) Model() string { return r.model }

// IsAvailable reports whether the robot can take new assignments.
func (r *Robot) IsAvailable() bool { return r.presence.available }

// WarehouseID returns the warehouse the robot operates in.
func (r *Robot) WarehouseID() kernel.UUID { return r.presence.warehouseID }

// Position returns the last reported position, or nil if never reported.
func (r *Robot) Position() *kernel.Location { return r.presence.positionCopy() }

// PositionReportedAt returns the time of the last applied report, or nil.
func (r *Robot) PositionReportedAt() *time.Time { return r.presence.reportedAtCopy() }

// ReportPosition applies a telemetry report under the monotonicity rule.
func (r *Robot) ReportPosition(position kernel.Location, reportedAt time.Time) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	return r.presence.reportPosition(position, reportedAt)
}

// SetAvailable flips the availability flag.
func (r *Robot) SetAvailable(available bool) {
	r.presence.available = available
}

func (r *Robot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Robot) setName(name string) error {
	if name == "" {
		return ErrDisplayNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Robot) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	r.presence.warehouseID = warehouseID
	return nil
}
