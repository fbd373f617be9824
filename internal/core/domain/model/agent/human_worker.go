package agent

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// Domain errors for agent construction.
var (
	// ErrDisplayNameIsRequired is returned when creating an agent without a name.
	ErrDisplayNameIsRequired = errs.NewValueIsRequiredError("displayName")
	// ErrHumanWorkerIsNotConstructed is returned when using an improperly
	// initialized HumanWorker.
	ErrHumanWorkerIsNotConstructed = errors.New("HumanWorker must be created via NewHumanWorker constructor")
)

// HumanWorker is a human picker or putaway operator.
//
// Workers start available and without a position; their position appears once
// the first handheld telemetry report arrives.
type HumanWorker struct {
	id       kernel.UUID
	name     string
	presence presence
	guard    guard.ConstructorGuard
}

// NewHumanWorker creates an available worker in the given warehouse,
// with no position reported yet.
func NewHumanWorker(id kernel.UUID, name string, warehouseID kernel.UUID) (*HumanWorker, error) {
	w := &HumanWorker{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setWarehouseID(warehouseID),
	); err != nil {
		return nil, err
	}

	w.presence.available = true
	return w, nil
}

// RestoreHumanWorker reconstructs a worker from persistent storage,
// including availability and the last applied position report.
func RestoreHumanWorker(
	id kernel.UUID,
	name string,
	warehouseID kernel.UUID,
	available bool,
	position *kernel.Location,
	reportedAt *time.Time,
) (*HumanWorker, error) {
	w := &HumanWorker{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setWarehouseID(warehouseID),
		w.presence.restorePosition(position, reportedAt),
	); err != nil {
		return nil, err
	}

	w.presence.available = available
	return w, nil
}

// Validate checks that the worker was created via its constructor.
func (w *HumanWorker) Validate() error {
	if w == nil {
		return ErrHumanWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrHumanWorkerIsNotConstructed)
}

// ID returns the worker's unique identifier.
func (w *HumanWorker) ID() kernel.UUID { return w.id }

// Type returns TypeHuman.
func (w *HumanWorker) Type() Type { return TypeHuman }

// DisplayName returns the worker's name.
func (w *HumanWorker) DisplayName() string { return w.name }

// IsAvailable reports whether the worker can take new assignments.
func (w *HumanWorker) IsAvailable() bool { return w.presence.available }

// WarehouseID returns the warehouse the worker operates in.
func (w *HumanWorker) WarehouseID() kernel.UUID { return w.presence.warehouseID }

// Position returns the last reported position, or nil if never reported.
func (w *HumanWorker) Position() *kernel.Location { return w.presence.positionCopy() }

// PositionReportedAt returns the time of the last applied report, or nil.
func (w *HumanWorker) PositionReportedAt() *time.Time { return w.presence.reportedAtCopy() }

// ReportPosition applies a telemetry report under the monotonicity rule.
func (w *HumanWorker) ReportPosition(position kernel.Location, reportedAt time.Time) (bool, error) {
	if err := w.Validate(); err != nil {
		return false, err
	}
	return w.presence.reportPosition(position, reportedAt)
}

// SetAvailable flips the availability flag.
func (w *HumanWorker) SetAvailable(available bool) {
	w.presence.available = available
}

func (w *HumanWorker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *HumanWorker) setName(name string) error {
	if name == "" {
		return ErrDisplayNameIsRequired
	}
	w.name = name
	return nil
}

func (w *HumanWorker) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	w.presence.warehouseID = warehouseID
	return nil
}
