package agent

import (
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// Type discriminates the concrete agent variants.
type Type int

const (
	// TypeUnknown represents an invalid or undefined agent type.
	TypeUnknown Type = iota

	// TypeHuman is a human warehouse worker.
	TypeHuman

	// TypeRobot is an autonomous mobile robot. Robots are remote agents: this
	// core only receives their position and completion reports, it never
	// drives their motion.
	TypeRobot
)

// getTypeStrings returns the string representation for every Type value.
func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown: "Unknown",
		TypeHuman:   "Human",
		TypeRobot:   "Robot",
	}
}

// Validate checks that t is one of the defined agent types.
func (t Type) Validate() error {
	if t != TypeHuman && t != TypeRobot {
		return errs.NewValueIsInvalidErrorWithCause("agentType", fmt.Errorf("%d is not a valid agent type", t))
	}
	return nil
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// Agent is the workforce abstraction: anything that can execute a work task.
// Implemented by HumanWorker and Robot; callers select agents only through
// this interface.
//
// Position is nil for agents that have never reported telemetry; such agents
// are treated as infinitely distant during assignment and selected last.
type Agent interface {
	// ID returns the agent's unique identifier.
	ID() kernel.UUID

	// Type returns the concrete variant discriminator.
	Type() Type

	// DisplayName returns the human-readable name shown on dashboards.
	DisplayName() string

	// IsAvailable reports whether the agent can take new assignments.
	IsAvailable() bool

	// WarehouseID returns the warehouse the agent currently operates in.
	WarehouseID() kernel.UUID

	// Position returns the last reported floor position, or nil if the agent
	// has never reported.
	Position() *kernel.Location

	// PositionReportedAt returns the timestamp of the last applied position
	// report, or nil if the agent has never reported.
	PositionReportedAt() *time.Time

	// ReportPosition applies a telemetry report if it is newer than the last
	// applied one. Returns applied=false, with no error, for stale reports.
	ReportPosition(position kernel.Location, reportedAt time.Time) (applied bool, err error)

	// SetAvailable flips the availability flag.
	SetAvailable(available bool)

	// Validate checks that the agent was properly constructed.
	Validate() error
}

// presence holds the mutable operational state shared by all agent variants:
// home warehouse, availability, and monotonic position telemetry.
type presence struct {
	warehouseID kernel.UUID
	available   bool
	position    *kernel.Location
	reportedAt  *time.Time
}

// reportPosition applies a position report under the monotonicity rule:
// a report is applied only if it is strictly newer than the last applied one.
// Stale reports return applied=false and no error.
func (p *presence) reportPosition(position kernel.Location, reportedAt time.Time) (bool, error) {
	if err := position.Validate(); err != nil {
		return false, err
	}
	if reportedAt.IsZero() {
		return false, errs.NewValueIsRequiredError("reportedAt")
	}

	if p.reportedAt != nil && !reportedAt.After(*p.reportedAt) {
		return false, nil
	}

	pos := position
	at := reportedAt
	p.position = &pos
	p.reportedAt = &at
	return true, nil
}

// restorePosition installs a persisted position without the monotonicity
// check. Position and reportedAt must both be set or both be nil.
func (p *presence) restorePosition(position *kernel.Location, reportedAt *time.Time) error {
	if (position == nil) != (reportedAt == nil) {
		return errs.NewValueIsInvalidError("position and reportedAt must be set together")
	}
	if position != nil {
		if err := position.Validate(); err != nil {
			return err
		}
		pos := *position
		at := *reportedAt
		p.position = &pos
		p.reportedAt = &at
	}
	return nil
}

func (p *presence) positionCopy() *kernel.Location {
	if p.position == nil {
		return nil
	}
	pos := *p.position
	return &pos
}

func (p *presence) reportedAtCopy() *time.Time {
	if p.reportedAt == nil {
		return nil
	}
	at := *p.reportedAt
	return &at
}
