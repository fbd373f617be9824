package worktask

import (
	"errors"
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Status represents the lifecycle state of a work task.
// It implements a state machine with defined transitions so tasks follow the
// physical execution workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> InProgress ──> Completed
//	   │            │             │
//	   └────────────┴─────────────┴──────> Cancelled
//
// Completed and Cancelled are terminal. Start is mandatory: a task cannot be
// completed straight from Assigned.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status of a freshly planned task,
	// waiting to be assigned to an agent.
	Pending

	// Assigned indicates the task has been handed to a specific agent
	// but physical work has not started.
	Assigned

	// InProgress indicates the assigned agent has started executing the task.
	InProgress

	// Completed indicates the task was executed successfully. Terminal.
	Completed

	// Cancelled indicates the task was withdrawn before completion. Terminal.
	Cancelled
)

// ErrInvalidTransition is the unwrap target for InvalidTransitionError,
// letting callers classify state-machine violations with errors.Is.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status transition that the state machine
// does not allow, carrying both the current and the requested status.
type InvalidTransitionError struct {
	Current   Status
	Requested Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(current, requested Status) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Requested: requested}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// getStatusStrings returns the string representation for every Status value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		Assigned:      "Assigned",
		InProgress:    "InProgress",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
	}
}

// getValidStatusStrings returns only valid Status values, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Assigned:   "Assigned",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks that s is one of the defined statuses.
// Used when reconstructing tasks from external sources.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateCanHaveAgent validates consistency between status and agent
// assignment: only Assigned and InProgress tasks carry a live agent reference.
// Used when restoring tasks from persistence.
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	active := s == Assigned || s == InProgress
	if hasAgent && !active {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have an assigned agent", s.String()),
		)
	}

	if !hasAgent && active {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no assigned agent", s.String()),
		)
	}

	return nil
}

// Assign transitions the status to Assigned.
// Allowed only from Pending; anything else is an InvalidTransitionError.
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, NewInvalidTransitionError(s, Assigned)
	}

	return Assigned, nil
}

// Start transitions the status to InProgress.
// Allowed only from Assigned.
func (s Status) Start() (Status, error) {
	if s != Assigned {
		return 0, NewInvalidTransitionError(s, InProgress)
	}

	return InProgress, nil
}

// Complete transitions the status to Completed.
// Allowed only from InProgress: starting a task is mandatory, completion
// cannot skip straight from Assigned.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, NewInvalidTransitionError(s, Completed)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Cancel is idempotent over terminal states: cancelling a Completed or
// Cancelled task reports alreadyFinal=true with the status unchanged and no
// error, so retries are safe. Cancelling from Pending, Assigned, or
// InProgress yields Cancelled.
func (s Status) Cancel() (newStatus Status, alreadyFinal bool, err error) {
	if s.IsTerminal() {
		return s, true, nil
	}

	if err := s.Validate(); err != nil {
		return 0, false, NewInvalidTransitionError(s, Cancelled)
	}

	return Cancelled, false, nil
}
