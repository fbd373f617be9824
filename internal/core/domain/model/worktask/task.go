package worktask

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// Domain errors for task operations.
var (
	// ErrTaskIsNotConstructed is returned when using an improperly initialized Task.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")
	// ErrQuantityIsRequired is returned when creating a task with quantity <= 0.
	ErrQuantityIsRequired = errs.NewValueIsRequiredError("quantity")
	// ErrTargetIsRequired is returned when a task has neither a map bin nor a
	// free-text location code.
	ErrTargetIsRequired = errs.NewValueIsRequiredError("target bin or location code")
	// ErrTargetIsAmbiguous is returned when a task names both a map bin and a
	// free-text location code.
	ErrTargetIsAmbiguous = errs.NewValueIsInvalidError("target must be a map bin or a location code, not both")
)

// Target is the physical destination of a task: either a resolvable map bin
// or a free-text location code for places that are not on the spatial map.
// Exactly one of the two is set.
type Target struct {
	binID        *kernel.UUID
	locationCode string
}

// NewBinTarget creates a Target pointing at a spatial map bin.
func NewBinTarget(binID kernel.UUID) (Target, error) {
	if err := binID.Validate(); err != nil {
		return Target{}, err
	}
	return Target{binID: &binID}, nil
}

// NewCodeTarget creates a Target carrying a free-text location code.
// Such targets cannot be spatially resolved and route last.
func NewCodeTarget(code string) (Target, error) {
	if code == "" {
		return Target{}, ErrTargetIsRequired
	}
	return Target{locationCode: code}, nil
}

// RestoreTarget reconstructs a Target from persisted columns.
func RestoreTarget(binID *kernel.UUID, code string) (Target, error) {
	t := Target{binID: binID, locationCode: code}
	if err := t.Validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}

// BinID returns the map bin id, or nil for free-text targets.
func (t Target) BinID() *kernel.UUID {
	if t.binID == nil {
		return nil
	}
	id := *t.binID
	return &id
}

// LocationCode returns the free-text code, empty for bin targets.
func (t Target) LocationCode() string {
	return t.locationCode
}

// Validate checks the exactly-one invariant.
func (t Target) Validate() error {
	switch {
	case t.binID == nil && t.locationCode == "":
		return ErrTargetIsRequired
	case t.binID != nil && t.locationCode != "":
		return ErrTargetIsAmbiguous
	case t.binID != nil:
		return t.binID.Validate()
	default:
		return nil
	}
}

// Source identifies the order line a task was planned from. The zero value
// means the task was created outside order planning (manual transfer, for
// example) and is valid.
type Source struct {
	orderID *kernel.UUID
	lineID  *kernel.UUID
}

// NewSource creates a Source for an order line.
func NewSource(orderID, lineID kernel.UUID) (Source, error) {
	if err := errors.Join(orderID.Validate(), lineID.Validate()); err != nil {
		return Source{}, err
	}
	return Source{orderID: &orderID, lineID: &lineID}, nil
}

// RestoreSource reconstructs a Source from persisted columns.
// Both ids must be set together or both nil.
func RestoreSource(orderID, lineID *kernel.UUID) (Source, error) {
	if (orderID == nil) != (lineID == nil) {
		return Source{}, errs.NewValueIsInvalidError("source order and line must be set together")
	}
	return Source{orderID: orderID, lineID: lineID}, nil
}

// OrderID returns the source order id, or nil.
func (s Source) OrderID() *kernel.UUID { return copyID(s.orderID) }

// LineID returns the source order line id, or nil.
func (s Source) LineID() *kernel.UUID { return copyID(s.lineID) }

// Task is the aggregate root for a unit of physical warehouse work.
//
// Invariants:
//   - exactly one product, one positive quantity, one target location
//   - assignedAgentID is set exactly while status is Assigned or InProgress
//   - completedAt is set exactly when status is Completed
//   - status only moves along the transitions defined on Status
//
// The version field supports optimistic concurrency in the store: it reflects
// the state loaded from persistence and is bumped there on successful update.
type Task struct {
	id          kernel.UUID
	companyID   kernel.UUID
	warehouseID kernel.UUID
	taskType    Type
	priority    int
	status      Status

	assignedAgentID   *kernel.UUID
	assignedAgentType agent.Type

	target    Target
	productID kernel.UUID
	quantity  int
	source    Source
	notes     string

	createdAt   time.Time
	assignedAt  *time.Time
	startedAt   *time.Time
	completedAt *time.Time

	version int
	guard   guard.ConstructorGuard
}

// NewTask creates a Pending task. This is the only entry point for fresh
// tasks; they are produced exclusively by order planning.
func NewTask(
	id kernel.UUID,
	companyID kernel.UUID,
	warehouseID kernel.UUID,
	taskType Type,
	priority int,
	productID kernel.UUID,
	quantity int,
	target Target,
	source Source,
	createdAt time.Time,
) (*Task, error) {
	task := &Task{
		status:  Pending,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		task.setID(id),
		task.setCompanyID(companyID),
		task.setWarehouseID(warehouseID),
		task.setType(taskType),
		task.setPriority(priority),
		task.setProductID(productID),
		task.setQuantity(quantity),
		task.setTarget(target),
		task.setSource(source),
		task.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return task, nil
}

// RestoreTask reconstructs a task from persistent storage, including its
// status, agent reference, timestamps, and optimistic concurrency version.
// The restored state must satisfy the aggregate invariants.
func RestoreTask(
	id kernel.UUID,
	companyID kernel.UUID,
	warehouseID kernel.UUID,
	taskType Type,
	priority int,
	status Status,
	assignedAgentID *kernel.UUID,
	assignedAgentType agent.Type,
	productID kernel.UUID,
	quantity int,
	target Target,
	source Source,
	notes string,
	createdAt time.Time,
	assignedAt, startedAt, completedAt *time.Time,
	version int,
) (*Task, error) {
	task := &Task{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		task.setID(id),
		task.setCompanyID(companyID),
		task.setWarehouseID(warehouseID),
		task.setType(taskType),
		task.setPriority(priority),
		task.setStatus(status),
		task.setProductID(productID),
		task.setQuantity(quantity),
		task.setTarget(target),
		task.setSource(source),
		task.setCreatedAt(createdAt),
		task.setVersion(version),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveAgent(assignedAgentID != nil); err != nil {
		return nil, err
	}
	if assignedAgentID != nil {
		if err := errors.Join(assignedAgentID.Validate(), assignedAgentType.Validate()); err != nil {
			return nil, err
		}
		task.assignedAgentID = copyID(assignedAgentID)
		task.assignedAgentType = assignedAgentType
	}

	if (status == Completed) != (completedAt != nil) {
		return nil, errs.NewValueIsInvalidError("completedAt must be set exactly for completed tasks")
	}

	task.assignedAt = copyTime(assignedAt)
	task.startedAt = copyTime(startedAt)
	task.completedAt = copyTime(completedAt)
	return task, nil
}

// Validate checks that the Task was created via a constructor.
func (t *Task) Validate() error {
	if t == nil {
		return ErrTaskIsNotConstructed
	}
	return t.guard.Validate(ErrTaskIsNotConstructed)
}

// IsEqual compares two tasks by identifier.
func (t *Task) IsEqual(other *Task) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the task's unique identifier.
func (t *Task) ID() kernel.UUID { return t.id }

// CompanyID returns the owning tenant.
func (t *Task) CompanyID() kernel.UUID { return t.companyID }

// WarehouseID returns the warehouse the work happens in.
func (t *Task) WarehouseID() kernel.UUID { return t.warehouseID }

// Type returns the kind of work.
func (t *Task) Type() Type { return t.taskType }

// Priority returns the explicit scheduling priority; higher runs first.
func (t *Task) Priority() int { return t.priority }

// Status returns the current lifecycle state.
func (t *Task) Status() Status { return t.status }

// AssignedAgentID returns the executing agent's id while the task is
// Assigned or InProgress, nil otherwise.
func (t *Task) AssignedAgentID() *kernel.UUID { return copyID(t.assignedAgentID) }

// AssignedAgentType returns the executing agent's type while assigned,
// TypeUnknown otherwise.
func (t *Task) AssignedAgentType() agent.Type { return t.assignedAgentType }

// Target returns the physical destination.
func (t *Task) Target() Target { return t.target }

// ProductID returns the product being moved.
func (t *Task) ProductID() kernel.UUID { return t.productID }

// Quantity returns the number of units being moved.
func (t *Task) Quantity() int { return t.quantity }

// Source returns the originating order line reference.
func (t *Task) Source() Source { return t.source }

// Notes returns free-form operator notes.
func (t *Task) Notes() string { return t.notes }

// CreatedAt returns the planning timestamp.
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// AssignedAt returns when the task was assigned, or nil.
func (t *Task) AssignedAt() *time.Time { return copyTime(t.assignedAt) }

// StartedAt returns when execution started, or nil.
func (t *Task) StartedAt() *time.Time { return copyTime(t.startedAt) }

// CompletedAt returns when execution finished, or nil.
func (t *Task) CompletedAt() *time.Time { return copyTime(t.completedAt) }

// Version returns the optimistic concurrency version loaded from storage.
func (t *Task) Version() int { return t.version }

// Assign hands the task to an agent. Allowed only from Pending.
func (t *Task) Assign(agentID kernel.UUID, agentType agent.Type, at time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := errors.Join(agentID.Validate(), agentType.Validate()); err != nil {
		return err
	}

	newStatus, err := t.status.Assign()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.assignedAgentID = &agentID
	t.assignedAgentType = agentType
	assignedAt := at
	t.assignedAt = &assignedAt
	return nil
}

// Start marks execution as begun. Allowed only from Assigned.
func (t *Task) Start(at time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}

	newStatus, err := t.status.Start()
	if err != nil {
		return err
	}

	t.status = newStatus
	startedAt := at
	t.startedAt = &startedAt
	return nil
}

// Complete marks the task as done. Allowed only from InProgress.
// The live agent reference is released; the execution history stays in the
// assignment timestamps and in the completion event emitted by the caller.
func (t *Task) Complete(at time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}

	newStatus, err := t.status.Complete()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.assignedAgentID = nil
	t.assignedAgentType = agent.TypeUnknown
	completedAt := at
	t.completedAt = &completedAt
	return nil
}

// Cancel withdraws the task. Allowed from Pending, Assigned, and InProgress;
// idempotent over terminal states, where it reports alreadyFinal=true and
// changes nothing.
func (t *Task) Cancel() (alreadyFinal bool, err error) {
	if err := t.Validate(); err != nil {
		return false, err
	}

	newStatus, alreadyFinal, err := t.status.Cancel()
	if err != nil {
		return false, err
	}
	if alreadyFinal {
		return true, nil
	}

	t.status = newStatus
	t.assignedAgentID = nil
	t.assignedAgentType = agent.TypeUnknown
	return false, nil
}

// AppendNote adds a free-form operator note, separated from previous notes
// with a newline.
func (t *Task) AppendNote(note string) {
	if note == "" {
		return
	}
	if t.notes == "" {
		t.notes = note
		return
	}
	t.notes += "\n" + note
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	t.companyID = id
	return nil
}

func (t *Task) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseId", err)
	}
	t.warehouseID = id
	return nil
}

func (t *Task) setType(taskType Type) error {
	if err := taskType.Validate(); err != nil {
		return err
	}
	t.taskType = taskType
	return nil
}

func (t *Task) setPriority(priority int) error {
	if priority < 0 {
		return errs.NewValueIsOutOfRangeError("priority", priority, 0, "unbounded")
	}
	t.priority = priority
	return nil
}

func (t *Task) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

func (t *Task) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	t.productID = id
	return nil
}

func (t *Task) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsRequired
	}
	t.quantity = quantity
	return nil
}

func (t *Task) setTarget(target Target) error {
	if err := target.Validate(); err != nil {
		return err
	}
	t.target = target
	return nil
}

func (t *Task) setSource(source Source) error {
	t.source = source
	return nil
}

func (t *Task) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	t.createdAt = createdAt
	return nil
}

func (t *Task) setVersion(version int) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("task version")
	}
	t.version = version
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
