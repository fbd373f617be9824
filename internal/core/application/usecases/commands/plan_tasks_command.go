package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrPlanTasksCommandIsNotConstructed = errors.New(
		"PlanTasksCommand must be created via NewPlanTasksCommand constructor",
	)
	ErrNoLinesToPlan = errors.New("at least one order line is required")
)

// OrderLine is one line of the order-source input to planning: a product, a
// quantity, and the order reference it came from. The line kind determines
// the task type produced: Pick for sales lines, Putaway for purchase receipt
// lines, Transfer for warehouse-to-warehouse moves.
type OrderLine struct {
	orderID   kernel.UUID
	lineID    kernel.UUID
	kind      worktask.Type
	productID kernel.UUID
	quantity  int
	priority  int

	// Transfer lines carry their explicit destination; other kinds resolve
	// theirs during planning.
	destinationBinID *kernel.UUID
	destinationCode  string
}

// NewOrderLine creates a pick or putaway line. The destination is resolved
// by the planner.
func NewOrderLine(
	orderID kernel.UUID,
	lineID kernel.UUID,
	kind worktask.Type,
	productID kernel.UUID,
	quantity int,
	priority int,
) (OrderLine, error) {
	line := OrderLine{
		orderID:   orderID,
		lineID:    lineID,
		kind:      kind,
		productID: productID,
		quantity:  quantity,
		priority:  priority,
	}
	if err := line.validate(); err != nil {
		return OrderLine{}, err
	}
	return line, nil
}

// NewTransferLine creates a transfer line with its explicit destination,
// either a map bin or a free-text location code.
func NewTransferLine(
	orderID kernel.UUID,
	lineID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	priority int,
	destinationBinID *kernel.UUID,
	destinationCode string,
) (OrderLine, error) {
	line := OrderLine{
		orderID:          orderID,
		lineID:           lineID,
		kind:             worktask.TypeTransfer,
		productID:        productID,
		quantity:         quantity,
		priority:         priority,
		destinationBinID: destinationBinID,
		destinationCode:  destinationCode,
	}
	if err := line.validate(); err != nil {
		return OrderLine{}, err
	}
	return line, nil
}

// OrderID returns the source order id.
func (l OrderLine) OrderID() kernel.UUID { return l.orderID }

// LineID returns the source order line id.
func (l OrderLine) LineID() kernel.UUID { return l.lineID }

// Kind returns the task type this line plans into.
func (l OrderLine) Kind() worktask.Type { return l.kind }

// ProductID returns the product being moved.
func (l OrderLine) ProductID() kernel.UUID { return l.productID }

// Quantity returns the number of units on the line.
func (l OrderLine) Quantity() int { return l.quantity }

// Priority returns the scheduling priority for the resulting task.
func (l OrderLine) Priority() int { return l.priority }

func (l OrderLine) validate() error {
	if err := errors.Join(
		l.orderID.Validate(),
		l.lineID.Validate(),
		l.kind.Validate(),
		l.productID.Validate(),
	); err != nil {
		return err
	}
	if l.quantity <= 0 {
		return errs.NewValueIsRequiredError("quantity")
	}
	if l.priority < 0 {
		return errs.NewValueIsOutOfRangeError("priority", l.priority, 0, "unbounded")
	}
	if l.destinationBinID != nil {
		return l.destinationBinID.Validate()
	}
	return nil
}

// PlanTasksCommand requests best-effort batch planning: one Pending work task
// per resolvable order line.
//
// Example:
//
//	cmd, err := NewPlanTasksCommand(companyID, warehouseID, lines)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type PlanTasksCommand struct { //nolint:recvcheck //using for validation
	companyID   kernel.UUID
	warehouseID kernel.UUID
	lines       []OrderLine

	guard guard.ConstructorGuard
}

// NewPlanTasksCommand creates a command to plan tasks from order lines.
func NewPlanTasksCommand(
	companyID kernel.UUID,
	warehouseID kernel.UUID,
	lines []OrderLine,
) (PlanTasksCommand, error) {
	command := PlanTasksCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCompanyID(companyID),
		command.setWarehouseID(warehouseID),
		command.setLines(lines),
	); err != nil {
		return PlanTasksCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanTasksCommand) Validate() error {
	return c.guard.Validate(ErrPlanTasksCommandIsNotConstructed)
}

// CompanyID returns the owning tenant.
func (c PlanTasksCommand) CompanyID() kernel.UUID { return c.companyID }

// WarehouseID returns the warehouse the tasks are planned for.
func (c PlanTasksCommand) WarehouseID() kernel.UUID { return c.warehouseID }

// Lines returns the order lines to plan.
func (c PlanTasksCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *PlanTasksCommand) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	c.companyID = id
	return nil
}

func (c *PlanTasksCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseId", err)
	}
	c.warehouseID = id
	return nil
}

func (c *PlanTasksCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrNoLinesToPlan
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
