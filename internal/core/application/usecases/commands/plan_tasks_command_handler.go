package commands

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehousemap"
	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// PlanFailure describes one order line the planner could not resolve a
// location for, with the reason. Failed lines never abort the rest of the
// batch.
type PlanFailure struct {
	OrderID kernel.UUID
	LineID  kernel.UUID
	Reason  string
}

// PlanTasksResult is the outcome of a best-effort planning batch.
type PlanTasksResult struct {
	CreatedTaskIDs []kernel.UUID
	Failures       []PlanFailure
}

// PlanTasksCommandHandler turns order lines into Pending work tasks.
//
// Location resolution per line kind:
//   - Pick: a bin holding sufficient available stock, from the inventory
//     collaborator
//   - Putaway: a destination chosen by the pluggable placement policy over
//     the warehouse's bin capacities
//   - Transfer: the explicit destination carried on the line, verified
//     against the active map when it names a bin
//
// Unresolvable lines are collected into the result's failures; one bad line
// never aborts the batch.
type PlanTasksCommandHandler struct {
	uowFactory PlanningUoWFactory
	inventory  ports.InventoryReader
	placement  services.PlacementPolicy
	broadcast  ports.OperationsBroadcast
}

// NewPlanTasksCommandHandler creates a handler for order planning.
func NewPlanTasksCommandHandler(
	uowFactory PlanningUoWFactory,
	inventory ports.InventoryReader,
	placement services.PlacementPolicy,
	broadcast ports.OperationsBroadcast,
) PlanTasksCommandHandler {
	return PlanTasksCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		placement:  placement,
		broadcast:  broadcast,
	}
}

// Handle processes the planning command. Created tasks are committed in one
// transaction; events are broadcast only after the commit succeeds.
func (h PlanTasksCommandHandler) Handle(
	ctx context.Context,
	command PlanTasksCommand,
) (PlanTasksResult, error) {
	if err := command.Validate(); err != nil {
		return PlanTasksResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlanTasksResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The active map verifies transfer destinations. A warehouse without one
	// can still plan; only bin-targeted transfers need it.
	activeMap, err := uow.WarehouseMapRepository().GetActiveByWarehouse(ctx, command.WarehouseID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return PlanTasksResult{}, err
	}

	taskRepo := uow.WorkTaskRepository()
	result := PlanTasksResult{}
	now := time.Now().UTC()
	var created []*worktask.Task

	for _, line := range command.Lines() {
		target, reason, err := h.resolveTarget(ctx, command.WarehouseID(), activeMap, line)
		if err != nil {
			return PlanTasksResult{}, err
		}
		if reason != "" {
			result.Failures = append(result.Failures, PlanFailure{
				OrderID: line.OrderID(),
				LineID:  line.LineID(),
				Reason:  reason,
			})
			continue
		}

		source, err := worktask.NewSource(line.OrderID(), line.LineID())
		if err != nil {
			return PlanTasksResult{}, err
		}

		task, err := worktask.NewTask(
			kernel.NewUUID(),
			command.CompanyID(),
			command.WarehouseID(),
			line.Kind(),
			line.Priority(),
			line.ProductID(),
			line.Quantity(),
			target,
			source,
			now,
		)
		if err != nil {
			return PlanTasksResult{}, err
		}

		if err := taskRepo.Add(ctx, task); err != nil {
			return PlanTasksResult{}, err
		}

		created = append(created, task)
		result.CreatedTaskIDs = append(result.CreatedTaskIDs, task.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return PlanTasksResult{}, err
	}

	for _, task := range created {
		h.notify(ctx, ports.EventTaskCreated, task)
	}

	return result, nil
}

// resolveTarget determines the task target for one line. A non-empty reason
// marks the line unresolvable without failing the batch.
func (h PlanTasksCommandHandler) resolveTarget(
	ctx context.Context,
	warehouseID kernel.UUID,
	activeMap *warehousemap.Map,
	line OrderLine,
) (worktask.Target, string, error) {
	switch line.Kind() {
	case worktask.TypePick:
		binID, err := h.inventory.FindBinWithStock(ctx, warehouseID, line.ProductID(), line.Quantity())
		if err != nil {
			return worktask.Target{}, "", err
		}
		if binID == nil {
			return worktask.Target{}, "no bin with sufficient available stock for product " + line.ProductID().String(), nil
		}
		target, err := worktask.NewBinTarget(*binID)
		return target, "", err

	case worktask.TypePutaway:
		capacities, err := h.inventory.BinCapacities(ctx, warehouseID)
		if err != nil {
			return worktask.Target{}, "", err
		}
		binID, err := h.placement.SelectBin(nil, capacities)
		if errors.Is(err, services.ErrNoBinAvailable) {
			return worktask.Target{}, "no bin with free capacity for putaway", nil
		}
		if err != nil {
			return worktask.Target{}, "", err
		}
		target, err := worktask.NewBinTarget(binID)
		return target, "", err

	case worktask.TypeTransfer:
		if line.destinationBinID != nil {
			if activeMap == nil {
				return worktask.Target{}, "warehouse has no active map to resolve destination bin", nil
			}
			if _, err := activeMap.BinLocation(*line.destinationBinID); err != nil {
				if errors.Is(err, errs.ErrObjectNotFound) {
					return worktask.Target{}, "destination bin is not on the active map", nil
				}
				return worktask.Target{}, "", err
			}
			target, err := worktask.NewBinTarget(*line.destinationBinID)
			return target, "", err
		}
		if line.destinationCode != "" {
			target, err := worktask.NewCodeTarget(line.destinationCode)
			return target, "", err
		}
		return worktask.Target{}, "transfer line has no destination", nil

	default:
		return worktask.Target{}, "unsupported line kind", nil
	}
}

func (h PlanTasksCommandHandler) notify(ctx context.Context, eventName string, task *worktask.Task) {
	if h.broadcast == nil {
		return
	}

	// Best-effort: dashboards catching up late must not fail planning.
	_ = h.broadcast.Notify(ctx, eventName, task.CompanyID(), task.ID(), "work_task", taskEventPayload(task))
}

// taskEventPayload is the wire shape shared by all task lifecycle events.
func taskEventPayload(task *worktask.Task) map[string]any {
	payload := map[string]any{
		"taskId":      task.ID().String(),
		"warehouseId": task.WarehouseID().String(),
		"type":        task.Type().String(),
		"status":      task.Status().String(),
		"priority":    task.Priority(),
	}
	if agentID := task.AssignedAgentID(); agentID != nil {
		payload["assignedAgentId"] = agentID.String()
		payload["assignedAgentType"] = task.AssignedAgentType().String()
	}
	return payload
}
