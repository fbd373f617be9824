package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrPlanRouteQueryIsNotConstructed = errors.New(
		"PlanRouteQuery must be created via NewPlanRouteQuery constructor",
	)
	ErrNoTasksToRoute = errors.New("at least one task is required to plan a route")

	// ErrAgentPositionUnknown is returned when the agent has never reported
	// telemetry, so there is no start point to route from.
	ErrAgentPositionUnknown = errors.New("agent has no known position to route from")
)

// PlanRouteQuery computes a visiting order over an agent's tasks, starting
// from the agent's last reported position. The route is advisory; it changes
// nothing and can be recomputed at will.
type PlanRouteQuery struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	taskIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlanRouteQuery creates a route planning query for an agent and an
// explicit set of tasks.
func NewPlanRouteQuery(agentID kernel.UUID, taskIDs []kernel.UUID) (PlanRouteQuery, error) {
	query := PlanRouteQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setAgentID(agentID),
		query.setTaskIDs(taskIDs),
	); err != nil {
		return PlanRouteQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q PlanRouteQuery) Validate() error {
	return q.guard.Validate(ErrPlanRouteQueryIsNotConstructed)
}

// AgentID returns the agent the route starts from.
func (q PlanRouteQuery) AgentID() kernel.UUID { return q.agentID }

// TaskIDs returns the tasks to visit.
func (q PlanRouteQuery) TaskIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(q.taskIDs))
	copy(out, q.taskIDs)
	return out
}

func (q *PlanRouteQuery) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	q.agentID = id
	return nil
}

func (q *PlanRouteQuery) setTaskIDs(taskIDs []kernel.UUID) error {
	if len(taskIDs) == 0 {
		return ErrNoTasksToRoute
	}
	for _, id := range taskIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	q.taskIDs = make([]kernel.UUID, len(taskIDs))
	copy(q.taskIDs, taskIDs)
	return nil
}

// PlanRouteQueryResponse is the computed visiting order. Tasks whose targets
// cannot be spatially resolved come last, in input order, and contribute
// nothing to the total distance.
type PlanRouteQueryResponse struct {
	OrderedTaskIDs []kernel.UUID
	TotalDistance  float64
}
