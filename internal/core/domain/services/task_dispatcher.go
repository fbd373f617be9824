package services

import (
	"errors"
	"math"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
)

// ErrNoAvailableAgent is returned when no eligible agent exists for a task.
// This occurs when the candidate pool is empty, for example because every
// agent in the warehouse is already booked within the current batch.
var ErrNoAvailableAgent = errors.New("no available agent")

// TaskDispatcher is a domain service that selects the agent to execute a
// task: the available agent nearest to the task's resolved location.
//
// Business rules:
//   - Agents that never reported a position are treated as infinitely
//     distant and selected last
//   - With an unresolvable task location all agents rank equally
//   - Distance ties are broken by lower agent id, so selection is
//     deterministic
type TaskDispatcher struct{}

// NewTaskDispatcher creates a new TaskDispatcher instance.
func NewTaskDispatcher() TaskDispatcher {
	return TaskDispatcher{}
}

// SelectAgent finds the best agent for a task at the given location.
// taskLocation is nil when the task's target could not be spatially resolved.
func (d TaskDispatcher) SelectAgent(taskLocation *kernel.Location, agents []agent.Agent) (agent.Agent, error) {
	var (
		best     agent.Agent
		bestDist = math.Inf(1)
	)

	for _, candidate := range agents {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
		if !candidate.IsAvailable() {
			continue
		}

		dist := math.Inf(1)
		if taskLocation != nil && candidate.Position() != nil {
			var err error
			dist, err = taskLocation.Distance(*candidate.Position())
			if err != nil {
				return nil, err
			}
		}

		if best == nil || dist < bestDist || (dist == bestDist && candidate.ID().Less(best.ID())) {
			best = candidate
			bestDist = dist
		}
	}

	if best == nil {
		return nil, ErrNoAvailableAgent
	}
	return best, nil
}
