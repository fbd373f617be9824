package services

import (
	"warehouse/internal/core/domain/model/kernel"
)

// RouteStop is one candidate stop for route sequencing: a task, its
// scheduling priority, and its resolved floor position. Location is nil for
// tasks whose target could not be resolved to a map bin; such stops cannot be
// spatially ordered.
type RouteStop struct {
	TaskID   kernel.UUID
	Priority int
	Location *kernel.Location
}

// RouteStrategy computes a visiting order over a set of task locations from a
// start position. It is an injection point: callers depend only on the
// contract, never on the particular heuristic, so a smarter solver can replace
// the default without touching them.
//
// Contract:
//   - the returned ids are a permutation of the input stop ids
//   - identical input yields identical output (deterministic)
//   - stops with no resolvable location are appended at the end, preserving
//     their relative input order
//   - the returned distance is the total travel over the resolvable legs
type RouteStrategy interface {
	Sequence(start kernel.Location, stops []RouteStop) ([]kernel.UUID, float64, error)
}

// NearestNeighborRouter is the default RouteStrategy: greedy nearest-neighbor
// over Euclidean distance. From the current position it repeatedly visits the
// closest unvisited stop. Equidistant candidates are broken by higher
// priority, then by lower task id, so results are deterministic.
//
// Intentionally simple, O(n²) for n stops. Batches here are small (one
// agent's worth of tasks), so optimality is traded for predictability.
type NearestNeighborRouter struct{}

// NewNearestNeighborRouter creates a NearestNeighborRouter.
func NewNearestNeighborRouter() NearestNeighborRouter {
	return NearestNeighborRouter{}
}

// Sequence implements RouteStrategy with the greedy nearest-neighbor walk.
func (r NearestNeighborRouter) Sequence(
	start kernel.Location,
	stops []RouteStop,
) ([]kernel.UUID, float64, error) {
	if err := start.Validate(); err != nil {
		return nil, 0, err
	}

	var resolvable, unresolvable []RouteStop
	for _, stop := range stops {
		if stop.Location == nil {
			unresolvable = append(unresolvable, stop)
			continue
		}
		if err := stop.Location.Validate(); err != nil {
			return nil, 0, err
		}
		resolvable = append(resolvable, stop)
	}

	ordered := make([]kernel.UUID, 0, len(stops))
	visited := make([]bool, len(resolvable))
	current := start
	total := 0.0

	for range resolvable {
		bestIdx := -1
		bestDist := 0.0

		for i, stop := range resolvable {
			if visited[i] {
				continue
			}

			dist, err := current.Distance(*stop.Location)
			if err != nil {
				return nil, 0, err
			}

			if bestIdx == -1 || dist < bestDist || (dist == bestDist && r.wins(stop, resolvable[bestIdx])) {
				bestIdx = i
				bestDist = dist
			}
		}

		visited[bestIdx] = true
		ordered = append(ordered, resolvable[bestIdx].TaskID)
		current = *resolvable[bestIdx].Location
		total += bestDist
	}

	for _, stop := range unresolvable {
		ordered = append(ordered, stop.TaskID)
	}

	return ordered, total, nil
}

// wins breaks an exact distance tie: higher priority first, then lower task id.
func (r NearestNeighborRouter) wins(candidate, best RouteStop) bool {
	if candidate.Priority != best.Priority {
		return candidate.Priority > best.Priority
	}
	return candidate.TaskID.Less(best.TaskID)
}
