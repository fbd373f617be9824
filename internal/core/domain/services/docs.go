// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the planning core. It implements logic that
// doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - RouteStrategy / NearestNeighborRouter: visiting-order computation over task locations
//   - PlacementPolicy / NearestAvailableBinPolicy: putaway destination selection
//   - TaskDispatcher: nearest-agent selection for task assignment
//
// All services here are stateless, pure, and deterministic; persistence and
// transaction orchestration live in the application layer.
package services
