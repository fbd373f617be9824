package queries

import (
	"context"
	"database/sql"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanRouteQueryHandler computes an advisory visiting order for an agent.
// Task targets are resolved to floor coordinates through the active map
// hierarchy; the pluggable routing strategy then orders the resolvable stops.
type PlanRouteQueryHandler struct {
	db       *gorm.DB
	strategy services.RouteStrategy
}

// NewPlanRouteQueryHandler creates a handler for route planning queries.
func NewPlanRouteQueryHandler(db *gorm.DB, strategy services.RouteStrategy) PlanRouteQueryHandler {
	return PlanRouteQueryHandler{db: db, strategy: strategy}
}

// Handle executes the query.
func (h PlanRouteQueryHandler) Handle(
	ctx context.Context,
	query PlanRouteQuery,
) (PlanRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PlanRouteQueryResponse{}, err
	}

	start, err := h.agentPosition(ctx, query.AgentID())
	if err != nil {
		return PlanRouteQueryResponse{}, err
	}

	stops, err := h.loadStops(ctx, query.TaskIDs())
	if err != nil {
		return PlanRouteQueryResponse{}, err
	}

	ordered, totalDistance, err := h.strategy.Sequence(start, stops)
	if err != nil {
		return PlanRouteQueryResponse{}, err
	}

	return PlanRouteQueryResponse{
		OrderedTaskIDs: ordered,
		TotalDistance:  totalDistance,
	}, nil
}

func (h PlanRouteQueryHandler) agentPosition(
	ctx context.Context, agentID kernel.UUID,
) (kernel.Location, error) {
	var positionX, positionY sql.NullFloat64

	row := h.db.WithContext(ctx).Raw(`
		SELECT position_x, position_y
		FROM agents
		WHERE id = ? AND deleted_at IS NULL
	`, agentID.String()).Row()

	if err := row.Scan(&positionX, &positionY); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kernel.Location{}, errs.NewObjectNotFoundError("agentId", agentID)
		}
		return kernel.Location{}, err
	}

	if !positionX.Valid || !positionY.Valid {
		return kernel.Location{}, ErrAgentPositionUnknown
	}

	return kernel.NewLocation(
		kernel.Coordinate(positionX.Float64),
		kernel.Coordinate(positionY.Float64),
	)
}

// loadStops resolves each task to a route stop, preserving the query's task
// order. A stop's location is set only when its target bin sits on an active
// map; everything else stays nil and routes last.
func (h PlanRouteQueryHandler) loadStops(
	ctx context.Context, taskIDs []kernel.UUID,
) ([]services.RouteStop, error) {
	ids := make([]string, len(taskIDs))
	for i, id := range taskIDs {
		ids[i] = id.String()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.priority,
			m.id AS active_map_id,
			b.location_x,
			b.location_y
		FROM work_tasks t
		LEFT JOIN map_bins b ON b.id = t.target_bin_id AND b.deleted_at IS NULL
		LEFT JOIN map_racks r ON r.id = b.rack_id AND r.deleted_at IS NULL
		LEFT JOIN map_aisles a ON a.id = r.aisle_id AND a.deleted_at IS NULL
		LEFT JOIN map_zones z ON z.id = a.zone_id AND z.deleted_at IS NULL
		LEFT JOIN warehouse_maps m ON m.id = z.map_id AND m.active AND m.deleted_at IS NULL
		WHERE t.id IN ? AND t.deleted_at IS NULL
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[kernel.UUID]services.RouteStop, len(taskIDs))

	for rows.Next() {
		var id uuid.UUID
		var priority int
		var activeMapID uuid.NullUUID
		var locationX, locationY sql.NullFloat64

		if err = rows.Scan(&id, &priority, &activeMapID, &locationX, &locationY); err != nil {
			return nil, err
		}

		taskID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		stop := services.RouteStop{TaskID: taskID, Priority: priority}
		if activeMapID.Valid && locationX.Valid && locationY.Valid {
			location, locErr := kernel.NewLocation(
				kernel.Coordinate(locationX.Float64),
				kernel.Coordinate(locationY.Float64),
			)
			if locErr != nil {
				return nil, locErr
			}
			stop.Location = &location
		}
		byID[taskID] = stop
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	// Unknown ids are skipped; the rest keep the caller's order so
	// unresolvable stops route last deterministically.
	stops := make([]services.RouteStop, 0, len(byID))
	for _, taskID := range taskIDs {
		if stop, ok := byID[taskID]; ok {
			stops = append(stops, stop)
		}
	}
	return stops, nil
}
