// Package http exposes the planning core over a JSON API built on echo.
package http

import (
	"errors"
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	planTasksHandler       commands.PlanTasksCommandHandler
	assignTasksHandler     commands.AssignTasksCommandHandler
	startTaskHandler       commands.StartTaskCommandHandler
	completeTaskHandler    commands.CompleteTaskCommandHandler
	cancelTaskHandler      commands.CancelTaskCommandHandler
	registerAgentHandler   commands.RegisterAgentCommandHandler
	reportPositionHandler  *commands.ReportPositionCommandHandler
	setAvailabilityHandler commands.SetAgentAvailabilityCommandHandler

	// Query handlers
	getActiveTasksHandler       queries.GetActiveTasksQueryHandler
	prioritizeTasksHandler      queries.PrioritizeTasksQueryHandler
	planRouteHandler            queries.PlanRouteQueryHandler
	getPendingWarehousesHandler queries.GetPendingWarehousesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	planTasksHandler commands.PlanTasksCommandHandler,
	assignTasksHandler commands.AssignTasksCommandHandler,
	startTaskHandler commands.StartTaskCommandHandler,
	completeTaskHandler commands.CompleteTaskCommandHandler,
	cancelTaskHandler commands.CancelTaskCommandHandler,
	registerAgentHandler commands.RegisterAgentCommandHandler,
	reportPositionHandler *commands.ReportPositionCommandHandler,
	setAvailabilityHandler commands.SetAgentAvailabilityCommandHandler,
	getActiveTasksHandler queries.GetActiveTasksQueryHandler,
	prioritizeTasksHandler queries.PrioritizeTasksQueryHandler,
	planRouteHandler queries.PlanRouteQueryHandler,
	getPendingWarehousesHandler queries.GetPendingWarehousesQueryHandler,
) *Server {
	return &Server{
		planTasksHandler:            planTasksHandler,
		assignTasksHandler:          assignTasksHandler,
		startTaskHandler:            startTaskHandler,
		completeTaskHandler:         completeTaskHandler,
		cancelTaskHandler:           cancelTaskHandler,
		registerAgentHandler:        registerAgentHandler,
		reportPositionHandler:       reportPositionHandler,
		setAvailabilityHandler:      setAvailabilityHandler,
		getActiveTasksHandler:       getActiveTasksHandler,
		prioritizeTasksHandler:      prioritizeTasksHandler,
		planRouteHandler:            planRouteHandler,
		getPendingWarehousesHandler: getPendingWarehousesHandler,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/warehouses/:warehouseId/tasks/plan", s.PlanTasks)
	api.POST("/warehouses/:warehouseId/tasks/assign", s.AssignTasks)
	api.GET("/warehouses/:warehouseId/tasks/prioritized", s.GetPrioritizedTasks)
	api.GET("/warehouses/backlog", s.GetWarehouseBacklog)

	api.POST("/tasks/:taskId/start", s.StartTask)
	api.POST("/tasks/:taskId/complete", s.CompleteTask)
	api.POST("/tasks/:taskId/cancel", s.CancelTask)

	api.POST("/agents", s.RegisterAgent)
	api.POST("/agents/:agentId/position", s.ReportPosition)
	api.POST("/agents/:agentId/availability", s.SetAgentAvailability)
	api.POST("/agents/:agentId/route", s.PlanRoute)

	api.GET("/companies/:companyId/tasks/active", s.GetActiveTasks)

	e.GET("/health", s.Health)
}

// PlanTasks handles POST /api/v1/warehouses/:warehouseId/tasks/plan.
func (s *Server) PlanTasks(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("warehouseId"))
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id")
	}

	var req PlanTasksRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	companyID, err := kernel.UUIDFromString(req.CompanyID)
	if err != nil {
		return badRequest(ctx, "Invalid company id")
	}

	lines := make([]commands.OrderLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		line, lineErr := buildOrderLine(lr)
		if lineErr != nil {
			return badRequest(ctx, "Invalid order line: "+lineErr.Error())
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewPlanTasksCommand(companyID, warehouseID, lines)
	if err != nil {
		return badRequest(ctx, "Invalid planning request: "+err.Error())
	}

	result, err := s.planTasksHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := PlanTasksResponse{
		CreatedTaskIDs: make([]string, len(result.CreatedTaskIDs)),
		Failures:       make([]PlanFailureResponse, len(result.Failures)),
	}
	for i, id := range result.CreatedTaskIDs {
		response.CreatedTaskIDs[i] = id.String()
	}
	for i, failure := range result.Failures {
		response.Failures[i] = PlanFailureResponse{
			OrderID: failure.OrderID.String(),
			LineID:  failure.LineID.String(),
			Reason:  failure.Reason,
		}
	}

	return ctx.JSON(http.StatusCreated, response)
}

// AssignTasks handles POST /api/v1/warehouses/:warehouseId/tasks/assign.
func (s *Server) AssignTasks(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("warehouseId"))
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id")
	}

	var req AssignTasksRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	taskIDs, err := parseUUIDs(req.TaskIDs)
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	cmd, err := commands.NewAssignTasksCommand(warehouseID, taskIDs)
	if err != nil {
		return badRequest(ctx, "Invalid assignment request: "+err.Error())
	}

	result, err := s.assignTasksHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := AssignTasksResponse{
		Assigned:   make([]AssignedTaskResponse, len(result.Assigned)),
		Unassigned: make([]UnassignedTaskResponse, len(result.Unassigned)),
	}
	for i, assigned := range result.Assigned {
		response.Assigned[i] = AssignedTaskResponse{
			TaskID:  assigned.TaskID.String(),
			AgentID: assigned.AgentID.String(),
		}
	}
	for i, unassigned := range result.Unassigned {
		response.Unassigned[i] = UnassignedTaskResponse{
			TaskID: unassigned.TaskID.String(),
			Reason: unassigned.Reason,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StartTask handles POST /api/v1/tasks/:taskId/start.
func (s *Server) StartTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	cmd, err := commands.NewStartTaskCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid start request: "+err.Error())
	}

	if err = s.startTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteTask handles POST /api/v1/tasks/:taskId/complete.
func (s *Server) CompleteTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var req CompleteTaskRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	agentID, err := kernel.UUIDFromString(req.AgentID)
	if err != nil {
		return badRequest(ctx, "Invalid agent id")
	}

	cmd, err := commands.NewCompleteTaskCommand(taskID, agentID)
	if err != nil {
		return badRequest(ctx, "Invalid completion request: "+err.Error())
	}

	if err = s.completeTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelTask handles POST /api/v1/tasks/:taskId/cancel.
func (s *Server) CancelTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	cmd, err := commands.NewCancelTaskCommand(taskID)
	if err != nil {
		return badRequest(ctx, "Invalid cancel request: "+err.Error())
	}

	result, err := s.cancelTaskHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CancelTaskResponse{AlreadyFinal: result.AlreadyFinal})
}

// RegisterAgent handles POST /api/v1/agents.
func (s *Server) RegisterAgent(ctx echo.Context) error {
	var req RegisterAgentRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	warehouseID, err := kernel.UUIDFromString(req.WarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id")
	}

	cmd, err := commands.NewRegisterAgentCommand(agentTypeFromString(req.Type), req.Name, req.Model, warehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid agent data: "+err.Error())
	}

	agentID, err := s.registerAgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterAgentResponse{ID: agentID.String()})
}

// ReportPosition handles POST /api/v1/agents/:agentId/position.
func (s *Server) ReportPosition(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("agentId"))
	if err != nil {
		return badRequest(ctx, "Invalid agent id")
	}

	var req ReportPositionRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	position, err := kernel.NewLocation(kernel.Coordinate(req.X), kernel.Coordinate(req.Y))
	if err != nil {
		return badRequest(ctx, "Invalid position: "+err.Error())
	}

	cmd, err := commands.NewReportPositionCommand(agentID, position, req.ReportedAt)
	if err != nil {
		return badRequest(ctx, "Invalid telemetry report: "+err.Error())
	}

	result, err := s.reportPositionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReportPositionResponse{Applied: result.Applied})
}

// SetAgentAvailability handles POST /api/v1/agents/:agentId/availability.
func (s *Server) SetAgentAvailability(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("agentId"))
	if err != nil {
		return badRequest(ctx, "Invalid agent id")
	}

	var req SetAgentAvailabilityRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetAgentAvailabilityCommand(agentID, *req.Available)
	if err != nil {
		return badRequest(ctx, "Invalid availability request: "+err.Error())
	}

	if err = s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PlanRoute handles POST /api/v1/agents/:agentId/route.
func (s *Server) PlanRoute(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("agentId"))
	if err != nil {
		return badRequest(ctx, "Invalid agent id")
	}

	var req PlanRouteRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	taskIDs, err := parseUUIDs(req.TaskIDs)
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	query, err := queries.NewPlanRouteQuery(agentID, taskIDs)
	if err != nil {
		return badRequest(ctx, "Invalid route request: "+err.Error())
	}

	route, err := s.planRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, queries.ErrAgentPositionUnknown) {
			return ctx.JSON(http.StatusConflict, ErrorResponse{
				Code:    http.StatusConflict,
				Message: "Agent has not reported a position yet",
			})
		}
		return errorResponse(ctx, err)
	}

	response := PlanRouteResponse{
		OrderedTaskIDs: make([]string, len(route.OrderedTaskIDs)),
		TotalDistance:  route.TotalDistance,
	}
	for i, id := range route.OrderedTaskIDs {
		response.OrderedTaskIDs[i] = id.String()
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveTasks handles GET /api/v1/companies/:companyId/tasks/active.
func (s *Server) GetActiveTasks(ctx echo.Context) error {
	companyID, err := kernel.UUIDFromString(ctx.Param("companyId"))
	if err != nil {
		return badRequest(ctx, "Invalid company id")
	}

	query, err := queries.NewGetActiveTasksQuery(companyID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	tasks, err := s.getActiveTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]ActiveTaskResponse, len(tasks))
	for i, task := range tasks {
		item := ActiveTaskResponse{
			ID:          task.ID.String(),
			WarehouseID: task.WarehouseID.String(),
			Type:        task.Type,
			Status:      task.Status,
			Priority:    task.Priority,
			ProductID:   task.ProductID.String(),
			Quantity:    task.Quantity,
			CreatedAt:   task.CreatedAt,
		}
		if task.AssignedAgentID != nil {
			agentID := task.AssignedAgentID.String()
			item.AssignedAgentID = &agentID
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPrioritizedTasks handles GET /api/v1/warehouses/:warehouseId/tasks/prioritized.
func (s *Server) GetPrioritizedTasks(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("warehouseId"))
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id")
	}

	taskIDs, err := parseUUIDs(ctx.QueryParams()["taskId"])
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	query, err := queries.NewPrioritizeTasksQuery(warehouseID, taskIDs)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	tasks, err := s.prioritizeTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]PrioritizedTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = PrioritizedTaskResponse{
			ID:        task.ID.String(),
			Type:      task.Type,
			Priority:  task.Priority,
			CreatedAt: task.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetWarehouseBacklog handles GET /api/v1/warehouses/backlog.
func (s *Server) GetWarehouseBacklog(ctx echo.Context) error {
	query := queries.NewGetPendingWarehousesQuery()

	warehouses, err := s.getPendingWarehousesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]WarehouseBacklogResponse, len(warehouses))
	for i, warehouse := range warehouses {
		response[i] = WarehouseBacklogResponse{
			WarehouseID:  warehouse.WarehouseID.String(),
			PendingTasks: warehouse.PendingTasks,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func buildOrderLine(lr OrderLineRequest) (commands.OrderLine, error) {
	orderID, err := kernel.UUIDFromString(lr.OrderID)
	if err != nil {
		return commands.OrderLine{}, err
	}
	lineID, err := kernel.UUIDFromString(lr.LineID)
	if err != nil {
		return commands.OrderLine{}, err
	}
	productID, err := kernel.UUIDFromString(lr.ProductID)
	if err != nil {
		return commands.OrderLine{}, err
	}

	kind := taskTypeFromString(lr.Kind)
	if kind != worktask.TypeTransfer {
		return commands.NewOrderLine(orderID, lineID, kind, productID, lr.Quantity, lr.Priority)
	}

	var destinationBinID *kernel.UUID
	if lr.DestinationBinID != nil {
		binID, binErr := kernel.UUIDFromString(*lr.DestinationBinID)
		if binErr != nil {
			return commands.OrderLine{}, binErr
		}
		destinationBinID = &binID
	}

	return commands.NewTransferLine(
		orderID, lineID, productID, lr.Quantity, lr.Priority, destinationBinID, lr.DestinationCode)
}

func parseUUIDs(values []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(values))
	for _, value := range values {
		id, err := kernel.UUIDFromString(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(req); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}
	return nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors to HTTP status codes: missing
// aggregates to 404, domain validation failures to 400, client-state
// conflicts (optimistic concurrency losses, state machine violations,
// wrong reporting agent) to 409, everything else to 500.
func errorResponse(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	var outOfRange *errs.ValueIsOutOfRangeError

	switch {
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrConcurrencyConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Resource was modified concurrently, retry the request",
		})
	case errors.Is(err, worktask.ErrInvalidTransition), errors.Is(err, commands.ErrAgentMismatch):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.As(err, &invalid), errors.As(err, &required), errors.As(err, &outOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
