package http

import (
	"time"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/worktask"

	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface so request DTOs can carry validate tags.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator creates the request validator for the echo server.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator.
func (v *CustomValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// ErrorResponse is the JSON error body for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderLineRequest is one order line submitted for planning.
type OrderLineRequest struct {
	OrderID          string  `json:"orderId" validate:"required,uuid"`
	LineID           string  `json:"lineId" validate:"required,uuid"`
	Kind             string  `json:"kind" validate:"required,oneof=Pick Putaway Transfer"`
	ProductID        string  `json:"productId" validate:"required,uuid"`
	Quantity         int     `json:"quantity" validate:"required,gt=0"`
	Priority         int     `json:"priority" validate:"gte=0"`
	DestinationBinID *string `json:"destinationBinId,omitempty" validate:"omitempty,uuid"`
	DestinationCode  string  `json:"destinationCode,omitempty"`
}

// PlanTasksRequest asks the planner to turn order lines into work tasks.
type PlanTasksRequest struct {
	CompanyID string             `json:"companyId" validate:"required,uuid"`
	Lines     []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// PlanFailureResponse is one order line the planner could not resolve.
type PlanFailureResponse struct {
	OrderID string `json:"orderId"`
	LineID  string `json:"lineId"`
	Reason  string `json:"reason"`
}

// PlanTasksResponse reports the outcome of one planning batch.
type PlanTasksResponse struct {
	CreatedTaskIDs []string              `json:"createdTaskIds"`
	Failures       []PlanFailureResponse `json:"failures,omitempty"`
}

// AssignTasksRequest triggers an assignment pass. An empty task list covers
// every pending task of the warehouse.
type AssignTasksRequest struct {
	TaskIDs []string `json:"taskIds,omitempty" validate:"omitempty,dive,uuid"`
}

// AssignedTaskResponse is one successful task-to-agent match.
type AssignedTaskResponse struct {
	TaskID  string `json:"taskId"`
	AgentID string `json:"agentId"`
}

// UnassignedTaskResponse is one task left pending, with the reason.
type UnassignedTaskResponse struct {
	TaskID string `json:"taskId"`
	Reason string `json:"reason"`
}

// AssignTasksResponse reports the per-task outcome of one assignment pass.
type AssignTasksResponse struct {
	Assigned   []AssignedTaskResponse   `json:"assigned"`
	Unassigned []UnassignedTaskResponse `json:"unassigned,omitempty"`
}

// CompleteTaskRequest finishes a task on behalf of its assigned agent.
type CompleteTaskRequest struct {
	AgentID string `json:"agentId" validate:"required,uuid"`
}

// CancelTaskResponse reports whether the cancel changed anything.
type CancelTaskResponse struct {
	AlreadyFinal bool `json:"alreadyFinal"`
}

// RegisterAgentRequest adds a worker or robot to a warehouse's pool.
// Model is required for robots and must be empty for human workers.
type RegisterAgentRequest struct {
	Type        string `json:"type" validate:"required,oneof=Human Robot"`
	Name        string `json:"name" validate:"required"`
	Model       string `json:"model,omitempty"`
	WarehouseID string `json:"warehouseId" validate:"required,uuid"`
}

// RegisterAgentResponse carries the new agent's id.
type RegisterAgentResponse struct {
	ID string `json:"id"`
}

// ReportPositionRequest is one telemetry report from an agent.
type ReportPositionRequest struct {
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	ReportedAt time.Time `json:"reportedAt" validate:"required"`
}

// ReportPositionResponse says whether the report was applied or dropped
// as stale.
type ReportPositionResponse struct {
	Applied bool `json:"applied"`
}

// SetAgentAvailabilityRequest toggles whether an agent accepts new
// assignments. A pointer distinguishes an explicit false from a missing field.
type SetAgentAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// PlanRouteRequest asks for a visiting order over the given tasks.
type PlanRouteRequest struct {
	TaskIDs []string `json:"taskIds" validate:"required,min=1,dive,uuid"`
}

// PlanRouteResponse is the computed visiting order and its travel distance.
type PlanRouteResponse struct {
	OrderedTaskIDs []string `json:"orderedTaskIds"`
	TotalDistance  float64  `json:"totalDistance"`
}

// ActiveTaskResponse is one non-terminal task of a company.
type ActiveTaskResponse struct {
	ID              string    `json:"id"`
	WarehouseID     string    `json:"warehouseId"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Priority        int       `json:"priority"`
	ProductID       string    `json:"productId"`
	Quantity        int       `json:"quantity"`
	AssignedAgentID *string   `json:"assignedAgentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PrioritizedTaskResponse is one pending task in dispatch order.
type PrioritizedTaskResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// WarehouseBacklogResponse is one warehouse with waiting work.
type WarehouseBacklogResponse struct {
	WarehouseID  string `json:"warehouseId"`
	PendingTasks int    `json:"pendingTasks"`
}

func taskTypeFromString(s string) worktask.Type {
	switch s {
	case "Pick":
		return worktask.TypePick
	case "Putaway":
		return worktask.TypePutaway
	case "Transfer":
		return worktask.TypeTransfer
	default:
		return worktask.TypeUnknown
	}
}

func agentTypeFromString(s string) agent.Type {
	switch s {
	case "Human":
		return agent.TypeHuman
	case "Robot":
		return agent.TypeRobot
	default:
		return agent.TypeUnknown
	}
}
