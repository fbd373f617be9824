package commands

import (
	"context"
	"sync/atomic"
)

// ReportPositionResult tells the caller whether the report advanced the
// agent's known position. A dropped stale report is not an error.
type ReportPositionResult struct {
	Applied bool
}

// ReportPositionCommandHandler applies agent telemetry with last-write-wins
// semantics. The monotonic check runs inside the repository so concurrent
// reports for the same agent cannot interleave between read and write.
type ReportPositionCommandHandler struct {
	uowFactory AgentUoWFactory

	staleDropped atomic.Int64
}

// NewReportPositionCommandHandler creates the telemetry handler.
func NewReportPositionCommandHandler(uowFactory AgentUoWFactory) *ReportPositionCommandHandler {
	return &ReportPositionCommandHandler{uowFactory: uowFactory}
}

// StaleDropped returns how many reports this handler discarded because a
// newer report for the same agent was already applied.
func (h *ReportPositionCommandHandler) StaleDropped() int64 {
	return h.staleDropped.Load()
}

// Handle applies the report if it is strictly newer than the agent's last
// applied report. Stale reports are counted and dropped without error.
func (h *ReportPositionCommandHandler) Handle(
	ctx context.Context, command ReportPositionCommand,
) (ReportPositionResult, error) {
	if err := command.Validate(); err != nil {
		return ReportPositionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReportPositionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	applied, err := uow.AgentRepository().ApplyPosition(
		ctx, command.AgentID(), command.Position(), command.ReportedAt())
	if err != nil {
		return ReportPositionResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return ReportPositionResult{}, err
	}

	if !applied {
		h.staleDropped.Add(1)
	}

	return ReportPositionResult{Applied: applied}, nil
}
