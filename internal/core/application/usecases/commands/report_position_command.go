package commands

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrReportPositionCommandIsNotConstructed = errors.New(
	"ReportPositionCommand must be created via NewReportPositionCommand constructor",
)

// ReportPositionCommand carries one agent telemetry report. Telemetry
// arrives asynchronously and frequently; reports older than the last applied
// one are dropped rather than rejected.
type ReportPositionCommand struct { //nolint:recvcheck //using for validation
	agentID    kernel.UUID
	position   kernel.Location
	reportedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportPositionCommand creates a telemetry report command.
func NewReportPositionCommand(
	agentID kernel.UUID,
	position kernel.Location,
	reportedAt time.Time,
) (ReportPositionCommand, error) {
	command := ReportPositionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setPosition(position),
		command.setReportedAt(reportedAt),
	); err != nil {
		return ReportPositionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportPositionCommand) Validate() error {
	return c.guard.Validate(ErrReportPositionCommandIsNotConstructed)
}

// AgentID returns the reporting agent.
func (c ReportPositionCommand) AgentID() kernel.UUID { return c.agentID }

// Position returns the reported floor position.
func (c ReportPositionCommand) Position() kernel.Location { return c.position }

// ReportedAt returns the report's own timestamp, not the arrival time.
func (c ReportPositionCommand) ReportedAt() time.Time { return c.reportedAt }

func (c *ReportPositionCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.agentID = id
	return nil
}

func (c *ReportPositionCommand) setPosition(position kernel.Location) error {
	if err := position.Validate(); err != nil {
		return err
	}
	c.position = position
	return nil
}

func (c *ReportPositionCommand) setReportedAt(reportedAt time.Time) error {
	if reportedAt.IsZero() {
		return errs.NewValueIsRequiredError("reportedAt")
	}
	c.reportedAt = reportedAt
	return nil
}
