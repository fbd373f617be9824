// Package agent models the workforce that executes work tasks: human pickers
// and robots. Both variants satisfy the Agent interface; callers that plan and
// assign work never care which one they hold.
//
// Agents carry availability, their home warehouse, and a last-known position
// fed by telemetry. Position reports are applied monotonically by report time:
// a report older than the last applied one is dropped, not an error, so
// out-of-order telemetry can never move an agent backwards in time.
package agent
