// Package worktask models the atomic unit of physical warehouse work: a pick,
// putaway, or transfer of one product quantity at one location, assignable to
// exactly one agent.
//
// Task is the aggregate root. Its status follows a strict state machine
// (Pending, Assigned, InProgress, Completed, Cancelled) whose transitions are
// enforced by the Status value object; violations surface as typed
// InvalidTransitionError values. The aggregate carries an optimistic
// concurrency version so the persistence layer can guarantee that two
// simultaneous assignments of the same task resolve to exactly one winner.
package worktask
