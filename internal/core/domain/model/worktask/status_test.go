package worktask_test

import (
	"testing"

	"warehouse/internal/core/domain/model/worktask"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", worktask.Pending.String())
	assert.Equal(t, "Assigned", worktask.Assigned.String())
	assert.Equal(t, "InProgress", worktask.InProgress.String())
	assert.Equal(t, "Completed", worktask.Completed.String())
	assert.Equal(t, "Cancelled", worktask.Cancelled.String())
	assert.Equal(t, "Unknown", worktask.StatusUnknown.String())
	assert.Equal(t, "Unknown", worktask.Status(99).String())
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []worktask.Status{
		worktask.Pending, worktask.Assigned, worktask.InProgress, worktask.Completed, worktask.Cancelled,
	} {
		require.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, worktask.StatusUnknown.Validate())
	require.Error(t, worktask.Status(99).Validate())
}

func TestStatus_Assign(t *testing.T) {
	t.Run("pending_can_be_assigned", func(t *testing.T) {
		next, err := worktask.Pending.Assign()

		require.NoError(t, err)
		assert.Equal(t, worktask.Assigned, next)
	})

	t.Run("other_states_cannot_be_assigned", func(t *testing.T) {
		for _, s := range []worktask.Status{
			worktask.Assigned, worktask.InProgress, worktask.Completed, worktask.Cancelled, worktask.StatusUnknown,
		} {
			_, err := s.Assign()

			require.Error(t, err, s.String())
			require.ErrorIs(t, err, worktask.ErrInvalidTransition)

			var transitionErr *worktask.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, s, transitionErr.Current)
			assert.Equal(t, worktask.Assigned, transitionErr.Requested)
		}
	})
}

func TestStatus_Start(t *testing.T) {
	t.Run("assigned_can_be_started", func(t *testing.T) {
		next, err := worktask.Assigned.Start()

		require.NoError(t, err)
		assert.Equal(t, worktask.InProgress, next)
	})

	t.Run("other_states_cannot_be_started", func(t *testing.T) {
		for _, s := range []worktask.Status{
			worktask.Pending, worktask.InProgress, worktask.Completed, worktask.Cancelled,
		} {
			_, err := s.Start()

			require.ErrorIs(t, err, worktask.ErrInvalidTransition, s.String())
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("in_progress_can_be_completed", func(t *testing.T) {
		next, err := worktask.InProgress.Complete()

		require.NoError(t, err)
		assert.Equal(t, worktask.Completed, next)
	})

	t.Run("completion_cannot_skip_start", func(t *testing.T) {
		// Start is mandatory: Assigned -> Completed is not a legal move.
		_, err := worktask.Assigned.Complete()

		require.ErrorIs(t, err, worktask.ErrInvalidTransition)
	})

	t.Run("other_states_cannot_be_completed", func(t *testing.T) {
		for _, s := range []worktask.Status{
			worktask.Pending, worktask.Completed, worktask.Cancelled,
		} {
			_, err := s.Complete()

			require.ErrorIs(t, err, worktask.ErrInvalidTransition, s.String())
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("active_states_can_be_cancelled", func(t *testing.T) {
		for _, s := range []worktask.Status{worktask.Pending, worktask.Assigned, worktask.InProgress} {
			next, alreadyFinal, err := s.Cancel()

			require.NoError(t, err, s.String())
			assert.False(t, alreadyFinal)
			assert.Equal(t, worktask.Cancelled, next)
		}
	})

	t.Run("terminal_states_report_already_final", func(t *testing.T) {
		for _, s := range []worktask.Status{worktask.Completed, worktask.Cancelled} {
			next, alreadyFinal, err := s.Cancel()

			require.NoError(t, err, s.String())
			assert.True(t, alreadyFinal)
			assert.Equal(t, s, next)
		}
	})

	t.Run("unknown_status_is_an_error", func(t *testing.T) {
		_, _, err := worktask.StatusUnknown.Cancel()

		require.ErrorIs(t, err, worktask.ErrInvalidTransition)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, worktask.Completed.IsTerminal())
	assert.True(t, worktask.Cancelled.IsTerminal())
	assert.False(t, worktask.Pending.IsTerminal())
	assert.False(t, worktask.Assigned.IsTerminal())
	assert.False(t, worktask.InProgress.IsTerminal())
}

func TestStatus_ValidateCanHaveAgent(t *testing.T) {
	t.Run("active_assignment_states_require_agent", func(t *testing.T) {
		require.NoError(t, worktask.Assigned.ValidateCanHaveAgent(true))
		require.NoError(t, worktask.InProgress.ValidateCanHaveAgent(true))
		require.Error(t, worktask.Assigned.ValidateCanHaveAgent(false))
		require.Error(t, worktask.InProgress.ValidateCanHaveAgent(false))
	})

	t.Run("other_states_forbid_agent", func(t *testing.T) {
		for _, s := range []worktask.Status{worktask.Pending, worktask.Completed, worktask.Cancelled} {
			require.NoError(t, s.ValidateCanHaveAgent(false), s.String())
			require.Error(t, s.ValidateCanHaveAgent(true), s.String())
		}
	})
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := worktask.NewInvalidTransitionError(worktask.Pending, worktask.Completed)

	assert.Equal(t, "invalid status transition: Pending -> Completed", err.Error())
	assert.Equal(t, worktask.ErrInvalidTransition, err.Unwrap())
}
