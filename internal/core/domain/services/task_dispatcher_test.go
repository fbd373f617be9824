package services_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRobotAt(t *testing.T, id kernel.UUID, x, y kernel.Coordinate) *agent.Robot {
	t.Helper()
	robot, err := agent.NewRobot(id, "AMR-"+id.String()[:4], "AMR-200", kernel.NewUUID())
	require.NoError(t, err)
	applied, err := robot.ReportPosition(mustLocation(t, x, y), time.Now())
	require.NoError(t, err)
	require.True(t, applied)
	return robot
}

func TestTaskDispatcher_SelectAgent(t *testing.T) {
	dispatcher := services.NewTaskDispatcher()

	near := newRobotAt(t, kernel.NewUUID(), 1, 1)
	far := newRobotAt(t, kernel.NewUUID(), 20, 20)

	selected, err := dispatcher.SelectAgent(locationPtr(t, 0, 0), []agent.Agent{far, near})

	require.NoError(t, err)
	assert.True(t, near.ID().IsEqual(selected.ID()))
}

func TestTaskDispatcher_SkipsUnavailableAgents(t *testing.T) {
	dispatcher := services.NewTaskDispatcher()

	near := newRobotAt(t, kernel.NewUUID(), 1, 1)
	near.SetAvailable(false)
	far := newRobotAt(t, kernel.NewUUID(), 20, 20)

	selected, err := dispatcher.SelectAgent(locationPtr(t, 0, 0), []agent.Agent{near, far})

	require.NoError(t, err)
	assert.True(t, far.ID().IsEqual(selected.ID()))
}

func TestTaskDispatcher_UnknownPositionSelectedLast(t *testing.T) {
	dispatcher := services.NewTaskDispatcher()

	silent, err := agent.NewHumanWorker(kernel.NewUUID(), "Dana", kernel.NewUUID())
	require.NoError(t, err)
	located := newRobotAt(t, kernel.NewUUID(), 50, 50)

	selected, err := dispatcher.SelectAgent(locationPtr(t, 0, 0), []agent.Agent{silent, located})

	require.NoError(t, err)
	// Even a distant agent with a known position beats one that never reported.
	assert.True(t, located.ID().IsEqual(selected.ID()))
}

func TestTaskDispatcher_OnlyUnknownPositions(t *testing.T) {
	dispatcher := services.NewTaskDispatcher()

	lowID := mustUUID(t, "00000000-0000-0000-0000-000000000001")
	highID := mustUUID(t, "00000000-0000-0000-0000-000000000002")

	first, err := agent.NewHumanWorker(highID, "Pat", kernel.NewUUID())
	require.NoError(t, err)
	second, err := agent.NewHumanWorker(lowID, "Sam", kernel.NewUUID())
	require.NoError(t, err)

	selected, err := dispatcher.SelectAgent(locationPtr(t, 0, 0), []agent.Agent{first, second})

	require.NoError(t, err)
	assert.True(t, lowID.IsEqual(selected.ID()))
}

func TestTaskDispatcher_UnresolvableTaskLocation(t *testing.T) {
	dispatcher := services.NewTaskDispatcher()

	lowID := mustUUID(t, "00000000-0000-0000-0000-000000000001")
	highID := mustUUID(t, "00000000-0000-0000-0000-000000000002")

	a := newRobotAt(t, highID, 1, 1)
	b := newRobotAt(t, lowID, 2, 2)

	// With no task location every agent ranks equally; lower id wins.
	selected, err := dispatcher.SelectAgent(nil, []agent.Agent{a, b})

	require.NoError(t, err)
	assert.True(t, lowID.IsEqual(selected.ID()))
}

func TestTaskDispatcher_NoAvailableAgent(t *testing.T) {
	dispatcher := services.NewTaskDispatcher()

	t.Run("empty_pool", func(t *testing.T) {
		_, err := dispatcher.SelectAgent(locationPtr(t, 0, 0), nil)

		require.ErrorIs(t, err, services.ErrNoAvailableAgent)
	})

	t.Run("all_busy", func(t *testing.T) {
		busy := newRobotAt(t, kernel.NewUUID(), 1, 1)
		busy.SetAvailable(false)

		_, err := dispatcher.SelectAgent(locationPtr(t, 0, 0), []agent.Agent{busy})

		require.ErrorIs(t, err, services.ErrNoAvailableAgent)
	})
}
