package queries_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrioritizeTasksQuery_Valid(t *testing.T) {
	warehouseID := kernel.NewUUID()

	query, err := queries.NewPrioritizeTasksQuery(warehouseID, nil)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.WarehouseID().IsEqual(warehouseID))
	assert.Empty(t, query.TaskIDs())
}

func TestNewPrioritizeTasksQuery_ExplicitTaskSelection(t *testing.T) {
	warehouseID := kernel.NewUUID()
	taskIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	query, err := queries.NewPrioritizeTasksQuery(warehouseID, taskIDs)
	require.NoError(t, err)
	require.Len(t, query.TaskIDs(), 2)
	assert.True(t, query.TaskIDs()[0].IsEqual(taskIDs[0]))
	assert.True(t, query.TaskIDs()[1].IsEqual(taskIDs[1]))
}

func TestNewPrioritizeTasksQuery_EmptyWarehouse(t *testing.T) {
	_, err := queries.NewPrioritizeTasksQuery(kernel.UUID{}, nil)
	require.Error(t, err)
}

func TestNewPrioritizeTasksQuery_InvalidTaskID(t *testing.T) {
	_, err := queries.NewPrioritizeTasksQuery(kernel.NewUUID(), []kernel.UUID{{}})
	require.Error(t, err)
}

func TestPrioritizeTasksQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.PrioritizeTasksQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrPrioritizeTasksQueryIsNotConstructed)
}
