package queries_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingWarehousesQuery_Valid(t *testing.T) {
	query := queries.NewGetPendingWarehousesQuery()
	require.NoError(t, query.Validate())
}

func TestGetPendingWarehousesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPendingWarehousesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingWarehousesQueryIsNotConstructed)
}
