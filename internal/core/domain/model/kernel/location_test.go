package kernel_test

import (
	"testing"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("valid_coordinates", func(t *testing.T) {
		loc, err := kernel.NewLocation(3.5, 4.25)

		require.NoError(t, err)
		assert.Equal(t, kernel.Coordinate(3.5), loc.X())
		assert.Equal(t, kernel.Coordinate(4.25), loc.Y())
		require.NoError(t, loc.Validate())
	})

	t.Run("origin_is_valid", func(t *testing.T) {
		loc, err := kernel.NewLocation(0, 0)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
	})

	t.Run("negative_x_is_rejected", func(t *testing.T) {
		_, err := kernel.NewLocation(-1, 5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("negative_y_is_rejected", func(t *testing.T) {
		_, err := kernel.NewLocation(5, -0.01)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("both_negative_joins_errors", func(t *testing.T) {
		_, err := kernel.NewLocation(-1, -1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestLocation_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var loc kernel.Location

		require.Error(t, loc.Validate())
	})
}

func TestLocation_Distance(t *testing.T) {
	t.Run("three_four_five_triangle", func(t *testing.T) {
		a, err := kernel.NewLocation(0, 0)
		require.NoError(t, err)
		b, err := kernel.NewLocation(3, 4)
		require.NoError(t, err)

		distance, err := a.Distance(b)

		require.NoError(t, err)
		assert.InDelta(t, 5.0, distance, 1e-9)
	})

	t.Run("distance_is_symmetric", func(t *testing.T) {
		a, _ := kernel.NewLocation(1, 7)
		b, _ := kernel.NewLocation(6, 2)

		d1, err := a.Distance(b)
		require.NoError(t, err)
		d2, err := b.Distance(a)
		require.NoError(t, err)

		assert.InDelta(t, d1, d2, 1e-12)
	})

	t.Run("distance_to_self_is_zero", func(t *testing.T) {
		a, _ := kernel.NewLocation(2.5, 2.5)

		d, err := a.Distance(a)

		require.NoError(t, err)
		assert.Zero(t, d)
	})

	t.Run("zero_value_fails", func(t *testing.T) {
		a, _ := kernel.NewLocation(1, 1)
		var b kernel.Location

		_, err := a.Distance(b)

		require.Error(t, err)
	})
}

func TestLocation_IsEqual(t *testing.T) {
	t.Run("equal_coordinates", func(t *testing.T) {
		a, _ := kernel.NewLocation(5, 7)
		b, _ := kernel.NewLocation(5, 7)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different_coordinates", func(t *testing.T) {
		a, _ := kernel.NewLocation(5, 7)
		b, _ := kernel.NewLocation(7, 5)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.False(t, equal)
	})
}

func TestLocation_String(t *testing.T) {
	loc, _ := kernel.NewLocation(5, 7.5)

	assert.Equal(t, "Location(5,7.5)", loc.String())
}
