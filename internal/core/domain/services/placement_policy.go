package services

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
)

// ErrNoBinAvailable is returned when no bin with free capacity exists for a
// putaway placement.
var ErrNoBinAvailable = errors.New("no bin with free capacity available")

// BinCapacity describes one candidate putaway destination: a map bin, its
// floor position, and its current fill level as reported by the inventory
// collaborator.
type BinCapacity struct {
	BinID    kernel.UUID
	Location kernel.Location
	Capacity int
	Occupied int
}

// HasRoom reports whether the bin can still take stock.
func (b BinCapacity) HasRoom() bool {
	return b.Occupied < b.Capacity
}

// PlacementPolicy selects the destination bin for a putaway task. The bin
// placement heuristic is deliberately pluggable; NearestAvailableBinPolicy is
// the documented default, and category-grouped or capacity-balanced policies
// can replace it without touching the planner.
type PlacementPolicy interface {
	SelectBin(from *kernel.Location, bins []BinCapacity) (kernel.UUID, error)
}

// NearestAvailableBinPolicy picks the under-capacity bin closest to the given
// reference point, typically the receiving dock. With no reference point the
// choice falls back to the lowest bin id, keeping the result deterministic.
// Distance ties are also broken by lower bin id.
type NearestAvailableBinPolicy struct{}

// NewNearestAvailableBinPolicy creates a NearestAvailableBinPolicy.
func NewNearestAvailableBinPolicy() NearestAvailableBinPolicy {
	return NearestAvailableBinPolicy{}
}

// SelectBin implements PlacementPolicy.
func (p NearestAvailableBinPolicy) SelectBin(from *kernel.Location, bins []BinCapacity) (kernel.UUID, error) {
	bestIdx := -1
	bestDist := 0.0

	for i, bin := range bins {
		if !bin.HasRoom() {
			continue
		}

		dist := 0.0
		if from != nil {
			var err error
			dist, err = from.Distance(bin.Location)
			if err != nil {
				return kernel.UUID{}, err
			}
		}

		if bestIdx == -1 || dist < bestDist || (dist == bestDist && bin.BinID.Less(bins[bestIdx].BinID)) {
			bestIdx = i
			bestDist = dist
		}
	}

	if bestIdx == -1 {
		return kernel.UUID{}, ErrNoBinAvailable
	}
	return bins[bestIdx].BinID, nil
}
