package road

import (
	"math"
	"math/rand"
)

// MinSpacing is the trailing distance two obstacles in the same lane must keep
const MinSpacing = 300.0

// Occupant is anything holding a lane at a vertical position
type Occupant interface {
	LaneIndex() int
	PosY() float64
}

// AllocateLane picks a lane for an obstacle about to appear at candidateY.
//
// Lanes are tried in random order and the first one with no occupant closer
// than MinSpacing is returned. When every lane conflicts the first lane of the
// shuffled order is returned anyway, so callers must tolerate the odd
// same-lane neighbour. occupants must not include the obstacle being placed.
func AllocateLane[T Occupant](candidateY float64, occupants []T, rng *rand.Rand) int {
	order := [LaneCount]int{0, 1, 2}
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	for _, lane := range order {
		if laneFree(lane, candidateY, occupants) {
			return lane
		}
	}
	return order[0]
}

func laneFree[T Occupant](lane int, y float64, occupants []T) bool {
	for _, o := range occupants {
		if o.LaneIndex() == lane && math.Abs(o.PosY()-y) < MinSpacing {
			return false
		}
	}
	return true
}
