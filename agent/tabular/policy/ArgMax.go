// Package policy implements tabular policies over the actions of 3D
// gridworlds
package policy

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/utils/floatutils"
)

// ArgMax returns the action with the largest value. Ties are broken
// uniformly at random using rng, so a row of equal values selects any
// action with equal probability.
func ArgMax(values []float64, rng *rand.Rand) space.Action {
	_, indices := floatutils.MaxSlice(values)
	if len(indices) == 1 {
		return space.Action(indices[0])
	}
	return space.Action(indices[rng.Intn(len(indices))])
}
