package policy

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/timestep"
)

// Uniform selects every action with equal probability, regardless of
// state
type Uniform struct {
	dist distuv.Categorical
}

// NewUniform returns a new Uniform policy drawing from src
func NewUniform(src rand.Source) *Uniform {
	weights := make([]float64, space.NumActions)
	for i := range weights {
		weights[i] = 1
	}
	return &Uniform{distuv.NewCategorical(weights, src)}
}

// SelectAction selects a uniform random action
func (u *Uniform) SelectAction(_ timestep.TimeStep) space.Action {
	return space.Action(u.dist.Rand())
}
