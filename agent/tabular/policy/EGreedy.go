package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/slipworld/agent/tabular/qtable"
	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/timestep"
)

// EGreedy implements an ε-greedy policy over a QTable. Selecting an
// action in a state inserts the state's row into the table.
type EGreedy struct {
	table   *qtable.QTable
	epsilon float64
	source  rand.Source
	rng     *rand.Rand
}

// NewEGreedy constructs a new EGreedy policy, where e=epislon is the
// probability with which a random action is selected
func NewEGreedy(e float64, table *qtable.QTable,
	src rand.Source) (*EGreedy, error) {
	if e < 0 || e > 1 {
		return nil, fmt.Errorf("newEGreedy: epsilon %v not in [0, 1]", e)
	}
	return &EGreedy{table, e, src, rand.New(src)}, nil
}

// Epsilon returns the probability of selecting a random action
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SelectAction selects and action from an ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) space.Action {
	row := p.table.GetOrInsert(t.State)

	// Find the greedy action
	greedyAction := ArgMax(row.Slice(), p.rng)

	// Calculate the ε probability of choosing any action at random
	prob := p.epsilon / float64(space.NumActions)
	actionProbabilites := make([]float64, space.NumActions)
	for i := range actionProbabilites {
		actionProbabilites[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilites[greedyAction] += 1.0 - p.epsilon

	dist := distuv.NewCategorical(actionProbabilites, p.source)
	return space.Action(dist.Rand())
}
