package policy

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/agent/tabular/qtable"
	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/timestep"
)

// Greedy implements a greedy policy over a QTable. Greedy never
// inserts rows into the table, unseen states act uniformly at random.
type Greedy struct {
	table *qtable.QTable
	rng   *rand.Rand
}

// NewGreedy returns a new Greedy policy. Ties are broken using src.
func NewGreedy(table *qtable.QTable, src rand.Source) *Greedy {
	return &Greedy{table, rand.New(src)}
}

// SelectAction selects the greedy action in the state of t
func (g *Greedy) SelectAction(t timestep.TimeStep) space.Action {
	return g.Action(t.State)
}

// Action returns the greedy action in state s
func (g *Greedy) Action(s space.State) space.Action {
	row := g.table.Row(s)
	return ArgMax(row.Slice(), g.rng)
}
