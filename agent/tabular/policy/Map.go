package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/agent/tabular/qtable"
	"github.com/samuelfneumann/slipworld/environment"
	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/timestep"
)

// Map is a deterministic policy which stores one action for each
// state
type Map map[space.State]space.Action

// Extract returns the greedy policy of table over every valid state of
// env. States which the table has never seen are assigned an action
// uniformly at random, as are ties between equal action values. Random
// choices are drawn from src.
//
// Extract does not modify table.
func Extract(env environment.Enumerator, table *qtable.QTable,
	src rand.Source) Map {
	greedy := NewGreedy(table, src)

	states := env.ValidStates()
	m := make(Map, len(states))
	for _, s := range states {
		m[s] = greedy.Action(s)
	}
	return m
}

// SelectAction returns the action stored for the state of t. It panics
// if the state is not in the Map.
func (m Map) SelectAction(t timestep.TimeStep) space.Action {
	a, ok := m[t.State]
	if !ok {
		panic(fmt.Sprintf("selectAction: no action for state %v", t.State))
	}
	return a
}

// Counts returns the number of states assigned each action
func (m Map) Counts() [space.NumActions]int {
	var counts [space.NumActions]int
	for _, a := range m {
		counts[a]++
	}
	return counts
}
