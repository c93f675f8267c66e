// Package qlearning implements the tabular Q-Learning algorithm with an
// ε-greedy behaviour policy.
package qlearning

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/agent/tabular/policy"
	"github.com/samuelfneumann/slipworld/agent/tabular/qtable"
)

// QLearning implements the Q-Learning algorithm. The learner and the
// behaviour policy share a single QTable.
type QLearning struct {
	*QLearner
	*policy.EGreedy
	table *qtable.QTable
}

// New creates a new QLearning agent with all action values zero. All
// action selection randomness is drawn from src.
func New(c Config, src rand.Source) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %w", err)
	}

	table := qtable.New()
	behaviour, err := policy.NewEGreedy(c.Epsilon, table, src)
	if err != nil {
		return nil, fmt.Errorf("new: invalid behaviour policy: %w", err)
	}
	learner := NewQLearner(table, c.LearningRate, c.Discount)

	return &QLearning{learner, behaviour, table}, nil
}

// Table returns the action values learned by the agent
func (q *QLearning) Table() *qtable.QTable {
	return q.table
}
