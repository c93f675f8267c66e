package qlearning

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/slipworld/agent/tabular/qtable"
	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/timestep"
)

// ErrNoTransition is returned when the learner is stepped before a
// transition has been observed
var ErrNoTransition = errors.New("no transition observed")

// QLearner implements the update functionality for the Q-Learning
// algorithm.
type QLearner struct {
	table        *qtable.QTable
	step         timestep.TimeStep
	action       space.Action
	nextStep     timestep.TimeStep
	observed     bool
	learningRate float64
	discount     float64
}

// NewQLearner creates a new QLearner struct which updates the action
// values in table
func NewQLearner(table *qtable.QTable, learningRate,
	discount float64) *QLearner {
	return &QLearner{
		table:        table,
		learningRate: learningRate,
		discount:     discount,
	}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep %d is not the first "+
			"timestep of an episode", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t
	q.observed = false
	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (q *QLearner) Observe(action space.Action,
	nextStep timestep.TimeStep) error {
	if err := action.Validate(); err != nil {
		return fmt.Errorf("observe: %w", err)
	}
	q.step = q.nextStep
	q.action = action
	q.nextStep = nextStep
	q.observed = true
	return nil
}

// Step applies the Q-Learning update to the last observed transition:
//
//	Q(s, a) ← Q(s, a) + α (r + γ max_a' Q(s', a') - Q(s, a))
func (q *QLearner) Step() error {
	if !q.observed {
		return fmt.Errorf("step: %w", ErrNoTransition)
	}

	// Both rows exist after an update, even if s' is never visited
	// again
	row := q.table.GetOrInsert(q.step.State)
	q.table.GetOrInsert(q.nextStep.State)

	tdError, err := q.TdError()
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	row[q.action] += q.learningRate * tdError

	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearner) EndEpisode() {
	q.observed = false
}

// TdError returns the TD error of the last observed transition
// without updating any action values
func (q *QLearner) TdError() (float64, error) {
	if !q.observed {
		return 0, fmt.Errorf("tdError: %w", ErrNoTransition)
	}
	current := q.table.Row(q.step.State)[q.action]
	target := q.nextStep.Reward + q.discount*q.table.Max(q.nextStep.State)
	return target - current, nil
}
