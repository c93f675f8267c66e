package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/slipworld/space"
)

// Default rewards
const (
	TimeStepReward float64 = -1.0
	GoalReward     float64 = 50.0
	PitReward      float64 = -50.0
)

// Task represents the task of reaching a goal state while avoiding a
// pit in a GridWorld. Both the goal and the pit are absorbing.
type Task struct {
	goal, pit      space.State
	timeStepReward float64
	goalReward     float64
	pitReward      float64
}

// NewTask creates and returns a new Task with the default rewards
func NewTask(goal, pit space.State) *Task {
	return &Task{
		goal:           goal,
		pit:            pit,
		timeStepReward: TimeStepReward,
		goalReward:     GoalReward,
		pitReward:      PitReward,
	}
}

// GetReward returns the reward for a transition into state next. Only
// the goal or pit reward is given when entering an absorbing state,
// without the per-step reward.
func (t *Task) GetReward(next space.State) float64 {
	switch next {
	case t.goal:
		return t.goalReward
	case t.pit:
		return t.pitReward
	default:
		return t.timeStepReward
	}
}

// AtGoal returns whether s is the goal state
func (t *Task) AtGoal(s space.State) bool {
	return s == t.goal
}

// AtPit returns whether s is the pit state
func (t *Task) AtPit(s space.State) bool {
	return s == t.pit
}

// Terminal returns whether s is absorbing
func (t *Task) Terminal(s space.State) bool {
	return t.AtGoal(s) || t.AtPit(s)
}

// Goal returns the goal state
func (t *Task) Goal() space.State {
	return t.goal
}

// Pit returns the pit state
func (t *Task) Pit() space.State {
	return t.pit
}

// Min returns the minimum reward attainable in the Task
func (t *Task) Min() float64 {
	return floats.Min(t.rewards())
}

// Max returns the maximum reward attainable in the Task
func (t *Task) Max() float64 {
	return floats.Max(t.rewards())
}

func (t *Task) rewards() []float64 {
	return []float64{t.timeStepReward, t.goalReward, t.pitReward}
}

// String returns the Task as a string
func (t *Task) String() string {
	return fmt.Sprintf("Goal: %v (%+.0f)  |  Pit: %v (%+.0f)", t.goal,
		t.goalReward, t.pit, t.pitReward)
}
