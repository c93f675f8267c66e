// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/slipworld/space"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType denotes how an episode ended
type EndType int

const (
	// NotEnded is the EndType of every TimeStep which is not Last
	NotEnded EndType = iota

	// TerminalStateReached means the episode ended in an absorbing state
	TerminalStateReached

	// Timeout means the episode was truncated by a step limit
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "NotEnded"
	}
}

// TimeStep packages together a single timestep in an environment. A
// TimeStep is the result of a transition: the state the agent ended up
// in, the reward for getting there, and whether the episode is over.
type TimeStep struct {
	StepType
	Reward float64
	State  space.State
	Number int
	end    EndType
}

// New returns a new TimeStep
func New(t StepType, r float64, s space.State, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, State: s, Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd marks the TimeStep as the last in its episode with end type e
func (t *TimeStep) SetEnd(e EndType) {
	t.StepType = Last
	t.end = e
}

// EndType returns how the episode ended, or NotEnded
func (t *TimeStep) EndType() EndType {
	return t.end
}

// Terminal returns whether the episode ended by reaching an absorbing
// state
func (t *TimeStep) Terminal() bool {
	return t.end == TerminalStateReached
}

// Truncated returns whether the episode ended by reaching a step limit
func (t *TimeStep) Truncated() bool {
	return t.end == Timeout
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  State: %v  |  Reward:  %.2f  |  " +
		"Step Number:  %v  |  End: %v"

	return fmt.Sprintf(str, t.StepType, t.State, t.Reward, t.Number, t.end)
}
