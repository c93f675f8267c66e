package environment

import "github.com/samuelfneumann/slipworld/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// Steps returns the maximum number of steps in an episode
func (s StepLimit) Steps() int {
	return s.episodeSteps
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will mark the timestep as the last with end
// type timestep.Timeout. TimeSteps which are already last are left
// untouched, so reaching a terminal state on the final allowed step is
// still reported as reaching a terminal state.
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if t.Last() {
		return true
	}
	if t.Number >= s.episodeSteps {
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}
