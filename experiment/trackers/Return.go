package trackers

import (
	"fmt"

	ts "github.com/samuelfneumann/slipworld/timestep"
)

// Return tracks the episodic return in an experiment. When an
// environment returns a TimeStep, this Tracker will extract the reward
// and accumulate the return for each episode in the experiment.
//
// Note: An episode must finish for this Tracker to record its return.
// If the last episode in an experiment does not finish, that episode's
// return will not be recorded.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn() *Return {
	return &Return{lastTimeStep: -1}
}

// Track tracks the rewards seen on a timestep. By calling this method
// on every timestep, the Tracker will store all rewards seen in the
// episode, and record the cumulative reward for that episode as the
// episodic return. When a new episode starts, this method will
// automatically detect this and start accumulating the rewards for this
// new episode separately from the rewards seen on previous episodes.
//
// Track panics if it is called for non-sequential timesteps
func (r *Return) Track(step ts.TimeStep) {
	// Ensure that Track is called on sequential timesteps
	if r.lastTimeStep+1 != step.Number {
		msg := fmt.Sprintf("track: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number)
		panic(msg)
	}

	r.currentReturn += step.Reward
	if !step.Last() {
		r.lastTimeStep = step.Number
		return
	}

	// Episode has ended, record the return and begin tracking the
	// return for a new episode
	r.episodeReturns = append(r.episodeReturns, r.currentReturn)
	r.currentReturn = 0.0
	r.lastTimeStep = -1
}

// Returns returns a copy of the return of each finished episode
func (r *Return) Returns() []float64 {
	returns := make([]float64, len(r.episodeReturns))
	copy(returns, r.episodeReturns)
	return returns
}

// Last returns the return of the most recently finished episode, or 0
// if no episode has finished
func (r *Return) Last() float64 {
	if len(r.episodeReturns) == 0 {
		return 0
	}
	return r.episodeReturns[len(r.episodeReturns)-1]
}

// Len returns the number of finished episodes
func (r *Return) Len() int {
	return len(r.episodeReturns)
}
