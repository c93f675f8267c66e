package trackers

import (
	"github.com/samuelfneumann/slipworld/timestep"
)

// Terminations counts how episodes end: by reaching an absorbing state
// or by being cut off at a step limit
type Terminations struct {
	terminal int
	timeout  int
}

// NewTerminations returns a new Terminations Tracker
func NewTerminations() *Terminations {
	return &Terminations{}
}

// Track counts the end type of the last timestep of each episode
func (t *Terminations) Track(step timestep.TimeStep) {
	switch {
	case !step.Last():
	case step.Truncated():
		t.timeout++
	default:
		t.terminal++
	}
}

// Terminal returns the number of episodes which reached an absorbing
// state
func (t *Terminations) Terminal() int {
	return t.terminal
}

// Timeout returns the number of episodes cut off at a step limit
func (t *Terminations) Timeout() int {
	return t.timeout
}
