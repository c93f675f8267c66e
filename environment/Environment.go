// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/timestep"
)

// Environment implements a simulated environment with discrete states
// and actions.
//
// Environments do not track the agent's position between calls. The
// caller owns the current TimeStep and passes it back into Step, so the
// same Environment may be shared between independent rollouts.
type Environment interface {
	// Reset returns the first TimeStep of a new episode
	Reset() timestep.TimeStep

	// Step takes action a from the state of TimeStep t and returns the
	// resulting TimeStep. Step returns an error if a is not a valid
	// action.
	Step(t timestep.TimeStep, a space.Action) (timestep.TimeStep, error)

	// IsValidState returns whether s is in bounds and not blocked
	IsValidState(s space.State) bool

	// IsTerminal returns whether s is an absorbing state
	IsTerminal(s space.State) bool
}

// Enumerator is an Environment which can list all of its valid states
type Enumerator interface {
	Environment
	ValidStates() []space.State
}

// Ender determines when episodes should be cut off, independent of the
// environment dynamics
type Ender interface {
	// End returns whether the episode should end at TimeStep t. If so,
	// End marks t as the last TimeStep of the episode.
	End(t *timestep.TimeStep) bool
}
