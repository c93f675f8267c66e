package trackers

import (
	"github.com/samuelfneumann/slipworld/timestep"
)

// EpisodeLength tracks the lengths of episodes in an experiment.
// Note that an episode must finish for this Tracker to record its
// length.
type EpisodeLength struct {
	episodeLengths []int
}

// NewEpisodeLength returns a new EpisodeLength Tracker
func NewEpisodeLength() *EpisodeLength {
	return &EpisodeLength{}
}

// Track tracks the episode lengths in an experiment. When this function
// is called, it records the episode length if the timestep passed to it
// is the last timestep in the episode.
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
	}
}

// Lengths returns a copy of the number of steps in each finished
// episode
func (e *EpisodeLength) Lengths() []int {
	lengths := make([]int, len(e.episodeLengths))
	copy(lengths, e.episodeLengths)
	return lengths
}
