package trackers

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	ts "github.com/samuelfneumann/slipworld/timestep"
)

// DefaultWindow is the default number of episodes averaged over
const DefaultWindow = 50

// MovingAverage tracks the average return over a trailing window of
// episodes. Until the window fills, the average is taken over every
// episode so far.
type MovingAverage struct {
	returns  *Return
	window   int
	averages []float64
}

// NewMovingAverage returns a new MovingAverage Tracker over window
// episodes
func NewMovingAverage(window int) (*MovingAverage, error) {
	if window <= 0 {
		return nil, fmt.Errorf("newMovingAverage: window must be "+
			"positive, have %d", window)
	}
	return &MovingAverage{returns: NewReturn(), window: window}, nil
}

// Track tracks the rewards seen on a timestep, and records the average
// return of the window when an episode ends
func (m *MovingAverage) Track(step ts.TimeStep) {
	m.returns.Track(step)
	if !step.Last() {
		return
	}

	returns := m.returns.episodeReturns
	start := len(returns) - m.window
	if start < 0 {
		start = 0
	}
	m.averages = append(m.averages, stat.Mean(returns[start:], nil))
}

// Averages returns a copy of the moving average recorded after each
// finished episode
func (m *MovingAverage) Averages() []float64 {
	averages := make([]float64, len(m.averages))
	copy(averages, m.averages)
	return averages
}

// Last returns the most recent moving average, or 0 if no episode has
// finished
func (m *MovingAverage) Last() float64 {
	if len(m.averages) == 0 {
		return 0
	}
	return m.averages[len(m.averages)-1]
}

// Window returns the number of episodes averaged over
func (m *MovingAverage) Window() int {
	return m.window
}
