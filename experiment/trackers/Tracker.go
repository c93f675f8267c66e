// Package trackers implements Trackers, which record data from the
// TimeSteps of an experiment
package trackers

import (
	ts "github.com/samuelfneumann/slipworld/timestep"
)

// Interface Tracker keeps track of experiment data. Experiments send
// every TimeStep they generate to each registered Tracker, in order.
type Tracker interface {
	Track(t ts.TimeStep)
}
