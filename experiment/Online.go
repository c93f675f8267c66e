package experiment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/agent"
	env "github.com/samuelfneumann/slipworld/environment"
	"github.com/samuelfneumann/slipworld/experiment/trackers"
	ts "github.com/samuelfneumann/slipworld/timestep"
)

// Progress describes the state of a running experiment
type Progress struct {
	Episode       int
	Episodes      int
	Return        float64
	MovingAverage float64
}

// ProgressFunc is called periodically while an experiment runs
type ProgressFunc func(Progress)

// Online is an Experiment that trains an agent online, one episode at
// a time, with every episode cut off at a step limit. The return and
// moving average return of each episode are always tracked.
type Online struct {
	env.Environment
	agent.Agent
	ender    env.Ender
	config   Config
	episodes int

	returns  *trackers.Return
	average  *trackers.MovingAverage
	trackers []trackers.Tracker

	progress ProgressFunc
	logger   logrus.FieldLogger
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The t parameter is a slice of
// trackers.Tracker which determine what data is recorded beyond the
// episodic returns. If logger is nil, nothing is logged.
func NewOnline(e env.Environment, a agent.Agent, c Config,
	logger logrus.FieldLogger, t ...trackers.Tracker) (*Online, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newOnline: invalid config: %w", err)
	}

	average, err := trackers.NewMovingAverage(trackers.DefaultWindow)
	if err != nil {
		return nil, fmt.Errorf("newOnline: %w", err)
	}

	return &Online{
		Environment: e,
		Agent:       a,
		ender:       env.NewStepLimit(c.MaxEpisodeSteps),
		config:      c,
		returns:     trackers.NewReturn(),
		average:     average,
		trackers:    t,
		logger:      orDiscard(logger),
	}, nil
}

// Register registers a trackers.Tracker with an Experiment so that
// data generated during the experiment can be tracked
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// OnProgress sets the function called every ProgressInterval episodes
// and after the final episode
func (o *Online) OnProgress(f ProgressFunc) {
	o.progress = f
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode() (ts.TimeStep, error) {
	last, err := runEpisode(o.Environment, o.Agent, o.Agent, o.ender,
		o.track)
	if err != nil {
		return last, fmt.Errorf("runEpisode: episode %d: %w", o.episodes+1,
			err)
	}
	o.episodes++

	o.logger.WithFields(logrus.Fields{
		"episode": o.episodes,
		"return":  o.returns.Last(),
		"steps":   last.Number,
		"end":     last.EndType(),
	}).Debug("episode finished")

	return last, nil
}

// Run runs all remaining episodes of the experiment. Cancellation of
// ctx is checked between episodes, in which case Run returns the
// context's error and all data tracked so far is kept.
func (o *Online) Run(ctx context.Context) error {
	for o.episodes < o.config.Episodes {
		select {
		case <-ctx.Done():
			o.logger.WithField("episode", o.episodes).Warn(
				"training cancelled")
			return ctx.Err()
		default:
		}

		if _, err := o.RunEpisode(); err != nil {
			return err
		}

		if o.episodes%o.config.ProgressInterval == 0 ||
			o.episodes == o.config.Episodes {
			o.report()
		}
	}
	return nil
}

// report logs the current progress and calls the progress function
func (o *Online) report() {
	p := Progress{
		Episode:       o.episodes,
		Episodes:      o.config.Episodes,
		Return:        o.returns.Last(),
		MovingAverage: o.average.Last(),
	}

	o.logger.WithFields(logrus.Fields{
		"episode":       p.Episode,
		"return":        p.Return,
		"movingAverage": p.MovingAverage,
	}).Debug("training progress")

	if o.progress != nil {
		o.progress(p)
	}
}

// Episodes returns the number of episodes run so far
func (o *Online) Episodes() int {
	return o.episodes
}

// Returns returns the return of each finished episode
func (o *Online) Returns() []float64 {
	return o.returns.Returns()
}

// MovingAverages returns the moving average return after each finished
// episode
func (o *Online) MovingAverages() []float64 {
	return o.average.Averages()
}

// track sends the current timestep to each tracker
func (o *Online) track(t ts.TimeStep) {
	o.returns.Track(t)
	o.average.Track(t)
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

func newSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}
