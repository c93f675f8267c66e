// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/slipworld/agent"
	"github.com/samuelfneumann/slipworld/environment"
	"github.com/samuelfneumann/slipworld/experiment/trackers"
	ts "github.com/samuelfneumann/slipworld/timestep"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send each environment TimeStep to their registered
// Trackers. The Run() method will run all episodes until the episode
// limit is reached or the context is cancelled. The RunEpisode()
// function will run a single episode.
type Experiment interface {
	Run(ctx context.Context) error

	// RunEpisode runs a single episode and returns its last TimeStep
	RunEpisode() (ts.TimeStep, error)

	// Adds a new trackers.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t trackers.Tracker)
}

// Config represents a configuration of a training experiment
type Config struct {
	Episodes         int `mapstructure:"episodes" yaml:"episodes"`
	MaxEpisodeSteps  int `mapstructure:"max-episode-steps" yaml:"maxEpisodeSteps"`
	ProgressInterval int `mapstructure:"progress-interval" yaml:"progressInterval"`
}

// DefaultConfig returns the default training configuration
func DefaultConfig() Config {
	return Config{
		Episodes:         1000,
		MaxEpisodeSteps:  200,
		ProgressInterval: 50,
	}
}

// Validate returns an error describing every problem with the Config
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Episodes < 0 {
		result = multierror.Append(result, fmt.Errorf("episodes must be "+
			"non-negative, have %d", c.Episodes))
	}
	if c.MaxEpisodeSteps <= 0 {
		result = multierror.Append(result, fmt.Errorf("max episode steps "+
			"must be positive, have %d", c.MaxEpisodeSteps))
	}
	if c.ProgressInterval <= 0 {
		result = multierror.Append(result, fmt.Errorf("progress interval "+
			"must be positive, have %d", c.ProgressInterval))
	}

	return result.ErrorOrNil()
}

// CreateExp creates an online experiment which trains the agent
// described by agentConf on env
func (c Config) CreateExp(env environment.Environment, agentConf agent.Config,
	seed uint64, logger logrus.FieldLogger,
	t ...trackers.Tracker) (*Online, error) {
	a, err := agentConf.CreateAgent(newSource(seed))
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %w", err)
	}
	return NewOnline(env, a, c, logger, t...)
}

// runEpisode runs a single episode of env under policy p, ended by
// ender. Each TimeStep is passed to track. If learner is not nil, it
// observes and learns from every transition.
func runEpisode(env environment.Environment, p agent.Policy,
	learner agent.Learner, ender environment.Ender,
	track func(ts.TimeStep)) (ts.TimeStep, error) {
	step := env.Reset()
	if learner != nil {
		if err := learner.ObserveFirst(step); err != nil {
			return step, err
		}
	}
	track(step)

	for !step.Last() {
		action := p.SelectAction(step)

		var err error
		step, err = env.Step(step, action)
		if err != nil {
			return step, err
		}
		ender.End(&step)
		track(step)

		if learner == nil {
			continue
		}
		if err := learner.Observe(action, step); err != nil {
			return step, err
		}
		if err := learner.Step(); err != nil {
			return step, err
		}
	}

	if learner != nil {
		learner.EndEpisode()
	}
	return step, nil
}

// orDiscard returns logger, or a logger which discards all output if
// logger is nil
func orDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger != nil {
		return logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
