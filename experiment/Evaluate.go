package experiment

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/slipworld/agent"
	"github.com/samuelfneumann/slipworld/environment"
	"github.com/samuelfneumann/slipworld/experiment/trackers"
	ts "github.com/samuelfneumann/slipworld/timestep"
)

// EvalConfig configures the comparison of a learned policy against a
// baseline
type EvalConfig struct {
	Episodes        int `mapstructure:"episodes" yaml:"episodes"`
	MaxEpisodeSteps int `mapstructure:"max-episode-steps" yaml:"maxEpisodeSteps"`
}

// DefaultEvalConfig returns the default evaluation configuration
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		Episodes:        100,
		MaxEpisodeSteps: 200,
	}
}

// Validate returns an error describing every problem with the
// EvalConfig
func (c EvalConfig) Validate() error {
	var result *multierror.Error

	if c.Episodes <= 0 {
		result = multierror.Append(result, fmt.Errorf("evaluation "+
			"episodes must be positive, have %d", c.Episodes))
	}
	if c.MaxEpisodeSteps <= 0 {
		result = multierror.Append(result, fmt.Errorf("max episode steps "+
			"must be positive, have %d", c.MaxEpisodeSteps))
	}

	return result.ErrorOrNil()
}

// Summary reports the average returns of a learned and a random policy
type Summary struct {
	Episodes        int       `yaml:"episodes"`
	Learned         float64   `yaml:"learnedAverage"`
	Random          float64   `yaml:"randomAverage"`
	Difference      float64   `yaml:"difference"`
	LearnedTimeouts int       `yaml:"learnedTimeouts"`
	RandomTimeouts  int       `yaml:"randomTimeouts"`
	LearnedReturns  []float64 `yaml:"learnedReturns,flow"`
	RandomReturns   []float64 `yaml:"randomReturns,flow"`
}

func (s Summary) String() string {
	return fmt.Sprintf("Learned: %.2f  |  Random: %.2f  |  Improvement: "+
		"%+.2f  |  Episodes: %d", s.Learned, s.Random, s.Difference,
		s.Episodes)
}

// Evaluate runs c.Episodes trials on env. Each trial runs one episode
// under the learned policy followed by one under the random policy,
// and neither policy learns. Cancellation of ctx is checked between
// trials.
func Evaluate(ctx context.Context, env environment.Environment,
	learned, random agent.Policy, c EvalConfig,
	logger logrus.FieldLogger) (Summary, error) {
	if err := c.Validate(); err != nil {
		return Summary{}, fmt.Errorf("evaluate: invalid config: %w", err)
	}
	logger = orDiscard(logger)
	ender := environment.NewStepLimit(c.MaxEpisodeSteps)

	learnedReturns := trackers.NewReturn()
	learnedEnds := trackers.NewTerminations()
	randomReturns := trackers.NewReturn()
	randomEnds := trackers.NewTerminations()

	for i := 0; i < c.Episodes; i++ {
		select {
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		default:
		}

		_, err := runEpisode(env, learned, nil, ender, func(t ts.TimeStep) {
			learnedReturns.Track(t)
			learnedEnds.Track(t)
		})
		if err != nil {
			return Summary{}, fmt.Errorf("evaluate: learned policy: %w", err)
		}

		_, err = runEpisode(env, random, nil, ender, func(t ts.TimeStep) {
			randomReturns.Track(t)
			randomEnds.Track(t)
		})
		if err != nil {
			return Summary{}, fmt.Errorf("evaluate: random policy: %w", err)
		}
	}

	s := Summary{
		Episodes:        c.Episodes,
		LearnedReturns:  learnedReturns.Returns(),
		RandomReturns:   randomReturns.Returns(),
		LearnedTimeouts: learnedEnds.Timeout(),
		RandomTimeouts:  randomEnds.Timeout(),
	}
	s.Learned = stat.Mean(s.LearnedReturns, nil)
	s.Random = stat.Mean(s.RandomReturns, nil)
	s.Difference = s.Learned - s.Random

	logger.WithFields(logrus.Fields{
		"learned":    s.Learned,
		"random":     s.Random,
		"difference": s.Difference,
	}).Info("evaluation finished")

	return s, nil
}
