package qlearning

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/agent"
)

// Config represents a configuration for the QLearning agent
type Config struct {
	LearningRate float64 `mapstructure:"learning-rate" yaml:"learningRate"`
	Discount     float64 `mapstructure:"discount" yaml:"discount"`
	Epsilon      float64 `mapstructure:"epsilon" yaml:"epsilon"` // epislon for behaviour policy
}

// DefaultConfig returns the default QLearning configuration
func DefaultConfig() Config {
	return Config{
		LearningRate: 0.1,
		Discount:     0.95,
		Epsilon:      0.1,
	}
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to zero.
func (c Config) CreateAgent(src rand.Source) (agent.Agent, error) {
	return New(c, src)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	var result *multierror.Error

	if c.LearningRate <= 0 || c.LearningRate > 1 {
		result = multierror.Append(result, fmt.Errorf("learning rate %v "+
			"not in (0, 1]", c.LearningRate))
	}
	if c.Discount < 0 || c.Discount > 1 {
		result = multierror.Append(result, fmt.Errorf("discount %v not "+
			"in [0, 1]", c.Discount))
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		result = multierror.Append(result, fmt.Errorf("epsilon %v not in "+
			"[0, 1]", c.Epsilon))
	}

	return result.ErrorOrNil()
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearningTabular
}
