// Package gridworld implements 3D gridworld environments with
// stochastic slip transitions
package gridworld

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/timestep"
)

// ErrInvalidState is returned when stepping from a state which is out of
// bounds or blocked
var ErrInvalidState = errors.New("invalid state")

// Config describes the geometry and dynamics of a GridWorld
type Config struct {
	Width           int         `mapstructure:"width" yaml:"width"`
	Height          int         `mapstructure:"height" yaml:"height"`
	Depth           int         `mapstructure:"depth" yaml:"depth"`
	SlipProbability float64     `mapstructure:"slip" yaml:"slip"`
	Goal            space.State `mapstructure:"goal" yaml:"goal"`
	Pit             space.State `mapstructure:"pit" yaml:"pit"`
	ObstacleSeed    uint32      `mapstructure:"obstacle-seed" yaml:"obstacleSeed"`
	ObstacleRatio   float64     `mapstructure:"obstacle-ratio" yaml:"obstacleRatio"`
}

// DefaultConfig returns the configuration of the default 6x6x6 world
func DefaultConfig() Config {
	return Config{
		Width:           6,
		Height:          6,
		Depth:           6,
		SlipProbability: 0.2,
		Goal:            space.State{X: 5, Y: 5, Z: 5},
		Pit:             space.State{X: 2, Y: 2, Z: 2},
		ObstacleSeed:    DefaultObstacleSeed,
		ObstacleRatio:   DefaultObstacleRatio,
	}
}

// Validate returns an error describing every problem with the Config,
// or nil if the Config is valid
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Width <= 0 || c.Height <= 0 || c.Depth <= 0 {
		result = multierror.Append(result, fmt.Errorf("dimensions must be "+
			"positive, have (%d, %d, %d)", c.Width, c.Height, c.Depth))
	}
	if c.SlipProbability < 0 || c.SlipProbability > 1 {
		result = multierror.Append(result, fmt.Errorf("slip probability "+
			"%v not in [0, 1]", c.SlipProbability))
	}
	if c.ObstacleRatio < 0 || c.ObstacleRatio >= 1 {
		result = multierror.Append(result, fmt.Errorf("obstacle ratio %v "+
			"not in [0, 1)", c.ObstacleRatio))
	}
	if !c.Goal.InBounds(c.Width, c.Height, c.Depth) {
		result = multierror.Append(result, fmt.Errorf("goal %v out of "+
			"bounds", c.Goal))
	}
	if !c.Pit.InBounds(c.Width, c.Height, c.Depth) {
		result = multierror.Append(result, fmt.Errorf("pit %v out of "+
			"bounds", c.Pit))
	}
	if c.Goal == c.Pit {
		result = multierror.Append(result, fmt.Errorf("goal and pit "+
			"both at %v", c.Goal))
	}
	if c.Goal == space.Start || c.Pit == space.Start {
		result = multierror.Append(result, fmt.Errorf("goal and pit "+
			"cannot be at the start state %v", space.Start))
	}

	return result.ErrorOrNil()
}

// GridWorld is a width x height x depth grid of cells, some of which are
// blocked by obstacles. Episodes start at (0, 0, 0) and end when the agent
// enters the goal or the pit.
//
// With probability equal to the slip probability, the action taken by
// the agent is replaced by one chosen uniformly from the actions
// perpendicular to it. Moves into obstacles or out of bounds leave the
// agent in place.
type GridWorld struct {
	*Task
	width, height, depth int
	slipProbability      float64

	obstacles []space.State
	blocked   map[space.State]struct{}

	rng *rand.Rand
}

// New creates a new GridWorld. The obstacle layout is generated
// deterministically from the Config, while slips are drawn from src.
func New(c Config, src rand.Source) (*GridWorld, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %w", err)
	}

	obstacles, err := GenerateObstacles(c.Width, c.Height, c.Depth,
		c.ObstacleSeed, c.ObstacleRatio, space.Start, c.Goal, c.Pit)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	blocked := make(map[space.State]struct{}, len(obstacles))
	for _, o := range obstacles {
		blocked[o] = struct{}{}
	}

	return &GridWorld{
		Task:            NewTask(c.Goal, c.Pit),
		width:           c.Width,
		height:          c.Height,
		depth:           c.Depth,
		slipProbability: c.SlipProbability,
		obstacles:       obstacles,
		blocked:         blocked,
		rng:             rand.New(src),
	}, nil
}

// Dims returns the width, height, and depth of the GridWorld
func (g *GridWorld) Dims() (width, height, depth int) {
	return g.width, g.height, g.depth
}

// SlipProbability returns the probability that an action slips
func (g *GridWorld) SlipProbability() float64 {
	return g.slipProbability
}

// Obstacles returns a copy of the obstacle cells in generation order
func (g *GridWorld) Obstacles() []space.State {
	obstacles := make([]space.State, len(g.obstacles))
	copy(obstacles, g.obstacles)
	return obstacles
}

// IsObstacle returns whether s is blocked by an obstacle
func (g *GridWorld) IsObstacle(s space.State) bool {
	_, ok := g.blocked[s]
	return ok
}

// IsValidState returns whether s is in bounds and not an obstacle
func (g *GridWorld) IsValidState(s space.State) bool {
	return s.InBounds(g.width, g.height, g.depth) && !g.IsObstacle(s)
}

// IsTerminal returns whether s is the goal or the pit
func (g *GridWorld) IsTerminal(s space.State) bool {
	return g.Terminal(s)
}

// ValidStates returns every valid state, iterating over x, then y, then
// z
func (g *GridWorld) ValidStates() []space.State {
	states := make([]space.State, 0, g.width*g.height*g.depth-len(g.obstacles))
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			for z := 0; z < g.depth; z++ {
				s := space.State{X: x, Y: y, Z: z}
				if g.IsValidState(s) {
					states = append(states, s)
				}
			}
		}
	}
	return states
}

// Reset returns the first TimeStep of an episode, at the start state
func (g *GridWorld) Reset() timestep.TimeStep {
	return timestep.New(timestep.First, 0, space.Start, 0)
}

// Step takes action a from the state of TimeStep t.
//
// Stepping from an absorbing state returns the same state with zero
// reward and consumes no randomness. An error wrapping ErrInvalidState
// is returned if the state of t is out of bounds or an obstacle.
func (g *GridWorld) Step(t timestep.TimeStep, a space.Action) (timestep.TimeStep,
	error) {
	if err := a.Validate(); err != nil {
		return timestep.TimeStep{}, fmt.Errorf("step: %w", err)
	}

	state := t.State
	if !g.IsValidState(state) {
		return timestep.TimeStep{}, fmt.Errorf("step: %v: %w", state,
			ErrInvalidState)
	}
	number := t.Number + 1

	if g.IsTerminal(state) {
		step := timestep.New(timestep.Last, 0, state, number)
		step.SetEnd(timestep.TerminalStateReached)
		return step, nil
	}

	next := state.Add(g.slip(a))
	if !g.IsValidState(next) {
		next = state
	}

	step := timestep.New(timestep.Mid, g.GetReward(next), next, number)
	if g.IsTerminal(next) {
		step.SetEnd(timestep.TerminalStateReached)
	}
	return step, nil
}

// slip returns the action actually taken when the agent selects a
func (g *GridWorld) slip(a space.Action) space.Action {
	if g.rng.Float64() < g.slipProbability {
		perpendicular := a.Perpendicular()
		return perpendicular[g.rng.Intn(len(perpendicular))]
	}
	return a
}

// Layer returns a text drawing of the z-th layer of the GridWorld with
// y increasing downwards. Obstacles are drawn as '#', the start as 'S',
// the goal as 'G', the pit as 'P', and free cells as '.'.
func (g *GridWorld) Layer(z int) string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			s := space.State{X: x, Y: y, Z: z}
			switch {
			case g.IsObstacle(s):
				b.WriteByte('#')
			case g.AtGoal(s):
				b.WriteByte('G')
			case g.AtPit(s):
				b.WriteByte('P')
			case s == space.Start:
				b.WriteByte('S')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *GridWorld) String() string {
	str := "GridWorld | Bounds: (%d, %d, %d)  |  %v  |  Obstacles: %d  |  " +
		"Slip: %.2f"

	return fmt.Sprintf(str, g.width, g.height, g.depth, g.Task,
		len(g.obstacles), g.slipProbability)
}
