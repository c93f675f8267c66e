package gridworld

import (
	"errors"
	"fmt"
	"math"

	"github.com/samuelfneumann/slipworld/space"
)

const (
	// DefaultObstacleSeed seeds the obstacle generator so that every
	// gridworld with the same dimensions has the same layout
	DefaultObstacleSeed uint32 = 42

	// DefaultObstacleRatio is the fraction of cells which are blocked
	DefaultObstacleRatio float64 = 0.12

	lcgMultiplier uint32  = 1664525
	lcgIncrement  uint32  = 1013904223
	lcgModulus    float64 = 1 << 32

	// Number of generator draws allowed per requested obstacle before
	// generation gives up
	maxGenerationDraws = 1000
)

// ErrObstacleTarget is returned when the requested number of obstacles
// cannot be placed
var ErrObstacleTarget = errors.New("obstacle target unreachable")

// LCG is a linear congruential generator with modulus 2^32. It is used
// only for world generation and is independent of all other sources of
// randomness.
type LCG struct {
	state uint32
}

// NewLCG returns a new LCG seeded with seed
func NewLCG(seed uint32) *LCG {
	return &LCG{seed}
}

// Next advances the generator and returns its new state. Overflow of
// the uint32 state performs the reduction modulo 2^32.
func (l *LCG) Next() uint32 {
	l.state = l.state*lcgMultiplier + lcgIncrement
	return l.state
}

// Float64 advances the generator and returns its state scaled to
// [0, 1)
func (l *LCG) Float64() float64 {
	return float64(l.Next()) / lcgModulus
}

// intn returns floor(Float64() * n)
func (l *LCG) intn(n int) int {
	return int(l.Float64() * float64(n))
}

// ObstacleCount returns the number of obstacles generated for a grid
// with the given dimensions and obstacle ratio
func ObstacleCount(width, height, depth int, ratio float64) int {
	return int(math.Floor(float64(width*height*depth) * ratio))
}

// GenerateObstacles generates the obstacle layout of a width x height x
// depth grid. Candidate cells are drawn as (x, y, z) triples from an LCG
// seeded with seed, and are rejected if they are reserved or already
// chosen. The same arguments always produce the same obstacles in the
// same order.
//
// An error wrapping ErrObstacleTarget is returned if there are fewer
// free cells than requested obstacles, or if the generator fails to
// find them within a bounded number of draws.
func GenerateObstacles(width, height, depth int, seed uint32, ratio float64,
	reserved ...space.State) ([]space.State, error) {
	target := ObstacleCount(width, height, depth, ratio)

	taken := make(map[space.State]struct{}, target+len(reserved))
	for _, r := range reserved {
		if r.InBounds(width, height, depth) {
			taken[r] = struct{}{}
		}
	}

	if free := width*height*depth - len(taken); target > free {
		return nil, fmt.Errorf("generateObstacles: want %d obstacles but "+
			"only %d free cells: %w", target, free, ErrObstacleTarget)
	}

	obstacles := make([]space.State, 0, target)
	rng := NewLCG(seed)
	for draws := 0; len(obstacles) < target; draws++ {
		if draws >= maxGenerationDraws*target {
			return nil, fmt.Errorf("generateObstacles: placed %d of %d "+
				"obstacles in %d draws: %w", len(obstacles), target, draws,
				ErrObstacleTarget)
		}

		x := rng.intn(width)
		y := rng.intn(height)
		z := rng.intn(depth)
		candidate := space.State{X: x, Y: y, Z: z}

		if _, ok := taken[candidate]; ok {
			continue
		}
		taken[candidate] = struct{}{}
		obstacles = append(obstacles, candidate)
	}

	return obstacles, nil
}
