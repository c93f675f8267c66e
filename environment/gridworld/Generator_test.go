package gridworld

import (
	"errors"
	"reflect"
	"testing"

	"github.com/samuelfneumann/slipworld/space"
)

// defaultObstacles is the layout of the default 6x6x6 world, in
// generation order
var defaultObstacles = []space.State{
	{X: 1, Y: 0, Z: 3}, {X: 1, Y: 2, Z: 0},
	{X: 2, Y: 0, Z: 5}, {X: 5, Y: 5, Z: 2},
	{X: 3, Y: 5, Z: 3}, {X: 0, Y: 0, Z: 5},
	{X: 5, Y: 5, Z: 3}, {X: 1, Y: 3, Z: 1},
	{X: 5, Y: 4, Z: 0}, {X: 4, Y: 2, Z: 0},
	{X: 0, Y: 3, Z: 4}, {X: 5, Y: 4, Z: 2},
	{X: 3, Y: 4, Z: 4}, {X: 4, Y: 5, Z: 2},
	{X: 0, Y: 1, Z: 2}, {X: 0, Y: 4, Z: 3},
	{X: 4, Y: 2, Z: 1}, {X: 1, Y: 0, Z: 1},
	{X: 2, Y: 5, Z: 5}, {X: 1, Y: 5, Z: 3},
	{X: 2, Y: 1, Z: 0}, {X: 5, Y: 0, Z: 5},
	{X: 4, Y: 2, Z: 4}, {X: 0, Y: 1, Z: 3},
	{X: 1, Y: 4, Z: 5},
}

func TestLCG(t *testing.T) {
	l := NewLCG(42)

	// 42 * 1664525 + 1013904223
	if v := l.Next(); v != 1083814273 {
		t.Errorf("first draw: want 1083814273, have %d", v)
	}

	for i := 0; i < 1000; i++ {
		if f := l.Float64(); f < 0 || f >= 1 {
			t.Fatalf("draw %d: %v not in [0, 1)", i, f)
		}
	}
}

func TestGenerateObstaclesDeterministic(t *testing.T) {
	c := DefaultConfig()
	reserved := []space.State{space.Start, c.Goal, c.Pit}

	first, err := GenerateObstacles(c.Width, c.Height, c.Depth,
		c.ObstacleSeed, c.ObstacleRatio, reserved...)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, defaultObstacles) {
		t.Errorf("default layout:\nwant %v\nhave %v", defaultObstacles, first)
	}

	for i := 0; i < 5; i++ {
		again, err := GenerateObstacles(c.Width, c.Height, c.Depth,
			c.ObstacleSeed, c.ObstacleRatio, reserved...)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("generation %d differs:\n%v\n%v", i, first, again)
		}
	}

	other, err := GenerateObstacles(c.Width, c.Height, c.Depth,
		c.ObstacleSeed+1, c.ObstacleRatio, reserved...)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(first, other) {
		t.Error("different seeds produced the same layout")
	}
}

func TestGenerateObstaclesReserved(t *testing.T) {
	tests := []struct {
		w, h, d   int
		goal, pit space.State
	}{
		{2, 2, 2, space.State{X: 1, Y: 1, Z: 1}, space.State{X: 0, Y: 1, Z: 1}},
		{3, 4, 5, space.State{X: 2, Y: 3, Z: 4}, space.State{X: 1, Y: 2, Z: 2}},
		{6, 6, 6, space.State{X: 5, Y: 5, Z: 5}, space.State{X: 2, Y: 2, Z: 2}},
		{1, 1, 9, space.State{X: 0, Y: 0, Z: 8}, space.State{X: 0, Y: 0, Z: 4}},
		{10, 10, 10, space.State{X: 9, Y: 9, Z: 9}, space.State{X: 0, Y: 9, Z: 0}},
		{4, 4, 4, space.State{X: 1, Y: 0, Z: 0}, space.State{X: 0, Y: 1, Z: 0}},
	}

	for _, test := range tests {
		for _, ratio := range []float64{0.12, 0.3, 0.5} {
			obstacles, err := GenerateObstacles(test.w, test.h, test.d, 42,
				ratio, space.Start, test.goal, test.pit)
			if err != nil {
				t.Fatalf("(%d, %d, %d) ratio %v: %v", test.w, test.h, test.d,
					ratio, err)
			}

			want := ObstacleCount(test.w, test.h, test.d, ratio)
			if len(obstacles) != want {
				t.Errorf("(%d, %d, %d) ratio %v: want %d obstacles, have %d",
					test.w, test.h, test.d, ratio, want, len(obstacles))
			}

			seen := make(map[space.State]bool)
			for _, o := range obstacles {
				if o == space.Start || o == test.goal || o == test.pit {
					t.Errorf("(%d, %d, %d): reserved cell %v is an obstacle",
						test.w, test.h, test.d, o)
				}
				if seen[o] {
					t.Errorf("(%d, %d, %d): duplicate obstacle %v", test.w,
						test.h, test.d, o)
				}
				if !o.InBounds(test.w, test.h, test.d) {
					t.Errorf("(%d, %d, %d): obstacle %v out of bounds",
						test.w, test.h, test.d, o)
				}
				seen[o] = true
			}
		}
	}
}

func TestGenerateObstaclesUnreachable(t *testing.T) {
	// One obstacle requested, but both cells are reserved
	_, err := GenerateObstacles(2, 1, 1, 42, 0.99, space.Start,
		space.State{X: 1})
	if !errors.Is(err, ErrObstacleTarget) {
		t.Errorf("want ErrObstacleTarget, have %v", err)
	}

	c := Config{
		Width:         2,
		Height:        2,
		Depth:         2,
		Goal:          space.State{X: 1, Y: 1, Z: 1},
		Pit:           space.State{X: 1, Y: 0, Z: 1},
		ObstacleSeed:  42,
		ObstacleRatio: 0.9,
	}
	if _, err := New(c, nil); !errors.Is(err, ErrObstacleTarget) {
		t.Errorf("want ErrObstacleTarget from New, have %v", err)
	}
}

func TestGenerateObstaclesFull(t *testing.T) {
	// Every free cell must be blocked, which the generator must still
	// find in a bounded number of draws
	obstacles, err := GenerateObstacles(2, 2, 1, 7, 0.5, space.Start,
		space.State{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(obstacles) != 2 {
		t.Errorf("want 2 obstacles, have %v", obstacles)
	}
}
