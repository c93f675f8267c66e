package experiment

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/agent/tabular/policy"
	"github.com/samuelfneumann/slipworld/agent/tabular/qlearning"
	"github.com/samuelfneumann/slipworld/environment/gridworld"
	"github.com/samuelfneumann/slipworld/experiment/trackers"
	"github.com/samuelfneumann/slipworld/space"
)

// openWorld returns an obstacle-free 3x3x3 world
func openWorld(t *testing.T, slip float64, seed uint64) *gridworld.GridWorld {
	t.Helper()
	c := gridworld.Config{
		Width:           3,
		Height:          3,
		Depth:           3,
		SlipProbability: slip,
		Goal:            space.State{X: 2, Y: 2, Z: 2},
		Pit:             space.State{X: 0, Y: 2, Z: 2},
		ObstacleSeed:    gridworld.DefaultObstacleSeed,
	}
	g, err := gridworld.New(c, rand.NewSource(seed))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newTrainer(t *testing.T, slip float64, c Config,
	seed uint64) (*Online, *qlearning.QLearning) {
	t.Helper()
	q, err := qlearning.New(qlearning.DefaultConfig(), rand.NewSource(seed))
	if err != nil {
		t.Fatal(err)
	}
	o, err := NewOnline(openWorld(t, slip, seed), q, c, nil)
	if err != nil {
		t.Fatal(err)
	}
	return o, q
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Error(err)
	}
	if err := DefaultEvalConfig().Validate(); err != nil {
		t.Error(err)
	}
	if err := (Config{}).Validate(); err == nil {
		t.Error("want error for zero config")
	}
	if err := (EvalConfig{Episodes: 10}).Validate(); err == nil {
		t.Error("want error for zero step limit")
	}
}

func TestOnlineProgress(t *testing.T) {
	c := Config{Episodes: 120, MaxEpisodeSteps: 200, ProgressInterval: 50}
	o, _ := newTrainer(t, 0.2, c, 1)

	var reported []int
	o.OnProgress(func(p Progress) {
		reported = append(reported, p.Episode)
		if p.Episodes != 120 {
			t.Errorf("want 120 episodes, have %d", p.Episodes)
		}
	})

	if err := o.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if want := []int{50, 100, 120}; !reflect.DeepEqual(reported, want) {
		t.Errorf("want progress at %v, have %v", want, reported)
	}
	if len(o.Returns()) != 120 || len(o.MovingAverages()) != 120 {
		t.Errorf("want 120 returns and averages, have %d and %d",
			len(o.Returns()), len(o.MovingAverages()))
	}

	// Further calls have nothing left to run
	if err := o.Run(context.Background()); err != nil || o.Episodes() != 120 {
		t.Errorf("rerun: episodes %d, err %v", o.Episodes(), err)
	}
}

func TestOnlineStepCap(t *testing.T) {
	c := Config{Episodes: 50, MaxEpisodeSteps: 5, ProgressInterval: 10}
	o, _ := newTrainer(t, 0.5, c, 2)

	lengths := trackers.NewEpisodeLength()
	ends := trackers.NewTerminations()
	o.Register(lengths)
	o.Register(ends)

	if err := o.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i, l := range lengths.Lengths() {
		if l > 5 {
			t.Errorf("episode %d ran %d steps", i, l)
		}
	}
	if ends.Terminal()+ends.Timeout() != 50 {
		t.Errorf("want 50 finished episodes, have %d",
			ends.Terminal()+ends.Timeout())
	}
	// The goal is at least 6 steps away
	for i, r := range o.Returns() {
		if r > 0 {
			t.Errorf("episode %d reached the goal within 5 steps", i)
		}
	}
}

func TestOnlineCancel(t *testing.T) {
	c := DefaultConfig()
	o, _ := newTrainer(t, 0.2, c, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	o.OnProgress(func(p Progress) {
		if p.Episode == 100 {
			cancel()
		}
	})

	err := o.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, have %v", err)
	}
	if o.Episodes() != 100 || len(o.Returns()) != 100 {
		t.Errorf("want 100 episodes kept, have %d episodes and %d returns",
			o.Episodes(), len(o.Returns()))
	}
}

func TestOnlineReproducible(t *testing.T) {
	c := Config{Episodes: 100, MaxEpisodeSteps: 200, ProgressInterval: 50}

	first, _ := newTrainer(t, 0.2, c, 4)
	second, _ := newTrainer(t, 0.2, c, 4)
	for _, o := range []*Online{first, second} {
		if err := o.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	if !reflect.DeepEqual(first.Returns(), second.Returns()) {
		t.Error("same seeds produced different returns")
	}
}

func TestEvaluate(t *testing.T) {
	c := Config{Episodes: 1000, MaxEpisodeSteps: 200, ProgressInterval: 100}
	o, q := newTrainer(t, 0, c, 5)
	if err := o.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	env := openWorld(t, 0, 6)
	learned := policy.Extract(env, q.Table(), rand.NewSource(7))
	random := policy.NewUniform(rand.NewSource(8))

	e := EvalConfig{Episodes: 50, MaxEpisodeSteps: 200}
	s, err := Evaluate(context.Background(), env, learned, random, e, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(s.LearnedReturns) != 50 || len(s.RandomReturns) != 50 {
		t.Fatalf("want 50 returns each, have %d and %d",
			len(s.LearnedReturns), len(s.RandomReturns))
	}
	if s.Learned <= s.Random {
		t.Errorf("learned policy (%v) no better than random (%v)",
			s.Learned, s.Random)
	}
	if s.Difference != s.Learned-s.Random {
		t.Errorf("difference %v != %v - %v", s.Difference, s.Learned,
			s.Random)
	}

	// Without slip the learned policy is deterministic
	for _, r := range s.LearnedReturns {
		if r != s.LearnedReturns[0] {
			t.Fatalf("learned returns differ: %v", s.LearnedReturns)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	env := openWorld(t, 0.2, 1)
	random := policy.NewUniform(rand.NewSource(1))

	_, err := Evaluate(context.Background(), env, random, random,
		EvalConfig{}, nil)
	if err == nil {
		t.Error("want error for invalid config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Evaluate(ctx, env, random, random, DefaultEvalConfig(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, have %v", err)
	}
}
