package environment

import (
	"testing"

	"github.com/samuelfneumann/slipworld/space"
	"github.com/samuelfneumann/slipworld/timestep"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)

	for n := 1; n < 3; n++ {
		step := timestep.New(timestep.Mid, -1, space.Start, n)
		if limit.End(&step) {
			t.Errorf("step %d: ended before limit", n)
		}
	}

	step := timestep.New(timestep.Mid, -1, space.Start, 3)
	if !limit.End(&step) {
		t.Fatal("step 3: should end at limit")
	}
	if !step.Truncated() {
		t.Errorf("want Timeout, have %v", step.EndType())
	}
}

func TestStepLimitKeepsTerminal(t *testing.T) {
	limit := NewStepLimit(1)

	step := timestep.New(timestep.Mid, 50, space.State{X: 1}, 1)
	step.SetEnd(timestep.TerminalStateReached)
	if !limit.End(&step) {
		t.Fatal("last step should end the episode")
	}
	if !step.Terminal() {
		t.Errorf("terminal end overwritten with %v", step.EndType())
	}
}
