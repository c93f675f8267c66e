package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/slipworld/agent/tabular/policy"
	"github.com/samuelfneumann/slipworld/cmd/config"
	"github.com/samuelfneumann/slipworld/experiment"
	"github.com/samuelfneumann/slipworld/space"
)

// RunReport summarises a training run. Action values are not included.
type RunReport struct {
	Seed       uint64             `yaml:"seed"`
	Config     config.Config      `yaml:"config"`
	Training   TrainingReport     `yaml:"training"`
	Policy     map[string]int     `yaml:"policy"`
	Evaluation experiment.Summary `yaml:"evaluation"`
}

// TrainingReport holds the traces recorded while training
type TrainingReport struct {
	Episodes       int       `yaml:"episodes"`
	Terminal       int       `yaml:"terminal"`
	Timeout        int       `yaml:"timeout"`
	StatesVisited  int       `yaml:"statesVisited"`
	Returns        []float64 `yaml:"returns,flow"`
	MovingAverages []float64 `yaml:"movingAverages,flow"`
	EpisodeLengths []int     `yaml:"episodeLengths,flow"`
}

// actionCounts returns the number of states the policy sends in each
// direction, keyed by action name
func actionCounts(m policy.Map) map[string]int {
	counts := m.Counts()
	named := make(map[string]int, len(counts))
	for a, n := range counts {
		named[space.Action(a).String()] = n
	}
	return named
}

// writeReport writes r to filename as YAML
func writeReport(filename string, r RunReport) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("writeReport: %w", err)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		f.Close()
		return fmt.Errorf("writeReport: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("writeReport: %w", err)
	}
	return f.Close()
}
