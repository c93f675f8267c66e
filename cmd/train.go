package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/agent/tabular/policy"
	"github.com/samuelfneumann/slipworld/agent/tabular/qlearning"
	"github.com/samuelfneumann/slipworld/cmd/config"
	"github.com/samuelfneumann/slipworld/environment/gridworld"
	"github.com/samuelfneumann/slipworld/experiment"
	"github.com/samuelfneumann/slipworld/experiment/trackers"
	"github.com/samuelfneumann/slipworld/plot"
	"github.com/samuelfneumann/slipworld/utils/progressbar"
)

// Offsets added to the run seed so that each component draws from its
// own source
const (
	envSeed uint64 = iota
	agentSeed
	extractSeed
	randomPolicySeed
)

const progressBarWidth = 40

// trainFlags maps the flags of the train command to config keys
var trainFlags = map[string]string{
	"episodes":      "training.episodes",
	"max-steps":     "training.max-episode-steps",
	"slip":          "world.slip",
	"seed":          "seed",
	"epsilon":       "agent.epsilon",
	"learning-rate": "agent.learning-rate",
	"discount":      "agent.discount",
	"eval-episodes": "evaluation.episodes",
}

func NewTrainCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "train",
		Args:  cobra.ExactArgs(0),
		Short: "Train a Q-learning agent and evaluate its greedy policy",
		RunE:  runTrain,
	}
	root.AddCommand(c)

	d := config.Default()
	c.Flags().Int("episodes", d.Training.Episodes, "Number of training episodes")
	c.Flags().Int("max-steps", d.Training.MaxEpisodeSteps, "Maximum steps per episode")
	c.Flags().Float64("slip", d.World.SlipProbability, "Probability that an action slips sideways")
	c.Flags().Uint64("seed", d.Seed, "Seed for all learning randomness, 0 seeds from the clock")
	c.Flags().Float64("epsilon", d.Agent.Epsilon, "Exploration rate of the behaviour policy")
	c.Flags().Float64("learning-rate", d.Agent.LearningRate, "Q-learning step size")
	c.Flags().Float64("discount", d.Agent.Discount, "Discount factor")
	c.Flags().Int("eval-episodes", d.Evaluation.Episodes, "Number of evaluation trials")
	c.Flags().String("report", "", "Write a YAML report of the run to this file")
	c.Flags().String("plot-dir", "", "Write reward and value plots to this directory")
	c.Flags().Int("z", -1, "Layer of the value plot, -1 plots every layer")
	c.Flags().Bool("no-progress", false, "Do not display a progress bar")
	return c
}

// register the subcommand into rootCmd
var _ = NewTrainCmd(rootCmd)

func runTrain(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(cmd.Flags(), trainFlags); err != nil {
		return err
	}
	cfg, err := config.ReadConfig(viper.GetString("config"))
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.WithFields(logrus.Fields{
		"seed":     seed,
		"episodes": cfg.Training.Episodes,
		"slip":     cfg.World.SlipProbability,
	}).Info("starting training")

	env, err := gridworld.New(cfg.World, rand.NewSource(seed+envSeed))
	if err != nil {
		return err
	}
	logger.Debug(env)

	lengths := trackers.NewEpisodeLength()
	ends := trackers.NewTerminations()
	exp, err := cfg.Training.CreateExp(env, cfg.Agent, seed+agentSeed,
		logger, lengths, ends)
	if err != nil {
		return err
	}
	q := exp.Agent.(*qlearning.QLearning)

	var bar *progressbar.ManualProgressBar
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	if !noProgress && !viper.GetBool("quiet") {
		bar = progressbar.NewManualProgressBar(cmd.ErrOrStderr(),
			progressBarWidth, cfg.Training.Episodes)
		exp.OnProgress(func(p experiment.Progress) {
			bar.Set(float64(p.Episode))
			bar.SetStatus("episode %d  avg %.2f", p.Episode, p.MovingAverage)
			_ = bar.Display()
		})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err = exp.Run(ctx)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("train: stopped after %d episodes: %w",
			exp.Episodes(), err)
	}

	learned := policy.Extract(env, q.Table(), rand.NewSource(seed+extractSeed))
	random := policy.NewUniform(rand.NewSource(seed + randomPolicySeed))
	summary, err := experiment.Evaluate(ctx, env, learned, random,
		cfg.Evaluation, logger)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, env)
	fmt.Fprintf(out, "Training: %d episodes  |  Terminal: %d  |  Timeout: "+
		"%d  |  States visited: %d\n", exp.Episodes(), ends.Terminal(),
		ends.Timeout(), q.Table().Len())
	fmt.Fprintln(out, summary)

	if filename, _ := cmd.Flags().GetString("report"); filename != "" {
		r := RunReport{
			Seed:   seed,
			Config: *cfg,
			Training: TrainingReport{
				Episodes:       exp.Episodes(),
				Terminal:       ends.Terminal(),
				Timeout:        ends.Timeout(),
				StatesVisited:  q.Table().Len(),
				Returns:        exp.Returns(),
				MovingAverages: exp.MovingAverages(),
				EpisodeLengths: lengths.Lengths(),
			},
			Policy:     actionCounts(learned),
			Evaluation: summary,
		}
		if err := writeReport(filename, r); err != nil {
			return err
		}
		logger.WithField("file", filename).Info("report written")
	}

	if dir, _ := cmd.Flags().GetString("plot-dir"); dir != "" {
		z, _ := cmd.Flags().GetInt("z")
		if err := writePlots(dir, z, env, exp, q, learned); err != nil {
			return err
		}
		logger.WithField("dir", dir).Info("plots written")
	}

	return nil
}

// writePlots writes the reward curve and value slices of a run to dir.
// If z is negative every layer is plotted.
func writePlots(dir string, z int, env *gridworld.GridWorld,
	exp *experiment.Online, q *qlearning.QLearning, learned policy.Map) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("writePlots: %w", err)
	}

	returns, averages := exp.Returns(), exp.MovingAverages()
	err := plot.SaveRewardCurve(filepath.Join(dir, "rewards.png"), returns,
		averages)
	if err != nil {
		return err
	}
	err = plot.SaveChart(filepath.Join(dir, "rewards.html"), "Training",
		plot.Series{Name: "return", Values: returns},
		plot.Series{Name: "moving average", Values: averages},
	)
	if err != nil {
		return err
	}

	_, _, depth := env.Dims()
	layers := []int{z}
	if z < 0 {
		layers = layers[:0]
		for i := 0; i < depth; i++ {
			layers = append(layers, i)
		}
	}

	values := q.Table().Values(env.ValidStates())
	for _, layer := range layers {
		filename := filepath.Join(dir, fmt.Sprintf("values-z%d.png", layer))
		if err := plot.SaveSlice(filename, env, values, learned,
			layer); err != nil {
			return err
		}
	}
	return nil
}
