// Package config reads the configuration of the slipworld command from
// defaults, a YAML file, SLIPWORLD_ environment variables and command
// line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/samuelfneumann/slipworld/agent/tabular/qlearning"
	"github.com/samuelfneumann/slipworld/environment/gridworld"
	"github.com/samuelfneumann/slipworld/experiment"
	"github.com/samuelfneumann/slipworld/space"
)

// EnvPrefix is the prefix of environment variables read into the
// configuration
const EnvPrefix = "SLIPWORLD"

// Config is the full configuration of a training run
type Config struct {
	World      gridworld.Config      `mapstructure:"world" yaml:"world"`
	Agent      qlearning.Config      `mapstructure:"agent" yaml:"agent"`
	Training   experiment.Config     `mapstructure:"training" yaml:"training"`
	Evaluation experiment.EvalConfig `mapstructure:"evaluation" yaml:"evaluation"`

	// Seed seeds all learning-time randomness. A zero seed is replaced
	// by one drawn from the clock.
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		World:      gridworld.DefaultConfig(),
		Agent:      qlearning.DefaultConfig(),
		Training:   experiment.DefaultConfig(),
		Evaluation: experiment.DefaultEvalConfig(),
	}
}

// Validate returns an error describing every problem with the Config
func (c Config) Validate() error {
	var result *multierror.Error
	for name, v := range map[string]interface{ Validate() error }{
		"world":      c.World,
		"agent":      c.Agent,
		"training":   c.Training,
		"evaluation": c.Evaluation,
	} {
		if err := v.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name,
				err))
		}
	}
	return result.ErrorOrNil()
}

// formatState formats s the way StringToStateHookFunc parses it
func formatState(s space.State) string {
	return fmt.Sprintf("%d,%d,%d", s.X, s.Y, s.Z)
}

// setDefaults registers every key of the default Config with viper, so
// that each can be overridden from the environment
func setDefaults() {
	d := Default()

	viper.SetDefault("world.width", d.World.Width)
	viper.SetDefault("world.height", d.World.Height)
	viper.SetDefault("world.depth", d.World.Depth)
	viper.SetDefault("world.slip", d.World.SlipProbability)
	viper.SetDefault("world.goal", formatState(d.World.Goal))
	viper.SetDefault("world.pit", formatState(d.World.Pit))
	viper.SetDefault("world.obstacle-seed", d.World.ObstacleSeed)
	viper.SetDefault("world.obstacle-ratio", d.World.ObstacleRatio)

	viper.SetDefault("agent.learning-rate", d.Agent.LearningRate)
	viper.SetDefault("agent.discount", d.Agent.Discount)
	viper.SetDefault("agent.epsilon", d.Agent.Epsilon)

	viper.SetDefault("training.episodes", d.Training.Episodes)
	viper.SetDefault("training.max-episode-steps", d.Training.MaxEpisodeSteps)
	viper.SetDefault("training.progress-interval", d.Training.ProgressInterval)

	viper.SetDefault("evaluation.episodes", d.Evaluation.Episodes)
	viper.SetDefault("evaluation.max-episode-steps",
		d.Evaluation.MaxEpisodeSteps)

	viper.SetDefault("seed", d.Seed)
}

// StringToStateHookFunc returns a DecodeHookFunc that converts strings
// of the form "x,y,z" and lists of three integers to space.State
func StringToStateHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type,
		data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(space.State{}) {
			return data, nil
		}

		switch f.Kind() {
		case reflect.String:
			return space.ParseState(data.(string))

		case reflect.Slice:
			v := reflect.ValueOf(data)
			if v.Len() != 3 {
				return nil, fmt.Errorf("want 3 coordinates, have %v", data)
			}
			var coords [3]int
			for i := range coords {
				if err := mapstructure.WeakDecode(v.Index(i).Interface(),
					&coords[i]); err != nil {
					return nil, err
				}
			}
			return space.State{X: coords[0], Y: coords[1], Z: coords[2]}, nil

		default:
			return data, nil
		}
	}
}

// ReadConfig reads and validates the configuration, merging the YAML
// file at path if path is not empty. Changed flags which were bound with
// BindFlags override every other source.
func ReadConfig(path string) (*Config, error) {
	setDefaults()

	if path != "" {
		viper.SetConfigFile(path)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("readConfig: %w", err)
		}
	}

	// Set the prefix for vars so we get only the ones starting with
	// SLIPWORLD, with nested keys separated by underscores
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		StringToStateHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := viper.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("readConfig: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("readConfig: %w", err)
	}
	return cfg, nil
}

// BindFlags binds each named flag of flags to a configuration key
func BindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	var result *multierror.Error
	for flag, key := range keys {
		f := flags.Lookup(flag)
		if f == nil {
			result = multierror.Append(result, fmt.Errorf("no flag %q",
				flag))
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// NewLogger returns a logger configured from the debug, quiet and
// logfile settings. Log output goes to out unless quiet is set, and
// additionally to the logfile if one is given.
func NewLogger(out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
	})

	if viper.GetBool("debug") {
		logger.SetLevel(logrus.DebugLevel)
	}

	var writers []io.Writer
	if !viper.GetBool("quiet") {
		writers = append(writers, out)
	}

	if logfile := viper.GetString("logfile"); logfile != "" {
		f, err := os.OpenFile(logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			0o644)
		if err != nil {
			return nil, fmt.Errorf("newLogger: could not open %s for "+
				"logging: %w", logfile, err)
		}
		writers = append(writers, f)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger, nil
}
