package cmd

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/slipworld/cmd/config"
	"github.com/samuelfneumann/slipworld/environment/gridworld"
)

var worldFlags = map[string]string{
	"slip": "world.slip",
}

func NewWorldCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "world",
		Args:  cobra.ExactArgs(0),
		Short: "Print the layout of the configured gridworld",
		Long: "Print every z layer of the configured gridworld with y " +
			"increasing downwards. S is the start, G the goal, P the pit " +
			"and # an obstacle.",
		RunE: runWorld,
	}
	root.AddCommand(c)
	c.Flags().Float64("slip", config.Default().World.SlipProbability,
		"Probability that an action slips sideways")
	c.Flags().Bool("no-color", false, "Do not colour the output")
	return c
}

// register the subcommand into rootCmd
var _ = NewWorldCmd(rootCmd)

func runWorld(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(cmd.Flags(), worldFlags); err != nil {
		return err
	}
	cfg, err := config.ReadConfig(viper.GetString("config"))
	if err != nil {
		return err
	}

	// Slips are never drawn when printing
	env, err := gridworld.New(cfg.World, rand.NewSource(1))
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	printWorld(cmd.OutOrStdout(), env, aurora.NewAurora(!noColor))
	return nil
}

// printWorld writes each layer of env to out
func printWorld(out io.Writer, env *gridworld.GridWorld, au aurora.Aurora) {
	fmt.Fprintln(out, env)
	fmt.Fprintf(out, "Obstacles: %v\n", env.Obstacles())

	_, _, depth := env.Dims()
	for z := 0; z < depth; z++ {
		fmt.Fprintf(out, "\nz = %d\n", z)
		for _, r := range env.Layer(z) {
			switch r {
			case '#':
				fmt.Fprint(out, au.Blue(string(r)))
			case 'G':
				fmt.Fprint(out, au.Green(string(r)))
			case 'P':
				fmt.Fprint(out, au.Red(string(r)))
			case 'S':
				fmt.Fprint(out, au.Cyan(string(r)))
			default:
				fmt.Fprint(out, string(r))
			}
		}
	}
}
