// Package cmd implements the slipworld command line interface
package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samuelfneumann/slipworld/cmd/config"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slipworld",
		Short: "Q-learning in stochastic 3D gridworlds",
		Long: "slipworld trains tabular Q-learning agents in 3D gridworlds " +
			"where actions may slip sideways, and compares the learned " +
			"greedy policy against a random one.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	cmd.PersistentFlags().String("config", "", "Set YAML config file")
	cmd.PersistentFlags().String("logfile", "", "Set logfile")
	cmd.PersistentFlags().Bool("quiet", false, "Do not output logs or progress")
	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logfile", cmd.PersistentFlags().Lookup("logfile"))
	_ = viper.BindPFlag("quiet", cmd.PersistentFlags().Lookup("quiet"))
	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCmd()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// logError logs err with the configured logger. Errors are written to
// out even when quiet is set or the logfile cannot be opened.
func logError(out io.Writer, err error) {
	logger, lerr := config.NewLogger(out)
	if lerr != nil || viper.GetBool("quiet") {
		logger = logrus.New()
		logger.SetOutput(out)
	}
	logger.WithError(err).Error("slipworld failed")
}
