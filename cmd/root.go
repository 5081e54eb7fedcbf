// Package cmd implements the venuegate CLI: connecting the decision core
// to a live game server, or driving a synthetic stream for local tuning.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "venuegate",
	Short: "Online admission controller for a capacity-bounded venue",
}

// Execute runs the CLI, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	cobra.OnInitialize(func() {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
}
