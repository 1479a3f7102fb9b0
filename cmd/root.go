package cmd

import (
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "flightsim",
	Short: "Flight Telemetry Simulator",
	Long: `A CLI tool that simulates aircraft flight telemetry in real time.

The simulator flies a training phase of 120 ticks as fast as possible, then a
testing phase paced at one tick every 500ms during which engine failures are
injected at random. Every tick is appended as one JSON line to the telemetry
file for downstream anomaly detection.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (defaults apply when omitted)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
}
