package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rpgo/savings-simulator/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals()...)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "savesim",
		Short: "Monte Carlo simulator for a regular savings plan",
		Long: `savesim projects a savings plan that adds a fixed contribution every year
to capital earning a normally distributed annual return.

It simulates many independent trials and reports the mean and the 5th and
95th percentiles of capital for every year and for the final year.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			return config.NewInputParser().LoadDotEnv(envFile)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("env-file", "", "Load SAVESIM_* variables from this file (default .env if present)")

	rootCmd.AddCommand(
		newRunCmd(),
		newDashboardCmd(),
		newExampleCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
