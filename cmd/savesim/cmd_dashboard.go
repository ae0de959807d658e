package main

import (
	"github.com/rpgo/savings-simulator/internal/dashboard"
	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Simulate the plan and show terminal charts (q to quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := simulate(cmd)
			if err != nil {
				return err
			}
			d, err := dashboard.New(result)
			if err != nil {
				return err
			}
			return d.Run(cmd.Context())
		},
	}
	addPlanFlags(cmd)
	return cmd
}
