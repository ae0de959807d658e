package main

import (
	"github.com/rpgo/savings-simulator/internal/config"
	"github.com/spf13/cobra"
)

func newExampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("output")
			parser := config.NewInputParser()
			if err := parser.SavePlan(parser.CreateExamplePlan(), path); err != nil {
				return err
			}
			cmd.Printf("Example plan written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().String("output", "savesim_plan.yaml", "Destination file")
	return cmd
}
