package main

import (
	"os"
	"strings"

	"github.com/rpgo/savings-simulator/internal/output"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the plan and print or write a report",
		Long: `Simulate the plan and render the result.

The plan comes from defaults, then --config, then SAVESIM_* environment
variables, then flags. With --output the report is written to that file, or
to a timestamped file when the path is a directory.`,
		Example: `  savesim run --num-trials 5000 --seed 42
  savesim run --config plan.yaml --format html --output reports/
  SAVESIM_STDEV_RETURN=0.15 savesim run --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := simulate(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			dest, _ := cmd.Flags().GetString("output")

			if dest != "" && isDirectory(dest) {
				path, err := output.WriteReport(result, format, dest)
				if err != nil {
					return err
				}
				cmd.Printf("Report written to %s\n", path)
				return nil
			}

			data, err := output.Render(result, format)
			if err != nil {
				return err
			}
			if dest == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := output.WriteFile(dest, data); err != nil {
				return err
			}
			cmd.Printf("Report written to %s\n", dest)
			return nil
		},
	}

	addPlanFlags(cmd)
	cmd.Flags().String("format", "console", "Report format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().String("output", "", "Write the report to this file or directory instead of stdout")
	return cmd
}

func isDirectory(path string) bool {
	if strings.HasSuffix(path, string(os.PathSeparator)) || strings.HasSuffix(path, "/") {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
