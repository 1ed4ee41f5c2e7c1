package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the routing run history",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent routing runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one routing run and its error summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a routing run from the history",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsListCmd.Flags().IntP("limit", "n", 20, "number of runs to show (0 for all)")
	runsShowCmd.Flags().Bool("json", false, "print the run as JSON")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runHistory == nil {
		return fmt.Errorf("run history: %w", errNotConfigured)
	}
	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := runHistory.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	cmd.Print(renderRuns(runs))
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runHistory == nil {
		return fmt.Errorf("run history: %w", errNotConfigured)
	}
	run, err := runHistory.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get run %s: %w", args[0], err)
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), run)
	}
	cmd.Print(renderRun(run))
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	if runHistory == nil {
		return fmt.Errorf("run history: %w", errNotConfigured)
	}
	if err := runHistory.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete run %s: %w", args[0], err)
	}
	cmd.Printf("Deleted run %s\n", args[0])
	return nil
}
