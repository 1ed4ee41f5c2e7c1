package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckroute/internal/adapters/driven/config/file"
)

var planCmd = &cobra.Command{
	Use:   "plan <strawman>",
	Short: "Preview classifications and variants without generating anything",
	Long: `Run the preparation pass on a strawman: assign layouts, classify each
slide, apply diversity overrides and select variants. Nothing is sent to
the generation services; only the variant catalog is fetched.

Use --write to save the prepared strawman, which can then be routed
without reclassification.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	addPrepareFlags(planCmd)
	planCmd.Flags().String("session", "", "session id (default: a new UUID)")
	planCmd.Flags().Bool("json", false, "print the preparation report as JSON")
	planCmd.Flags().StringP("write", "w", "", "write the prepared strawman to this file (.json or .toml)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if newPlanner == nil {
		return fmt.Errorf("planner: %w", errNotConfigured)
	}

	strawman, err := file.LoadStrawman(args[0])
	if err != nil {
		return err
	}
	planner, err := newPlanner(routeOptions(cmd))
	if err != nil {
		return err
	}

	sessionID, _ := cmd.Flags().GetString("session")
	report, err := planner.Plan(cmd.Context(), strawman, sessionID)
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("write"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("write prepared strawman: %w", err)
		}
		werr := file.WriteStrawman(f, strawman, file.StrawmanFormat(out))
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			return fmt.Errorf("write prepared strawman: %w", werr)
		}
		cmd.PrintErrf("Prepared strawman written to %s\n", out)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	cmd.Print(renderPlan(strawman.Title, report))
	return nil
}
