package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the variant catalog",
	Long: `Fetch the variant catalog from the configured service and list the
variants available for each slide type. When the service cannot be
reached the last cached snapshot is shown.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().Bool("json", false, "print the catalog as JSON")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	if catalogBrowser == nil {
		return fmt.Errorf("catalog: %w", errNotConfigured)
	}

	snap, source, err := catalogBrowser.Catalog(cmd.Context())
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), struct {
			Source   string `json:"source"`
			Snapshot any    `json:"catalog"`
		}{source, snap})
	}
	cmd.Print(renderCatalog(snap, source))
	return nil
}
