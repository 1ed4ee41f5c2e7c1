// Package cli provides the cobra command tree for deckroute.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services holds the driving ports the commands use.
type Services struct {
	Settings   driving.SettingsService
	Runs       driving.RunHistory
	Catalog    driving.CatalogBrowser
	NewRouter  driving.RouterFactory
	NewPlanner driving.PlannerFactory
}

// SetupFunc opens the application for the given directories. The returned
// function releases it.
type SetupFunc func(configDir, dataDir string) (*Services, func() error, error)

var (
	settingsService driving.SettingsService
	runHistory      driving.RunHistory
	catalogBrowser  driving.CatalogBrowser
	newRouter       driving.RouterFactory
	newPlanner      driving.PlannerFactory

	setup    SetupFunc
	teardown func() error
)

// Root flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

var errNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "deckroute",
	Short: "Route presentation strawmen to slide generation services",
	Long: `deckroute classifies the slides of a presentation strawman, picks a
visual variant for each one, and dispatches every slide to the text,
illustrator or analytics service that generates its content.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if setup == nil {
			return nil
		}
		svcs, closeFn, err := setup(configDir, dataDir)
		if err != nil {
			return err
		}
		SetServices(svcs)
		teardown = closeFn
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if teardown == nil {
			return nil
		}
		err := teardown()
		teardown = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log routing decisions to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.deckroute)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.deckroute/data)")
}

// SetServices injects the driving ports.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	settingsService = s.Settings
	runHistory = s.Runs
	catalogBrowser = s.Catalog
	newRouter = s.NewRouter
	newPlanner = s.NewPlanner
}

// SetSetup registers the function that opens the application once the
// root flags are parsed.
func SetSetup(fn SetupFunc) {
	setup = fn
}

// SetVersion sets the version reported by "deckroute version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands observe
// for cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
