package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/deckroute/internal/adapters/driven/config/file"
	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui"
	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// errSlidesFailed makes the command exit non-zero when any slide failed.
var errSlidesFailed = errors.New("one or more slides failed")

var routeCmd = &cobra.Command{
	Use:   "route <strawman>",
	Short: "Route a strawman to the generation services",
	Long: `Classify every slide of a strawman (JSON or TOML), select a variant
for it, and dispatch it to the service that generates its content.

Slides are processed strictly in order. A failing slide never stops the
run: it is recorded with a categorised error and a suggested remediation.

Examples:
  deckroute route deck.toml
  deckroute route deck.json --json > result.json
  deckroute route deck.toml --progress
  deckroute route deck.toml --watch --derive-titles`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	addPrepareFlags(routeCmd)
	routeCmd.Flags().String("session", "", "session id (default: a new UUID)")
	routeCmd.Flags().Bool("skip-hero", false, "skip title, section and closing slides")
	routeCmd.Flags().Bool("json", false, "print the routing result as JSON")
	routeCmd.Flags().Bool("progress", false, "show interactive progress (terminal only)")
	routeCmd.Flags().Bool("watch", false, "route again whenever the strawman file changes")
	routeCmd.Flags().Bool("no-record", false, "do not record the run in the history")
	rootCmd.AddCommand(routeCmd)
}

// addPrepareFlags registers the flags shared by route and plan.
func addPrepareFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("derive-titles", false, "fill missing generated titles from slide titles")
	cmd.Flags().Bool("reclassify", false, "ignore classifications and variants already in the strawman")
	cmd.Flags().Uint64("seed", 0, "variant selection seed (default: configured seed)")
}

func routeOptions(cmd *cobra.Command) driving.RouteOptions {
	opts := driving.RouteOptions{}
	opts.DeriveTitles, _ = cmd.Flags().GetBool("derive-titles")
	opts.Reclassify, _ = cmd.Flags().GetBool("reclassify")
	opts.Seed, _ = cmd.Flags().GetUint64("seed")
	if cmd.Flags().Lookup("skip-hero") != nil {
		opts.SkipHero, _ = cmd.Flags().GetBool("skip-hero")
	}
	return opts
}

func runRoute(cmd *cobra.Command, args []string) error {
	if newRouter == nil {
		return fmt.Errorf("router: %w", errNotConfigured)
	}
	path := args[0]

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return routeOnce(cmd, path)
	}

	if err := routeOnce(cmd, path); err != nil {
		cmd.PrintErrf("route failed: %v\n", err)
	}
	cmd.PrintErrf("Watching %s for changes (Ctrl+C to stop)\n", path)
	return watchFile(cmd.Context(), path, 200*time.Millisecond, func() error {
		return routeOnce(cmd, path)
	})
}

func routeOnce(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	strawman, err := file.LoadStrawman(path)
	if err != nil {
		return err
	}

	router, err := newRouter(routeOptions(cmd))
	if err != nil {
		return err
	}
	if settingsService != nil && logger.IsVerbose() {
		if s, err := settingsService.Get(); err == nil {
			logger.Info("%s", settingsSummary(s))
		}
	}

	sessionID, _ := cmd.Flags().GetString("session")
	showProgress, _ := cmd.Flags().GetBool("progress")
	asJSON, _ := cmd.Flags().GetBool("json")
	started := time.Now()

	var result *domain.RoutingResult
	if showProgress && !asJSON && isTerminal(cmd.OutOrStdout()) {
		result, err = tui.RunProgress(ctx, len(strawman.Slides),
			func(ctx context.Context, observer func(domain.SlideEvent)) (*domain.RoutingResult, error) {
				if reporter, ok := router.(driving.ProgressReporter); ok {
					reporter.SetObserver(observer)
					defer reporter.SetObserver(nil)
				}
				return router.RoutePresentation(ctx, strawman, sessionID)
			})
	} else {
		result, err = router.RoutePresentation(ctx, strawman, sessionID)
	}
	if err != nil {
		if msg := renderValidation(err); msg != "" {
			cmd.PrintErr(msg)
		}
		return err
	}

	var run *domain.RunRecord
	noRecord, _ := cmd.Flags().GetBool("no-record")
	if !noRecord && runHistory != nil {
		run, err = runHistory.Record(ctx, path, strawman.Title, started, result)
		if err != nil {
			logger.Warn("record run: %v", err)
		}
	}

	if asJSON {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		cmd.Print(renderRoutingSummary(result, run, logger.IsVerbose()))
	}

	if result.HasFailures() {
		return errSlidesFailed
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
