package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckroute/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
	"github.com/custodia-labs/deckroute/internal/core/services"
)

// fakeRouter returns a canned result and remembers its input.
type fakeRouter struct {
	result    *domain.RoutingResult
	err       error
	strawman  *domain.Strawman
	sessionID string
}

func (f *fakeRouter) RoutePresentation(_ context.Context, s *domain.Strawman, sessionID string) (*domain.RoutingResult, error) {
	f.strawman = s
	f.sessionID = sessionID
	return f.result, f.err
}

// fakePlanner returns a canned report and marks the strawman prepared.
type fakePlanner struct {
	report *domain.PreparationReport
	err    error
}

func (f *fakePlanner) Plan(_ context.Context, s *domain.Strawman, _ string) (*domain.PreparationReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range s.Slides {
		s.Slides[i].Classification = f.report.Decisions[i].Classification
	}
	return f.report, nil
}

// fakeCatalog returns a canned snapshot.
type fakeCatalog struct {
	snap   *domain.CatalogSnapshot
	source string
	err    error
}

func (f *fakeCatalog) Catalog(context.Context) (*domain.CatalogSnapshot, string, error) {
	return f.snap, f.source, f.err
}

// testServices holds the services installed by setupTestServices.
type testServices struct {
	settings *services.SettingsService
	runs     *services.RunService
	router   *fakeRouter
	planner  *fakePlanner
	catalog  *fakeCatalog
	opts     driving.RouteOptions
}

// setupTestServices installs in-memory services for the command tests and
// restores the package state afterwards.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		settings: services.NewSettingsService(memory.NewConfigStore()),
		runs:     services.NewRunService(memory.NewRunStore()),
		router:   &fakeRouter{result: successResult()},
		planner:  &fakePlanner{},
		catalog:  &fakeCatalog{},
	}
	SetServices(&Services{
		Settings: ts.settings,
		Runs:     ts.runs,
		Catalog:  ts.catalog,
		NewRouter: func(o driving.RouteOptions) (driving.PresentationRouter, error) {
			ts.opts = o
			return ts.router, nil
		},
		NewPlanner: func(o driving.RouteOptions) (driving.Planner, error) {
			ts.opts = o
			return ts.planner, nil
		},
	})
	t.Cleanup(func() { SetServices(nil) })
	return ts
}

// executeCommand runs the root command with args and returns stdout and
// stderr. Flag values are reset first since the command tree is global.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeStrawman(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const testStrawmanJSON = `{
  "main_title": "Q3 Review",
  "slides": [
    {"slide_number": 1, "slide_id": "s1", "title": "Welcome", "generated_title": "Q3 Review"},
    {"slide_number": 2, "slide_id": "s2", "title": "Numbers", "generated_title": "Numbers"}
  ]
}`

func successResult() *domain.RoutingResult {
	return &domain.RoutingResult{
		SessionID: "sess-1",
		Generated: []domain.GeneratedSlide{
			{Position: 1, SlideID: "s1", Classification: domain.ClassTitleSlide, Dispatch: domain.DispatchHero},
			{Position: 2, SlideID: "s2", Classification: domain.ClassMetricsGrid, Dispatch: domain.DispatchContent, VariantID: "metrics_3col"},
		},
		Metadata: domain.RoutingMetadata{
			TotalSlides:         2,
			SuccessfulCount:     2,
			TotalProcessingTime: 120 * time.Millisecond,
			SlideTimings: []domain.SlideTiming{
				{Position: 1, SlideID: "s1", Dispatch: domain.DispatchHero, Status: domain.OutcomeGenerated},
				{Position: 2, SlideID: "s2", Dispatch: domain.DispatchContent, Status: domain.OutcomeGenerated},
			},
		},
		Diversity: &domain.DiversityMetrics{Score: 80},
	}
}

func failedResult() *domain.RoutingResult {
	r := successResult()
	r.Generated = r.Generated[:1]
	r.Failed = []domain.FailedSlide{{
		Position:       2,
		SlideID:        "s2",
		Classification: domain.ClassMetricsGrid,
		Dispatch:       domain.DispatchContent,
		Error:          domain.SlideError{Category: domain.ErrorTimeout, Message: "deadline exceeded"},
	}}
	r.Metadata.SuccessfulCount = 1
	r.Metadata.FailedCount = 1
	r.Metadata.SlideTimings[1].Status = domain.OutcomeFailed
	r.ErrorSummary = &domain.ErrorSummary{
		TotalFailures: 1,
		CriticalIssues: []domain.CriticalIssue{{
			Severity: domain.SeverityHigh, Category: domain.ErrorTimeout, Count: 1,
			Message: "1 slide(s) timed out", AffectedSlides: []int{2},
		}},
		RecommendedActions: []string{"Increase services.timeout"},
	}
	return r
}
