package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckroute/internal/core/domain"
)

var theme = styles.DefaultStyles()

func field(label string, value any) string {
	return theme.Label.Render(label) + fmt.Sprint(value) + "\n"
}

// renderRoutingSummary formats a routing result for the terminal. With
// previews set, each generated slide is followed by a text preview.
func renderRoutingSummary(result *domain.RoutingResult, run *domain.RunRecord, previews bool) string {
	var b strings.Builder
	meta := result.Metadata

	b.WriteString(theme.Title.Render("Routing summary"))
	b.WriteString("\n")
	b.WriteString(field("Session", result.SessionID))
	if run != nil {
		b.WriteString(field("Run", run.ID))
	}
	b.WriteString(field("Slides", fmt.Sprintf("%d (%d generated, %d failed, %d skipped)",
		meta.TotalSlides, meta.SuccessfulCount, meta.FailedCount, meta.SkippedCount)))
	b.WriteString(field("Time", meta.TotalProcessingTime.Round(time.Millisecond)))
	if result.Diversity != nil {
		b.WriteString(field("Diversity", fmt.Sprintf("%.1f", result.Diversity.Score)))
	}
	b.WriteString("\n")

	generated := make(map[int]domain.GeneratedSlide, len(result.Generated))
	for _, g := range result.Generated {
		generated[g.Position] = g
	}
	failed := make(map[int]domain.FailedSlide, len(result.Failed))
	for _, f := range result.Failed {
		failed[f.Position] = f
	}
	skipped := make(map[int]domain.SkippedSlide, len(result.Skipped))
	for _, s := range result.Skipped {
		skipped[s.Position] = s
	}

	for _, t := range meta.SlideTimings {
		line := fmt.Sprintf("%3d. %s %-12s %-9s", t.Position, styles.OutcomeSymbol(t.Status), t.SlideID, t.Dispatch)
		switch t.Status {
		case domain.OutcomeGenerated:
			g := generated[t.Position]
			line += fmt.Sprintf(" %-24s %-28s %s", g.Classification, g.VariantID, t.Duration.Round(time.Millisecond))
			for _, w := range g.Warnings {
				line += "\n" + theme.Warning.Render("       warning: "+w)
			}
			if p := contentPreview(g.Content, 72); previews && p != "" {
				line += "\n" + theme.Muted.Render("       "+p)
			}
		case domain.OutcomeFailed:
			f := failed[t.Position]
			line += fmt.Sprintf(" %-24s %s", f.Classification, f.Error.Category)
		case domain.OutcomeSkipped:
			line += " " + skipped[t.Position].Reason
		}
		b.WriteString(theme.Outcome(t.Status).Render(line))
		b.WriteString("\n")
	}

	if result.ErrorSummary != nil {
		b.WriteString("\n")
		b.WriteString(renderErrorSummary(result.ErrorSummary))
	}
	return b.String()
}

// renderErrorSummary formats the critical issues and remediations.
func renderErrorSummary(s *domain.ErrorSummary) string {
	var lines []string
	lines = append(lines, theme.Error.Render(fmt.Sprintf("%d slide(s) failed", s.TotalFailures)))
	for _, issue := range s.CriticalIssues {
		lines = append(lines, theme.Severity(issue.Severity).Render(
			fmt.Sprintf("[%s] %s (slides %s)", issue.Severity, issue.Message, joinInts(issue.AffectedSlides))))
	}
	if len(s.RecommendedActions) > 0 {
		lines = append(lines, "", theme.Subtitle.Render("Recommended actions"))
		for _, a := range s.RecommendedActions {
			lines = append(lines, "  - "+a)
		}
	}
	return theme.Box.Render(strings.Join(lines, "\n")) + "\n"
}

// renderPlan formats a preparation report.
func renderPlan(title string, report *domain.PreparationReport) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Plan: " + title))
	b.WriteString("\n")
	b.WriteString(field("Catalog", report.CatalogSource))
	b.WriteString(field("Diversity", fmt.Sprintf("%.1f", report.Diversity.Score)))
	b.WriteString(field("Overrides", report.Overrides()))
	b.WriteString("\n")

	for _, d := range report.Decisions {
		variant := d.VariantID
		if variant == "" {
			variant = "-"
		}
		line := fmt.Sprintf("%3d. %-12s %-13s %-24s %-28s %s", d.Position, d.SlideID, d.Layout, d.Classification, variant, d.VariantSource)
		if d.SemanticGroup != "" {
			line += " group=" + d.SemanticGroup
		}
		if d.Overridden {
			line += theme.Warning.Render(fmt.Sprintf(" (was %s: %s)", d.Original, d.OverrideReason))
		} else if d.AvoidedVariant != "" {
			line += theme.Warning.Render(fmt.Sprintf(" (instead of %s: %s)", d.AvoidedVariant, d.OverrideReason))
		}
		if len(d.Truncated) > 0 {
			line += theme.Muted.Render(" truncated " + strings.Join(d.Truncated, ","))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderCatalog formats a catalog snapshot with its keys sorted.
func renderCatalog(snap *domain.CatalogSnapshot, source string) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Variant catalog"))
	b.WriteString("\n")
	b.WriteString(field("Source", source))
	if snap.Version != "" {
		b.WriteString(field("Version", snap.Version))
	}
	if !snap.FetchedAt.IsZero() {
		b.WriteString(field("Fetched", snap.FetchedAt.Local().Format(time.DateTime)))
	}
	b.WriteString(field("Variants", snap.TotalVariants()))
	b.WriteString("\n")

	keys := make([]string, 0, len(snap.SlideTypes))
	for k := range snap.SlideTypes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(theme.Subtitle.Render(k))
		b.WriteString("\n")
		for _, v := range snap.SlideTypes[k] {
			b.WriteString("  " + v + "\n")
		}
	}
	return b.String()
}

// renderValidation lists the violations of a rejected strawman, or
// returns "" for other errors.
func renderValidation(err error) string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return ""
	}
	lines := []string{theme.Error.Render("Strawman rejected")}
	for _, v := range verr.Violations {
		lines = append(lines, fmt.Sprintf("  slide %d (%s) %s: %s", v.Position, v.SlideID, v.Field, v.Message))
	}
	return strings.Join(lines, "\n") + "\n"
}

// renderRuns formats the run history table.
func renderRuns(runs []domain.RunRecord) string {
	if len(runs) == 0 {
		return theme.Muted.Render("No runs recorded.") + "\n"
	}
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%-36s  %-16s  %6s  %6s  %6s  %9s  %s",
		"ID", "STARTED", "SLIDES", "FAILED", "SKIP", "DIVERSITY", "TITLE")))
	b.WriteString("\n")
	for _, r := range runs {
		line := fmt.Sprintf("%-36s  %-16s  %6d  %6d  %6d  %9.1f  %s",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.TotalSlides, r.Failed, r.Skipped, r.DiversityScore, r.PresentationTitle)
		if r.Failed > 0 {
			line = theme.Warning.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderRun formats one run record.
func renderRun(r *domain.RunRecord) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Run " + r.ID))
	b.WriteString("\n")
	b.WriteString(field("Title", r.PresentationTitle))
	b.WriteString(field("Source", r.Source))
	b.WriteString(field("Session", r.SessionID))
	b.WriteString(field("Started", r.StartedAt.Local().Format(time.DateTime)))
	b.WriteString(field("Duration", r.Duration.Round(time.Millisecond)))
	b.WriteString(field("Slides", fmt.Sprintf("%d (%d generated, %d failed, %d skipped)",
		r.TotalSlides, r.Successful, r.Failed, r.Skipped)))
	b.WriteString(field("Diversity", fmt.Sprintf("%.1f", r.DiversityScore)))
	if r.ErrorSummary != nil {
		b.WriteString("\n")
		b.WriteString(renderErrorSummary(r.ErrorSummary))
	}
	return b.String()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}
