package mcp

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// SlideInput is one slide of a strawman tool argument.
type SlideInput struct {
	SlideNumber       int                    `json:"slide_number,omitempty" jsonschema:"1-indexed position (defaults to list order)"`
	SlideID           string                 `json:"slide_id,omitempty" jsonschema:"stable slide identifier"`
	Title             string                 `json:"title" jsonschema:"working title of the slide"`
	Narrative         string                 `json:"narrative,omitempty" jsonschema:"what the slide says; may contain a [GROUP: name] marker"`
	KeyPoints         []string               `json:"key_points,omitempty" jsonschema:"points the slide must make"`
	Hints             domain.StructuralHints `json:"hints,omitempty" jsonschema:"optional chart, diagram and table needs"`
	Classification    string                 `json:"classification,omitempty" jsonschema:"preset taxonomy label"`
	VariantID         string                 `json:"variant_id,omitempty" jsonschema:"preset visual variant"`
	GeneratedTitle    string                 `json:"generated_title,omitempty" jsonschema:"display title, max 50 characters"`
	GeneratedSubtitle string                 `json:"generated_subtitle,omitempty" jsonschema:"display subtitle, max 90 characters"`
}

// StrawmanInput is the input schema of the plan and route tools.
type StrawmanInput struct {
	Title        string       `json:"main_title" jsonschema:"presentation title"`
	Theme        string       `json:"overall_theme,omitempty" jsonschema:"narrative theme, used as the tone"`
	Audience     string       `json:"target_audience,omitempty" jsonschema:"who the deck is for"`
	Duration     string       `json:"presentation_duration,omitempty" jsonschema:"intended length, e.g. 20 minutes"`
	Footer       string       `json:"footer_text,omitempty" jsonschema:"footer text, max 20 characters"`
	Slides       []SlideInput `json:"slides" jsonschema:"ordered slides"`
	SessionID    string       `json:"session_id,omitempty" jsonschema:"correlation id (default: a new UUID)"`
	DeriveTitles bool         `json:"derive_titles,omitempty" jsonschema:"fill missing generated titles instead of rejecting the strawman"`
	Reclassify   bool         `json:"reclassify,omitempty" jsonschema:"ignore preset classifications and variants"`
	SkipHero     bool         `json:"skip_hero,omitempty" jsonschema:"skip title, section and closing slides"`
	Seed         uint64       `json:"seed,omitempty" jsonschema:"variant selection seed"`
}

func (in *StrawmanInput) strawman() *domain.Strawman {
	s := &domain.Strawman{
		Title:    in.Title,
		Theme:    in.Theme,
		Audience: in.Audience,
		Duration: in.Duration,
		Footer:   in.Footer,
		Slides:   make([]domain.Slide, len(in.Slides)),
	}
	for i, sl := range in.Slides {
		s.Slides[i] = domain.Slide{
			Position:          sl.SlideNumber,
			ID:                sl.SlideID,
			Title:             sl.Title,
			Narrative:         sl.Narrative,
			KeyPoints:         sl.KeyPoints,
			Hints:             sl.Hints,
			Classification:    domain.Classification(sl.Classification),
			VariantID:         sl.VariantID,
			GeneratedTitle:    sl.GeneratedTitle,
			GeneratedSubtitle: sl.GeneratedSubtitle,
		}
	}
	s.Normalise()
	return s
}

func (in *StrawmanInput) options() driving.RouteOptions {
	return driving.RouteOptions{
		DeriveTitles: in.DeriveTitles,
		Reclassify:   in.Reclassify,
		SkipHero:     in.SkipHero,
		Seed:         in.Seed,
	}
}

// PlannedSlide is one slide decision of the plan tool.
type PlannedSlide struct {
	SlideNumber    int    `json:"slide_number"`
	SlideID        string `json:"slide_id"`
	Layout         string `json:"layout"`
	Classification string `json:"classification"`
	Dispatch       string `json:"dispatch"`
	Rule           string `json:"rule"`
	VariantID      string `json:"variant_id,omitempty"`
	VariantSource  string `json:"variant_source"`
	SemanticGroup  string `json:"semantic_group,omitempty"`
	OverrideReason string `json:"override_reason,omitempty"`
	AvoidedVariant string `json:"avoided_variant,omitempty"`
}

// PlanOutput is the output schema of the plan tool.
type PlanOutput struct {
	CatalogSource  string         `json:"catalog_source"`
	DiversityScore float64        `json:"diversity_score"`
	Overrides      int            `json:"overrides"`
	Slides         []PlannedSlide `json:"slides"`
}

// RoutedSlide is the outcome of one slide of the route tool.
type RoutedSlide struct {
	SlideNumber     int               `json:"slide_number"`
	SlideID         string            `json:"slide_id"`
	Status          string            `json:"status"`
	Dispatch        string            `json:"dispatch"`
	Classification  string            `json:"classification,omitempty"`
	VariantID       string            `json:"variant_id,omitempty"`
	HTML            string            `json:"html,omitempty"`
	Fields          map[string]string `json:"fields,omitempty"`
	ErrorCategory   string            `json:"error_category,omitempty"`
	ErrorMessage    string            `json:"error_message,omitempty"`
	SuggestedAction string            `json:"suggested_action,omitempty"`
	SkipReason      string            `json:"skip_reason,omitempty"`
}

// RouteOutput is the output schema of the route tool.
type RouteOutput struct {
	SessionID          string        `json:"session_id"`
	RunID              string        `json:"run_id,omitempty"`
	TotalSlides        int           `json:"total_slides"`
	Successful         int           `json:"successful"`
	Failed             int           `json:"failed"`
	Skipped            int           `json:"skipped"`
	DurationMS         int64         `json:"duration_ms"`
	DiversityScore     float64       `json:"diversity_score"`
	Slides             []RoutedSlide `json:"slides"`
	RecommendedActions []string      `json:"recommended_actions,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan_presentation",
		Description: "Classify the slides of a strawman and select a visual variant for each, without generating content",
	}, s.handlePlan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "route_presentation",
		Description: "Route every slide of a strawman to its generation service and return the generated content",
	}, s.handleRoute)
}

// handlePlan handles the plan_presentation tool invocation.
func (s *Server) handlePlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StrawmanInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	planner, err := s.ports.NewPlanner(input.options())
	if err != nil {
		return nil, PlanOutput{}, err
	}
	report, err := planner.Plan(ctx, input.strawman(), input.SessionID)
	if err != nil {
		return nil, PlanOutput{}, err
	}
	return nil, planOutput(report), nil
}

// handleRoute handles the route_presentation tool invocation.
func (s *Server) handleRoute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StrawmanInput,
) (*mcp.CallToolResult, RouteOutput, error) {
	router, err := s.ports.NewRouter(input.options())
	if err != nil {
		return nil, RouteOutput{}, err
	}
	started := time.Now()
	strawman := input.strawman()
	result, err := router.RoutePresentation(ctx, strawman, input.SessionID)
	if err != nil {
		return nil, RouteOutput{}, err
	}

	out := routeOutput(result)
	if s.ports.Runs != nil {
		run, err := s.ports.Runs.Record(ctx, "mcp", strawman.Title, started, result)
		if err != nil {
			logger.Warn("mcp: record run: %v", err)
		} else {
			out.RunID = run.ID
		}
	}
	return nil, out, nil
}

func planOutput(report *domain.PreparationReport) PlanOutput {
	out := PlanOutput{
		CatalogSource:  report.CatalogSource,
		DiversityScore: report.Diversity.Score,
		Overrides:      report.Overrides(),
		Slides:         make([]PlannedSlide, len(report.Decisions)),
	}
	for i, d := range report.Decisions {
		out.Slides[i] = PlannedSlide{
			SlideNumber:    d.Position,
			SlideID:        d.SlideID,
			Layout:         string(d.Layout),
			Classification: string(d.Classification),
			Dispatch:       string(d.Dispatch),
			Rule:           d.Rule,
			VariantID:      d.VariantID,
			VariantSource:  string(d.VariantSource),
			SemanticGroup:  d.SemanticGroup,
			OverrideReason: d.OverrideReason,
			AvoidedVariant: d.AvoidedVariant,
		}
	}
	return out
}

// routeOutput flattens a routing result into presentation order.
func routeOutput(result *domain.RoutingResult) RouteOutput {
	meta := result.Metadata
	out := RouteOutput{
		SessionID:   result.SessionID,
		TotalSlides: meta.TotalSlides,
		Successful:  meta.SuccessfulCount,
		Failed:      meta.FailedCount,
		Skipped:     meta.SkippedCount,
		DurationMS:  meta.TotalProcessingTime.Milliseconds(),
		Slides:      make([]RoutedSlide, 0, meta.TotalSlides),
	}
	if result.Diversity != nil {
		out.DiversityScore = result.Diversity.Score
	}
	if result.ErrorSummary != nil {
		out.RecommendedActions = result.ErrorSummary.RecommendedActions
	}

	byPosition := make(map[int]RoutedSlide, meta.TotalSlides)
	for _, g := range result.Generated {
		byPosition[g.Position] = RoutedSlide{
			SlideNumber:    g.Position,
			SlideID:        g.SlideID,
			Status:         string(domain.OutcomeGenerated),
			Dispatch:       string(g.Dispatch),
			Classification: string(g.Classification),
			VariantID:      g.VariantID,
			HTML:           g.Content.HTML,
			Fields:         g.Content.Fields,
		}
	}
	for _, f := range result.Failed {
		byPosition[f.Position] = RoutedSlide{
			SlideNumber:     f.Position,
			SlideID:         f.SlideID,
			Status:          string(domain.OutcomeFailed),
			Dispatch:        string(f.Dispatch),
			Classification:  string(f.Classification),
			ErrorCategory:   string(f.Error.Category),
			ErrorMessage:    f.Error.Message,
			SuggestedAction: f.Error.SuggestedAction,
		}
	}
	for _, sk := range result.Skipped {
		byPosition[sk.Position] = RoutedSlide{
			SlideNumber:    sk.Position,
			SlideID:        sk.SlideID,
			Status:         string(domain.OutcomeSkipped),
			Dispatch:       string(domain.DispatchHero),
			Classification: string(sk.Classification),
			SkipReason:     sk.Reason,
		}
	}
	for _, pos := range slices.Sorted(maps.Keys(byPosition)) {
		out.Slides = append(out.Slides, byPosition[pos])
	}
	return out
}
