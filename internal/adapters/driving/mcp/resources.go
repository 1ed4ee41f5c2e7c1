package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

const (
	uriScheme = "deckroute://"

	// recentRunsLimit caps the runs resource.
	recentRunsLimit = 20
)

// registerResources registers the resources backed by optional ports.
func (s *Server) registerResources() {
	if s.ports.Catalog != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "catalog",
			Name:        "variant-catalog",
			Description: "Visual variants offered by the text service, per slide type",
			MIMEType:    "application/json",
		}, s.handleCatalogResource)
	}

	if s.ports.Runs != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "runs",
			Name:        "runs",
			Description: "Most recent routing runs",
			MIMEType:    "application/json",
		}, s.handleRunsResource)

		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "runs/{runId}",
			Name:        "run",
			Description: "Summary of one routing run",
			MIMEType:    "application/json",
		}, s.handleRunResource)
	}
}

type catalogInfo struct {
	Source     string              `json:"source"`
	Version    string              `json:"version,omitempty"`
	FetchedAt  time.Time           `json:"fetched_at"`
	SlideTypes map[string][]string `json:"slide_types"`
}

type runInfo struct {
	ID                string               `json:"id"`
	SessionID         string               `json:"session_id"`
	PresentationTitle string               `json:"presentation_title"`
	Source            string               `json:"source"`
	StartedAt         time.Time            `json:"started_at"`
	DurationMS        int64                `json:"duration_ms"`
	TotalSlides       int                  `json:"total_slides"`
	Successful        int                  `json:"successful"`
	Failed            int                  `json:"failed"`
	Skipped           int                  `json:"skipped"`
	DiversityScore    float64              `json:"diversity_score"`
	ErrorSummary      *domain.ErrorSummary `json:"error_summary,omitempty"`
}

func toRunInfo(r *domain.RunRecord) runInfo {
	return runInfo{
		ID:                r.ID,
		SessionID:         r.SessionID,
		PresentationTitle: r.PresentationTitle,
		Source:            r.Source,
		StartedAt:         r.StartedAt,
		DurationMS:        r.Duration.Milliseconds(),
		TotalSlides:       r.TotalSlides,
		Successful:        r.Successful,
		Failed:            r.Failed,
		Skipped:           r.Skipped,
		DiversityScore:    r.DiversityScore,
		ErrorSummary:      r.ErrorSummary,
	}
}

// handleCatalogResource returns the current variant catalog.
func (s *Server) handleCatalogResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snap, source, err := s.ports.Catalog.Catalog(ctx)
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		return jsonResource(req.Params.URI, catalogInfo{Source: source, SlideTypes: map[string][]string{}})
	}
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	return jsonResource(req.Params.URI, catalogInfo{
		Source:     source,
		Version:    snap.Version,
		FetchedAt:  snap.FetchedAt,
		SlideTypes: snap.SlideTypes,
	})
}

// handleRunsResource returns the most recent runs, newest first.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	runs, err := s.ports.Runs.List(ctx, recentRunsLimit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = toRunInfo(&runs[i])
	}
	return jsonResource(req.Params.URI, infos)
}

// handleRunResource returns one run.
func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractRunID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	run, err := s.ports.Runs.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}
	return jsonResource(req.Params.URI, toRunInfo(run))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRunID extracts the run ID from a URI like deckroute://runs/{runId}.
func extractRunID(uri string) string {
	const prefix = uriScheme + "runs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
