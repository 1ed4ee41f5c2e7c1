package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
)

// mockRouter is a mock implementation of driving.PresentationRouter.
type mockRouter struct {
	result    *domain.RoutingResult
	err       error
	strawman  *domain.Strawman
	sessionID string
}

func (m *mockRouter) RoutePresentation(
	_ context.Context,
	s *domain.Strawman,
	sessionID string,
) (*domain.RoutingResult, error) {
	m.strawman = s
	m.sessionID = sessionID
	return m.result, m.err
}

// mockPlanner is a mock implementation of driving.Planner.
type mockPlanner struct {
	report   *domain.PreparationReport
	err      error
	strawman *domain.Strawman
}

func (m *mockPlanner) Plan(_ context.Context, s *domain.Strawman, _ string) (*domain.PreparationReport, error) {
	m.strawman = s
	return m.report, m.err
}

// mockRuns is a mock implementation of driving.RunHistory.
type mockRuns struct {
	runs     []domain.RunRecord
	recorded []domain.RunRecord
	err      error
}

func (m *mockRuns) Record(
	_ context.Context,
	source, title string,
	startedAt time.Time,
	result *domain.RoutingResult,
) (*domain.RunRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec := domain.NewRunRecord("run-1", source, title, startedAt, result)
	m.recorded = append(m.recorded, rec)
	return &rec, nil
}

func (m *mockRuns) List(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return m.runs, m.err
}

func (m *mockRuns) Get(_ context.Context, id string) (*domain.RunRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRuns) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockCatalog is a mock implementation of driving.CatalogBrowser.
type mockCatalog struct {
	snap   *domain.CatalogSnapshot
	source string
	err    error
}

func (m *mockCatalog) Catalog(_ context.Context) (*domain.CatalogSnapshot, string, error) {
	return m.snap, m.source, m.err
}

// testPorts returns ports whose factories hand out the given mocks and
// record the options they were built with.
func testPorts(router *mockRouter, planner *mockPlanner, opts *driving.RouteOptions) *Ports {
	return &Ports{
		NewRouter: func(o driving.RouteOptions) (driving.PresentationRouter, error) {
			if opts != nil {
				*opts = o
			}
			return router, nil
		},
		NewPlanner: func(o driving.RouteOptions) (driving.Planner, error) {
			if opts != nil {
				*opts = o
			}
			return planner, nil
		},
	}
}
