package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

// fakeCatalogSource serves a fixed snapshot or error.
type fakeCatalogSource struct {
	snapshot *domain.CatalogSnapshot
	err      error
	calls    int
}

func (f *fakeCatalogSource) FetchCatalog(_ context.Context) (*domain.CatalogSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func (f *fakeCatalogSource) Name() string { return "fake" }

// testCatalog returns a snapshot with two variants per catalog key.
func testCatalog() *domain.CatalogSnapshot {
	snap := &domain.CatalogSnapshot{Version: "test", SlideTypes: make(map[string][]string)}
	for _, key := range catalogKeys {
		snap.SlideTypes[key] = []string{key + "_a", key + "_b"}
	}
	return snap
}

// fakeContentService records content requests.
type fakeContentService struct {
	mu       sync.Mutex
	requests []*driven.ContentRequest
	fail     map[string]error
	block    bool
	empty    bool
}

func (f *fakeContentService) GenerateContent(ctx context.Context, req *driven.ContentRequest) (*domain.GeneratedContent, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err, ok := f.fail[req.SlideID]; ok {
		return nil, err
	}
	if f.empty {
		return nil, nil
	}
	return &domain.GeneratedContent{HTML: "<p>" + req.SlideID + "</p>"}, nil
}

// fakeHeroService records hero classifications.
type fakeHeroService struct {
	classes  []domain.Classification
	requests []*driven.HeroRequest
}

func (f *fakeHeroService) GenerateHero(_ context.Context, class domain.Classification, req *driven.HeroRequest) (*domain.GeneratedContent, error) {
	f.classes = append(f.classes, class)
	f.requests = append(f.requests, req)
	return &domain.GeneratedContent{HTML: "<h1>" + req.Title + "</h1>"}, nil
}

// fakePyramidService records pyramid requests.
type fakePyramidService struct {
	requests []*driven.PyramidRequest
}

func (f *fakePyramidService) GeneratePyramid(_ context.Context, req *driven.PyramidRequest) (*domain.GeneratedContent, error) {
	f.requests = append(f.requests, req)
	return &domain.GeneratedContent{HTML: "<svg/>"}, nil
}

// fakeAnalyticsService records chart requests.
type fakeAnalyticsService struct {
	requests []*driven.ChartRequest
}

func (f *fakeAnalyticsService) GenerateChart(_ context.Context, req *driven.ChartRequest) (*domain.GeneratedContent, error) {
	f.requests = append(f.requests, req)
	return &domain.GeneratedContent{
		Fields: map[string]string{"chart_html": "<canvas/>", "observations": "up"},
	}, nil
}

// countingFactory wraps a session factory and counts invocations.
func countingFactory(cfg SessionConfig, calls *int) SessionFactory {
	inner := NewSessionFactory(cfg)
	return func(ctx context.Context, sessionID string) *RoutingSession {
		*calls++
		return inner(ctx, sessionID)
	}
}

// cloneStrawman returns a deep copy of s.
func cloneStrawman(s *domain.Strawman) *domain.Strawman {
	out := *s
	out.Slides = make([]domain.Slide, len(s.Slides))
	for i, slide := range s.Slides {
		slide.KeyPoints = append([]string(nil), slide.KeyPoints...)
		slide.Hints.DataPoints = append([]domain.DataPoint(nil), slide.Hints.DataPoints...)
		out.Slides[i] = slide
	}
	return &out
}

// pitchDeck is a six slide deck with a grouped pair and an analytics slide
// without data.
func pitchDeck() *domain.Strawman {
	return &domain.Strawman{
		Title:    "Acme Strategy",
		Theme:    "confident",
		Audience: "board",
		Duration: "15 minutes",
		Footer:   "Acme",
		Slides: []domain.Slide{
			{Position: 1, ID: "s1", Title: "Acme Strategy 2025", Narrative: "Opening the plan"},
			{Position: 2, ID: "s2", Title: "Key metrics", Narrative: "Revenue and KPIs for the year"},
			{Position: 3, ID: "s3", Title: "Feature A", Narrative: "[GROUP: features] Fast sync"},
			{Position: 4, ID: "s4", Title: "Feature B", Narrative: "[GROUP: features] Offline mode"},
			{Position: 5, ID: "s5", Title: "Growth trend", Narrative: "Monthly active users",
				Hints: domain.StructuralHints{ChartType: "line"}},
			{Position: 6, ID: "s6", Title: "Thank you", Narrative: "Questions"},
		},
	}
}
