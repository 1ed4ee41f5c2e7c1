package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// Ensure ServiceRouter implements the interface.
var _ driving.PresentationRouter = (*ServiceRouter)(nil)

// Skip reasons recorded for hero slides.
const (
	SkipReasonHeroDisabled  = "hero generation disabled"
	SkipReasonNoHeroService = "no hero service configured"
)

// Clients holds the remote generation services. Any of them may be nil.
type Clients struct {
	Content   driven.ContentService
	Hero      driven.HeroService
	Pyramid   driven.PyramidService
	Analytics driven.AnalyticsService
}

// RouterOptions controls dispatch behaviour.
type RouterOptions struct {
	// Timeout bounds each remote call. Zero uses domain.DefaultServiceTimeout.
	Timeout time.Duration

	// InterSlideDelay paces consecutive dispatches.
	InterSlideDelay time.Duration

	// SkipHeroGeneration records hero slides as skipped.
	SkipHeroGeneration bool

	// Prepare controls the preparation pass for unprepared slides.
	Prepare PrepareOptions

	// Observer receives a start and a finish event for every slide.
	Observer func(domain.SlideEvent)
}

// ServiceRouter validates a strawman and dispatches each slide to its
// generation service, strictly in order. Per-slide failures are recorded
// in the result and never stop the batch.
type ServiceRouter struct {
	clients    Clients
	newSession SessionFactory
	opts       RouterOptions
}

// NewServiceRouter creates a router. newSession is only invoked when a
// strawman has slides that still need classification or variants.
func NewServiceRouter(clients Clients, newSession SessionFactory, opts RouterOptions) *ServiceRouter {
	if opts.Timeout <= 0 {
		opts.Timeout = domain.DefaultServiceTimeout
	}
	return &ServiceRouter{
		clients:    clients,
		newSession: newSession,
		opts:       opts,
	}
}

// SetObserver replaces the progress observer.
func (r *ServiceRouter) SetObserver(fn func(domain.SlideEvent)) {
	r.opts.Observer = fn
}

// RoutePresentation prepares, validates and dispatches every slide.
func (r *ServiceRouter) RoutePresentation(
	ctx context.Context,
	strawman *domain.Strawman,
	sessionID string,
) (*domain.RoutingResult, error) {
	if strawman == nil || len(strawman.Slides) == 0 {
		return nil, fmt.Errorf("%w: strawman has no slides", domain.ErrInvalidInput)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	strawman.Normalise()
	if err := strawman.CheckPositions(); err != nil {
		return nil, err
	}

	logger.Section("Routing Presentation")

	// Layouts and derived titles need no catalog. Missing titles abort
	// before anything, including the catalog fetch, touches the network.
	total := len(strawman.Slides)
	for i := range strawman.Slides {
		slide := &strawman.Slides[i]
		slide.Layout = domain.LayoutForPosition(slide.Position, total)
		if r.opts.Prepare.DeriveTitles && slide.GeneratedTitle == "" {
			slide.GeneratedTitle = strings.TrimSpace(slide.Title)
		}
	}
	if violations := titleViolations(strawman); len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	if r.opts.Prepare.Reclassify || needsPreparation(strawman) {
		if r.newSession == nil {
			return nil, fmt.Errorf("prepare strawman: %w: no session factory", domain.ErrServiceNotConfigured)
		}
		session := r.newSession(ctx, sessionID)
		NewStrawmanPreparer(session, r.opts.Prepare).Prepare(strawman)
	}

	if err := ValidateStrawman(strawman); err != nil {
		return nil, err
	}

	return r.dispatchAll(ctx, strawman, sessionID), nil
}

func (r *ServiceRouter) dispatchAll(ctx context.Context, strawman *domain.Strawman, sessionID string) *domain.RoutingResult {
	start := time.Now()
	total := len(strawman.Slides)
	result := &domain.RoutingResult{
		SessionID: sessionID,
		Generated: []domain.GeneratedSlide{},
		Failed:    []domain.FailedSlide{},
		Skipped:   []domain.SkippedSlide{},
		Metadata: domain.RoutingMetadata{
			TotalSlides:  total,
			SlideTimings: make([]domain.SlideTiming, 0, total),
		},
	}

	var limiter *rate.Limiter
	if r.opts.InterSlideDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(r.opts.InterSlideDelay), 1)
	}

	for i := range strawman.Slides {
		slide := &strawman.Slides[i]
		kind := domain.DispatchFor(slide.Classification)

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				logger.Debug("inter-slide delay interrupted: %v", err)
			}
		}

		r.emit(domain.SlideEvent{Position: slide.Position, Total: total, SlideID: slide.ID, Dispatch: kind})
		timing := r.routeSlide(ctx, slide, strawman, result)
		result.Metadata.SlideTimings = append(result.Metadata.SlideTimings, timing)

		event := domain.SlideEvent{
			Position: slide.Position,
			Total:    total,
			SlideID:  slide.ID,
			Dispatch: kind,
			Done:     true,
			Status:   timing.Status,
			Duration: timing.Duration,
		}
		if timing.Status == domain.OutcomeFailed {
			event.Error = &result.Failed[len(result.Failed)-1].Error
		}
		r.emit(event)
	}

	result.Metadata.SuccessfulCount = len(result.Generated)
	result.Metadata.FailedCount = len(result.Failed)
	result.Metadata.SkippedCount = len(result.Skipped)
	result.Metadata.TotalProcessingTime = time.Since(start)
	result.ErrorSummary = BuildErrorSummary(result.Failed)
	diversity := DeckDiversity(strawman)
	result.Diversity = &diversity

	logger.Info("routed %d slides: %d generated, %d failed, %d skipped in %s",
		total, result.Metadata.SuccessfulCount, result.Metadata.FailedCount,
		result.Metadata.SkippedCount, result.Metadata.TotalProcessingTime.Round(time.Millisecond))
	return result
}

// dispatchCall describes the remote call a slide needs.
type dispatchCall struct {
	service  string
	endpoint string
	warnings []string

	// skip is set when the slide is deliberately not sent anywhere.
	skip string

	// invoke is nil when the service client is not configured.
	invoke func(ctx context.Context) (*domain.GeneratedContent, error)
}

// plan builds the call for a slide from its dispatch branch.
func (r *ServiceRouter) plan(slide *domain.Slide, strawman *domain.Strawman) dispatchCall {
	switch domain.DispatchFor(slide.Classification) {
	case domain.DispatchAnalytics:
		req, warnings := BuildChartRequest(slide, strawman)
		call := dispatchCall{
			service:  domain.ServiceAnalytics,
			endpoint: driven.ChartEndpoint(req.ChartType),
			warnings: warnings,
		}
		if r.clients.Analytics != nil {
			call.invoke = func(ctx context.Context) (*domain.GeneratedContent, error) {
				return r.clients.Analytics.GenerateChart(ctx, req)
			}
		}
		return call

	case domain.DispatchPyramid:
		req := BuildPyramidRequest(slide, strawman)
		call := dispatchCall{service: domain.ServiceIllustrator, endpoint: driven.PyramidEndpoint}
		if r.clients.Pyramid != nil {
			call.invoke = func(ctx context.Context) (*domain.GeneratedContent, error) {
				return r.clients.Pyramid.GeneratePyramid(ctx, req)
			}
		}
		return call

	case domain.DispatchHero:
		call := dispatchCall{service: domain.ServiceText, endpoint: driven.HeroEndpoint(slide.Classification)}
		switch {
		case r.opts.SkipHeroGeneration:
			call.skip = SkipReasonHeroDisabled
		case r.clients.Hero == nil:
			call.skip = SkipReasonNoHeroService
		default:
			req := BuildHeroRequest(slide, strawman)
			class := slide.Classification
			call.invoke = func(ctx context.Context) (*domain.GeneratedContent, error) {
				return r.clients.Hero.GenerateHero(ctx, class, req)
			}
		}
		return call

	default:
		req := BuildContentRequest(slide, strawman)
		call := dispatchCall{service: domain.ServiceText, endpoint: driven.ContentEndpoint}
		if r.clients.Content != nil {
			call.invoke = func(ctx context.Context) (*domain.GeneratedContent, error) {
				return r.clients.Content.GenerateContent(ctx, req)
			}
		}
		return call
	}
}

// routeSlide dispatches one slide and appends its outcome to result.
func (r *ServiceRouter) routeSlide(
	ctx context.Context,
	slide *domain.Slide,
	strawman *domain.Strawman,
	result *domain.RoutingResult,
) domain.SlideTiming {
	start := time.Now()
	kind := domain.DispatchFor(slide.Classification)
	call := r.plan(slide, strawman)
	timing := domain.SlideTiming{Position: slide.Position, SlideID: slide.ID, Dispatch: kind}

	if call.skip != "" {
		result.Skipped = append(result.Skipped, domain.SkippedSlide{
			Position:       slide.Position,
			SlideID:        slide.ID,
			Classification: slide.Classification,
			Reason:         call.skip,
		})
		logger.Debug("slide %s: skipped (%s)", slide.Label(), call.skip)
		timing.Status = domain.OutcomeSkipped
		timing.Duration = time.Since(start)
		return timing
	}

	var (
		content *domain.GeneratedContent
		err     error
	)
	if call.invoke == nil {
		err = fmt.Errorf("%w: %s", domain.ErrServiceNotConfigured, call.service)
	} else {
		callCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
		content, err = call.invoke(callCtx)
		cancel()
		if err == nil && content == nil {
			err = fmt.Errorf("%w: empty response", domain.ErrInvalidResponse)
		}
	}
	timing.Duration = time.Since(start)

	if err != nil {
		slideErr := NewSlideError(err, call.service, call.endpoint)
		result.Failed = append(result.Failed, domain.FailedSlide{
			Position:       slide.Position,
			SlideID:        slide.ID,
			Classification: slide.Classification,
			Dispatch:       kind,
			Error:          slideErr,
			Duration:       timing.Duration,
		})
		logger.Warn("slide %s: %s %s failed (%s): %v", slide.Label(), call.service, call.endpoint, slideErr.Category, err)
		timing.Status = domain.OutcomeFailed
		return timing
	}

	result.Generated = append(result.Generated, domain.GeneratedSlide{
		Position:       slide.Position,
		SlideID:        slide.ID,
		Classification: slide.Classification,
		VariantID:      slide.VariantID,
		Dispatch:       kind,
		Service:        call.service,
		Endpoint:       call.endpoint,
		Content:        *content,
		Warnings:       call.warnings,
		Duration:       timing.Duration,
	})
	logger.Since(start, "slide %s: generated via %s", slide.Label(), call.endpoint)
	timing.Status = domain.OutcomeGenerated
	return timing
}

func (r *ServiceRouter) emit(event domain.SlideEvent) {
	if r.opts.Observer != nil {
		r.opts.Observer(event)
	}
}
