package domain

import "time"

// OutcomeStatus is the terminal state of a routed slide.
type OutcomeStatus string

// Outcome states.
const (
	OutcomeGenerated OutcomeStatus = "generated"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomeSkipped   OutcomeStatus = "skipped"
)

// ErrorCategory classifies a per-slide routing failure.
type ErrorCategory string

// Error categories.
const (
	ErrorValidation ErrorCategory = "validation"
	ErrorTimeout    ErrorCategory = "timeout"
	ErrorConnection ErrorCategory = "connection"
	ErrorHTTP4xx    ErrorCategory = "http_4xx"
	ErrorHTTP5xx    ErrorCategory = "http_5xx"
	ErrorUnknown    ErrorCategory = "unknown"
)

// ErrorCategoryPriority returns categories in remediation priority order.
func ErrorCategoryPriority() []ErrorCategory {
	return []ErrorCategory{
		ErrorValidation,
		ErrorHTTP5xx,
		ErrorConnection,
		ErrorTimeout,
		ErrorHTTP4xx,
		ErrorUnknown,
	}
}

// Severity tags a critical issue in an error summary.
type Severity string

// Severities.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Remote service names used in failure records.
const (
	ServiceText        = "text_service"
	ServiceIllustrator = "illustrator_service"
	ServiceAnalytics   = "analytics_service"
	ServiceCatalog     = "variant_catalog"
)

// SlideError is the structured record of a failed slide.
type SlideError struct {
	// Category is the classified failure kind.
	Category ErrorCategory `json:"category"`

	// Message is the underlying error text.
	Message string `json:"message"`

	// Service names the remote service that was called.
	Service string `json:"service"`

	// Endpoint is the path that was called.
	Endpoint string `json:"endpoint"`

	// StatusCode is the HTTP status when one was received.
	StatusCode int `json:"status_code,omitempty"`

	// SuggestedAction is a human-readable remediation.
	SuggestedAction string `json:"suggested_action"`
}

// GeneratedContent is the payload returned by a generation service.
type GeneratedContent struct {
	// HTML is the primary content fragment.
	HTML string `json:"html,omitempty"`

	// Fields holds named fragments (e.g. chart and observations, pyramid levels).
	Fields map[string]string `json:"fields,omitempty"`

	// Metadata is service-provided generation metadata.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// GeneratedSlide records a slide whose content was produced.
type GeneratedSlide struct {
	Position       int              `json:"slide_number"`
	SlideID        string           `json:"slide_id"`
	Classification Classification   `json:"classification"`
	VariantID      string           `json:"variant_id,omitempty"`
	Dispatch       DispatchKind     `json:"dispatch"`
	Service        string           `json:"service"`
	Endpoint       string           `json:"endpoint"`
	Content        GeneratedContent `json:"content"`
	Warnings       []string         `json:"warnings,omitempty"`
	Duration       time.Duration    `json:"duration"`
}

// FailedSlide records a slide whose generation failed.
type FailedSlide struct {
	Position       int            `json:"slide_number"`
	SlideID        string         `json:"slide_id"`
	Classification Classification `json:"classification"`
	Dispatch       DispatchKind   `json:"dispatch"`
	Error          SlideError     `json:"error"`
	Duration       time.Duration  `json:"duration"`
}

// SkippedSlide records a slide deliberately routed without body content.
// Skips are not failures.
type SkippedSlide struct {
	Position       int            `json:"slide_number"`
	SlideID        string         `json:"slide_id"`
	Classification Classification `json:"classification"`
	Reason         string         `json:"reason"`
}

// SlideTiming is the elapsed time spent on one slide.
type SlideTiming struct {
	Position int           `json:"slide_number"`
	SlideID  string        `json:"slide_id"`
	Dispatch DispatchKind  `json:"dispatch"`
	Status   OutcomeStatus `json:"status"`
	Duration time.Duration `json:"duration"`
}

// CriticalIssue is a severity-tagged finding synthesised from failures.
type CriticalIssue struct {
	Severity       Severity      `json:"severity"`
	Category       ErrorCategory `json:"category"`
	Count          int           `json:"count"`
	Message        string        `json:"message"`
	AffectedSlides []int         `json:"affected_slides"`
}

// ErrorSummary groups failures for support tooling.
// It is designed to be attached to support tickets verbatim.
type ErrorSummary struct {
	TotalFailures      int                   `json:"total_failures"`
	ByCategory         map[ErrorCategory]int `json:"by_category"`
	ByService          map[string]int        `json:"by_service"`
	ByEndpoint         map[string]int        `json:"by_endpoint"`
	CriticalIssues     []CriticalIssue       `json:"critical_issues"`
	RecommendedActions []string              `json:"recommended_actions"`
	Failures           []FailedSlide         `json:"failures"`
}

// RoutingMetadata holds aggregate counts and timings.
type RoutingMetadata struct {
	TotalSlides         int           `json:"total_slides"`
	SuccessfulCount     int           `json:"successful_count"`
	FailedCount         int           `json:"failed_count"`
	SkippedCount        int           `json:"skipped_count"`
	TotalProcessingTime time.Duration `json:"total_processing_time"`
	SlideTimings        []SlideTiming `json:"slide_timings"`
}

// RoutingResult is the aggregate outcome of one routing run.
type RoutingResult struct {
	// SessionID correlates the run with the caller's session.
	SessionID string `json:"session_id"`

	// Generated, Failed and Skipped are in presentation order.
	Generated []GeneratedSlide `json:"generated"`
	Failed    []FailedSlide    `json:"failed"`
	Skipped   []SkippedSlide   `json:"skipped"`

	// Metadata holds counts and timings.
	Metadata RoutingMetadata `json:"metadata"`

	// ErrorSummary is set only when at least one slide failed.
	ErrorSummary *ErrorSummary `json:"error_summary,omitempty"`

	// Diversity holds post-hoc diversity metrics for the routed deck.
	Diversity *DiversityMetrics `json:"diversity,omitempty"`
}

// HasFailures returns true if any slide failed.
func (r *RoutingResult) HasFailures() bool {
	return r.Metadata.FailedCount > 0
}

// SlideEvent reports routing progress for a single slide.
type SlideEvent struct {
	// Position and Total locate the slide in the run.
	Position int
	Total    int

	SlideID  string
	Dispatch DispatchKind

	// Done is false when dispatch starts and true when it finishes.
	Done bool

	// Status and Duration are set when Done is true.
	Status   OutcomeStatus
	Duration time.Duration

	// Error is set when Status is OutcomeFailed.
	Error *SlideError
}
