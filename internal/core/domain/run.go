package domain

import "time"

// RunRecord is the persisted summary of a routing run, kept for the
// CLI's run history. The router itself never persists anything.
type RunRecord struct {
	// ID is the unique run identifier.
	ID string

	// SessionID is the caller-provided correlation id.
	SessionID string

	// PresentationTitle is the strawman title.
	PresentationTitle string

	// Source is where the strawman came from (file path or "mcp").
	Source string

	// StartedAt is when routing started.
	StartedAt time.Time

	// Duration is the total processing time.
	Duration time.Duration

	// TotalSlides, Successful, Failed and Skipped are the outcome counts.
	TotalSlides int
	Successful  int
	Failed      int
	Skipped     int

	// DiversityScore is the deck's diversity score (0-100).
	DiversityScore float64

	// ErrorSummary is the summary recorded when failures occurred.
	ErrorSummary *ErrorSummary
}

// NewRunRecord builds a run record from a routing result.
func NewRunRecord(id, source, title string, startedAt time.Time, result *RoutingResult) RunRecord {
	rec := RunRecord{
		ID:                id,
		SessionID:         result.SessionID,
		PresentationTitle: title,
		Source:            source,
		StartedAt:         startedAt,
		Duration:          result.Metadata.TotalProcessingTime,
		TotalSlides:       result.Metadata.TotalSlides,
		Successful:        result.Metadata.SuccessfulCount,
		Failed:            result.Metadata.FailedCount,
		Skipped:           result.Metadata.SkippedCount,
		ErrorSummary:      result.ErrorSummary,
	}
	if result.Diversity != nil {
		rec.DiversityScore = result.Diversity.Score
	}
	return rec
}
