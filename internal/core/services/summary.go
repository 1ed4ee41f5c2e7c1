package services

import (
	"fmt"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

var categoryIssueText = map[domain.ErrorCategory]string{
	domain.ErrorValidation: "failed validation",
	domain.ErrorHTTP5xx:    "hit server errors",
	domain.ErrorConnection: "could not reach their service",
	domain.ErrorTimeout:    "timed out",
	domain.ErrorHTTP4xx:    "were rejected by their service",
	domain.ErrorUnknown:    "failed for an unknown reason",
}

// BuildErrorSummary groups failures for support tooling. It returns nil
// when there are no failures.
func BuildErrorSummary(failed []domain.FailedSlide) *domain.ErrorSummary {
	if len(failed) == 0 {
		return nil
	}

	summary := &domain.ErrorSummary{
		TotalFailures:      len(failed),
		ByCategory:         make(map[domain.ErrorCategory]int),
		ByService:          make(map[string]int),
		ByEndpoint:         make(map[string]int),
		CriticalIssues:     []domain.CriticalIssue{},
		RecommendedActions: []string{},
		Failures:           make([]domain.FailedSlide, len(failed)),
	}
	copy(summary.Failures, failed)

	affected := make(map[domain.ErrorCategory][]int)
	for _, f := range failed {
		summary.ByCategory[f.Error.Category]++
		summary.ByService[f.Error.Service]++
		if f.Error.Endpoint != "" {
			summary.ByEndpoint[f.Error.Endpoint]++
		}
		affected[f.Error.Category] = append(affected[f.Error.Category], f.Position)
	}

	seen := make(map[string]struct{})
	for _, category := range domain.ErrorCategoryPriority() {
		count := summary.ByCategory[category]
		if count == 0 {
			continue
		}
		summary.CriticalIssues = append(summary.CriticalIssues, domain.CriticalIssue{
			Severity:       SeverityFor(category),
			Category:       category,
			Count:          count,
			Message:        fmt.Sprintf("%d slide(s) %s", count, categoryIssueText[category]),
			AffectedSlides: affected[category],
		})
		for _, f := range failed {
			if f.Error.Category != category || f.Error.SuggestedAction == "" {
				continue
			}
			if _, dup := seen[f.Error.SuggestedAction]; dup {
				continue
			}
			seen[f.Error.SuggestedAction] = struct{}{}
			summary.RecommendedActions = append(summary.RecommendedActions, f.Error.SuggestedAction)
		}
	}
	return summary
}
