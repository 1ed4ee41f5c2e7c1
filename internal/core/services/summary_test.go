package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

func failure(position int, category domain.ErrorCategory, service, endpoint, action string) domain.FailedSlide {
	return domain.FailedSlide{
		Position: position,
		Error: domain.SlideError{
			Category:        category,
			Service:         service,
			Endpoint:        endpoint,
			SuggestedAction: action,
		},
	}
}

func TestBuildErrorSummary_Empty(t *testing.T) {
	assert.Nil(t, BuildErrorSummary(nil))
	assert.Nil(t, BuildErrorSummary([]domain.FailedSlide{}))
}

func TestBuildErrorSummary(t *testing.T) {
	failed := []domain.FailedSlide{
		failure(2, domain.ErrorTimeout, domain.ServiceText, "/v1.2/generate", "raise timeout"),
		failure(3, domain.ErrorHTTP5xx, domain.ServiceIllustrator, "/v1.0/pyramid/generate", "check illustrator"),
		failure(4, domain.ErrorTimeout, domain.ServiceText, "/v1.2/generate", "raise timeout"),
		failure(5, domain.ErrorValidation, domain.ServiceAnalytics, "/api/v1/analytics/charts/line", "fix data"),
	}

	summary := BuildErrorSummary(failed)

	require.NotNil(t, summary)
	assert.Equal(t, 4, summary.TotalFailures)
	assert.Equal(t, 2, summary.ByCategory[domain.ErrorTimeout])
	assert.Equal(t, 2, summary.ByService[domain.ServiceText])
	assert.Equal(t, 2, summary.ByEndpoint["/v1.2/generate"])
	assert.Len(t, summary.Failures, 4)

	require.Len(t, summary.CriticalIssues, 3)
	assert.Equal(t, domain.ErrorValidation, summary.CriticalIssues[0].Category)
	assert.Equal(t, domain.ErrorHTTP5xx, summary.CriticalIssues[1].Category)
	assert.Equal(t, domain.ErrorTimeout, summary.CriticalIssues[2].Category)
	assert.Equal(t, []int{2, 4}, summary.CriticalIssues[2].AffectedSlides)
	assert.Equal(t, domain.SeverityMedium, summary.CriticalIssues[2].Severity)

	assert.Equal(t, []string{"fix data", "check illustrator", "raise timeout"}, summary.RecommendedActions)
}
