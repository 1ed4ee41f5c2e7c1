package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// retryAfterError is implemented by rate-limit errors from the connectors.
type retryAfterError interface {
	error
	RetryAfter() time.Duration
}

// ClassifyError maps a dispatch error to a category and, for HTTP errors,
// the response status.
func ClassifyError(err error) (domain.ErrorCategory, int) {
	if err == nil {
		return domain.ErrorUnknown, 0
	}

	var (
		gerr      *googleapi.Error
		netErr    net.Error
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		urlErr    *url.Error
		opErr     *net.OpError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.ErrorTimeout, 0
	case errors.As(err, &netErr) && netErr.Timeout():
		return domain.ErrorTimeout, 0
	case errors.Is(err, context.Canceled):
		return domain.ErrorUnknown, 0
	case errors.As(err, &gerr):
		switch {
		case gerr.Code >= 500:
			return domain.ErrorHTTP5xx, gerr.Code
		case gerr.Code >= 400:
			return domain.ErrorHTTP4xx, gerr.Code
		}
		return domain.ErrorUnknown, gerr.Code
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidResponse),
		errors.Is(err, domain.ErrServiceNotConfigured),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		return domain.ErrorValidation, 0
	case errors.As(err, &opErr), errors.As(err, &urlErr):
		return domain.ErrorConnection, 0
	default:
		return domain.ErrorUnknown, 0
	}
}

// NewSlideError builds the structured failure record for a dispatch error.
func NewSlideError(err error, service, endpoint string) domain.SlideError {
	category, status := ClassifyError(err)
	return domain.SlideError{
		Category:        category,
		Message:         err.Error(),
		Service:         service,
		Endpoint:        endpoint,
		StatusCode:      status,
		SuggestedAction: SuggestedAction(err, category, status, service, endpoint),
	}
}

// SuggestedAction returns a remediation hint for a classified failure.
func SuggestedAction(err error, category domain.ErrorCategory, status int, service, endpoint string) string {
	switch category {
	case domain.ErrorValidation:
		if errors.Is(err, domain.ErrServiceNotConfigured) {
			return fmt.Sprintf("Configure the %s base URL in settings before routing this slide type.", service)
		}
		if errors.Is(err, domain.ErrInvalidResponse) {
			return fmt.Sprintf("Check that %s %s returns the documented response shape.", service, endpoint)
		}
		return "Check the slide's required fields (generated title, variant, hints) and re-run."
	case domain.ErrorTimeout:
		return fmt.Sprintf("Increase services.timeout or reduce load on %s.", service)
	case domain.ErrorConnection:
		return fmt.Sprintf("Check that %s is running and reachable at its configured URL.", service)
	case domain.ErrorHTTP4xx:
		var rl retryAfterError
		switch {
		case errors.As(err, &rl):
			return fmt.Sprintf("Rate limited by %s: retry after %s or set routing.inter_slide_delay.", service, rl.RetryAfter())
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return fmt.Sprintf("Check the auth client credentials used for %s.", service)
		case status == http.StatusNotFound:
			return fmt.Sprintf("Endpoint %s was not found on %s: check the base URL and API version.", endpoint, service)
		}
		return fmt.Sprintf("Check the request payload sent to %s %s (status %d).", service, endpoint, status)
	case domain.ErrorHTTP5xx:
		return fmt.Sprintf("%s failed internally (status %d): check its logs and retry.", service, status)
	default:
		return "Inspect the error message and retry. Attach the error summary if it persists."
	}
}

// SeverityFor returns the critical-issue severity for a category.
func SeverityFor(category domain.ErrorCategory) domain.Severity {
	switch category {
	case domain.ErrorValidation, domain.ErrorHTTP5xx, domain.ErrorConnection:
		return domain.SeverityHigh
	case domain.ErrorTimeout, domain.ErrorHTTP4xx:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
