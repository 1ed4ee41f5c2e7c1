package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default service settings.
const (
	// DefaultServiceTimeout bounds every remote generation call.
	DefaultServiceTimeout = 60 * time.Second

	// DefaultInterSlideDelay is the pause between consecutive dispatches.
	DefaultInterSlideDelay = time.Duration(0)

	// MaxRetryLimit caps the configurable retry count.
	MaxRetryLimit = 5
)

// ServiceSettings holds the base URLs and call behaviour of the remote
// generation services.
type ServiceSettings struct {
	// TextServiceURL is the base URL of the text service (content and hero endpoints).
	TextServiceURL string

	// IllustratorURL is the base URL of the illustrator service (pyramid endpoint).
	IllustratorURL string

	// AnalyticsURL is the base URL of the analytics service (chart endpoint).
	AnalyticsURL string

	// CatalogURL is the base URL of the variant catalog. Defaults to TextServiceURL.
	CatalogURL string

	// Timeout bounds each remote call.
	Timeout time.Duration

	// MaxRetries is the number of retries for connection and 5xx failures.
	MaxRetries int
}

// CatalogBaseURL returns the catalog URL, falling back to the text service.
func (s ServiceSettings) CatalogBaseURL() string {
	if s.CatalogURL != "" {
		return s.CatalogURL
	}
	return s.TextServiceURL
}

// RoutingSettings holds dispatch behaviour.
type RoutingSettings struct {
	// InterSlideDelay is the pause between consecutive slide dispatches.
	InterSlideDelay time.Duration

	// SkipHeroGeneration routes hero slides as skipped instead of calling
	// the hero endpoints.
	SkipHeroGeneration bool

	// Seed seeds variant selection. Zero means a time-based seed.
	Seed uint64
}

// DiversitySettings holds the anti-repetition thresholds.
type DiversitySettings struct {
	// MaxVariantRun is the longest allowed run of the same variant.
	MaxVariantRun int

	// MaxClassificationRun is the longest allowed run of the same classification.
	MaxClassificationRun int
}

// AuthSettings holds optional OAuth2 client credentials for the remote services.
type AuthSettings struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// IsConfigured returns true if client-credentials auth is set up.
func (a AuthSettings) IsConfigured() bool {
	return a.TokenURL != "" && a.ClientID != "" && a.ClientSecret != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Services holds remote service settings.
	Services ServiceSettings

	// Routing holds dispatch settings.
	Routing RoutingSettings

	// Diversity holds diversity tracker thresholds.
	Diversity DiversitySettings

	// Auth holds optional client-credentials settings.
	Auth AuthSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Service URLs are left empty: users must configure them.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Services: ServiceSettings{
			Timeout: DefaultServiceTimeout,
		},
		Routing: RoutingSettings{
			InterSlideDelay: DefaultInterSlideDelay,
		},
		Diversity: DiversitySettings{
			MaxVariantRun:        DefaultMaxVariantRun,
			MaxClassificationRun: DefaultMaxClassificationRun,
		},
	}
}

// Validate checks the settings for values that cannot work.
func (s AppSettings) Validate() error {
	for name, raw := range map[string]string{
		"text service URL": s.Services.TextServiceURL,
		"illustrator URL":  s.Services.IllustratorURL,
		"analytics URL":    s.Services.AnalyticsURL,
		"catalog URL":      s.Services.CatalogURL,
		"token URL":        s.Auth.TokenURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s %q is not an absolute URL", ErrInvalidInput, name, raw)
		}
	}
	if s.Services.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidInput)
	}
	if s.Services.MaxRetries < 0 || s.Services.MaxRetries > MaxRetryLimit {
		return fmt.Errorf("%w: max retries must be between 0 and %d", ErrInvalidInput, MaxRetryLimit)
	}
	if s.Routing.InterSlideDelay < 0 {
		return fmt.Errorf("%w: inter-slide delay must not be negative", ErrInvalidInput)
	}
	if s.Diversity.MaxVariantRun < 1 || s.Diversity.MaxClassificationRun < 1 {
		return fmt.Errorf("%w: diversity thresholds must be at least 1", ErrInvalidInput)
	}
	return nil
}
