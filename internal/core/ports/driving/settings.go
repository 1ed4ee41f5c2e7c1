package driving

import "github.com/custodia-labs/deckroute/internal/core/domain"

// SettingsService reads and edits the settings that shape every run:
// service URLs, timeouts and retries, routing switches and auth.
type SettingsService interface {
	// Get merges stored values over the defaults.
	Get() (*domain.AppSettings, error)
	// Save validates settings before persisting them. An empty client
	// secret keeps the stored one.
	Save(settings *domain.AppSettings) error
	// Set parses value by the key's type. A value that leaves the
	// settings invalid is rolled back.
	Set(key, value string) error
	// Keys lists the editable dotted keys in display order.
	Keys() []string
	Validate() error
	GetDefaults() domain.AppSettings
}
