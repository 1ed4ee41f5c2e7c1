package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyTextServiceURL       = "services.text_url"
	KeyIllustratorURL       = "services.illustrator_url"
	KeyAnalyticsURL         = "services.analytics_url"
	KeyCatalogURL           = "services.catalog_url"
	KeyTimeout              = "services.timeout"
	KeyMaxRetries           = "services.max_retries"
	KeyInterSlideDelay      = "routing.inter_slide_delay"
	KeySkipHeroGeneration   = "routing.skip_hero"
	KeySeed                 = "routing.seed"
	KeyMaxVariantRun        = "diversity.max_variant_run"
	KeyMaxClassificationRun = "diversity.max_classification_run"
	KeyTokenURL             = "auth.token_url"
	KeyClientID             = "auth.client_id"
	KeyClientSecret         = "auth.client_secret"
	KeyScopes               = "auth.scopes"
)

type settingKind int

const (
	kindString settingKind = iota
	kindDuration
	kindInt
	kindBool
	kindList
)

// settingKeys lists every supported key in display order.
var settingKeys = []struct {
	key  string
	kind settingKind
}{
	{KeyTextServiceURL, kindString},
	{KeyIllustratorURL, kindString},
	{KeyAnalyticsURL, kindString},
	{KeyCatalogURL, kindString},
	{KeyTimeout, kindDuration},
	{KeyMaxRetries, kindInt},
	{KeyInterSlideDelay, kindDuration},
	{KeySkipHeroGeneration, kindBool},
	{KeySeed, kindInt},
	{KeyMaxVariantRun, kindInt},
	{KeyMaxClassificationRun, kindInt},
	{KeyTokenURL, kindString},
	{KeyClientID, kindString},
	{KeyClientSecret, kindString},
	{KeyScopes, kindList},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Services: domain.ServiceSettings{
			TextServiceURL: s.configStore.GetString(KeyTextServiceURL),
			IllustratorURL: s.configStore.GetString(KeyIllustratorURL),
			AnalyticsURL:   s.configStore.GetString(KeyAnalyticsURL),
			CatalogURL:     s.configStore.GetString(KeyCatalogURL),
			MaxRetries:     s.configStore.GetInt(KeyMaxRetries),
		},
		Routing: domain.RoutingSettings{
			SkipHeroGeneration: s.getBool(KeySkipHeroGeneration, defaults.Routing.SkipHeroGeneration),
			Seed:               uint64(max(s.configStore.GetInt(KeySeed), 0)),
		},
		Diversity: domain.DiversitySettings{
			MaxVariantRun:        s.getInt(KeyMaxVariantRun, defaults.Diversity.MaxVariantRun),
			MaxClassificationRun: s.getInt(KeyMaxClassificationRun, defaults.Diversity.MaxClassificationRun),
		},
		Auth: domain.AuthSettings{
			TokenURL:     s.configStore.GetString(KeyTokenURL),
			ClientID:     s.configStore.GetString(KeyClientID),
			ClientSecret: s.configStore.GetString(KeyClientSecret),
			Scopes:       s.configStore.GetStringSlice(KeyScopes),
		},
	}

	var err error
	if settings.Services.Timeout, err = s.getDuration(KeyTimeout, defaults.Services.Timeout); err != nil {
		return nil, err
	}
	if settings.Routing.InterSlideDelay, err = s.getDuration(KeyInterSlideDelay, defaults.Routing.InterSlideDelay); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyTextServiceURL, settings.Services.TextServiceURL},
		{KeyIllustratorURL, settings.Services.IllustratorURL},
		{KeyAnalyticsURL, settings.Services.AnalyticsURL},
		{KeyCatalogURL, settings.Services.CatalogURL},
		{KeyTimeout, settings.Services.Timeout.String()},
		{KeyMaxRetries, settings.Services.MaxRetries},
		{KeyInterSlideDelay, settings.Routing.InterSlideDelay.String()},
		{KeySkipHeroGeneration, settings.Routing.SkipHeroGeneration},
		{KeySeed, int64(settings.Routing.Seed)},
		{KeyMaxVariantRun, settings.Diversity.MaxVariantRun},
		{KeyMaxClassificationRun, settings.Diversity.MaxClassificationRun},
		{KeyTokenURL, settings.Auth.TokenURL},
		{KeyClientID, settings.Auth.ClientID},
		{KeyScopes, settings.Auth.Scopes},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.Auth.ClientSecret != "" {
		if err := s.configStore.Set(KeyClientSecret, settings.Auth.ClientSecret); err != nil {
			return fmt.Errorf("save %s: %w", KeyClientSecret, err)
		}
	}

	return nil
}

// Set parses value according to the key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKind(-1), false
	for _, k := range settingKeys {
		if k.key == key {
			kind, ok = k.kind, true
			break
		}
	}
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	value = strings.TrimSpace(value)
	var parsed any
	switch kind {
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		parsed = d.String()
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		parsed = n
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		parsed = b
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		parsed = items
	default:
		parsed = value
	}

	previous, existed := s.configStore.Get(key)
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := s.Validate(); err != nil {
		if existed {
			_ = s.configStore.Set(key, previous)
		} else {
			_ = s.configStore.Delete(key)
		}
		return err
	}
	return nil
}

// Keys returns the supported config keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// Validate checks the stored settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	return d, nil
}
