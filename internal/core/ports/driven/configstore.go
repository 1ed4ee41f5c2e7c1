package driven

// ConfigStore holds deckroute settings addressed by dotted keys such as
// "services.text_url" or "routing.skip_hero". Typed getters return the
// zero value when a key is unset or holds another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	// GetStringSlice accepts both []string and the []any a decoder yields.
	GetStringSlice(key string) []string

	// Set and Delete persist before returning.
	Set(key string, value any) error
	Delete(key string) error

	// Keys lists the stored keys in sorted order.
	Keys() []string

	Load() error
	Save() error

	// Path names the backing file, or ":memory:".
	Path() string
}
