// Package httpx is the JSON-over-HTTP client shared by the generation
// service connectors. It adds bearer authentication, bounded retries with
// exponential backoff, and maps non-2xx responses to *googleapi.Error
// (or *RateLimitError for 429) so callers can classify failures with
// errors.As.
package httpx
