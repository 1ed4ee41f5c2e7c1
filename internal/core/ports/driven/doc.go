// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// and connectors implement them.
//
// # Generation Services
//
// Each may be nil. The router records a failure for slides that need a
// missing service, except hero slides, which are skipped:
//
//   - ContentService: unified content endpoint
//   - HeroService: title, section and closing endpoints
//   - PyramidService: illustrator pyramid endpoint
//   - AnalyticsService: analytics chart endpoint
//
// # Supporting Interfaces
//
//   - VariantCatalogSource: remote variant catalog
//   - CatalogCache: last known catalog snapshot (optional)
//   - RunStore: routing run history (optional)
//   - ConfigStore: application configuration
//   - TokenProvider: bearer tokens for the generation services
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
