// Package domain holds deckroute's vocabulary: strawmen and their slides,
// the classification taxonomy and the dispatch it implies, visual
// variants and the catalog they come from, routing results with their
// failure analysis, run records and settings.
//
// Everything else in the module depends on domain. It imports only the
// standard library.
package domain
