package mcp

import (
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// NewRouter builds a router per tool call.
	NewRouter driving.RouterFactory

	// NewPlanner builds a planner per tool call.
	NewPlanner driving.PlannerFactory

	// Runs records routed presentations. Optional.
	Runs driving.RunHistory

	// Catalog backs the catalog resource. Optional.
	Catalog driving.CatalogBrowser
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p.NewRouter == nil {
		return ErrMissingRouter
	}
	if p.NewPlanner == nil {
		return ErrMissingPlanner
	}
	return nil
}
