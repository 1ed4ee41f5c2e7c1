// Package messages defines the Bubbletea messages of the progress view.
package messages

import (
	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// SlideProgress carries one router progress event.
type SlideProgress struct {
	Event domain.SlideEvent
}

// RouteCompleted is sent once RoutePresentation has returned.
type RouteCompleted struct {
	Result *domain.RoutingResult
	Err    error
}
