package progress

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckroute/internal/core/domain"
)

func started(pos int, id string) messages.SlideProgress {
	return messages.SlideProgress{Event: domain.SlideEvent{Position: pos, Total: 3, SlideID: id, Dispatch: domain.DispatchContent}}
}

func finished(pos int, id string, status domain.OutcomeStatus) messages.SlideProgress {
	e := started(pos, id).Event
	e.Done = true
	e.Status = status
	e.Duration = 120 * time.Millisecond
	if status == domain.OutcomeFailed {
		e.Error = &domain.SlideError{Category: domain.ErrorHTTP5xx, Message: "bad gateway", SuggestedAction: "retry later"}
	}
	return messages.SlideProgress{Event: e}
}

func TestView_TracksProgress(t *testing.T) {
	v := NewView(nil, 3)

	v, _ = v.Update(started(1, "s1"))
	assert.Zero(t, v.Percent())

	v, _ = v.Update(finished(1, "s1", domain.OutcomeGenerated))
	v, _ = v.Update(finished(1, "s1", domain.OutcomeGenerated))
	v, _ = v.Update(started(2, "s2"))
	v, _ = v.Update(finished(2, "s2", domain.OutcomeFailed))

	assert.InDelta(t, 2.0/3.0, v.Percent(), 0.001)
	out := v.View()
	assert.Contains(t, out, "s1")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "http_5xx")
	assert.Contains(t, out, "waiting")
	assert.Contains(t, out, "2/3")
	assert.False(t, v.Done())
}

func TestView_Details(t *testing.T) {
	v := NewView(nil, 2)
	v, _ = v.Update(finished(2, "s2", domain.OutcomeFailed))

	assert.NotContains(t, v.View(), "retry later")
	v.ToggleDetails()
	assert.Contains(t, v.View(), "retry later")
	assert.Contains(t, v.View(), "#2 http_5xx: bad gateway")
}

func TestView_DetailsWithoutFailures(t *testing.T) {
	v := NewView(nil, 1)
	v.ToggleDetails()

	assert.Contains(t, v.View(), "No failures.")
}

func TestView_Completed(t *testing.T) {
	v := NewView(nil, 1)
	result := &domain.RoutingResult{SessionID: "x"}

	v, _ = v.Update(messages.RouteCompleted{Result: result})

	assert.True(t, v.Done())
	got, err := v.Result()
	assert.NoError(t, err)
	assert.Same(t, result, got)
}

func TestView_CompletedWithError(t *testing.T) {
	v := NewView(nil, 1)

	v, _ = v.Update(messages.RouteCompleted{Err: errors.New("strawman rejected")})

	assert.True(t, v.Done())
	assert.Contains(t, v.View(), "strawman rejected")
}

func TestView_GrowsForUnexpectedPositions(t *testing.T) {
	v := NewView(nil, 1)

	v, _ = v.Update(finished(3, "s3", domain.OutcomeSkipped))

	assert.Len(t, v.rows, 3)
	assert.InDelta(t, 1.0/3.0, v.Percent(), 0.001)
}
