// Package tui provides the interactive progress view shown by
// "deckroute route --progress". It follows the Elm architecture of
// Bubbletea: router events arrive as messages and are rendered per slide.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/views/progress"
	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// RouteFunc runs one routing pass, reporting progress to observer.
type RouteFunc func(ctx context.Context, observer func(domain.SlideEvent)) (*domain.RoutingResult, error)

// App is the progress view model.
type App struct {
	keymap *keymap.KeyMap
	view   *progress.View
	bar    *status.Bar
	cancel context.CancelFunc
	quit   bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the model for a deck of total slides. cancel is called
// when the user quits while routing is still running.
func NewApp(total int, cancel context.CancelFunc) *App {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		keymap: km,
		view:   progress.NewView(s, total),
		bar:    status.NewBar(s, km),
		cancel: cancel,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.view.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.bar.SetWidth(msg.Width)
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	case messages.SlideProgress:
		a.count(msg.Event)
	case messages.RouteCompleted:
		if msg.Err != nil {
			a.bar.SetState(status.StateError)
			a.bar.SetMessage(msg.Err.Error())
		} else {
			a.bar.SetState(status.StateDone)
		}
		if a.quit {
			a.view, _ = a.view.Update(msg)
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.view, cmd = a.view.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		if a.view.Done() {
			return a, tea.Quit
		}
		// Wait for the router to return so the partial result is kept.
		a.quit = true
		if a.cancel != nil {
			a.cancel()
		}
	case key.Matches(msg, a.keymap.Details):
		a.view.ToggleDetails()
	case key.Matches(msg, a.keymap.Close):
		if a.view.Done() {
			return a, tea.Quit
		}
	}
	return a, nil
}

func (a *App) count(e domain.SlideEvent) {
	if !e.Done {
		return
	}
	c := a.bar.Counts()
	switch e.Status {
	case domain.OutcomeGenerated:
		c.Generated++
	case domain.OutcomeFailed:
		c.Failed++
	case domain.OutcomeSkipped:
		c.Skipped++
	}
	a.bar.SetCounts(c)
}

// View implements tea.Model.
func (a *App) View() string {
	return a.view.View() + "\n" + a.bar.View() + "\n"
}

// Result returns the routing outcome once routing has finished.
func (a *App) Result() (*domain.RoutingResult, error) {
	return a.view.Result()
}

// RunProgress runs route while rendering its progress, and returns
// route's result once the user closes the view.
func RunProgress(ctx context.Context, total int, route RouteFunc, opts ...tea.ProgramOption) (*domain.RoutingResult, error) {
	routeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := NewApp(total, cancel)
	p := tea.NewProgram(app, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	go func() {
		result, err := route(routeCtx, func(e domain.SlideEvent) {
			p.Send(messages.SlideProgress{Event: e})
		})
		p.Send(messages.RouteCompleted{Result: result, Err: err})
	}()

	if _, err := p.Run(); err != nil && !app.view.Done() {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	return app.Result()
}
