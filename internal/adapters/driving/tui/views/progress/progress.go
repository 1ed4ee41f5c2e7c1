// Package progress renders per-slide routing progress.
package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/deckroute/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// row is the latest known state of one slide.
type row struct {
	event   domain.SlideEvent
	started bool
}

// View shows one line per slide and an overall progress bar.
type View struct {
	styles   *styles.Styles
	rows     []row
	spinner  spinner.Model
	bar      progress.Model
	finished int
	details  bool
	result   *domain.RoutingResult
	err      error
}

// NewView creates a view for a deck of total slides.
func NewView(s *styles.Styles, total int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		rows:    make([]row, max(total, 0)),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Subtitle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Init starts the spinner.
func (v *View) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update applies progress events.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SlideProgress:
		v.apply(msg.Event)
	case messages.RouteCompleted:
		v.result, v.err = msg.Result, msg.Err
	case spinner.TickMsg:
		if v.Done() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) apply(e domain.SlideEvent) {
	idx := e.Position - 1
	if idx < 0 {
		return
	}
	if idx >= len(v.rows) {
		grown := make([]row, idx+1)
		copy(grown, v.rows)
		v.rows = grown
	}
	if e.Done && !v.rows[idx].event.Done {
		v.finished++
	}
	v.rows[idx] = row{event: e, started: true}
}

// ToggleDetails shows or hides failure details.
func (v *View) ToggleDetails() {
	v.details = !v.details
}

// Done returns true once RoutePresentation has returned.
func (v *View) Done() bool {
	return v.result != nil || v.err != nil
}

// Percent returns the finished share of slides.
func (v *View) Percent() float64 {
	if len(v.rows) == 0 {
		return 0
	}
	return float64(v.finished) / float64(len(v.rows))
}

// Result returns the routing result and error once done.
func (v *View) Result() (*domain.RoutingResult, error) {
	return v.result, v.err
}

// View renders the slide list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Routing presentation"))
	b.WriteString("\n\n")

	for i, r := range v.rows {
		b.WriteString(v.renderRow(i+1, r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.bar.ViewAs(v.Percent()))
	b.WriteString(fmt.Sprintf("  %d/%d\n", v.finished, len(v.rows)))

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}
	if v.details {
		b.WriteString(v.renderFailures())
	}
	return b.String()
}

func (v *View) renderRow(position int, r row) string {
	e := r.event
	label := fmt.Sprintf("%2d. %-14s", position, e.SlideID)
	switch {
	case !r.started:
		return v.styles.Muted.Render(label + " waiting")
	case !e.Done:
		return fmt.Sprintf("%s %s %s", label, v.spinner.View(), v.styles.Normal.Render(string(e.Dispatch)))
	default:
		line := fmt.Sprintf("%s %s %-8s %s", label, styles.OutcomeSymbol(e.Status), e.Dispatch, e.Duration.Round(time.Millisecond))
		if e.Error != nil {
			line += "  " + string(e.Error.Category)
		}
		return v.styles.Outcome(e.Status).Render(line)
	}
}

func (v *View) renderFailures() string {
	var lines []string
	for _, r := range v.rows {
		if r.event.Error == nil {
			continue
		}
		e := r.event.Error
		lines = append(lines,
			v.styles.Error.Render(fmt.Sprintf("#%d %s: %s", r.event.Position, e.Category, e.Message)),
			v.styles.Muted.Render("   "+e.SuggestedAction),
		)
	}
	if len(lines) == 0 {
		return "\n" + v.styles.Muted.Render("No failures.") + "\n"
	}
	return "\n" + v.styles.Box.Render(strings.Join(lines, "\n")) + "\n"
}
