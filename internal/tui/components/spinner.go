package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/lazymvn/internal/tui/styles"
)

// Spinner shows an animated indicator while registry requests are running.
type Spinner struct {
	spinner    spinner.Model
	statusText string
	startTime  time.Time
	active     bool
}

// NewSpinner creates a new Spinner component with default styling.
func NewSpinner() *Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Secondary)
	return &Spinner{spinner: s}
}

// SetActive starts or stops the indicator. Starting resets the elapsed time.
func (s *Spinner) SetActive(active bool) {
	if active && !s.active {
		s.startTime = time.Now()
	}
	s.active = active
}

// Active returns whether the indicator is shown.
func (s *Spinner) Active() bool {
	return s.active
}

// SetStatusText sets the text shown next to the spinner.
func (s *Spinner) SetStatusText(text string) {
	s.statusText = text
}

// Init returns the initial command for the spinner animation.
func (s *Spinner) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update handles spinner tick messages.
func (s *Spinner) Update(msg tea.Msg) (*Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner, or nothing when inactive.
func (s *Spinner) View() string {
	if !s.active {
		return ""
	}
	line := s.spinner.View()
	if s.statusText != "" {
		line += " " + lipgloss.NewStyle().Foreground(styles.Foreground).Render(s.statusText)
	}
	if !s.startTime.IsZero() {
		elapsed := time.Since(s.startTime)
		line += " " + styles.MutedTextStyle.Render(fmt.Sprintf("(%s)", formatSpinnerDuration(elapsed)))
	}
	return line
}

// formatSpinnerDuration formats a duration for display.
func formatSpinnerDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, sec)
}
