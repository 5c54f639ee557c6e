package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/lazymvn/internal/tui/styles"
)

// StatusBarData contains the data to display in the status bar.
type StatusBarData struct {
	// Typing selects the text input mode badge.
	Typing   bool
	Focus    string
	Message  string
	Failure  string
	InFlight int
}

// StatusBar displays the input mode, the last status message and pending
// registry requests.
type StatusBar struct {
	data  StatusBarData
	width int
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetData updates the status bar data.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

// Data returns what the bar currently shows.
func (s *StatusBar) Data() StatusBarData {
	return s.data
}

// SetWidth sets the width of the status bar.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	sep := lipgloss.NewStyle().
		Foreground(styles.Muted).
		Render(" │ ")

	mode := styles.ModeNormalStyle.Render("NORMAL")
	if s.data.Typing {
		mode = styles.ModeInputStyle.Render("SEARCH")
	}
	left := mode
	if s.data.Focus != "" {
		left += sep + styles.HeaderLabelStyle.Render("Pane: ") + styles.HeaderValueStyle.Render(s.data.Focus)
	}

	switch {
	case s.data.Message != "" && s.data.Message == s.data.Failure:
		left += sep + styles.ErrorTextStyle.Render(s.data.Message)
	case s.data.Message != "":
		left += sep + lipgloss.NewStyle().Foreground(styles.MutedLight).Italic(true).Render(s.data.Message)
	}

	right := ""
	if s.data.InFlight > 0 {
		right = styles.WarningTextStyle.Render(fmt.Sprintf("%d pending", s.data.InFlight))
	}
	if s.data.Failure != "" && s.data.Failure != s.data.Message {
		if right != "" {
			right += sep
		}
		right += styles.ErrorTextStyle.Render(s.data.Failure)
	}

	container := styles.StatusBarStyle
	if s.width > 0 {
		container = container.Width(s.width)
		padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
		if padding > 0 {
			return container.Render(left + strings.Repeat(" ", padding) + right)
		}
	}
	if right == "" {
		return container.Render(left)
	}
	return container.Render(left + "  " + right)
}
