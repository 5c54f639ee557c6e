// Package styles provides Lip Gloss styles for the lazymvn TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette for the TUI.
var (
	Primary     = lipgloss.Color("#7C3AED") // Purple
	Secondary   = lipgloss.Color("#06B6D4") // Cyan
	Success     = lipgloss.Color("#10B981") // Green
	Warning     = lipgloss.Color("#F59E0B") // Amber
	Error       = lipgloss.Color("#EF4444") // Red
	Muted       = lipgloss.Color("#6B7280") // Gray
	MutedLight  = lipgloss.Color("#9CA3AF") // Light Gray
	Background  = lipgloss.Color("#1F2937") // Dark Gray
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
)

// DisableColor switches every style to plain ASCII output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Header styles.
var (
	HeaderLabelStyle = lipgloss.NewStyle().
				Foreground(MutedLight)

	HeaderValueStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Bold(true).
			Padding(0, 1)
)

// Pane styles.
var (
	// BoxStyle is a pane without focus.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// FocusedBoxStyle is the pane that receives keys.
	FocusedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Bold(true)

	PaneTitleFocusedStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)
)

// List row styles.
var (
	RowStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Background).
				Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	DetailStyle = lipgloss.NewStyle().
			Foreground(MutedLight)

	// NewerMarker flags a version above the one in the pom.
	NewerMarker = lipgloss.NewStyle().
			Foreground(Success).
			Render("↑")

	// CurrentMarker flags the version in the pom.
	CurrentMarker = lipgloss.NewStyle().
			Foreground(Secondary).
			Render("●")
)

// Text styles.
var (
	MutedTextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(Error)

	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(Success)

	WarningTextStyle = lipgloss.NewStyle().
				Foreground(Warning)
)

// Status bar styles.
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Background(Background).
			Padding(0, 1)

	ModeNormalStyle = lipgloss.NewStyle().
			Foreground(Background).
			Background(Secondary).
			Bold(true).
			Padding(0, 1)

	ModeInputStyle = lipgloss.NewStyle().
			Foreground(Background).
			Background(Warning).
			Bold(true).
			Padding(0, 1)
)

// Search field styles.
var (
	InputLabelStyle = lipgloss.NewStyle().
			Foreground(MutedLight)

	InputLabelFocusedStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	InputFocusedStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Background).
				Padding(0, 1)
)
