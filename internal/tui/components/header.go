// Package components provides the panes and bars the lazymvn TUI is built from.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/lazymvn/internal/tui/styles"
)

// HeaderData contains the data to display in the header.
type HeaderData struct {
	PomPath      string
	Dependencies int
	Dirty        bool
}

// Header displays the edited file and its state in a bar.
type Header struct {
	data  HeaderData
	width int
}

// NewHeader creates a new Header component.
func NewHeader() *Header {
	return &Header{data: HeaderData{PomPath: "-"}}
}

// SetData updates the header data.
func (h *Header) SetData(data HeaderData) {
	h.data = data
}

// SetWidth sets the width for the header.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header.
func (h *Header) View() string {
	title := styles.TitleStyle.Render("LAZYMVN")

	sep := lipgloss.NewStyle().
		Foreground(styles.MutedLight).
		Render(" │ ")

	pomLabel := styles.HeaderLabelStyle.Render("Pom: ")
	pomValue := styles.HeaderValueStyle.Render(h.data.PomPath)

	depsLabel := styles.HeaderLabelStyle.Render("Dependencies: ")
	depsValue := styles.HeaderValueStyle.Render(fmt.Sprintf("%d", h.data.Dependencies))

	content := title + sep + pomLabel + pomValue + sep + depsLabel + depsValue
	if h.data.Dirty {
		content += sep + styles.WarningTextStyle.Bold(true).Render("modified")
	}

	headerStyle := lipgloss.NewStyle().
		Background(styles.Primary).
		Foreground(styles.Foreground).
		Padding(0, 1)
	if h.width > 0 {
		headerStyle = headerStyle.Width(h.width)
	}
	return headerStyle.Render(content)
}
