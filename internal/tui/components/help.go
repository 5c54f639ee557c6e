package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/lazymvn/internal/tui/styles"
)

// Bindings is what HelpFooter needs from a key map.
type Bindings interface {
	help.KeyMap
	InputHelp() []key.Binding
}

// HelpFooter lists the key bindings that apply to the current mode.
type HelpFooter struct {
	model  help.Model
	keys   Bindings
	typing bool
}

// NewHelpFooter creates a footer for keys. With expanded set every binding
// is listed instead of the short selection.
func NewHelpFooter(keys Bindings, expanded bool) *HelpFooter {
	m := help.New()
	m.ShowAll = expanded
	m.Styles.ShortKey = styles.CursorStyle
	m.Styles.FullKey = styles.CursorStyle
	m.Styles.ShortDesc = styles.MutedTextStyle
	m.Styles.FullDesc = styles.MutedTextStyle
	m.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.BorderColor)
	m.Styles.FullSeparator = lipgloss.NewStyle().Foreground(styles.BorderColor)
	return &HelpFooter{model: m, keys: keys}
}

// SetTyping selects the text input bindings.
func (h *HelpFooter) SetTyping(typing bool) {
	h.typing = typing
}

// SetWidth truncates the footer to width cells.
func (h *HelpFooter) SetWidth(width int) {
	h.model.Width = width
}

// Expanded returns whether all bindings are listed.
func (h *HelpFooter) Expanded() bool {
	return h.model.ShowAll
}

// View renders the footer.
func (h *HelpFooter) View() string {
	if h.typing {
		return h.model.ShortHelpView(h.keys.InputHelp())
	}
	return h.model.View(h.keys)
}
