package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/lazymvn/internal/tui/styles"
)

// SearchInput renders the search phrase with a bubbles text input. The value
// always comes from the application state; the input never edits it.
type SearchInput struct {
	model   textinput.Model
	label   string
	focused bool
	width   int
}

// NewSearchInput creates a new SearchInput component.
func NewSearchInput(label string) *SearchInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "press i to type a search"
	ti.CharLimit = 0
	ti.Width = 30
	return &SearchInput{model: ti, label: label}
}

// SetValue mirrors the search phrase and keeps the cursor at its end.
func (s *SearchInput) SetValue(value string) {
	if s.model.Value() != value {
		s.model.SetValue(value)
	}
	s.model.CursorEnd()
}

// Value returns the displayed phrase.
func (s *SearchInput) Value() string {
	return s.model.Value()
}

// SetFocused shows or hides the text cursor.
func (s *SearchInput) SetFocused(focused bool) tea.Cmd {
	if focused == s.focused {
		return nil
	}
	s.focused = focused
	if focused {
		return s.model.Focus()
	}
	s.model.Blur()
	return nil
}

// Focused returns whether the input shows a cursor.
func (s *SearchInput) Focused() bool {
	return s.focused
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.model.Width = width - len(s.label) - 6
	if s.model.Width < 10 {
		s.model.Width = 10
	}
}

// Update forwards cursor blink messages. Key messages are ignored.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return s, nil
	}
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// View renders the input.
func (s *SearchInput) View() string {
	labelStyle := styles.InputLabelStyle
	inputStyle := styles.InputStyle
	if s.focused {
		labelStyle = styles.InputLabelFocusedStyle
		inputStyle = styles.InputFocusedStyle
	}
	return labelStyle.Render(s.label+": ") + inputStyle.Render(s.model.View())
}
