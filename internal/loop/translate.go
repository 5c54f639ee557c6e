package loop

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/lazymvn/internal/pom"
)

// Context is the read-only slice of state a translation may depend on.
type Context struct {
	Mode         Mode
	Focused      ViewID
	SearchPhrase string
	// Selected is the key of the item under the cursor of the focused view.
	Selected     pom.Key
	HasSelection bool
}

// KeyMap defines all key bindings of the editor.
type KeyMap struct {
	Quit          key.Binding
	Input         key.Binding
	Submit        key.Binding
	FocusNext     key.Binding
	FocusPrevious key.Binding
	Up            key.Binding
	Down          key.Binding
	Delete        key.Binding
	Search        key.Binding
	Versions      key.Binding
	Confirm       key.Binding

	// Text input mode.
	Backspace key.Binding
	Cancel    key.Binding
}

// DefaultKeyMap returns the built-in bindings. Vim-style navigation (j/k)
// works alongside the arrow keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Input: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "type search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write pom"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		FocusPrevious: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev pane"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete dependency"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search"),
		),
		Versions: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "versions"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("BS", "erase"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop typing"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Input, k.Search, k.Versions, k.Delete, k.Submit, k.FocusNext, k.Quit}
}

// FullHelp returns every normal mode binding grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.FocusNext, k.FocusPrevious},
		{k.Input, k.Search, k.Versions, k.Confirm},
		{k.Delete, k.Submit, k.Quit},
	}
}

// InputHelp returns the bindings active while typing.
func (k KeyMap) InputHelp() []key.Binding {
	enter := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search"))
	return []key.Binding{enter, k.Backspace, k.Cancel}
}

// Translator turns key presses into intents. It never modifies state.
type Translator struct {
	keys  KeyMap
	focus *FocusRegistry
}

// NewTranslator returns a translator over keys. View-local handlers are
// looked up in focus.
func NewTranslator(keys KeyMap, focus *FocusRegistry) *Translator {
	return &Translator{keys: keys, focus: focus}
}

// Keys returns the bindings in use.
func (t *Translator) Keys() KeyMap {
	return t.keys
}

// Translate maps msg to an intent given ctx. The focused view is asked
// first. It returns false for keys with no meaning in ctx.
func (t *Translator) Translate(msg tea.KeyMsg, ctx Context) (Intent, bool) {
	if t.focus != nil {
		if h := t.focus.Handler(ctx.Focused); h != nil {
			if intent, ok := h(msg, ctx); ok {
				return intent, true
			}
		}
	}
	if ctx.Mode == ModeTextInput {
		return t.textInput(msg, ctx)
	}
	return t.normal(msg, ctx)
}

func (t *Translator) textInput(msg tea.KeyMsg, ctx Context) (Intent, bool) {
	switch {
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0:
		return Intent{Kind: IntentAppendSearchChar, Runes: append([]rune(nil), msg.Runes...)}, true
	case msg.Type == tea.KeySpace:
		return Intent{Kind: IntentAppendSearchChar, Runes: []rune{' '}}, true
	case key.Matches(msg, t.keys.Backspace):
		return Intent{Kind: IntentDeleteSearchChar}, true
	case key.Matches(msg, t.keys.Cancel):
		return Intent{Kind: IntentLeaveInputMode}, true
	case key.Matches(msg, t.keys.Confirm):
		return Intent{Kind: IntentTriggerSearch, Phrase: ctx.SearchPhrase}, true
	}
	return Intent{}, false
}

func (t *Translator) normal(msg tea.KeyMsg, ctx Context) (Intent, bool) {
	switch {
	case key.Matches(msg, t.keys.Quit):
		return Intent{Kind: IntentExit}, true
	case key.Matches(msg, t.keys.Input):
		return Intent{Kind: IntentEnterInputMode}, true
	case key.Matches(msg, t.keys.Submit):
		return Intent{Kind: IntentSubmitChanges}, true
	case key.Matches(msg, t.keys.FocusNext):
		return Intent{Kind: IntentFocusNext}, true
	case key.Matches(msg, t.keys.FocusPrevious):
		return Intent{Kind: IntentFocusPrevious}, true
	case key.Matches(msg, t.keys.Down):
		return Intent{Kind: IntentNavigateList, Direction: DirectionNext}, true
	case key.Matches(msg, t.keys.Up):
		return Intent{Kind: IntentNavigateList, Direction: DirectionPrevious}, true
	case key.Matches(msg, t.keys.Delete):
		return Intent{Kind: IntentDeleteSelected}, true
	case key.Matches(msg, t.keys.Search):
		return Intent{Kind: IntentTriggerSearch, Phrase: ctx.SearchPhrase}, true
	case key.Matches(msg, t.keys.Versions):
		if !ctx.HasSelection {
			return Intent{}, false
		}
		return Intent{Kind: IntentFetchVersions, Key: ctx.Selected}, true
	}
	return Intent{}, false
}

// DefaultViews returns the editor's panes in focus order with their local
// bindings.
func DefaultViews(keys KeyMap) []View {
	return []View{
		{ID: ViewDependencies, Handler: dependenciesHandler(keys)},
		{ID: ViewSearch, Handler: searchHandler(keys)},
		{ID: ViewVersions, Handler: versionsHandler(keys)},
	}
}

func dependenciesHandler(keys KeyMap) LocalHandler {
	return func(msg tea.KeyMsg, ctx Context) (Intent, bool) {
		if ctx.Mode != ModeNormal || !ctx.HasSelection || !key.Matches(msg, keys.Confirm) {
			return Intent{}, false
		}
		return Intent{Kind: IntentFetchVersions, Key: ctx.Selected}, true
	}
}

func searchHandler(keys KeyMap) LocalHandler {
	return func(msg tea.KeyMsg, ctx Context) (Intent, bool) {
		if ctx.Mode != ModeNormal || !ctx.HasSelection || !key.Matches(msg, keys.Confirm) {
			return Intent{}, false
		}
		return Intent{Kind: IntentAddCandidate}, true
	}
}

func versionsHandler(keys KeyMap) LocalHandler {
	return func(msg tea.KeyMsg, ctx Context) (Intent, bool) {
		if ctx.Mode != ModeNormal || !key.Matches(msg, keys.Confirm) {
			return Intent{}, false
		}
		return Intent{Kind: IntentApplyVersion}, true
	}
}
