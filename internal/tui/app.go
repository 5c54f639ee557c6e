// Package tui provides the terminal user interface for lazymvn. The Bubble
// Tea program only captures keys and draws snapshots; every decision is made
// by the event loop.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/lazymvn/internal/loop"
	"github.com/wexinc/lazymvn/internal/pom"
	"github.com/wexinc/lazymvn/internal/registry"
	"github.com/wexinc/lazymvn/internal/tui/components"
	"github.com/wexinc/lazymvn/internal/tui/styles"
	"github.com/wexinc/lazymvn/internal/version"
)

// Options configures the model.
type Options struct {
	PomPath string
	Keys    loop.KeyMap
	// ShowHelp lists every binding in the footer instead of the short set.
	ShowHelp bool
}

// Model is the Bubble Tea model for the lazymvn TUI.
type Model struct {
	header    *components.Header
	search    *components.SearchInput
	deps      *components.ListPane
	results   *components.ListPane
	versions  *components.ListPane
	spinner   *components.Spinner
	statusBar *components.StatusBar
	help      *components.HelpFooter

	pomPath string
	state   *loop.State
	post    func(loop.Event) bool

	width    int
	height   int
	quitting bool
}

// New creates a new TUI model.
func New(opts Options) *Model {
	m := &Model{
		header:    components.NewHeader(),
		search:    components.NewSearchInput("Search"),
		deps:      components.NewListPane("Dependencies", "no dependencies"),
		results:   components.NewListPane("Search results", "no results"),
		versions:  components.NewListPane("Versions", "press v on a dependency"),
		spinner:   components.NewSpinner(),
		statusBar: components.NewStatusBar(),
		help:      components.NewHelpFooter(opts.Keys, opts.ShowHelp),
		pomPath:   opts.PomPath,
	}
	m.header.SetData(components.HeaderData{PomPath: opts.PomPath})
	m.spinner.SetStatusText("querying registry")
	return m
}

// SetPoster sets where key presses are sent.
func (m *Model) SetPoster(post func(loop.Event) bool) {
	m.post = post
}

// State returns the last snapshot drawn, or nil.
func (m *Model) State() *loop.State {
	return m.state
}

// Init starts the spinner animation.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.post != nil {
			m.post(loop.InputEvent(msg))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case SnapshotMsg:
		return m, m.apply(msg.State)

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.search.SetWidth(width / 2)
	m.help.SetWidth(width)

	helpLines := 1
	if m.help.Expanded() {
		helpLines = 4
	}
	paneHeight := height - 3 - helpLines
	if paneHeight < 4 {
		paneHeight = 4
	}
	third := width / 3
	m.deps.SetSize(third, paneHeight)
	m.results.SetSize(third, paneHeight)
	m.versions.SetSize(width-2*third, paneHeight)
}

// apply copies a snapshot into the components.
func (m *Model) apply(s *loop.State) tea.Cmd {
	if s == nil {
		return nil
	}
	m.state = s

	m.header.SetData(components.HeaderData{
		PomPath:      m.pomPath,
		Dependencies: s.Dependencies.Len(),
		Dirty:        s.Dirty,
	})

	typing := s.Mode == loop.ModeTextInput
	m.search.SetValue(s.SearchPhrase)
	cmd := m.search.SetFocused(typing)

	m.deps.SetItems(dependencyItems(s), selectedIndex(s.Dependencies.Selected()))
	m.results.SetItems(resultItems(s), selectedIndex(s.Results.Selected()))
	m.results.SetTitle(fmt.Sprintf("Search results (%d)", s.Results.Len()))
	m.versions.SetItems(versionItems(s), selectedIndex(s.Versions.Selected()))
	if s.VersionsKey.IsZero() {
		m.versions.SetTitle("Versions")
	} else {
		m.versions.SetTitle("Versions of " + s.VersionsKey.String())
	}

	m.deps.SetFocused(s.Focus == loop.ViewDependencies)
	m.results.SetFocused(s.Focus == loop.ViewSearch)
	m.versions.SetFocused(s.Focus == loop.ViewVersions)

	inFlight := 0
	for _, n := range s.InFlight {
		inFlight += n
	}
	m.spinner.SetActive(inFlight > 0)
	m.statusBar.SetData(components.StatusBarData{
		Typing:   typing,
		Focus:    s.Focus.String(),
		Message:  s.Status,
		Failure:  s.LastFailure,
		InFlight: inFlight,
	})
	m.help.SetTyping(typing)
	return cmd
}

func selectedIndex(i int, ok bool) int {
	if !ok {
		return -1
	}
	return i
}

func dependencyItems(s *loop.State) []components.ListItem {
	deps := s.Dependencies.Items()
	items := make([]components.ListItem, len(deps))
	for i, d := range deps {
		item := components.ListItem{Title: d.Key().String(), Detail: d.Version}
		if d.Classifier != "" {
			item.Title += " [" + d.Classifier + "]"
		}
		if d.Version == "" {
			item.Detail = "(managed)"
		}
		if newest := latest(s.VersionCache[d.Key()]); newest != "" && d.Version != "" &&
			version.CompareVersions(newest, d.Version) > 0 {
			item.Marker = styles.NewerMarker
		}
		items[i] = item
	}
	return items
}

func resultItems(s *loop.State) []components.ListItem {
	present := make(map[pom.Key]bool, s.Dependencies.Len())
	for _, d := range s.Dependencies.Items() {
		present[d.Key()] = true
	}
	results := s.Results.Items()
	items := make([]components.ListItem, len(results))
	for i, c := range results {
		item := components.ListItem{Title: c.Key().String(), Detail: c.LatestVersion}
		if present[c.Key()] {
			item.Marker = styles.CurrentMarker
		}
		items[i] = item
	}
	return items
}

func versionItems(s *loop.State) []components.ListItem {
	current := ""
	for _, d := range s.Dependencies.Items() {
		if d.Key() == s.VersionsKey {
			current = d.Version
			break
		}
	}
	versions := s.Versions.Items()
	items := make([]components.ListItem, len(versions))
	for i, v := range versions {
		item := components.ListItem{Title: v.Version}
		if !v.PublishedAt.IsZero() {
			item.Detail = v.PublishedAt.Format("2006-01-02")
		}
		switch {
		case current == "":
		case v.Version == current:
			item.Marker = styles.CurrentMarker
		case version.CompareVersions(v.Version, current) > 0:
			item.Marker = styles.NewerMarker
		}
		items[i] = item
	}
	return items
}

// latest returns the highest version in vs.
func latest(vs []registry.Version) string {
	best := ""
	for _, v := range vs {
		if best == "" || version.CompareVersions(v.Version, best) > 0 {
			best = v.Version
		}
	}
	return best
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	searchLine := m.search.View()
	if sp := m.spinner.View(); sp != "" {
		searchLine += "  " + sp
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.deps.View(), m.results.View(), m.versions.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		searchLine,
		panes,
		m.statusBar.View(),
		m.help.View(),
	)
}
