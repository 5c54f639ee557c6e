package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/lazymvn/internal/tui/styles"
)

// ListItem is one row of a ListPane.
type ListItem struct {
	Title  string
	Detail string
	// Marker is a short rendered glyph shown before the title.
	Marker string
}

// ListPane is a titled, scrollable list that mirrors a cursor owned
// elsewhere. It never moves the cursor itself.
type ListPane struct {
	title       string
	empty       string
	items       []ListItem
	selected    int
	height      int
	width       int
	scrollStart int
	focused     bool
}

// NewListPane creates a pane showing empty when it has no rows.
func NewListPane(title, empty string) *ListPane {
	return &ListPane{
		title:    title,
		empty:    empty,
		selected: -1,
		height:   10,
	}
}

// SetTitle replaces the pane title.
func (p *ListPane) SetTitle(title string) {
	p.title = title
}

// SetItems updates the rows and the highlighted index (-1 for none).
func (p *ListPane) SetItems(items []ListItem, selected int) {
	p.items = items
	if selected >= len(items) {
		selected = -1
	}
	p.selected = selected
	p.updateScroll()
}

// Items returns the current rows.
func (p *ListPane) Items() []ListItem {
	return p.items
}

// Selected returns the highlighted index, or -1.
func (p *ListPane) Selected() int {
	return p.selected
}

// SetFocused sets whether the pane has focus.
func (p *ListPane) SetFocused(focused bool) {
	p.focused = focused
}

// Focused returns whether the pane has focus.
func (p *ListPane) Focused() bool {
	return p.focused
}

// SetSize sets the outer width and height of the pane.
func (p *ListPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.updateScroll()
}

// rows is the number of list lines that fit inside the border and title.
func (p *ListPane) rows() int {
	r := p.height - 3
	if r < 1 {
		r = 1
	}
	return r
}

// visible is the number of item rows shown, leaving a line for the overflow
// hint when the items do not fit.
func (p *ListPane) visible() int {
	r := p.rows()
	if len(p.items) > r && r > 1 {
		r--
	}
	return r
}

// updateScroll ensures the selected item is visible.
func (p *ListPane) updateScroll() {
	if p.selected < 0 {
		p.scrollStart = 0
		return
	}
	rows := p.visible()
	if p.selected < p.scrollStart {
		p.scrollStart = p.selected
	}
	if p.selected >= p.scrollStart+rows {
		p.scrollStart = p.selected - rows + 1
	}
	if p.scrollStart < 0 {
		p.scrollStart = 0
	}
}

// View renders the pane.
func (p *ListPane) View() string {
	titleStyle := styles.PaneTitleStyle
	box := styles.BoxStyle
	if p.focused {
		titleStyle = styles.PaneTitleFocusedStyle
		box = styles.FocusedBoxStyle
	}
	inner := p.width - 4
	if p.width > 0 {
		box = box.Width(p.width - 2)
	}
	if p.height > 0 {
		box = box.Height(p.height - 2)
	}

	lines := []string{titleStyle.Render(p.title)}
	if len(p.items) == 0 {
		lines = append(lines, styles.MutedTextStyle.Italic(true).Render(p.empty))
		return box.Render(strings.Join(lines, "\n"))
	}

	end := p.scrollStart + p.visible()
	if end > len(p.items) {
		end = len(p.items)
	}
	for i := p.scrollStart; i < end; i++ {
		lines = append(lines, p.renderItem(p.items[i], i == p.selected, inner))
	}
	if end < len(p.items) {
		lines = append(lines, styles.MutedTextStyle.Render("↓ more below"))
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (p *ListPane) renderItem(item ListItem, selected bool, width int) string {
	cursor := " "
	if selected {
		cursor = styles.CursorStyle.Render("▶")
	}
	marker := item.Marker
	if marker == "" {
		marker = " "
	}

	text := item.Title
	if item.Detail != "" {
		text += " " + styles.DetailStyle.Render(item.Detail)
	}
	line := cursor + marker + " " + text
	if width > 0 {
		line = truncate(line, width)
	}

	style := styles.RowStyle
	if selected && p.focused {
		style = styles.SelectedRowStyle
	}
	return style.Render(line)
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return lipgloss.NewStyle().MaxWidth(width-1).Render(s) + "…"
}
