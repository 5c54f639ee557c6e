package loop

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewID names a focusable pane.
type ViewID string

const (
	ViewDependencies ViewID = "dependencies"
	ViewSearch       ViewID = "search"
	ViewVersions     ViewID = "versions"
)

// String returns the string representation of the view.
func (v ViewID) String() string {
	return string(v)
}

// LocalHandler gives a view the first chance to interpret a key.
type LocalHandler func(msg tea.KeyMsg, ctx Context) (Intent, bool)

// View is one entry of the focus ring.
type View struct {
	ID      ViewID
	Handler LocalHandler
}

// ErrNoViews is returned when a focus registry would be empty.
var ErrNoViews = errors.New("focus registry needs at least one view")

// FocusRegistry is the ordered ring of focusable views and the pointer to the
// focused one. Cycling wraps at both ends.
type FocusRegistry struct {
	views   []View
	current int
}

// NewFocusRegistry builds a registry with the first view focused.
func NewFocusRegistry(views ...View) (*FocusRegistry, error) {
	if len(views) == 0 {
		return nil, ErrNoViews
	}
	seen := make(map[ViewID]bool, len(views))
	for _, v := range views {
		if seen[v.ID] {
			return nil, fmt.Errorf("view %q registered twice", v.ID)
		}
		seen[v.ID] = true
	}
	return &FocusRegistry{views: append([]View(nil), views...)}, nil
}

// Current returns the focused view.
func (f *FocusRegistry) Current() ViewID {
	return f.views[f.current].ID
}

// Next focuses the following view, wrapping to the first.
func (f *FocusRegistry) Next() ViewID {
	f.current = (f.current + 1) % len(f.views)
	return f.Current()
}

// Previous focuses the preceding view, wrapping to the last.
func (f *FocusRegistry) Previous() ViewID {
	f.current = (f.current - 1 + len(f.views)) % len(f.views)
	return f.Current()
}

// Focus moves focus to id. Unknown views leave focus unchanged.
func (f *FocusRegistry) Focus(id ViewID) bool {
	for i, v := range f.views {
		if v.ID == id {
			f.current = i
			return true
		}
	}
	return false
}

// Handler returns the local handler of id, or nil.
func (f *FocusRegistry) Handler(id ViewID) LocalHandler {
	for _, v := range f.views {
		if v.ID == id {
			return v.Handler
		}
	}
	return nil
}

// Views returns the registered view ids in ring order.
func (f *FocusRegistry) Views() []ViewID {
	ids := make([]ViewID, len(f.views))
	for i, v := range f.views {
		ids[i] = v.ID
	}
	return ids
}
