// Package loop implements the editor's event loop: raw keys are translated
// into intents, a reducer applies intents to the application state and
// requests effects, and an orchestrator runs effects concurrently and feeds
// their results back into the same inbound channel.
package loop

import (
	"github.com/wexinc/lazymvn/internal/pom"
	"github.com/wexinc/lazymvn/internal/registry"
)

// Mode decides how keys are interpreted.
type Mode string

const (
	// ModeNormal maps keys to commands.
	ModeNormal Mode = "normal"
	// ModeTextInput sends printable keys to the search phrase.
	ModeTextInput Mode = "text_input"
)

// IsValid returns true if the mode is known.
func (m Mode) IsValid() bool {
	return m == ModeNormal || m == ModeTextInput
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// State is the complete application state. Only the Reducer writes it.
type State struct {
	Mode         Mode
	Focus        ViewID
	SearchPhrase string

	Dependencies List[pom.Dependency]
	Results      List[registry.Candidate]

	// VersionCache holds the last version listing received per artifact.
	VersionCache map[pom.Key][]registry.Version
	// Versions is the listing shown for VersionsKey.
	Versions    List[registry.Version]
	VersionsKey pom.Key

	InFlight map[EffectKind]int

	Status      string
	LastFailure string

	// Dirty is set when the dependency list differs from the last save.
	Dirty         bool
	ExitRequested bool

	// seq numbers effects in dispatch order.
	seq uint64
}

// NewState returns the initial state for a loaded dependency list. Entries
// are kept as listed, including variants that share coordinates, so saving
// an unedited list leaves the file as it was.
func NewState(deps []pom.Dependency, focus ViewID) *State {
	return &State{
		Mode:         ModeNormal,
		Focus:        focus,
		Dependencies: NewList(append([]pom.Dependency(nil), deps...)),
		Results:      NewList[registry.Candidate](nil),
		Versions:     NewList[registry.Version](nil),
		VersionCache: make(map[pom.Key][]registry.Version),
		InFlight:     make(map[EffectKind]int),
	}
}

// Busy returns true while any effect is outstanding.
func (s *State) Busy() bool {
	for _, n := range s.InFlight {
		if n > 0 {
			return true
		}
	}
	return false
}

// Context returns the read-only view of the state the translator needs.
func (s *State) Context() Context {
	ctx := Context{
		Mode:         s.Mode,
		Focused:      s.Focus,
		SearchPhrase: s.SearchPhrase,
	}
	switch s.Focus {
	case ViewDependencies:
		if d, ok := s.Dependencies.SelectedItem(); ok {
			ctx.Selected, ctx.HasSelection = d.Key(), true
		}
	case ViewSearch:
		if c, ok := s.Results.SelectedItem(); ok {
			ctx.Selected, ctx.HasSelection = c.Key(), true
		}
	case ViewVersions:
		if !s.VersionsKey.IsZero() {
			ctx.Selected, ctx.HasSelection = s.VersionsKey, true
		}
	}
	return ctx
}

// Snapshot returns a deep copy that shares no mutable memory with s.
func (s *State) Snapshot() *State {
	out := *s
	out.Dependencies = s.Dependencies.clone()
	out.Results = s.Results.clone()
	out.Versions = s.Versions.clone()
	out.VersionCache = make(map[pom.Key][]registry.Version, len(s.VersionCache))
	for k, v := range s.VersionCache {
		out.VersionCache[k] = append([]registry.Version(nil), v...)
	}
	out.InFlight = make(map[EffectKind]int, len(s.InFlight))
	for k, v := range s.InFlight {
		out.InFlight[k] = v
	}
	return &out
}

// dependencyIndex returns the position of the dependency with key k.
func (s *State) dependencyIndex(k pom.Key) int {
	for i, d := range s.Dependencies.items {
		if d.Key() == k {
			return i
		}
	}
	return -1
}
