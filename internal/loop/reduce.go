package loop

import (
	"fmt"
	"strings"

	"github.com/wexinc/lazymvn/internal/logging"
	"github.com/wexinc/lazymvn/internal/pom"
	"github.com/wexinc/lazymvn/internal/registry"
)

// Persister writes an edited dependency list to durable storage.
type Persister interface {
	Save(deps []pom.Dependency) error
}

// Reducer applies intents to State. Given the same intent and state it
// always produces the same new state and effects, apart from the outcome of
// the synchronous save.
type Reducer struct {
	focus     *FocusRegistry
	persister Persister
	match     pom.MatchMode
}

// ReducerOption configures a Reducer.
type ReducerOption func(*Reducer)

// WithMatchMode makes AddCandidate treat dependencies as the same when the
// document would. It should be the mode the persister's document uses.
func WithMatchMode(m pom.MatchMode) ReducerOption {
	return func(r *Reducer) {
		if m.IsValid() {
			r.match = m
		}
	}
}

// NewReducer returns a reducer that cycles focus through focus and saves
// through persister. A nil persister makes SubmitChanges report an error.
func NewReducer(focus *FocusRegistry, persister Persister, opts ...ReducerOption) *Reducer {
	r := &Reducer{focus: focus, persister: persister, match: pom.MatchCoordinates}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce applies intent to s and returns the effects to dispatch.
func (r *Reducer) Reduce(intent Intent, s *State) []Effect {
	switch intent.Kind {
	case IntentExit:
		s.ExitRequested = true

	case IntentEnterInputMode:
		s.Mode = ModeTextInput

	case IntentLeaveInputMode:
		s.Mode = ModeNormal

	case IntentAppendSearchChar:
		s.SearchPhrase += string(intent.Runes)

	case IntentDeleteSearchChar:
		if runes := []rune(s.SearchPhrase); len(runes) > 0 {
			s.SearchPhrase = string(runes[:len(runes)-1])
		}

	case IntentNavigateList:
		r.navigate(intent.Direction, s)

	case IntentDeleteSelected:
		if removed, ok := s.Dependencies.DeleteSelected(); ok {
			s.Dirty = true
			s.Status = "removed " + removed.Key().String()
		}

	case IntentSubmitChanges:
		r.submit(s)

	case IntentTriggerSearch:
		phrase := strings.TrimSpace(intent.Phrase)
		if phrase == "" {
			s.Status = "type a search phrase first"
			return nil
		}
		s.Status = fmt.Sprintf("searching for %q", phrase)
		return []Effect{r.schedule(s, Effect{Kind: EffectSearchRegistry, Phrase: phrase})}

	case IntentFetchVersions:
		if intent.Key.IsZero() {
			return nil
		}
		s.VersionsKey = intent.Key
		s.Versions.Replace(s.VersionCache[intent.Key])
		s.Status = "fetching versions of " + intent.Key.String()
		return []Effect{r.schedule(s, Effect{Kind: EffectFetchVersions, Key: intent.Key})}

	case IntentFocusNext:
		s.Focus = r.focus.Next()

	case IntentFocusPrevious:
		s.Focus = r.focus.Previous()

	case IntentAddCandidate:
		r.addCandidate(s)

	case IntentApplyVersion:
		r.applyVersion(s)

	case IntentEffectResult:
		if intent.Result != nil {
			r.complete(*intent.Result, s)
		}
	}
	return nil
}

func (r *Reducer) navigate(dir Direction, s *State) {
	switch s.Focus {
	case ViewDependencies:
		s.Dependencies.Navigate(dir)
	case ViewSearch:
		s.Results.Navigate(dir)
	case ViewVersions:
		s.Versions.Navigate(dir)
	}
}

func (r *Reducer) schedule(s *State, e Effect) Effect {
	s.seq++
	e.Seq = s.seq
	s.InFlight[e.Kind]++
	logging.Debug("effect scheduled", "kind", e.Kind, "seq", e.Seq)
	return e
}

func (r *Reducer) submit(s *State) {
	if r.persister == nil {
		s.Status = "no document to save to"
		return
	}
	if err := r.persister.Save(s.Dependencies.Items()); err != nil {
		logging.Error("save failed", "error", err)
		s.Status = err.Error()
		return
	}
	s.Dirty = false
	s.Status = fmt.Sprintf("saved %d dependencies", s.Dependencies.Len())
	logging.Info("dependencies saved", "count", s.Dependencies.Len())
}

func (r *Reducer) addCandidate(s *State) {
	c, ok := s.Results.SelectedItem()
	if !ok {
		return
	}
	dep := c.Dependency()
	if i := s.dependencyIndex(c.Key()); i >= 0 {
		s.Dependencies.Select(i)
		s.Status = c.Key().String() + " is already a dependency"
		return
	}
	if i := r.sameIdentity(s, dep); i >= 0 {
		existing, _ := s.Dependencies.At(i)
		s.Dependencies.Select(i)
		s.Status = fmt.Sprintf("%s already covers group %s", existing.Key(), dep.GroupID)
		return
	}
	s.Dependencies.Append(dep)
	s.Dirty = true
	s.Status = "added " + dep.String()
}

// sameIdentity returns the index of a dependency the document would treat
// as dep, or -1.
func (r *Reducer) sameIdentity(s *State, dep pom.Dependency) int {
	id := r.match.Identity(dep)
	for i, d := range s.Dependencies.items {
		if r.match.Identity(d) == id {
			return i
		}
	}
	return -1
}

func (r *Reducer) applyVersion(s *State) {
	v, ok := s.Versions.SelectedItem()
	if !ok || s.VersionsKey.IsZero() {
		return
	}
	i := s.dependencyIndex(s.VersionsKey)
	if sel, ok := s.Dependencies.Selected(); ok {
		if d, _ := s.Dependencies.At(sel); d.Key() == s.VersionsKey {
			i = sel
		}
	}
	if i < 0 {
		s.Status = s.VersionsKey.String() + " is not a dependency"
		return
	}
	dep, _ := s.Dependencies.At(i)
	if dep.Version == v.Version {
		return
	}
	dep.Version = v.Version
	s.Dependencies.Set(i, dep)
	s.Dependencies.Select(i)
	s.Dirty = true
	s.Status = "pinned " + dep.String()
}

func (r *Reducer) complete(o Outcome, s *State) {
	if s.InFlight[o.Effect.Kind] > 0 {
		s.InFlight[o.Effect.Kind]--
	}
	switch o.Kind {
	case OutcomeSearchCompleted:
		s.Results.Replace(o.Candidates)
		s.LastFailure = ""
		s.Status = fmt.Sprintf("%d results", len(o.Candidates))

	case OutcomeVersionsCompleted:
		s.VersionCache[o.Key] = append([]registry.Version(nil), o.Versions...)
		if o.Key == s.VersionsKey {
			s.Versions.Replace(o.Versions)
		}
		s.LastFailure = ""
		s.Status = fmt.Sprintf("%d versions of %s", len(o.Versions), o.Key)

	case OutcomeFailed:
		s.LastFailure = fmt.Sprintf("%s failed: %s", o.Effect.Kind, o.Reason)
		s.Status = s.LastFailure
	}
}
