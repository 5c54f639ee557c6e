package loop

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/wexinc/lazymvn/internal/pom"
	"github.com/wexinc/lazymvn/internal/registry"
)

type fakePersister struct {
	saved [][]pom.Dependency
	err   error
}

func (p *fakePersister) Save(deps []pom.Dependency) error {
	if p.err != nil {
		return p.err
	}
	p.saved = append(p.saved, deps)
	return nil
}

var (
	junit = pom.Dependency{GroupID: "junit", ArtifactID: "junit", Version: "4.13.2"}
	guava = pom.Dependency{GroupID: "com.google.guava", ArtifactID: "guava", Version: "32.0.0-jre"}
	slf4j = pom.Dependency{GroupID: "org.slf4j", ArtifactID: "slf4j-api", Version: "2.0.9"}
)

func newTestReducer(t *testing.T, p Persister, opts ...ReducerOption) *Reducer {
	t.Helper()
	f, err := NewFocusRegistry(DefaultViews(DefaultKeyMap())...)
	if err != nil {
		t.Fatalf("NewFocusRegistry() error = %v", err)
	}
	return NewReducer(f, p, opts...)
}

func kafkaResults() []registry.Candidate {
	return []registry.Candidate{
		{ID: "org.apache.kafka:kafka-clients", GroupID: "org.apache.kafka", ArtifactID: "kafka-clients", LatestVersion: "3.7.0"},
		{ID: "org.apache.kafka:kafka-streams", GroupID: "org.apache.kafka", ArtifactID: "kafka-streams", LatestVersion: "3.7.0"},
		{ID: "org.apache.kafka:kafka_2.13", GroupID: "org.apache.kafka", ArtifactID: "kafka_2.13", LatestVersion: "3.7.0"},
	}
}

func TestNewState_KeepsSharedCoordinates(t *testing.T) {
	testJar := junit
	testJar.Version = "4.12"
	testJar.Classifier = "tests"
	deps := []pom.Dependency{junit, guava, testJar}
	s := NewState(deps, ViewDependencies)
	if got := s.Dependencies.Items(); !reflect.DeepEqual(got, []pom.Dependency{junit, guava, testJar}) {
		t.Errorf("Dependencies = %v", got)
	}
	if s.Mode != ModeNormal {
		t.Errorf("Mode = %v", s.Mode)
	}
}

func TestReduce_SearchScenario(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState(nil, ViewDependencies)

	effects := r.Reduce(Intent{Kind: IntentTriggerSearch, Phrase: "kafka"}, s)
	if len(effects) != 1 {
		t.Fatalf("got %d effects, want 1", len(effects))
	}
	e := effects[0]
	if e.Kind != EffectSearchRegistry || e.Phrase != "kafka" || e.Seq != 1 {
		t.Errorf("effect = %+v", e)
	}
	if s.InFlight[EffectSearchRegistry] != 1 || !s.Busy() {
		t.Errorf("InFlight = %v", s.InFlight)
	}

	more := r.Reduce(Intent{Kind: IntentEffectResult, Result: &Outcome{
		Kind: OutcomeSearchCompleted, Effect: e, Candidates: kafkaResults(),
	}}, s)
	if len(more) != 0 {
		t.Errorf("completion produced effects: %v", more)
	}
	if s.Results.Len() != 3 {
		t.Errorf("Results.Len() = %d, want 3", s.Results.Len())
	}
	if i, ok := s.Results.Selected(); !ok || i != 0 {
		t.Errorf("Results.Selected() = %d, %v, want 0", i, ok)
	}
	if s.Busy() {
		t.Error("state still busy after completion")
	}
}

func TestReduce_SearchCompletedEmpty(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState(nil, ViewSearch)
	s.Results.Replace(kafkaResults())

	r.Reduce(Intent{Kind: IntentEffectResult, Result: &Outcome{Kind: OutcomeSearchCompleted}}, s)
	if s.Results.Len() != 0 {
		t.Errorf("Results.Len() = %d", s.Results.Len())
	}
	if _, ok := s.Results.Selected(); ok {
		t.Error("empty results kept a selection")
	}
}

func TestReduce_BlankSearch(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState(nil, ViewDependencies)
	if effects := r.Reduce(Intent{Kind: IntentTriggerSearch, Phrase: "   "}, s); len(effects) != 0 {
		t.Errorf("blank phrase scheduled %v", effects)
	}
}

func TestReduce_SequenceNumbers(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState([]pom.Dependency{junit}, ViewDependencies)

	a := r.Reduce(Intent{Kind: IntentTriggerSearch, Phrase: "a"}, s)[0]
	b := r.Reduce(Intent{Kind: IntentFetchVersions, Key: junit.Key()}, s)[0]
	c := r.Reduce(Intent{Kind: IntentTriggerSearch, Phrase: "c"}, s)[0]
	if a.Seq >= b.Seq || b.Seq >= c.Seq {
		t.Errorf("sequence not increasing: %d %d %d", a.Seq, b.Seq, c.Seq)
	}
	if s.InFlight[EffectSearchRegistry] != 2 || s.InFlight[EffectFetchVersions] != 1 {
		t.Errorf("InFlight = %v", s.InFlight)
	}
}

func TestReduce_Failed(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState([]pom.Dependency{junit}, ViewDependencies)
	e := r.Reduce(Intent{Kind: IntentTriggerSearch, Phrase: "kafka"}, s)[0]
	before := s.Dependencies.Items()

	r.Reduce(Intent{Kind: IntentEffectResult, Result: &Outcome{Kind: OutcomeFailed, Effect: e, Reason: "timeout"}}, s)

	if s.LastFailure != "search failed: timeout" {
		t.Errorf("LastFailure = %q", s.LastFailure)
	}
	if !reflect.DeepEqual(s.Dependencies.Items(), before) {
		t.Error("failure changed dependencies")
	}
	if s.InFlight[EffectSearchRegistry] != 0 {
		t.Errorf("InFlight = %v", s.InFlight)
	}
}

func TestReduce_TextEditing(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState(nil, ViewSearch)

	r.Reduce(Intent{Kind: IntentEnterInputMode}, s)
	if s.Mode != ModeTextInput {
		t.Fatalf("Mode = %v", s.Mode)
	}
	r.Reduce(Intent{Kind: IntentAppendSearchChar, Runes: []rune("kafké")}, s)
	r.Reduce(Intent{Kind: IntentDeleteSearchChar}, s)
	if s.SearchPhrase != "kafk" {
		t.Errorf("SearchPhrase = %q", s.SearchPhrase)
	}
	s.SearchPhrase = ""
	r.Reduce(Intent{Kind: IntentDeleteSearchChar}, s)
	if s.SearchPhrase != "" {
		t.Errorf("SearchPhrase = %q", s.SearchPhrase)
	}
	r.Reduce(Intent{Kind: IntentLeaveInputMode}, s)
	if s.Mode != ModeNormal {
		t.Errorf("Mode = %v", s.Mode)
	}
}

func TestReduce_NavigateFollowsFocus(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState([]pom.Dependency{junit, guava}, ViewDependencies)
	s.Results.Replace(kafkaResults())

	r.Reduce(Intent{Kind: IntentNavigateList, Direction: DirectionNext}, s)
	if i, _ := s.Dependencies.Selected(); i != 1 {
		t.Errorf("dependencies cursor = %d", i)
	}
	r.Reduce(Intent{Kind: IntentFocusNext}, s)
	if s.Focus != ViewSearch {
		t.Fatalf("Focus = %v", s.Focus)
	}
	r.Reduce(Intent{Kind: IntentNavigateList, Direction: DirectionNext}, s)
	if i, _ := s.Results.Selected(); i != 1 {
		t.Errorf("results cursor = %d", i)
	}
	if i, _ := s.Dependencies.Selected(); i != 1 {
		t.Errorf("dependencies cursor moved to %d", i)
	}
	r.Reduce(Intent{Kind: IntentFocusPrevious}, s)
	if s.Focus != ViewDependencies {
		t.Errorf("Focus = %v", s.Focus)
	}
}

func TestReduce_DeleteSelected(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState([]pom.Dependency{junit, guava, slf4j}, ViewDependencies)
	s.Dependencies.Select(2)

	r.Reduce(Intent{Kind: IntentDeleteSelected}, s)
	if got := s.Dependencies.Items(); !reflect.DeepEqual(got, []pom.Dependency{junit, guava}) {
		t.Errorf("Dependencies = %v", got)
	}
	if i, _ := s.Dependencies.Selected(); i != 1 {
		t.Errorf("cursor = %d, want 1", i)
	}
	if !s.Dirty {
		t.Error("delete did not mark state dirty")
	}
}

func TestReduce_SubmitChanges(t *testing.T) {
	p := &fakePersister{}
	r := newTestReducer(t, p)
	s := NewState([]pom.Dependency{junit, guava}, ViewDependencies)
	r.Reduce(Intent{Kind: IntentDeleteSelected}, s)

	r.Reduce(Intent{Kind: IntentSubmitChanges}, s)
	if len(p.saved) != 1 || !reflect.DeepEqual(p.saved[0], []pom.Dependency{guava}) {
		t.Fatalf("saved = %v", p.saved)
	}
	if s.Dirty {
		t.Error("successful save left state dirty")
	}
}

func TestReduce_SubmitChangesFailure(t *testing.T) {
	p := &fakePersister{err: errors.New("disk full")}
	r := newTestReducer(t, p)
	s := NewState([]pom.Dependency{junit, guava}, ViewDependencies)
	r.Reduce(Intent{Kind: IntentDeleteSelected}, s)

	r.Reduce(Intent{Kind: IntentSubmitChanges}, s)
	if !strings.Contains(s.Status, "disk full") {
		t.Errorf("Status = %q", s.Status)
	}
	if got := s.Dependencies.Items(); !reflect.DeepEqual(got, []pom.Dependency{guava}) {
		t.Errorf("edit lost after failed save: %v", got)
	}
	if !s.Dirty {
		t.Error("failed save cleared dirty")
	}
}

func TestReduce_SubmitWithoutPersister(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState([]pom.Dependency{junit}, ViewDependencies)
	r.Reduce(Intent{Kind: IntentSubmitChanges}, s)
	if s.Status == "" {
		t.Error("expected a status message")
	}
}

func TestReduce_AddCandidate(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState([]pom.Dependency{junit}, ViewSearch)
	s.Results.Replace(kafkaResults())
	s.Results.Select(1)

	r.Reduce(Intent{Kind: IntentAddCandidate}, s)
	want := pom.Dependency{GroupID: "org.apache.kafka", ArtifactID: "kafka-streams", Version: "3.7.0"}
	if got := s.Dependencies.Items(); !reflect.DeepEqual(got, []pom.Dependency{junit, want}) {
		t.Fatalf("Dependencies = %v", got)
	}
	if !s.Dirty {
		t.Error("add did not mark state dirty")
	}

	r.Reduce(Intent{Kind: IntentAddCandidate}, s)
	if s.Dependencies.Len() != 2 {
		t.Errorf("duplicate added: %v", s.Dependencies.Items())
	}
}

func TestReduce_AddCandidateMatchGroup(t *testing.T) {
	clients := pom.Dependency{GroupID: "org.apache.kafka", ArtifactID: "kafka-clients", Version: "3.6.0"}

	tests := []struct {
		mode    pom.MatchMode
		wantLen int
		status  string
	}{
		{mode: pom.MatchGroup, wantLen: 1, status: "org.apache.kafka:kafka-clients already covers group org.apache.kafka"},
		{mode: pom.MatchCoordinates, wantLen: 2, status: "added org.apache.kafka:kafka-streams:3.7.0"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r := newTestReducer(t, nil, WithMatchMode(tt.mode))
			s := NewState([]pom.Dependency{clients}, ViewSearch)
			s.Results.Replace(kafkaResults())
			s.Results.Select(1)

			r.Reduce(Intent{Kind: IntentAddCandidate}, s)
			if s.Dependencies.Len() != tt.wantLen {
				t.Errorf("Dependencies = %v, want %d entries", s.Dependencies.Items(), tt.wantLen)
			}
			if s.Status != tt.status {
				t.Errorf("Status = %q, want %q", s.Status, tt.status)
			}
			if s.Dirty != (tt.wantLen == 2) {
				t.Errorf("Dirty = %v", s.Dirty)
			}
		})
	}
}

func TestReduce_ApplyVersionToSelectedVariant(t *testing.T) {
	r := newTestReducer(t, nil)
	testJar := junit
	testJar.Classifier = "tests"
	s := NewState([]pom.Dependency{junit, testJar}, ViewDependencies)
	s.Dependencies.Select(1)
	s.VersionsKey = junit.Key()
	s.Versions.Replace([]registry.Version{{Version: "4.13.3"}})

	r.Reduce(Intent{Kind: IntentApplyVersion}, s)
	got := s.Dependencies.Items()
	if got[0].Version != "4.13.2" || got[1].Version != "4.13.3" {
		t.Errorf("Dependencies = %v, want only the selected variant bumped", got)
	}
}

func TestReduce_FetchAndApplyVersion(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState([]pom.Dependency{junit, guava}, ViewDependencies)
	key := guava.Key()

	effects := r.Reduce(Intent{Kind: IntentFetchVersions, Key: key}, s)
	if len(effects) != 1 || effects[0].Kind != EffectFetchVersions || effects[0].Key != key {
		t.Fatalf("effects = %+v", effects)
	}
	if s.VersionsKey != key {
		t.Errorf("VersionsKey = %v", s.VersionsKey)
	}

	versions := []registry.Version{{Version: "33.2.0-jre"}, {Version: "33.1.0-jre"}}
	r.Reduce(Intent{Kind: IntentEffectResult, Result: &Outcome{
		Kind: OutcomeVersionsCompleted, Effect: effects[0], Key: key, Versions: versions,
	}}, s)
	if !reflect.DeepEqual(s.VersionCache[key], versions) {
		t.Errorf("VersionCache = %v", s.VersionCache)
	}
	if s.Versions.Len() != 2 {
		t.Fatalf("Versions.Len() = %d", s.Versions.Len())
	}

	s.Focus = ViewVersions
	s.Versions.Select(1)
	r.Reduce(Intent{Kind: IntentApplyVersion}, s)
	dep, _ := s.Dependencies.At(1)
	if dep.Version != "33.1.0-jre" {
		t.Errorf("version = %q", dep.Version)
	}
	if !s.Dirty {
		t.Error("apply did not mark state dirty")
	}
}

func TestReduce_VersionsCompletedOverwritesCache(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState([]pom.Dependency{guava}, ViewDependencies)
	key := guava.Key()
	s.VersionCache[key] = []registry.Version{{Version: "old"}}

	// A listing for another artifact updates the cache but not the pane.
	other := junit.Key()
	s.VersionsKey = key
	r.Reduce(Intent{Kind: IntentEffectResult, Result: &Outcome{
		Kind: OutcomeVersionsCompleted, Key: other, Versions: []registry.Version{{Version: "4.13.2"}},
	}}, s)
	if s.Versions.Len() != 0 {
		t.Errorf("pane shows %v for another key", s.Versions.Items())
	}

	r.Reduce(Intent{Kind: IntentEffectResult, Result: &Outcome{
		Kind: OutcomeVersionsCompleted, Key: key, Versions: []registry.Version{{Version: "new"}},
	}}, s)
	if got := s.VersionCache[key]; len(got) != 1 || got[0].Version != "new" {
		t.Errorf("VersionCache[%v] = %v", key, got)
	}
	if len(s.VersionCache[other]) != 1 {
		t.Errorf("VersionCache[%v] = %v", other, s.VersionCache[other])
	}
}

func TestReduce_FetchVersionsUsesCache(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState([]pom.Dependency{guava}, ViewDependencies)
	key := guava.Key()
	s.VersionCache[key] = []registry.Version{{Version: "cached"}}

	effects := r.Reduce(Intent{Kind: IntentFetchVersions, Key: key}, s)
	if len(effects) != 1 {
		t.Errorf("cached key should still refresh, got %d effects", len(effects))
	}
	if v, _ := s.Versions.SelectedItem(); v.Version != "cached" {
		t.Errorf("pane = %v, want cached listing", s.Versions.Items())
	}
}

func TestReduce_Exit(t *testing.T) {
	r := newTestReducer(t, nil)
	s := NewState(nil, ViewDependencies)
	r.Reduce(Intent{Kind: IntentExit}, s)
	if !s.ExitRequested {
		t.Error("ExitRequested not set")
	}
}

func TestReduce_Deterministic(t *testing.T) {
	intents := []Intent{
		{Kind: IntentNavigateList, Direction: DirectionNext},
		{Kind: IntentDeleteSelected},
		{Kind: IntentTriggerSearch, Phrase: "kafka"},
		{Kind: IntentFocusNext},
		{Kind: IntentFetchVersions, Key: junit.Key()},
	}
	run := func() (*State, []Effect) {
		r := newTestReducer(t, nil)
		s := NewState([]pom.Dependency{junit, guava, slf4j}, ViewDependencies)
		var all []Effect
		for _, in := range intents {
			all = append(all, r.Reduce(in, s)...)
		}
		return s, all
	}
	s1, e1 := run()
	s2, e2 := run()
	if !reflect.DeepEqual(s1, s2) || !reflect.DeepEqual(e1, e2) {
		t.Error("same intents on same state diverged")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewState([]pom.Dependency{junit, guava}, ViewDependencies)
	s.VersionCache[guava.Key()] = []registry.Version{{Version: "1"}}
	s.InFlight[EffectSearchRegistry] = 1

	snap := s.Snapshot()
	s.Dependencies.DeleteSelected()
	s.VersionCache[guava.Key()][0].Version = "2"
	s.InFlight[EffectSearchRegistry] = 0

	if snap.Dependencies.Len() != 2 {
		t.Errorf("snapshot dependencies = %v", snap.Dependencies.Items())
	}
	if snap.VersionCache[guava.Key()][0].Version != "1" {
		t.Error("snapshot cache shares memory with state")
	}
	if snap.InFlight[EffectSearchRegistry] != 1 {
		t.Error("snapshot in-flight shares memory with state")
	}
}

func TestStateContext(t *testing.T) {
	s := NewState([]pom.Dependency{junit}, ViewDependencies)
	s.SearchPhrase = "kafka"
	ctx := s.Context()
	if !ctx.HasSelection || ctx.Selected != junit.Key() || ctx.SearchPhrase != "kafka" {
		t.Errorf("Context() = %+v", ctx)
	}

	s.Focus = ViewSearch
	if s.Context().HasSelection {
		t.Error("search view with no results reports a selection")
	}
	s.Focus = ViewVersions
	s.VersionsKey = junit.Key()
	if ctx := s.Context(); !ctx.HasSelection || ctx.Selected != junit.Key() {
		t.Errorf("versions Context() = %+v", ctx)
	}
}
