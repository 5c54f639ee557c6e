package loop

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/lazymvn/internal/pom"
	"github.com/wexinc/lazymvn/internal/registry"
)

// IntentKind identifies a semantic request.
type IntentKind string

const (
	IntentExit             IntentKind = "exit"
	IntentEnterInputMode   IntentKind = "enter_input_mode"
	IntentLeaveInputMode   IntentKind = "leave_input_mode"
	IntentAppendSearchChar IntentKind = "append_search_char"
	IntentDeleteSearchChar IntentKind = "delete_search_char"
	IntentNavigateList     IntentKind = "navigate_list"
	IntentDeleteSelected   IntentKind = "delete_selected"
	IntentSubmitChanges    IntentKind = "submit_changes"
	IntentTriggerSearch    IntentKind = "trigger_search"
	IntentFetchVersions    IntentKind = "fetch_versions"
	IntentFocusNext        IntentKind = "focus_next"
	IntentFocusPrevious    IntentKind = "focus_previous"
	IntentAddCandidate     IntentKind = "add_candidate"
	IntentApplyVersion     IntentKind = "apply_version"
	IntentEffectResult     IntentKind = "effect_result"
)

// Intent is a request to change state. Only the fields relevant to Kind are
// set.
type Intent struct {
	Kind      IntentKind
	Runes     []rune
	Direction Direction
	Phrase    string
	Key       pom.Key
	Result    *Outcome
}

// EffectKind identifies an asynchronous operation.
type EffectKind string

const (
	EffectSearchRegistry EffectKind = "search"
	EffectFetchVersions  EffectKind = "versions"
)

// String returns the string representation of the kind.
func (k EffectKind) String() string {
	return string(k)
}

// Effect is a request for asynchronous work produced by the reducer.
type Effect struct {
	Kind   EffectKind
	Seq    uint64
	Phrase string
	Key    pom.Key
}

// OutcomeKind identifies how an effect finished.
type OutcomeKind string

const (
	OutcomeSearchCompleted   OutcomeKind = "search_completed"
	OutcomeVersionsCompleted OutcomeKind = "versions_completed"
	OutcomeFailed            OutcomeKind = "failed"
)

// Outcome is the single result of an executed effect.
type Outcome struct {
	Kind       OutcomeKind
	Effect     Effect
	Candidates []registry.Candidate
	Key        pom.Key
	Versions   []registry.Version
	Reason     string
}

// EventKind identifies what arrived on the inbound channel.
type EventKind string

const (
	EventInput        EventKind = "input"
	EventIntent       EventKind = "intent"
	EventEffectResult EventKind = "effect_result"
)

// Event is anything the loop consumes.
type Event struct {
	Kind   EventKind
	Key    tea.KeyMsg
	Intent Intent
	Result Outcome
}

// InputEvent wraps a key press.
func InputEvent(msg tea.KeyMsg) Event {
	return Event{Kind: EventInput, Key: msg}
}

// IntentEvent wraps an intent that bypasses translation.
func IntentEvent(intent Intent) Event {
	return Event{Kind: EventIntent, Intent: intent}
}

// ResultEvent wraps an effect outcome.
func ResultEvent(o Outcome) Event {
	return Event{Kind: EventEffectResult, Result: o}
}
