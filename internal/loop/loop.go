package loop

import (
	"context"
	"sync"

	"github.com/wexinc/lazymvn/internal/logging"
)

// DefaultBuffer is the capacity of the inbound channel.
const DefaultBuffer = 64

// Renderer draws a state snapshot. It must not retain references it intends
// to mutate.
type Renderer interface {
	Render(s *State)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(s *State)

// Render calls f(s).
func (f RenderFunc) Render(s *State) { f(s) }

// Options configures a Loop.
type Options struct {
	// Buffer is the inbound channel capacity (default DefaultBuffer).
	Buffer int
	// Renderer receives a snapshot after every processed event (optional).
	Renderer Renderer
}

// Loop is the single consumer of input and effect results. It owns State
// and processes one event at a time in arrival order.
type Loop struct {
	state      *State
	translator *Translator
	reducer    *Reducer
	dispatcher Dispatcher
	renderer   Renderer

	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop over state. opts may be nil.
func NewLoop(state *State, translator *Translator, reducer *Reducer, dispatcher Dispatcher, opts *Options) *Loop {
	if opts == nil {
		opts = &Options{}
	}
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Loop{
		state:      state,
		translator: translator,
		reducer:    reducer,
		dispatcher: dispatcher,
		renderer:   opts.Renderer,
		events:     make(chan Event, buffer),
		done:       make(chan struct{}),
	}
}

// Post enqueues ev. It is safe from any goroutine and returns false without
// blocking once the loop has stopped.
func (l *Loop) Post(ev Event) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- ev:
		return true
	case <-l.done:
		return false
	}
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run processes events until exit is requested or ctx is done. It returns
// the final state; the error is ctx.Err() when ctx ended the loop.
func (l *Loop) Run(ctx context.Context) (*State, error) {
	defer l.stop()
	logging.Info("event loop started", "dependencies", l.state.Dependencies.Len())
	l.render()

	for {
		select {
		case <-ctx.Done():
			logging.Info("event loop cancelled")
			return l.state, ctx.Err()
		case ev := <-l.events:
			l.handle(ev)
			l.render()
			if l.state.ExitRequested {
				logging.Info("event loop finished", "dirty", l.state.Dirty)
				return l.state, nil
			}
		}
	}
}

// Step processes a single event synchronously. It exists for callers that
// drive the loop themselves, such as tests.
func (l *Loop) Step(ev Event) {
	l.handle(ev)
}

// State returns the live state. Only safe to read when Run is not active.
func (l *Loop) State() *State {
	return l.state
}

func (l *Loop) handle(ev Event) {
	if l.state.ExitRequested {
		return
	}

	var intent Intent
	switch ev.Kind {
	case EventInput:
		var ok bool
		intent, ok = l.translator.Translate(ev.Key, l.state.Context())
		if !ok {
			return
		}
	case EventIntent:
		intent = ev.Intent
	case EventEffectResult:
		result := ev.Result
		intent = Intent{Kind: IntentEffectResult, Result: &result}
	default:
		return
	}

	logging.Debug("intent", "kind", intent.Kind, "mode", l.state.Mode, "focus", l.state.Focus)
	effects := l.reducer.Reduce(intent, l.state)
	if l.state.ExitRequested || l.dispatcher == nil {
		return
	}
	for _, e := range effects {
		l.dispatcher.Dispatch(e, l.Post)
	}
}

func (l *Loop) render() {
	if l.renderer != nil {
		l.renderer.Render(l.state.Snapshot())
	}
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() { close(l.done) })
}
