package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	errs "github.com/wexinc/lazymvn/internal/errors"
	"github.com/wexinc/lazymvn/internal/logging"
	"github.com/wexinc/lazymvn/internal/registry"
)

// Dispatcher runs effects and posts their outcome.
type Dispatcher interface {
	Dispatch(e Effect, post func(Event) bool)
}

// Orchestrator executes effects against a registry, each on its own
// goroutine. Results are delivered in completion order; there is no retry,
// deduplication or cancellation.
type Orchestrator struct {
	registry registry.Searcher
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewOrchestrator returns an orchestrator bounding every effect by timeout.
// A zero timeout means no bound.
func NewOrchestrator(r registry.Searcher, timeout time.Duration) *Orchestrator {
	return &Orchestrator{registry: r, timeout: timeout}
}

// Dispatch starts e in the background and posts exactly one result event.
func (o *Orchestrator) Dispatch(e Effect, post func(Event) bool) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ctx := context.Background()
		if o.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, o.timeout)
			defer cancel()
		}
		if !post(o.Execute(ctx, e)) {
			logging.Debug("effect result discarded", "kind", e.Kind, "seq", e.Seq)
		}
	}()
}

// Wait blocks until every dispatched effect has posted its result.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Execute performs e synchronously and converts the outcome into an event.
// Errors and panics become failure outcomes.
func (o *Orchestrator) Execute(ctx context.Context, e Effect) (ev Event) {
	ctx = logging.WithEffect(ctx, string(e.Kind), e.Seq)
	log := logging.Global().WithContext(ctx)
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			log.Error("effect panicked", "panic", p)
			ev = ResultEvent(Outcome{Kind: OutcomeFailed, Effect: e, Reason: fmt.Sprint(p)})
		}
	}()

	var (
		out Outcome
		err error
	)
	switch e.Kind {
	case EffectSearchRegistry:
		out = Outcome{Kind: OutcomeSearchCompleted, Effect: e}
		out.Candidates, err = o.registry.Search(ctx, e.Phrase)
	case EffectFetchVersions:
		out = Outcome{Kind: OutcomeVersionsCompleted, Effect: e, Key: e.Key}
		out.Versions, err = o.registry.Versions(ctx, e.Key)
	default:
		err = fmt.Errorf("unknown effect %q", e.Kind)
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = errs.RequestTimeout(string(e.Kind), o.timeout)
		}
		log.Warn("effect failed", "error", err, "duration", time.Since(start))
		return ResultEvent(Outcome{Kind: OutcomeFailed, Effect: e, Reason: err.Error()})
	}
	log.Debug("effect completed", "duration", time.Since(start))
	return ResultEvent(out)
}
