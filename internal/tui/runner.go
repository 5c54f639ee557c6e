package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/lazymvn/internal/logging"
	"github.com/wexinc/lazymvn/internal/loop"
)

// Runner runs the Bubble Tea program alongside the event loop. The program
// forwards keys to the loop and the loop pushes snapshots to the program.
type Runner struct {
	model   *Model
	program *tea.Program
}

// NewRunner creates a runner. programOpts are passed to tea.NewProgram.
func NewRunner(opts Options, programOpts ...tea.ProgramOption) *Runner {
	model := New(opts)
	return &Runner{
		model:   model,
		program: tea.NewProgram(model, programOpts...),
	}
}

// ConfigureLoop makes the loop render through this runner.
func (r *Runner) ConfigureLoop(opts *loop.Options) {
	opts.Renderer = r
}

// Render sends a snapshot to the program. It returns immediately once the
// program has exited.
func (r *Runner) Render(s *loop.State) {
	r.program.Send(SnapshotMsg{State: s})
}

// Run runs l in a goroutine and the TUI on the calling goroutine. It returns
// the loop's final state once both have stopped.
func (r *Runner) Run(ctx context.Context, l *loop.Loop) (*loop.State, error) {
	type outcome struct {
		state *loop.State
		err   error
	}

	r.model.SetPoster(l.Post)
	loopDone := make(chan outcome, 1)
	go func() {
		s, err := l.Run(ctx)
		loopDone <- outcome{state: s, err: err}
		r.program.Send(QuitMsg{Reason: "loop finished"})
	}()

	_, tuiErr := r.program.Run()

	// The program can stop on its own, e.g. when the terminal goes away.
	if l.Post(loop.IntentEvent(loop.Intent{Kind: loop.IntentExit})) {
		logging.Warn("terminal closed before the loop finished")
	}
	res := <-loopDone

	if tuiErr != nil {
		return res.state, tuiErr
	}
	return res.state, res.err
}

// Program returns the tea.Program.
func (r *Runner) Program() *tea.Program {
	return r.program
}

// Model returns the TUI model.
func (r *Runner) Model() *Model {
	return r.model
}
