package tui

import "github.com/wexinc/lazymvn/internal/loop"

// SnapshotMsg carries a copy of the application state after the loop
// processed an event.
type SnapshotMsg struct {
	State *loop.State
}

// QuitMsg signals the TUI should quit.
type QuitMsg struct {
	Reason string
}
