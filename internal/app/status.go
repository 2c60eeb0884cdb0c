package app

import (
	"fmt"
	"sync"

	"github.com/dshills/holdrec/internal/input/gesture"
	"github.com/dshills/holdrec/internal/recorder"
)

// StatusView keeps the text shown by the terminal front end.
type StatusView struct {
	mu sync.Mutex

	last    recorder.Transition
	seen    bool
	message string
	stats   func() recorder.Stats
}

// NewStatusView creates a view. stats may be nil.
func NewStatusView(stats func() recorder.Stats) *StatusView {
	return &StatusView{stats: stats}
}

// OnTransition implements recorder.Listener.
func (v *StatusView) OnTransition(t recorder.Transition) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.last = t
	v.seen = true
}

// SetMessage shows a one-line notice below the state.
func (v *StatusView) SetMessage(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.message = fmt.Sprintf(format, args...)
}

// Lines renders the view.
func (v *StatusView) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	lines := []string{
		"Press and hold to record. Slide sideways to cancel, up to lock.",
		"",
	}

	if !v.seen {
		lines = append(lines, "state: idle")
	} else {
		state := fmt.Sprintf("state: %s", gesture.Name(v.last.To))
		if d := gesture.Distance(v.last.To); d != 0 {
			state += fmt.Sprintf("  distance: %.0fpx", d)
		}
		lines = append(lines, state, "session: "+shortSession(v.last.SessionID))
	}

	if v.stats != nil {
		s := v.stats()
		lines = append(lines, fmt.Sprintf("sent: %d  cancelled: %d  hands-free: %d", s.Sent, s.Cancelled, s.Locked))
	}
	if v.message != "" {
		lines = append(lines, "", v.message)
	}

	lines = append(lines, "", "s: stop hands-free recording   q: quit")
	return lines
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
