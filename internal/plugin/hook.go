package plugin

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/holdrec/internal/input/gesture"
	"github.com/dshills/holdrec/internal/recorder"
)

// DefaultTimeout bounds a single on_transition call.
const DefaultTimeout = 250 * time.Millisecond

const handlerName = "on_transition"

// Hook calls a Lua on_transition function for every recorder transition.
// gopher-lua states are not goroutine-safe; calls are serialized.
type Hook struct {
	mu sync.Mutex

	L       *lua.LState
	name    string
	timeout time.Duration

	output  func(string)
	onError func(error)

	errors  int64
	lastErr error
	closed  bool
}

// HookOption configures a Hook.
type HookOption func(*Hook)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) HookOption {
	return func(h *Hook) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithOutput redirects the script's print calls.
func WithOutput(fn func(line string)) HookOption {
	return func(h *Hook) {
		h.output = fn
	}
}

// WithErrorHandler receives script errors.
func WithErrorHandler(fn func(err error)) HookOption {
	return func(h *Hook) {
		h.onError = fn
	}
}

// NewHook loads the script at path.
func NewHook(path string, opts ...HookOption) (*Hook, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hook script: %w", err)
	}
	return newHook(path, string(src), opts...)
}

// NewHookFromString loads a script from source.
func NewHookFromString(src string, opts ...HookOption) (*Hook, error) {
	return newHook("<string>", src, opts...)
}

func newHook(name, src string, opts ...HookOption) (*Hook, error) {
	h := &Hook{
		name:    name,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.L = newSandboxedState(h.output)

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	h.L.SetContext(ctx)
	err := h.L.DoString(src)
	h.L.RemoveContext()
	if err != nil {
		h.L.Close()
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	if h.L.GetGlobal(handlerName).Type() != lua.LTFunction {
		h.L.Close()
		return nil, fmt.Errorf("loading %s: %w", name, ErrNoHandler)
	}
	return h, nil
}

// Name returns the script path.
func (h *Hook) Name() string {
	return h.name
}

// OnTransition implements recorder.Listener.
func (h *Hook) OnTransition(t recorder.Transition) {
	if err := h.Fire(t); err != nil && err != ErrHookClosed {
		h.mu.Lock()
		h.errors++
		h.lastErr = err
		onError := h.onError
		h.mu.Unlock()

		if onError != nil {
			onError(err)
		}
	}
}

// Fire calls on_transition with t and returns the script error, if any.
func (h *Hook) Fire(t recorder.Transition) (err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHookClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	h.L.SetContext(ctx)
	defer h.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	top := h.L.GetTop()
	defer h.L.SetTop(top)

	if err := h.L.CallByParam(lua.P{
		Fn:      h.L.GetGlobal(handlerName),
		NRet:    0,
		Protect: true,
	}, h.transitionTable(t)); err != nil {
		return fmt.Errorf("%s: %s: %w", h.name, handlerName, err)
	}
	return nil
}

// transitionTable converts t to a Lua table.
func (h *Hook) transitionTable(t recorder.Transition) *lua.LTable {
	tbl := h.L.NewTable()
	tbl.RawSetString("session", lua.LString(t.SessionID))
	tbl.RawSetString("from", lua.LString(gesture.Name(t.From)))
	tbl.RawSetString("to", lua.LString(gesture.Name(t.To)))
	tbl.RawSetString("x", lua.LNumber(t.Point.X))
	tbl.RawSetString("y", lua.LNumber(t.Point.Y))
	tbl.RawSetString("distance", lua.LNumber(gesture.Distance(t.To)))
	tbl.RawSetString("final", lua.LBool(t.Final()))
	if !t.Time.IsZero() {
		tbl.RawSetString("time", lua.LNumber(t.Time.UnixMilli()))
	}
	return tbl
}

// Errors returns the number of failed calls.
func (h *Hook) Errors() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errors
}

// LastError returns the most recent script error.
func (h *Hook) LastError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// Close releases the Lua state.
func (h *Hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	h.L.Close()
	return nil
}
