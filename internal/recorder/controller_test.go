package recorder

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dshills/holdrec/internal/input/gesture"
)

type collector struct {
	mu          sync.Mutex
	transitions []Transition
}

func (c *collector) OnTransition(t Transition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transitions = append(c.transitions, t)
}

func (c *collector) states() []gesture.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	states := make([]gesture.State, len(c.transitions))
	for i, t := range c.transitions {
		states[i] = t.To
	}
	return states
}

func newTestController(t *testing.T) (*Controller, *collector) {
	t.Helper()
	ctrl, err := NewController(gesture.DefaultConfig())
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	col := &collector{}
	ctrl.AddListener(col)
	return ctrl, col
}

func assertStates(t *testing.T, got []gesture.State, want ...gesture.State) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("states = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("state[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func pt(x, y float64) gesture.Point {
	return gesture.Point{X: x, Y: y}
}

func TestControllerReleaseSends(t *testing.T) {
	ctrl, col := newTestController(t)
	now := time.Now()

	ctrl.Begin(pt(100, 100), now)
	ctrl.Move(pt(95, 100), now)
	ctrl.End(pt(95, 100), now)

	assertStates(t, col.states(), gesture.Started{}, gesture.Cancelling{DistanceX: 5}, gesture.Stopped{})

	if ctrl.Active() {
		t.Error("session still active after release")
	}
	if col.transitions[0].From != nil {
		t.Errorf("first transition From = %v, want nil", col.transitions[0].From)
	}
	if !col.transitions[2].Final() {
		t.Error("stopped transition should be final")
	}
	if got := ctrl.Stats(); got.Sessions != 1 || got.Sent != 1 || got.Cancelled != 0 {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestControllerCancel(t *testing.T) {
	ctrl, col := newTestController(t)
	now := time.Now()

	ctrl.Begin(pt(100, 100), now)
	for _, x := range []float64{90, 70, 40, -20} {
		ctrl.Move(pt(x, 100), now)
	}
	// Further motion after the terminal state is ignored.
	ctrl.Move(pt(100, 100), now)
	ctrl.End(pt(100, 100), now)

	assertStates(t, col.states(),
		gesture.Started{},
		gesture.Cancelling{DistanceX: 10},
		gesture.Cancelling{DistanceX: 30},
		gesture.Cancelling{DistanceX: 60},
		gesture.Cancelled{},
	)
	if ctrl.Active() {
		t.Error("cancelled session still active after release")
	}
	if got := ctrl.Stats(); got.Cancelled != 1 || got.Sent != 0 {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestControllerLockThenStop(t *testing.T) {
	ctrl, col := newTestController(t)
	now := time.Now()

	if err := ctrl.Stop(now); !errors.Is(err, ErrNoSession) {
		t.Errorf("Stop() without session error = %v, want ErrNoSession", err)
	}

	ctrl.Begin(pt(100, 100), now)
	ctrl.Move(pt(100, 85), now)
	if err := ctrl.Stop(now); !errors.Is(err, ErrNotLocked) {
		t.Errorf("Stop() while locking error = %v, want ErrNotLocked", err)
	}
	ctrl.Move(pt(100, 40), now)
	ctrl.End(pt(100, 40), now)

	if !ctrl.Active() {
		t.Fatal("locked session should survive release")
	}
	if _, ok := ctrl.State().(gesture.Locked); !ok {
		t.Fatalf("State() = %v, want locked", ctrl.State())
	}

	if err := ctrl.Stop(now); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	assertStates(t, col.states(),
		gesture.Started{},
		gesture.Locking{DistanceY: 15},
		gesture.Locked{},
		gesture.Stopped{},
	)
	last := col.transitions[3]
	if last.Point != pt(100, 40) {
		t.Errorf("stop point = %v, want last sample", last.Point)
	}
	if got := ctrl.Stats(); got.Locked != 1 || got.Sent != 1 {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestControllerBeginFinishesLockedSession(t *testing.T) {
	ctrl, col := newTestController(t)
	now := time.Now()

	ctrl.Begin(pt(100, 100), now)
	ctrl.Move(pt(100, 20), now)
	ctrl.Move(pt(100, 10), now)
	first := ctrl.SessionID()

	ctrl.Begin(pt(0, 0), now)
	second := ctrl.SessionID()

	if first == "" || first == second {
		t.Fatalf("session ids %q, %q should differ", first, second)
	}

	ts := col.transitions
	if got := ts[len(ts)-2]; got.SessionID != first || got.To != (gesture.Stopped{}) {
		t.Errorf("previous session not stopped: %v", got)
	}
	if got := ts[len(ts)-1]; got.SessionID != second || got.From != nil {
		t.Errorf("new session transition = %v", got)
	}
}

func TestControllerBeginAfterUnreleasedCancel(t *testing.T) {
	ctrl, col := newTestController(t)
	now := time.Now()

	ctrl.Begin(pt(200, 100), now)
	ctrl.Move(pt(150, 100), now)
	ctrl.Move(pt(50, 100), now)
	// Release lost; the next press starts over.
	ctrl.Begin(pt(0, 0), now)

	assertStates(t, col.states(),
		gesture.Started{},
		gesture.Cancelling{DistanceX: 50},
		gesture.Cancelled{},
		gesture.Started{},
	)
	if got := ctrl.Stats(); got.Sent != 0 || got.Cancelled != 1 || got.Sessions != 2 {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestControllerRescue(t *testing.T) {
	ctrl, col := newTestController(t)
	now := time.Now()

	ctrl.Begin(pt(100, 100), now)
	ctrl.Move(pt(40, 100), now)
	ctrl.Move(pt(90, 100), now)

	assertStates(t, col.states(), gesture.Started{}, gesture.Cancelling{DistanceX: 60}, gesture.Started{})
	if col.transitions[2].From != (gesture.Cancelling{DistanceX: 60}) {
		t.Errorf("rescue From = %v", col.transitions[2].From)
	}
}

func TestControllerIgnoresMovesWithoutSession(t *testing.T) {
	ctrl, col := newTestController(t)
	now := time.Now()

	ctrl.Move(pt(0, 0), now)
	ctrl.End(pt(0, 0), now)

	if len(col.states()) != 0 {
		t.Errorf("unexpected transitions %v", col.states())
	}
	if ctrl.State() != nil {
		t.Errorf("State() = %v, want nil", ctrl.State())
	}
}

func TestControllerSetConfigAppliesNextSession(t *testing.T) {
	ctrl, col := newTestController(t)
	now := time.Now()

	cfg := gesture.DefaultConfig()
	cfg.Layout = gesture.LayoutRightToLeft

	ctrl.Begin(pt(100, 100), now)
	if err := ctrl.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	// Still left-to-right for the active session.
	ctrl.Move(pt(130, 100), now)
	ctrl.End(pt(130, 100), now)
	assertStates(t, col.states(), gesture.Started{}, gesture.Stopped{})

	ctrl.Begin(pt(100, 100), now)
	ctrl.Move(pt(130, 100), now)
	if got := ctrl.State(); got != (gesture.Cancelling{DistanceX: 30}) {
		t.Errorf("State() = %v, want cancelling(30)", got)
	}

	bad := cfg
	bad.MinimumMove = -1
	if err := ctrl.SetConfig(bad); !errors.Is(err, gesture.ErrInvalidConfig) {
		t.Errorf("SetConfig(invalid) error = %v", err)
	}
	if ctrl.Config() != cfg {
		t.Error("invalid config replaced the current one")
	}
}

func TestControllerListenerMayCallBack(t *testing.T) {
	ctrl, err := NewController(gesture.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	var seen []string
	ctrl.AddListener(ListenerFunc(func(tr Transition) {
		// Would deadlock if listeners ran under the controller lock.
		seen = append(seen, gesture.Name(ctrl.State()))
	}))

	ctrl.Begin(pt(10, 10), time.Now())
	if len(seen) != 1 || seen[0] != "started" {
		t.Errorf("listener saw %v", seen)
	}
}

func TestNewControllerInvalidConfig(t *testing.T) {
	if _, err := NewController(gesture.Config{}); !errors.Is(err, gesture.ErrInvalidConfig) {
		t.Errorf("NewController(zero) error = %v, want ErrInvalidConfig", err)
	}
}

func TestTransitionString(t *testing.T) {
	tr := Transition{
		SessionID: "0123456789abcdef",
		To:        gesture.Started{},
		Point:     pt(1, 2),
	}
	if got, want := tr.String(), "01234567 none -> started at (1,2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
