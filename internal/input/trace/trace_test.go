package trace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/holdrec/internal/config"
	"github.com/dshills/holdrec/internal/input/gesture"
	"github.com/dshills/holdrec/internal/input/mouse"
	"github.com/dshills/holdrec/internal/recorder"
)

const cancelTrace = `
name = "slide to cancel"

[[event]]
action = "press"
x = 100
y = 100

[[event]]
action = "drag"
x = 90
y = 100
at_ms = 10

[[event]]
action = "drag"
x = 70
y = 100
at_ms = 20

[[event]]
action = "drag"
x = 40
y = 100
at_ms = 30

[[event]]
action = "drag"
x = -20
y = 100
at_ms = 40

[[event]]
action = "release"
x = -20
y = 100
at_ms = 50
`

func TestParse(t *testing.T) {
	tr, err := Parse([]byte(cancelTrace))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tr.Name != "slide to cancel" {
		t.Errorf("Name = %q", tr.Name)
	}
	if len(tr.Events) != 6 {
		t.Fatalf("len(Events) = %d, want 6", len(tr.Events))
	}

	start := time.Unix(0, 0)
	events := tr.Events(start)
	if events[0].Action != mouse.ActionPress || events[0].Button != mouse.ButtonLeft {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Button != mouse.ButtonNone {
		t.Errorf("drag button = %v, want none", events[1].Button)
	}
	if got := events[5].Timestamp.Sub(start); got != 50*time.Millisecond {
		t.Errorf("last offset = %v, want 50ms", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", `name = "x"`},
		{"bad action", "[[event]]\naction = \"tap\"\n"},
		{"bad button", "[[event]]\naction = \"press\"\nbutton = \"wheel\"\n"},
		{"time goes back", "[[event]]\naction = \"press\"\nat_ms = 10\n[[event]]\naction = \"release\"\nat_ms = 5\n"},
		{"unknown key", "[[event]]\naction = \"press\"\nz = 1\n"},
		{"syntax", "[[event]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, ErrInvalidTrace) {
				t.Errorf("Parse() error = %v, want ErrInvalidTrace", err)
			}
		})
	}
}

func TestReplayDrivesController(t *testing.T) {
	tr, err := Parse([]byte(cancelTrace))
	if err != nil {
		t.Fatal(err)
	}

	ctrl, err := recorder.NewController(gesture.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	var got []gesture.State
	ctrl.AddListener(recorder.ListenerFunc(func(tr recorder.Transition) {
		got = append(got, tr.To)
	}))

	handler := mouse.NewHandler(mouse.DefaultConfig(), ctrl)
	if n := tr.Replay(handler, time.Now()); n != 6 {
		t.Errorf("Replay() forwarded %d events, want 6", n)
	}

	want := []gesture.State{
		gesture.Started{},
		gesture.Cancelling{DistanceX: 10},
		gesture.Cancelling{DistanceX: 30},
		gesture.Cancelling{DistanceX: 60},
		gesture.Cancelled{},
	}
	if len(got) != len(want) {
		t.Fatalf("states = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("state[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestApplyGesture(t *testing.T) {
	tr, err := Parse([]byte("[gesture]\nlayout = \"rtl\"\ndistance_to_cancel = 90.0\n\n[[event]]\naction = \"press\"\n"))
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	tr.ApplyGesture(cfg)

	g := cfg.GestureConfig()
	if g.Layout != gesture.LayoutRightToLeft || g.DistanceToCancel != 90 || g.DistanceToLock != 48 {
		t.Errorf("GestureConfig() = %+v", g)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cancel.toml")
	if err := os.WriteFile(path, []byte(cancelTrace), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}
