package app

import (
	"fmt"
	"io"
	"time"

	"github.com/dshills/holdrec/internal/input/mouse"
	"github.com/dshills/holdrec/internal/input/trace"
	"github.com/dshills/holdrec/internal/recorder"
)

// Replay runs a recorded trace through a fresh controller and writes
// each transition to w. Trace coordinates are pixels. The configured
// hook, if any, observes the replayed transitions too.
func (app *Application) Replay(path string, w io.Writer) (recorder.Stats, error) {
	tr, err := trace.Load(path)
	if err != nil {
		return recorder.Stats{}, err
	}

	cfg := *app.Config()
	tr.ApplyGesture(&cfg)
	if err := cfg.Validate(); err != nil {
		return recorder.Stats{}, fmt.Errorf("trace %s: %w", path, err)
	}

	ctrl, err := recorder.NewController(cfg.GestureConfig())
	if err != nil {
		return recorder.Stats{}, err
	}

	var writeErr error
	ctrl.AddListener(recorder.ListenerFunc(func(t recorder.Transition) {
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintln(w, t)
	}))
	ctrl.AddListener(app.transitionLogger())
	if app.hook != nil {
		ctrl.AddListener(app.hook)
	}

	mcfg := cfg.MouseConfig()
	mcfg.CellWidth, mcfg.CellHeight = 1, 1
	h := mouse.NewHandler(mcfg, ctrl)

	name := tr.Name
	if name == "" {
		name = path
	}
	forwarded := tr.Replay(h, time.Unix(0, 0).UTC())
	app.logger.WithComponent("replay").Info("%s: %d of %d events forwarded", name, forwarded, len(tr.Events))

	if writeErr != nil {
		return ctrl.Stats(), fmt.Errorf("writing replay output: %w", writeErr)
	}
	return ctrl.Stats(), nil
}
