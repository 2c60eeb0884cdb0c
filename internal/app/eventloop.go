package app

import (
	"errors"
	"time"

	"github.com/dshills/holdrec/internal/backend"
	"github.com/dshills/holdrec/internal/recorder"
)

// Run starts the event loop and blocks until the user quits or
// Shutdown is called. It returns ErrQuit on a normal exit.
func (app *Application) Run() error {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	log := app.logger.WithComponent("loop")
	log.Debug("event loop started")
	b.DrawLines(app.status.Lines())

	for {
		ev := b.PollEvent()
		if app.shutdown.Load() {
			log.Debug("event loop stopped by shutdown")
			return ErrQuit
		}

		if err := app.handleBackendEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				log.Debug("quit requested")
			}
			return err
		}
		b.DrawLines(app.status.Lines())
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventMouse:
		app.handler.Handle(ev.Mouse)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	}
	// Resize and interrupt only need a redraw.
	return nil
}

// handleKeyEvent processes keyboard input events.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyQuit:
		return ErrQuit
	case backend.KeyStop:
		err := app.controller.Stop(time.Now())
		switch {
		case errors.Is(err, recorder.ErrNoSession), errors.Is(err, recorder.ErrNotLocked):
			app.status.SetMessage("nothing to stop")
		case err != nil:
			return err
		default:
			app.status.SetMessage("")
		}
	}
	return nil
}
