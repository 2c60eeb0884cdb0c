// Package app provides the main application structure and coordination
// for holdrec. It wires the configuration, recorder controller, mouse
// handler, hooks and terminal front end together and manages their
// lifecycle.
package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/holdrec/internal/backend"
	"github.com/dshills/holdrec/internal/config"
	"github.com/dshills/holdrec/internal/input/mouse"
	"github.com/dshills/holdrec/internal/plugin"
	"github.com/dshills/holdrec/internal/recorder"
)

// Backend is the front end the event loop reads from and draws to.
type Backend interface {
	Init() error
	Shutdown()
	PollEvent() backend.Event
	Interrupt()
	DrawLines(lines []string)
}

// Application is the central coordinator for all holdrec components.
type Application struct {
	mu sync.RWMutex

	config     *config.Config
	logger     *Logger
	logFile    *os.File
	controller *recorder.Controller
	handler    *mouse.Handler
	status     *StatusView
	hook       *plugin.Hook
	watcher    *config.Watcher
	backend    Backend

	running  atomic.Bool
	shutdown atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// ReplayPath is a trace to replay instead of running interactively.
	// Live config reload is off in replay mode.
	ReplayPath string

	// Debug enables debug mode with extra logging.
	Debug bool

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogOutput overrides the log destination.
	LogOutput io.Writer

	// NoWatch disables live config reload.
	NoWatch bool

	// Interactive means the terminal owns stderr. Without a log file
	// configured, log output is dropped.
	Interactive bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logger
	if err := app.setupLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}

	// 3. Recorder
	app.controller, err = recorder.NewController(cfg.GestureConfig())
	if err != nil {
		return &InitError{Component: "recorder", Err: err}
	}
	app.handler = mouse.NewHandler(cfg.MouseConfig(), app.controller)

	// 4. Listeners
	app.status = NewStatusView(app.controller.Stats)
	app.controller.AddListener(app.status)
	app.controller.AddListener(app.transitionLogger())

	// 5. Hooks
	if cfg.Hooks.Script != "" {
		hookLog := app.logger.WithComponent("hook")
		app.hook, err = plugin.NewHook(cfg.Hooks.Script,
			plugin.WithOutput(func(line string) { hookLog.Info("%s", line) }),
			plugin.WithErrorHandler(func(err error) { hookLog.Warn("%v", err) }),
		)
		if err != nil {
			return &InitError{Component: "hook", Err: err}
		}
		app.controller.AddListener(app.hook)
	}

	// 6. Live reload
	if app.opts.ConfigPath != "" && app.opts.ReplayPath == "" && !app.opts.NoWatch {
		app.watcher, err = config.NewWatcher(app.opts.ConfigPath, app.onConfigReload)
		if err != nil {
			// Non-fatal: run with the loaded config.
			app.logger.Warn("config watcher disabled: %v", err)
		}
	}

	app.logger.Debug("initialized with %s", describeGesture(cfg))
	return nil
}

// setupLogger creates the logger from options and config.
func (app *Application) setupLogger() error {
	level := app.config.Log.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	if app.opts.Debug {
		level = "debug"
	}

	out := app.opts.LogOutput
	if out == nil && app.config.Log.File != "" {
		f, err := os.OpenFile(app.config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}
	if out == nil && app.opts.Interactive {
		out = io.Discard
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(level)
	if out != nil {
		cfg.Output = out
	}
	app.logger = NewLogger(cfg)
	return nil
}

// transitionLogger logs every transition at debug level and session
// outcomes at info level.
func (app *Application) transitionLogger() recorder.Listener {
	log := app.logger.WithComponent("recorder")
	return recorder.ListenerFunc(func(t recorder.Transition) {
		log.Debug("%s", t)
		if t.Final() {
			log.Info("session %s ended: %s", shortSession(t.SessionID), t.To)
		}
	})
}

// onConfigReload applies a reloaded configuration.
func (app *Application) onConfigReload(cfg *config.Config, err error) {
	log := app.logger.WithComponent("config")
	if err != nil {
		log.Warn("reload failed, keeping current config: %v", err)
		app.notify("config error: %v", err)
		return
	}

	if err := app.controller.SetConfig(cfg.GestureConfig()); err != nil {
		log.Warn("reload rejected: %v", err)
		return
	}
	app.handler.SetConfig(cfg.MouseConfig())
	if app.opts.LogLevel == "" && !app.opts.Debug {
		app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	}

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	log.Info("reloaded %s", describeGesture(cfg))
	app.notify("config reloaded")
}

// notify shows a message and wakes the event loop to redraw.
func (app *Application) notify(format string, args ...any) {
	app.status.SetMessage(format, args...)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil && app.running.Load() {
		b.Interrupt()
	}
}

func describeGesture(cfg *config.Config) string {
	g := cfg.GestureConfig()
	return fmt.Sprintf("minimum_move=%g lock=%g cancel=%g layout=%s",
		g.MinimumMove, g.DistanceToLock, g.DistanceToCancel, g.Layout)
}

// SetBackend sets the front end used by Run.
func (app *Application) SetBackend(b Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	return nil
}

// Config returns the current configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Controller returns the recorder controller.
func (app *Application) Controller() *recorder.Controller {
	return app.controller
}

// Status returns the status view.
func (app *Application) Status() *StatusView {
	return app.status
}

// Shutdown stops the watcher and releases the hook and log file.
// It is safe to call more than once.
func (app *Application) Shutdown() {
	if !app.shutdown.CompareAndSwap(false, true) {
		return
	}

	if app.watcher != nil {
		_ = app.watcher.Close()
	}

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil && app.running.Load() {
		b.Interrupt()
	}

	if app.hook != nil {
		_ = app.hook.Close()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}
