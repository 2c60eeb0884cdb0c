// Package config provides the configuration system for holdrec.
//
// Settings live in a single TOML file. A missing file is not an error; the
// built-in defaults apply:
//
//	[gesture]
//	minimum_move = 16.0
//	distance_to_lock = 48.0
//	distance_to_cancel = 120.0
//	layout = "ltr"
//
//	[terminal]
//	cell_width = 8.0
//	cell_height = 16.0
//	hold_button = "left"
//
//	[log]
//	level = "info"
//	file = ""
//
//	[hooks]
//	script = ""
//
// # Basic Usage
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctrl, err := recorder.NewController(cfg.GestureConfig())
//
// # Live Reload
//
// Watcher reloads the file when it changes on disk and hands the result to
// a callback. Parse and validation failures are reported through the same
// callback so the caller can keep the previous configuration.
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
//	    if err != nil {
//	        logger.Warn("config reload failed: %v", err)
//	        return
//	    }
//	    _ = ctrl.SetConfig(cfg.GestureConfig())
//	})
//	defer w.Close()
package config
