// Package main is the entry point for holdrec.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/holdrec/internal/app"
	"github.com/dshills/holdrec/internal/backend"
	"github.com/dshills/holdrec/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, writeConfig := parseFlags()

	if writeConfig {
		if err := config.Save(opts.ConfigPath, config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("wrote %s\n", opts.ConfigPath)
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	if opts.ReplayPath != "" {
		stats, err := application.Replay(opts.ReplayPath, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("sessions: %d  sent: %d  cancelled: %d  hands-free: %d\n",
			stats.Sessions, stats.Sent, stats.Cancelled, stats.Locked)
		return 0
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var writeConfig bool
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ReplayPath, "replay", "", "Replay a recorded pointer trace and print the transitions")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug mode")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug mode (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.BoolVar(&writeConfig, "init", false, "Write the default configuration to the config path and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "holdrec - press-and-hold voice recorder control\n\n")
		fmt.Fprintf(os.Stderr, "Usage: holdrec [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  holdrec                       Run in the terminal, hold the left button\n")
		fmt.Fprintf(os.Stderr, "  holdrec -c holdrec.toml       Use a config file (reloaded on change)\n")
		fmt.Fprintf(os.Stderr, "  holdrec -replay cancel.toml   Print the transitions of a trace\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("holdrec %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", flag.Args())
		os.Exit(1)
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}
	if writeConfig && opts.ConfigPath == "" {
		fmt.Fprintf(os.Stderr, "Error: no config path; use -config\n")
		os.Exit(1)
	}
	opts.Interactive = opts.ReplayPath == ""

	return opts, writeConfig
}
