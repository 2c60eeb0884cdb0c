package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type reload struct {
	cfg *Config
	err error
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[gesture]\ndistance_to_lock = 50.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan reload, 10)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		reloads <- reload{cfg, err}
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[gesture]\ndistance_to_lock = 70.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		if r.err != nil {
			t.Fatalf("reload error = %v", r.err)
		}
		if r.cfg.Gesture.DistanceToLock != 70 {
			t.Errorf("DistanceToLock = %g, want 70", r.cfg.Gesture.DistanceToLock)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	reloads := make(chan reload, 10)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		reloads <- reload{cfg, err}
	}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	// Created after the watcher started.
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		if !errors.Is(r.err, ErrValidationFailed) {
			t.Errorf("reload error = %v, want ErrValidationFailed", r.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	reloads := make(chan reload, 10)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		reloads <- reload{cfg, err}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		t.Errorf("unexpected reload %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.toml"), nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("second Close() error = %v, want ErrWatcherClosed", err)
	}
}
