package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-forager/internal/assets"
	"github.com/vovakirdan/tui-forager/internal/config"
	"github.com/vovakirdan/tui-forager/internal/core"
	"github.com/vovakirdan/tui-forager/internal/storage"
)

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// loadConfig reads the forager config and applies the --preset flag.
func loadConfig() (config.ForagerConfig, error) {
	cfg, err := config.LoadForager(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// newLogger builds the process logger. TUI commands log to --log-file so
// the alternate screen stays clean; the returned closer releases it.
func newLogger(toFile bool, prefix string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if toFile {
		if flagLogFile == "" {
			w = io.Discard
		} else {
			path := expandHome(flagLogFile)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return nil, nil, fmt.Errorf("cannot open log file: %w", err)
			}
			w, closer = f, f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// loadAssets starts loading the builtin sprite sheets in the background.
// Sessions render placeholders until the load completes.
func loadAssets(ctx context.Context, logger *log.Logger) *assets.Library {
	lib, err := assets.NewLibrary(assets.Builtin(), logger)
	if err != nil {
		logger.Warn("sprites unavailable, using placeholders", "err", err)
		return nil
	}
	done := lib.LoadAsync(ctx)
	go func() {
		if err := <-done; err != nil {
			logger.Warn("some sprites failed to load", "err", err)
		}
	}()
	return lib
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run history, or returns nil with a warning so the
// session can run without history.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		return nil
	}
	return store
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
