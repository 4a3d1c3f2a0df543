package forager

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/vovakirdan/tui-forager/internal/assets"
	"github.com/vovakirdan/tui-forager/internal/config"
	"github.com/vovakirdan/tui-forager/internal/core"
)

// Session is the context one simulation runs in. It is built once per
// Reset and handed to every component at construction.
type Session struct {
	ID     string
	Mode   string
	Config config.ForagerConfig
	Bounds core.Rect
	Rand   *rand.Rand
	Logger *log.Logger
	Assets *assets.Library
}

// NewSession builds a session. A zero seed picks one from the wall clock;
// a nil logger discards output.
func NewSession(mode string, cfg config.ForagerConfig, seed int64, logger *log.Logger, lib *assets.Library) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w, h := cfg.Bounds()
	id := ulid.Make().String()
	return &Session{
		ID:     id,
		Mode:   mode,
		Config: cfg,
		Bounds: core.NewRect(0, 0, w, h),
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger.With("session", id, "mode", mode),
		Assets: lib,
	}
}
