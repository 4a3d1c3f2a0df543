// Package assets loads text sprite sheets for the forager renderer.
//
// Sheets load in the background. Until a sheet is ready, or if it fails to
// load, callers get a deterministic placeholder frame, so rendering and the
// simulation never wait on assets.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-forager/internal/core"
)

//go:embed sprites/*.yaml
var builtin embed.FS

// ErrNoFrames is returned for a sheet that defines no frames.
var ErrNoFrames = errors.New("assets: sheet has no frames")

// Builtin returns the sprite sheets compiled into the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "sprites")
	if err != nil {
		panic(err)
	}
	return sub
}

// Status is the load state of a sheet.
type Status int32

const (
	StatusUnloaded Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

// Sheet is a decoded sprite sheet. Every frame has FrameH lines of FrameW runes.
type Sheet struct {
	Name   string     `yaml:"name"`
	FrameW int        `yaml:"frame_w"`
	FrameH int        `yaml:"frame_h"`
	Color  string     `yaml:"color"`
	Frames [][]string `yaml:"frames"`
}

// Frame is one renderable sprite frame.
type Frame struct {
	Lines       []string
	Color       core.Color
	Placeholder bool
}

// Width returns the frame width in cells.
func (f Frame) Width() int {
	w := 0
	for _, l := range f.Lines {
		w = core.Max(w, utf8.RuneCountInString(l))
	}
	return w
}

type loadResult struct {
	sheet *Sheet
	err   error
}

// Handle tracks one sheet through unloaded, loaded and failed.
type Handle struct {
	name  string
	file  string
	state atomic.Pointer[loadResult]
}

// Status returns the current load state.
func (h *Handle) Status() Status {
	r := h.state.Load()
	switch {
	case r == nil:
		return StatusUnloaded
	case r.err != nil:
		return StatusFailed
	default:
		return StatusLoaded
	}
}

// Err returns the load error of a failed sheet.
func (h *Handle) Err() error {
	if r := h.state.Load(); r != nil {
		return r.err
	}
	return nil
}

// Library is a fixed set of sheet handles backed by a file system.
type Library struct {
	fsys    fs.FS
	handles map[string]*Handle
	logger  *log.Logger
}

// NewLibrary registers every *.yaml file of fsys as an unloaded sheet named
// after the file. Nothing is read until Load or LoadAsync.
func NewLibrary(fsys fs.FS, logger *log.Logger) (*Library, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("assets: list sheets: %w", err)
	}
	l := &Library{fsys: fsys, handles: make(map[string]*Handle, len(files)), logger: logger}
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".yaml")
		l.handles[name] = &Handle{name: name, file: f}
	}
	return l, nil
}

// Names returns registered sheet names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.handles))
	for name := range l.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load decodes every unloaded sheet. It stops early when ctx is done.
// Failed sheets stay failed and are reported in the returned error.
func (l *Library) Load(ctx context.Context) error {
	var errs []error
	for _, name := range l.Names() {
		if err := ctx.Err(); err != nil {
			return err
		}
		h := l.handles[name]
		if h.Status() != StatusUnloaded {
			continue
		}
		sheet, err := l.decode(h.file)
		h.state.Store(&loadResult{sheet: sheet, err: err})
		if err != nil {
			l.logger.Warn("sprite sheet failed to load", "sheet", name, "err", err)
			errs = append(errs, err)
			continue
		}
		l.logger.Debug("sprite sheet loaded", "sheet", name, "frames", len(sheet.Frames))
	}
	return errors.Join(errs...)
}

// LoadAsync runs Load in the background. The returned channel receives the
// result and is then closed.
func (l *Library) LoadAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- l.Load(ctx)
	}()
	return done
}

func (l *Library) decode(file string) (*Sheet, error) {
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", file, err)
	}
	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("assets: parse %s: %w", file, err)
	}
	if len(sheet.Frames) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFrames, file)
	}
	for i, frame := range sheet.Frames {
		if sheet.FrameH > 0 && len(frame) != sheet.FrameH {
			return nil, fmt.Errorf("assets: %s frame %d has %d lines, expected %d", file, i, len(frame), sheet.FrameH)
		}
		for _, line := range frame {
			if sheet.FrameW > 0 && utf8.RuneCountInString(line) != sheet.FrameW {
				return nil, fmt.Errorf("assets: %s frame %d line %q is not %d wide", file, i, line, sheet.FrameW)
			}
		}
	}
	return &sheet, nil
}

// Status returns the load state of a sheet; unknown names are unloaded.
func (l *Library) Status(name string) Status {
	if h, ok := l.handles[name]; ok {
		return h.Status()
	}
	return StatusUnloaded
}

// Sheet returns a loaded sheet.
func (l *Library) Sheet(name string) (*Sheet, bool) {
	h, ok := l.handles[name]
	if !ok {
		return nil, false
	}
	r := h.state.Load()
	if r == nil || r.err != nil {
		return nil, false
	}
	return r.sheet, true
}

// Frame returns frame index of the named sheet, wrapping the index.
// A missing or unloaded sheet yields Placeholder.
func (l *Library) Frame(name string, index int) Frame {
	sheet, ok := l.Sheet(name)
	if !ok {
		return Placeholder(name, index)
	}
	n := len(sheet.Frames)
	i := ((index % n) + n) % n
	return Frame{Lines: sheet.Frames[i], Color: ParseColor(sheet.Color)}
}

// Placeholder returns a stand-in frame that depends only on its arguments.
func Placeholder(name string, index int) Frame {
	r := '#'
	if base := strings.TrimPrefix(name, "actor_"); base != "" {
		r, _ = utf8.DecodeRuneInString(strings.ToUpper(base))
	}
	line := string([]rune{'[', r, ']'})
	if index%2 != 0 {
		line = string([]rune{'(', r, ')'})
	}
	return Frame{Lines: []string{line}, Color: core.ColorMagenta, Placeholder: true}
}

var colorNames = map[string]core.Color{
	"default":       core.ColorDefault,
	"red":           core.ColorRed,
	"green":         core.ColorGreen,
	"yellow":        core.ColorYellow,
	"blue":          core.ColorBlue,
	"magenta":       core.ColorMagenta,
	"cyan":          core.ColorCyan,
	"white":         core.ColorWhite,
	"bright_green":  core.ColorBrightGreen,
	"bright_yellow": core.ColorBrightYellow,
	"orange":        core.ColorOrange,
	"brown":         core.ColorBrown,
	"gray":          core.ColorGray,
}

// ParseColor maps a palette name to a color; unknown names are the default.
func ParseColor(name string) core.Color {
	return colorNames[strings.ToLower(name)]
}

var mirrored = map[rune]rune{
	'/': '\\', '\\': '/',
	'(': ')', ')': '(',
	'<': '>', '>': '<',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
}

// Mirror flips a frame horizontally.
func Mirror(f Frame) Frame {
	out := Frame{Lines: make([]string, len(f.Lines)), Color: f.Color, Placeholder: f.Placeholder}
	for i, line := range f.Lines {
		runes := []rune(line)
		for l, r := 0, len(runes)-1; l < r; l, r = l+1, r-1 {
			runes[l], runes[r] = runes[r], runes[l]
		}
		for j, c := range runes {
			if m, ok := mirrored[c]; ok {
				runes[j] = m
			}
		}
		out.Lines[i] = string(runes)
	}
	return out
}
