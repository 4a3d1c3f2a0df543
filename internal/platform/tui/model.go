package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-forager/internal/core"
	"github.com/vovakirdan/tui-forager/internal/registry"
	"github.com/vovakirdan/tui-forager/internal/storage"
)

// Publisher receives spectator snapshots. Publish must not block.
type Publisher interface {
	Publish(v any)
}

// Options configures a game model.
type Options struct {
	Store   *storage.Store
	Config  core.RuntimeConfig
	Player  string // recorded with the run; empty for local play
	Logger  *log.Logger
	Publish Publisher // optional spectator stream
	// PublishEvery sends one snapshot every N ticks (default 6).
	PublishEvery int
	// ScreenshotDir overrides ~/.forager/screenshots.
	ScreenshotDir string
	// Embedded models hand control back to a parent model on quit
	// instead of ending the program.
	Embedded bool
}

// Model is the Bubble Tea model for running a forager session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMapper
	held       *HeldKeys
	inputFrame core.InputFrame
	last       core.StepResult
	lastTick   time.Time
	quitting   bool
	runSaved   bool
	savedRunID string

	// Paused ticks repeat the tick counter; each counter value is
	// published at most once.
	published     bool
	publishedTick uint64
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Config
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.PublishEvery <= 0 {
		opts.PublishEvery = 6
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(),
		held:       NewHeldKeys(0, 0),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Movement keys feed the held-key
// tracker, everything else is a one-shot press for the next tick.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	if idx, ok := m.keys.RecipeIndex(msg); ok {
		if c, ok := m.game.(registry.Crafter); ok {
			c.Craft(idx)
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.saveRun()
		if m.opts.Embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
	case isMovement(action):
		m.held.Press(action, now)
	default:
		m.inputFrame.Press(action)
	}
	return m, nil
}

// handleResize processes window resize events. The world has a fixed
// size, so only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one simulation step with the wall time since the
// previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	var dt time.Duration
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.held.Fill(&m.inputFrame, now)
	m.last = m.game.Step(m.inputFrame, dt)

	if m.opts.Publish != nil && m.shouldPublish() {
		if o, ok := m.game.(registry.Observable); ok {
			m.opts.Publish.Publish(o.Observe())
			m.published = true
			m.publishedTick = m.last.Tick
		}
	}

	// Held keys are rebuilt from the tracker every tick.
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

func (m Model) shouldPublish() bool {
	if m.last.Tick%uint64(m.opts.PublishEvery) != 0 {
		return false
	}
	return !m.published || m.last.Tick != m.publishedTick
}

// saveRun records the session in the run history once.
func (m *Model) saveRun() {
	if m.runSaved || m.opts.Store == nil || m.last.Tick == 0 {
		return
	}
	m.runSaved = true

	run := storage.Run{
		Mode:      m.game.ID(),
		Player:    m.opts.Player,
		Collected: m.last.State.Score,
		Level:     1,
		Duration:  m.last.Clock,
	}
	if s, ok := m.game.(registry.Summarizer); ok {
		sum := s.Summary()
		run.Collected = sum.Collected
		run.Level = sum.Level
		run.Crafted = sum.Crafted
		run.Duration = sum.Duration
	}

	id, err := m.opts.Store.SaveRun(run)
	if err != nil {
		m.opts.Logger.Warn("run not saved", "err", err)
		return
	}
	m.savedRunID = id
	m.opts.Logger.Info("run saved", "id", id, "mode", run.Mode, "collected", run.Collected)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("screenshot skipped", "err", err)
			return
		}
		dir = filepath.Join(home, ".forager", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot not written", "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// Done reports whether the player asked to leave the session.
func (m Model) Done() bool {
	return m.quitting
}

// SavedRunID returns the ID of the stored run, if any.
func (m Model) SavedRunID() string {
	return m.savedRunID
}

// LastResult returns the result of the most recent tick.
func (m Model) LastResult() core.StepResult {
	return m.last
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game and returns the
// final model state.
func Run(game registry.Game, opts Options, progOpts ...tea.ProgramOption) (Model, error) {
	model := NewModel(game, opts)

	progOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)
	p := tea.NewProgram(model, progOpts...)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	fm, ok := final.(Model)
	if !ok {
		return model, nil
	}
	// Programs that end without a quit key (signal, killed input) are
	// recorded here. SSH sessions are recorded by the server.
	fm.saveRun()
	return fm, nil
}
