package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-forager/internal/assets"
	"github.com/vovakirdan/tui-forager/internal/config"
	"github.com/vovakirdan/tui-forager/internal/core"
	"github.com/vovakirdan/tui-forager/internal/registry"
	"github.com/vovakirdan/tui-forager/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.forager/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of every session.
	TickRate int

	// Game is the simulation config shared by all sessions.
	Game config.ForagerConfig

	// Assets is the shared sprite library. May be nil.
	Assets *assets.Library
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.forager/runs.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.DefaultForagerConfig(),
	}
}

// SSHServer wraps a Wish SSH server. Every SSH session runs its own
// simulation; nothing is shared between sessions except the run history.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "forager-ssh",
	})

	// Continue without history if the database cannot be opened
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".forager", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(SessionDeps{
		Store:    s.store,
		Runtime:  cfg,
		Game:     s.config.Game,
		Assets:   s.config.Assets,
		Logger:   s.logger.With("user", sshSession.User()),
		Username: sshSession.User(),
	})
	sshSession.Context().SetValue(sessionRunKey{}, model.run)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		// Dropped connections and idle timeouts never see a quit key.
		if run, ok := sshSession.Context().Value(sessionRunKey{}).(*sessionRun); ok {
			run.finish()
		}
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionDeps are the collaborators of one SSH session.
type SessionDeps struct {
	Store    *storage.Store
	Runtime  core.RuntimeConfig
	Game     config.ForagerConfig
	Assets   *assets.Library
	Logger   *log.Logger
	Username string
}

type sessionRunKey struct{}

// sessionRun holds the game in progress of one SSH session, so the run can
// be recorded after the program has stopped.
type sessionRun struct {
	mu     sync.Mutex
	active *Model
}

func (r *sessionRun) set(m *Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = m
}

// finish records the game in progress, if any. Safe to call twice.
func (r *sessionRun) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		r.active.saveRun()
		r.active = nil
	}
}

// SessionModel manages the full session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	deps      SessionDeps
	menu      MenuModel
	gameModel *Model
	run       *sessionRun
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return SessionModel{
		deps: deps,
		menu: NewMenuModel(deps.Store, deps.Runtime),
		run:  &sessionRun{},
	}
}

// Finish records the game in progress when the session ends without a
// quit key.
func (m SessionModel) Finish() {
	m.run.finish()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.deps.Runtime.ScreenW = wsm.Width
		m.deps.Runtime.ScreenH = wsm.Height
	}

	if m.gameModel != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		// The menu quits the program on selection; swallow that here.
		if m.menu.WantsScoreboard() {
			m.menu = NewMenuModel(m.deps.Store, m.deps.Runtime)
			return m, nil
		}
		return m, cmd
	}

	game, err := registry.Create(selected.GameID, registry.Options{
		Config: m.deps.Game,
		Logger: m.deps.Logger,
		Assets: m.deps.Assets,
	})
	if err != nil {
		m.deps.Logger.Error("cannot create game", "mode", selected.GameID, "error", err)
		m.menu = NewMenuModel(m.deps.Store, m.deps.Runtime)
		return m, nil
	}

	rt := m.deps.Runtime
	rt.Seed = time.Now().UnixNano()
	gm := NewModel(game, Options{
		Store:    m.deps.Store,
		Config:   rt,
		Player:   m.deps.Username,
		Logger:   m.deps.Logger,
		Embedded: true,
	})
	m.gameModel = &gm
	m.run.set(m.gameModel)
	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.gameModel = &gm
	}

	if m.gameModel.Done() {
		m.run.set(nil)
		m.gameModel = nil
		m.menu = NewMenuModel(m.deps.Store, m.deps.Runtime)
		return m, m.menu.Init()
	}

	m.run.set(m.gameModel)
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.gameModel != nil {
		return m.gameModel.View()
	}
	return m.menu.View()
}
