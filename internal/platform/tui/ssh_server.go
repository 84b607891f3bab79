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
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.raycaster/host_key.
	HostKeyPath string

	// DBPath is the path to the map library database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Engine is the engine configuration; zero screen dimensions follow
	// each client's PTY size.
	Engine config.EngineConfig

	// Seed is passed to generated maps (0 = random per session).
	Seed int64
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	eng := config.DefaultEngineConfig()
	eng.Screen.Width, eng.Screen.Height = 0, 0
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.raycaster/maps.db",
		IdleTimeout: 30 * time.Minute,
		Engine:      eng,
	}
}

// SSHServer wraps a Wish SSH server. Every session gets its own engine.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu      sync.Mutex
	engines map[uuid.UUID]GameModel // running engine per session
}

// sessionKey stores the session ID in the SSH context.
type sessionKey struct{}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "raycaster-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open map library", "error", err)
		// Continue with built-in maps only
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		logger:  logger,
		engines: make(map[uuid.UUID]GameModel),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".raycaster", "host_key")
	}

	// Ensure host key directory exists
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

	id, ok := sshSession.Context().Value(sessionKey{}).(uuid.UUID)
	if !ok {
		id = uuid.New()
	}
	model := NewSessionModel(SessionOptions{
		ID:     id,
		Store:  s.store,
		Engine: s.config.Engine,
		Seed:   s.config.Seed,
		Width:  pty.Window.Width,
		Height: pty.Window.Height,
		Logger: s.logger.With("session", id.String(), "user", sshSession.User()),
		OnGame: func(g *GameModel) { s.trackEngine(id, g) },
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := uuid.New()
		sshSession.Context().SetValue(sessionKey{}, id)

		s.logger.Info("session started",
			"session", id.String(),
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.closeEngine(id)
		s.logger.Info("session ended",
			"session", id.String(),
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// trackEngine records the engine running in a session; nil clears it.
func (s *SSHServer) trackEngine(id uuid.UUID, g *GameModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g == nil {
		delete(s.engines, id)
		return
	}
	s.engines[id] = *g
}

// closeEngine tears down an engine left running when its session dropped.
// It runs after the session's program has returned, so nothing else touches
// the engine any more.
func (s *SSHServer) closeEngine(id uuid.UUID) {
	s.mu.Lock()
	g, ok := s.engines[id]
	delete(s.engines, id)
	s.mu.Unlock()

	if ok {
		if err := g.Shutdown(); err != nil {
			s.logger.Warn("engine teardown failed", "session", id.String(), "error", err)
		}
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
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

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	ID      uuid.UUID
	Store   *storage.Store
	Engine  config.EngineConfig
	Seed    int64
	Width   int
	Height  int
	Logger  *log.Logger
	OnGame  func(*GameModel) // called with the new engine, and nil when it ends; may be nil
}

// SessionModel manages one remote session flow: picker -> engine -> picker.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts      SessionOptions
	menu      MenuModel
	gameModel *GameModel
	inGame    bool
	quitting  bool
	lastErr   string
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(MenuItems(opts.Store), opts.Width, opts.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	if m.inGame && m.gameModel != nil {
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
		return m, cmd
	}

	game, err := m.startGame(selected.MapID)
	if err != nil {
		m.opts.Logger.Warn("cannot start map", "map", selected.MapID, "error", err)
		m.lastErr = err.Error()
		m.menu = NewMenuModel(MenuItems(m.opts.Store), m.opts.Width, m.opts.Height)
		return m, nil
	}
	m.gameModel = &game
	m.inGame = true
	m.lastErr = ""
	if m.opts.OnGame != nil {
		m.opts.OnGame(m.gameModel)
	}
	return m, m.gameModel.Init()
}

// startGame builds an engine sized to the client's terminal.
func (m SessionModel) startGame(mapID string) (GameModel, error) {
	var lib registry.Library
	if m.opts.Store != nil {
		lib = m.opts.Store
	}
	mp, err := registry.Resolve(mapID, m.opts.Seed, lib)
	if err != nil {
		return GameModel{}, err
	}

	// One row is reserved for the status line.
	ec := m.opts.Engine.Engine(m.opts.Width, m.opts.Height-1)
	game, err := NewGameModel(GameOptions{
		Engine:  ec,
		Map:     mp,
		Logger:  m.opts.Logger.With("map", mp.ID),
		ShowHUD: true,
	})
	if err != nil {
		return GameModel{}, err
	}

	return game, nil
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	// Engine exit returns to the picker instead of closing the session.
	if m.gameModel.Done() {
		if err := m.gameModel.Shutdown(); err != nil {
			m.opts.Logger.Warn("engine teardown failed", "error", err)
		}
		if err := m.gameModel.Err(); err != nil {
			m.lastErr = err.Error()
		}
		if m.opts.OnGame != nil {
			m.opts.OnGame(nil)
		}
		m.inGame = false
		m.gameModel = nil
		m.menu = NewMenuModel(MenuItems(m.opts.Store), m.opts.Width, m.opts.Height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inGame && m.gameModel != nil {
		return m.gameModel.View()
	}

	view := m.menu.View()
	if m.lastErr != "" {
		view += "\n" + m.lastErr
	}
	return view
}
