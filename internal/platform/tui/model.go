package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// footerHeight is the number of rows reserved below the game for the help bar.
const footerHeight = 1

// ScoreStore is the subset of the score database the game screen needs.
type ScoreStore interface {
	HighScore(gameID string) (int, error)
	SaveResult(r storage.Result) (int64, error)
}

// Publisher receives board snapshots, e.g. to stream them to spectators.
type Publisher interface {
	Publish(snap t2048.Snapshot)
	End(sessionID string)
}

// ModelOptions carries the optional collaborators of a game screen.
type ModelOptions struct {
	Store     ScoreStore
	Logger    *log.Logger
	Bell      io.Writer      // Terminal bell destination; bell is off when nil
	Listener  t2048.Listener // Extra event listener
	Publisher Publisher

	// ScreenshotDir defaults to ~/.t2048/screenshots.
	ScreenshotDir string

	// embedded models leave back-to-menu handling to their parent.
	embedded bool
}

type listenerSetter interface {
	SetListener(l t2048.Listener)
}

type configured interface {
	Config() config.T2048Config
}

type snapshotter interface {
	Snapshot() t2048.Snapshot
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       ModelOptions
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState

	// Mouse drag origin for swipe gestures
	dragging bool
	dragX    int
	dragY    int

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game's result has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	if opts.Store != nil {
		if setter, ok := game.(registry.BestScoreSetter); ok {
			best, err := opts.Store.HighScore(game.ID())
			if err != nil && opts.Logger != nil {
				opts.Logger.Warn("cannot load best score", "game", game.ID(), "error", err)
			}
			setter.SetBestScore(best)
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		opts:       opts,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

func gameHeight(h int) int {
	return max(h-footerHeight, 0)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.attachListeners(false)
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	m.game.Reset(cfg)
	// The bell depends on the configuration loaded by Reset.
	if c, ok := m.game.(configured); ok && c.Config().Audio.Bell {
		m.attachListeners(true)
	}
	m.publish()
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// attachListeners installs the event listeners on games that emit events.
func (m Model) attachListeners(bell bool) {
	setter, ok := m.game.(listenerSetter)
	if !ok {
		return
	}
	var ls t2048.Listeners
	if m.opts.Logger != nil {
		ls = append(ls, NewLogListener(m.opts.Logger))
	}
	if bell && m.opts.Bell != nil {
		ls = append(ls, NewBellListener(m.opts.Bell))
	}
	if m.opts.Listener != nil {
		ls = append(ls, m.opts.Listener)
	}
	setter.SetListener(ls)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.saveResult()
		m.backToMenu = true
		m.endPublishing()
		if m.opts.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.saveResult()
		m.quitting = true
		m.endPublishing()
		return m, tea.Quit
	case core.ActionRestart:
		if m.gameState.Paused {
			return m, nil
		}
		// The finished game is recorded before the board is cleared.
		m.saveResult()
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleMouse turns a press-drag-release into a swipe.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragX, m.dragY = msg.X, msg.Y
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		if action := core.SwipeAction(msg.X-m.dragX, msg.Y-m.dragY, m.swipeThreshold()); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
	}
	return m, nil
}

func (m Model) swipeThreshold() int {
	if c, ok := m.game.(configured); ok {
		return c.Config().Input.SwipeThreshold
	}
	return config.DefaultT2048Config().Input.SwipeThreshold
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
	} else if !m.gameState.GameOver {
		cfg := m.config
		cfg.ScreenH = gameHeight(cfg.ScreenH)
		m.game.Reset(cfg)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restarting := m.inputFrame.Has(core.ActionRestart)
	prev := m.gameState

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if restarting && result.Changed {
		m.scoreSaved = false
	}

	// Save score on game over (once)
	if m.gameState.GameOver {
		m.saveResult()
	}

	if result.Changed || prev != m.gameState {
		m.publish()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// result describes the current game for the score store.
func (m Model) result() storage.Result {
	r := storage.Result{GameID: m.game.ID(), Score: m.game.State().Score}
	if s, ok := m.game.(snapshotter); ok {
		snap := s.Snapshot()
		r.MaxTile = snap.MaxTile
		r.Moves = snap.Moves
		r.Won = snap.Won
	}
	return r
}

// saveResult records the current game once, if it scored anything.
func (m *Model) saveResult() {
	if m.scoreSaved || m.opts.Store == nil {
		return
	}
	r := m.result()
	if r.Score <= 0 {
		return
	}
	if _, err := m.opts.Store.SaveResult(r); err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Warn("cannot save score", "game", r.GameID, "error", err)
		}
		// Best-effort save, game continues regardless
	}
	m.scoreSaved = true
}

func (m Model) publish() {
	if m.opts.Publisher == nil {
		return
	}
	if s, ok := m.game.(snapshotter); ok {
		m.opts.Publisher.Publish(s.Snapshot())
	}
}

func (m Model) endPublishing() {
	if m.opts.Publisher == nil {
		return
	}
	if s, ok := m.game.(snapshotter); ok {
		m.opts.Publisher.End(s.Snapshot().SessionID)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		dir = filepath.Join(home, ".t2048", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("cannot save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a single game.
// Returns true if the user asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) (backToMenu bool, err error) {
	opts.embedded = false
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drags become swipes
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
