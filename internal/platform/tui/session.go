package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

type difficultySetter interface {
	SetDifficulty(p config.DifficultyPreset)
}

// SessionModel runs a whole remote visit in one program:
// menu, then a game or the scoreboard, then back to the menu.
// Child models ask to quit when they are done; SessionModel swallows that
// and only quits when the player does.
type SessionModel struct {
	scores     ScoreboardStore
	config     core.RuntimeConfig
	opts       ModelOptions
	screen     sessionScreen
	menu       MenuModel
	gameModel  *Model
	scoreboard ScoreboardModel
	games      int
	quitting   bool
}

// NewSessionModel creates a session. scores may be nil.
func NewSessionModel(scores ScoreboardStore, cfg core.RuntimeConfig, opts ModelOptions) SessionModel {
	opts.embedded = true
	return SessionModel{
		scores: scores,
		config: cfg,
		opts:   opts,
		menu:   NewMenuModel(opts.Store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// GamesPlayed returns how many games were started in this session.
func (m SessionModel) GamesPlayed() int {
	return m.games
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = wsm.Width, wsm.Height
	}

	switch m.screen {
	case screenGame:
		if m.gameModel != nil {
			return m.updateGame(msg)
		}
	case screenScoreboard:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScoreboard
		m.scoreboard = NewScoreboardModel(m.scores, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		return m.startGame(*m.menu.Selected(), m.menu.Difficulty())
	}

	return m, cmd
}

// startGame creates the chosen variant with its own difficulty and a fresh seed.
func (m SessionModel) startGame(item MenuItem, difficulty config.DifficultyPreset) (tea.Model, tea.Cmd) {
	game, err := registry.Create(item.GameID)
	if err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Error("cannot create game", "game", item.GameID, "error", err)
		}
		m.backToMenu()
		return m, nil
	}
	if ds, ok := game.(difficultySetter); ok {
		ds.SetDifficulty(difficulty)
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	gm := NewModel(game, cfg, m.opts)
	m.gameModel = &gm
	m.screen = screenGame
	m.games++
	if m.opts.Logger != nil {
		m.opts.Logger.Info("game started", "game", item.GameID, "difficulty", difficulty)
	}
	return m, m.gameModel.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(Model); ok {
		m.gameModel = &gm
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// backToMenu rebuilds the menu so best scores include the last game.
func (m *SessionModel) backToMenu() {
	m.screen = screenMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.opts.Store, m.config)
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScoreboard:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
