package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// MenuItem is one board variant offered by the menu.
type MenuItem struct {
	GameID   string
	Title    string
	Best     int    // Zero when no game was recorded
	Controls string // Key hints shown next to the difficulty picker
}

// menuStage is the step of the menu the player is on.
type menuStage int

const (
	stageBoards menuStage = iota
	stageDifficulty
	stageDone
)

// menuOutcome is how the menu ended.
type menuOutcome int

const (
	outcomeNone menuOutcome = iota
	outcomePlay
	outcomeScoreboard
	outcomeQuit
)

// MenuModel picks a board, then a difficulty.
// The program quits once an outcome is chosen; callers read it back with
// Selected, WantsScoreboard and IsQuitting.
type MenuModel struct {
	items   []MenuItem
	cursor  int
	stage   menuStage
	outcome menuOutcome
	picker  difficultyPicker
	keys    MenuKeyMap
	help    help.Model
	config  core.RuntimeConfig
}

// NewMenuModel lists the registered boards. store may be nil.
func NewMenuModel(store ScoreStore, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		picker: newDifficultyPicker(config.DifficultyNormal),
	}
	m.help.Width = cfg.ScreenW

	for _, info := range registry.List() {
		m.items = append(m.items, menuItem(info, store))
	}
	return m
}

func menuItem(info registry.GameInfo, store ScoreStore) MenuItem {
	item := MenuItem{GameID: info.ID, Title: info.Title}
	if game, err := registry.Create(info.ID); err == nil {
		if c, ok := game.(registry.Controller); ok {
			item.Controls = c.Controls()
		}
	}
	if store != nil {
		// A board without scores simply shows no best.
		item.Best, _ = store.HighScore(info.ID)
	}
	return item
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		action := m.keys.Action(msg)
		if action == MenuActionQuit {
			return m.finish(outcomeQuit)
		}
		if m.stage == stageDifficulty {
			return m.updateDifficulty(action)
		}
		return m.updateBoards(action)
	}
	return m, nil
}

func (m MenuModel) updateBoards(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case MenuActionSelect:
		if len(m.items) > 0 {
			m.stage = stageDifficulty
		}
	case MenuActionScoreboard:
		return m.finish(outcomeScoreboard)
	}
	return m, nil
}

func (m MenuModel) updateDifficulty(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		m.picker.up()
	case MenuActionDown:
		m.picker.down()
	case MenuActionBack:
		m.stage = stageBoards
	case MenuActionSelect:
		return m.finish(outcomePlay)
	}
	return m, nil
}

func (m MenuModel) finish(o menuOutcome) (tea.Model, tea.Cmd) {
	m.stage = stageDone
	m.outcome = o
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	width := m.config.ScreenW
	switch m.stage {
	case stageDone:
		return ""
	case stageDifficulty:
		item := m.items[m.cursor]
		v := m.picker.view(item.Title, width) + "\n"
		if item.Controls != "" {
			v += centerText(dimStyle.Render(item.Controls), width) + "\n"
		}
		return v + centerText(helpStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), width)
	}

	lines := []string{
		"",
		titleStyle.Render("  2 0 4 8  "),
		"",
		"Select a board",
		"",
	}
	for i, item := range m.items {
		lines = append(lines, m.itemLine(i, item))
	}
	if len(m.items) == 0 {
		lines = append(lines, dimStyle.Render("No boards registered."))
	}
	lines = append(lines, "", helpStyle.Render(m.help.View(m.keys)))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m MenuModel) itemLine(i int, item MenuItem) string {
	prefix, title := "  ", fmt.Sprintf("%-12s", item.Title)
	if i == m.cursor {
		prefix, title = "> ", cursorStyle.Render(title)
	}
	if item.Best > 0 {
		title += dimStyle.Render(fmt.Sprintf("  best %d", item.Best))
	}
	return prefix + title
}

// Selected returns the chosen board, or nil unless the player chose to play.
func (m MenuModel) Selected() *MenuItem {
	if m.outcome != outcomePlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// Difficulty returns the preset chosen together with the board.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return m.picker.selected()
}

// IsQuitting reports whether the player quit from the menu.
func (m MenuModel) IsQuitting() bool {
	return m.outcome == outcomeQuit
}

// WantsScoreboard reports whether the player opened the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.outcome == outcomeScoreboard
}

// Config returns the runtime config, including any resize seen by the menu.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult is what a standalone menu run decided.
type MenuResult struct {
	GameID          string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in its own program and reports the player's choice.
// A menu closed without a choice counts as quitting.
func RunMenu(store ScoreStore, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch m.outcome {
	case outcomePlay:
		res.GameID = m.Selected().GameID
		res.Difficulty = m.Difficulty()
	case outcomeScoreboard:
		res.WantsScoreboard = true
	default:
		res.Quit = true
	}
	return res, nil
}
