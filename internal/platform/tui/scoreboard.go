package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const scoreboardLimit = 100

// ScoreboardStore is the read side of the score database.
type ScoreboardStore interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// scoreOrder selects how the table rows are sorted.
type scoreOrder int

const (
	orderBest scoreOrder = iota
	orderRecent
)

func (o scoreOrder) String() string {
	if o == orderRecent {
		return "most recent"
	}
	return "best first"
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = cursorStyle.Padding(0, 1)
	emptyStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Padding(1, 2)
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#bbada0")).
	Padding(0, 1).
	Align(lipgloss.Center)

// ScoreboardModel shows the recorded games of one board at a time.
type ScoreboardModel struct {
	games     []registry.GameInfo
	current   int
	store     ScoreboardStore
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	order     scoreOrder
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard; store may be nil, which shows empty boards.
func NewScoreboardModel(store ScoreboardStore, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(height)
	m.load()
	return m
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Max Tile", Width: 9},
			{Title: "Moves", Width: 6},
			{Title: "Won", Width: 4},
			{Title: "Date", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#bbada0")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#f9f6f2")).
		Background(lipgloss.Color("#8f7a66")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// gameID returns the board being shown, or "" when nothing is registered.
func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.current].ID
}

// load reads the current board's scores and stats.
// Read errors leave the board empty.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if id := m.gameID(); m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.fillTable()
}

// fillTable writes the loaded scores in the selected order. Rank is always by score.
func (m *ScoreboardModel) fillTable() {
	type ranked struct {
		rank int
		storage.ScoreEntry
	}
	entries := make([]ranked, len(m.scores))
	for i, s := range m.scores {
		entries[i] = ranked{rank: i + 1, ScoreEntry: s}
	}
	if m.order == orderRecent {
		slices.SortStableFunc(entries, func(a, b ranked) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		won := ""
		if e.Won {
			won = "yes"
		}
		rows[i] = table.Row{
			"#" + strconv.Itoa(e.rank),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.MaxTile),
			strconv.Itoa(e.Moves),
			won,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchBoard(step int) {
	if len(m.games) == 0 {
		return
	}
	m.current = (m.current + step + len(m.games)) % len(m.games)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.switchBoard(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchBoard(-1)
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.fillTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	if cards := m.cards(); cards != "" {
		for _, line := range strings.Split(cards, "\n") {
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.scores) == 0 {
		b.WriteString(centerText(emptyStyle.Render("No games recorded yet."), m.width))
	} else {
		b.WriteString(centerText(dimStyle.Render("Sorted "+m.order.String()), m.width))
		b.WriteString("\n")
		for _, line := range strings.Split(m.table.View(), "\n") {
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// tabs renders one tab per board with the current one highlighted.
func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// cards renders the board's totals as small boxes, or "" before the first game.
func (m ScoreboardModel) cards() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	card := func(label, value string) string {
		return cardStyle.Render(dimStyle.Render(label) + "\n" + value)
	}
	last := "-"
	if !m.stats.LastPlayed.IsZero() {
		last = m.stats.LastPlayed.Format("Jan 02")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("GAMES", strconv.Itoa(m.stats.GamesCount)),
		card("BEST", strconv.Itoa(m.stats.HighScore)),
		card("AVERAGE", fmt.Sprintf("%.0f", m.stats.AvgScore)),
		card("MAX TILE", strconv.Itoa(m.stats.MaxTile)),
		card("WINS", strconv.Itoa(m.stats.Wins)),
		card("LAST", last),
	)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store ScoreboardStore, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
