package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on every Reset.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// Game adapts a Session to the registry.Game interface.
type Game struct {
	variant  Variant
	cfg      config.T2048Config
	session  *Session
	listener Listener
	preset   config.DifficultyPreset // Overrides the package preset when set
	best     int
	tick     uint64

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
	anim     animation
}

// NewVariant creates a game for the given variant.
func NewVariant(v Variant) *Game {
	return &Game{
		variant:  v,
		listener: NopListener{},
	}
}

// New creates a classic 2048 game.
func New() *Game {
	return NewVariant(Variants[0])
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// SetListener sets the receiver of game events. nil disables notifications.
func (g *Game) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	g.listener = l
}

// SetDifficulty sets the preset used by this game from the next Reset on,
// taking precedence over SetDifficultyPreset.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.preset = p
}

// SetBestScore seeds the best score, typically from the score store.
func (g *Game) SetBestScore(best int) {
	if best > g.best {
		g.best = best
	}
}

// Session returns the underlying session. It is nil before Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Config returns the configuration loaded by the last Reset.
func (g *Game) Config() config.T2048Config {
	return g.cfg
}

// loadConfig resolves the configuration for this variant.
func (g *Game) loadConfig() config.T2048Config {
	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		cfg = config.DefaultT2048Config()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyT2048Preset(&cfg, preset)
	}
	if g.variant.Size > 0 {
		cfg.Board.Size = g.variant.Size
		if cfg.Rules.InitialTiles > cfg.Board.Size*cfg.Board.Size {
			cfg.Rules.InitialTiles = 2
		}
	}
	if cfg.Validate() != nil {
		size := cfg.Board.Size
		cfg = config.DefaultT2048Config()
		if g.variant.Size > 0 {
			cfg.Board.Size = size
		}
	}
	return cfg
}

// OptionsFromConfig converts loaded configuration to session options.
func OptionsFromConfig(cfg config.T2048Config) Options {
	return Options{
		Size:         cfg.Board.Size,
		WinValue:     cfg.Rules.WinValue,
		Spawn4Prob:   cfg.Rules.Spawn4Probability,
		InitialTiles: cfg.Rules.InitialTiles,
		DisableUndo:  !cfg.Rules.Undo,
	}
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = g.loadConfig()
	g.tick = 0
	g.paused = false
	g.anim = animation{}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	session, err := NewSession(OptionsFromConfig(g.cfg), NewRandSource(cfg.Seed))
	if err != nil {
		session, _ = NewSession(DefaultOptions(), NewRandSource(cfg.Seed))
	}
	g.session = session
	g.emit(startEvents(session.Grid()))

	g.checkScreenSize()
}

// Resize adapts the layout to a new screen size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	if g.session == nil {
		return
	}
	boardW, boardH := boardDimensions(g.session.Grid().Size())
	minW := boardW + 2
	minH := boardH + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// startEvents describes a freshly seeded board.
func startEvents(grid Grid) []Event {
	events := []Event{{Kind: EventRestarted}}
	for r := range grid.Size() {
		for c := range grid.Size() {
			pos := Position{Row: r, Col: c}
			if t, ok := grid.At(pos); ok {
				events = append(events, Event{Kind: EventSpawned, Position: pos, Value: t.Value})
			}
		}
	}
	return events
}

func (g *Game) emit(events []Event) {
	for _, ev := range events {
		g.listener.OnEvent(g.session.ID(), ev)
	}
}

// directionFor maps a directional action to a move direction.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.anim.update(g.cfg.Animation)

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	changed := false

	switch {
	case in.Has(core.ActionRestart):
		g.anim = animation{}
		g.emit(g.session.Restart())
		changed = true

	case in.Has(core.ActionUndo):
		if g.session.Undo() {
			g.anim = animation{}
			g.emit([]Event{{Kind: EventUndone}})
			changed = true
		}

	case in.Has(core.ActionKeepPlaying):
		if g.session.ContinueAfterWin() {
			g.emit([]Event{{Kind: EventContinued}})
		}

	default:
		if dir, ok := directionFor(in); ok {
			changed = g.move(dir)
		}
	}

	if g.session.Score() > g.best {
		g.best = g.session.Score()
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

// move applies one directional move and starts its animation.
func (g *Game) move(dir Direction) bool {
	prev := g.session.Grid()
	turn, err := g.session.Move(dir)
	if err != nil || turn.Rejected || !turn.Result.Moved {
		return false
	}
	g.anim.start(prev, turn, g.cfg.Animation)
	g.emit(turn.Events)
	return true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Best: g.best}
	}
	st := g.session.State()
	return core.GameState{
		Score:    g.session.Score(),
		Best:     g.best,
		GameOver: st == StateOver,
		Won:      st == StateWonPending,
		Paused:   g.paused || g.tooSmall,
	}
}
