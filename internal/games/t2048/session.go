package t2048

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the lifecycle state of a Session.
type State string

const (
	StatePlaying    State = "playing"
	StateWonPending State = "won"        // Win tile reached, waiting for keep-playing
	StateContinuing State = "continuing" // Won, player chose to keep playing
	StateOver       State = "over"       // No moves left
)

// Options configures a Session.
type Options struct {
	Size         int
	WinValue     int
	Spawn4Prob   float64
	InitialTiles int
	DisableUndo  bool
}

// DefaultOptions returns the classic 4×4 rules.
func DefaultOptions() Options {
	return Options{
		Size:         BoardSize,
		WinValue:     DefaultWinValue,
		Spawn4Prob:   DefaultSpawn4Probability,
		InitialTiles: 2,
	}
}

func (o Options) validate() error {
	if o.Size < MinBoardSize || o.Size > MaxBoardSize {
		return fmt.Errorf("%w: board size %d outside [%d, %d]", ErrInvalidArgument, o.Size, MinBoardSize, MaxBoardSize)
	}
	if !IsTileValue(o.WinValue) || o.WinValue < 4 {
		return fmt.Errorf("%w: win value %d must be a power of two >= 4", ErrInvalidArgument, o.WinValue)
	}
	if o.Spawn4Prob < 0 || o.Spawn4Prob > 1 {
		return fmt.Errorf("%w: spawn4 probability %v outside [0, 1]", ErrInvalidArgument, o.Spawn4Prob)
	}
	if o.InitialTiles < 0 || o.InitialTiles > o.Size*o.Size {
		return fmt.Errorf("%w: %d initial tiles on a %dx%d board", ErrInvalidArgument, o.InitialTiles, o.Size, o.Size)
	}
	return nil
}

// undoState is the session state captured before the last successful move.
type undoState struct {
	grid        Grid
	score       int
	won         bool
	over        bool
	keepPlaying bool
}

// Turn is everything that happened during one Session.Move call.
type Turn struct {
	Direction Direction
	Result    MoveResult
	Spawned   *SpawnedTile
	Rejected  bool // The session state did not accept moves
	Events    []Event
}

// Session is a single game: grid, score and win/over flags.
// A Session is not safe for concurrent use; each caller owns its own.
type Session struct {
	id          string
	opts        Options
	rng         RandomSource
	grid        Grid
	score       int
	won         bool
	over        bool
	keepPlaying bool
	moves       int
	undo        *undoState
}

// NewSession creates a session and seeds the board with the initial tiles.
func NewSession(opts Options, rng RandomSource) (*Session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}

	s := &Session{
		id:   uuid.NewString(),
		opts: opts,
		rng:  rng,
	}
	s.Restart()
	return s, nil
}

// Restart discards the current game and starts a fresh one.
// The undo snapshot is cleared.
func (s *Session) Restart() []Event {
	// Size was validated in NewSession.
	grid, _ := NewGrid(s.opts.Size)
	s.grid = grid
	s.score = 0
	s.won = false
	s.over = false
	s.keepPlaying = false
	s.moves = 0
	s.undo = nil

	events := []Event{{Kind: EventRestarted}}
	for range s.opts.InitialTiles {
		if spawned, ok := s.spawn(); ok {
			events = append(events, spawnEvent(spawned))
		}
	}
	return events
}

func (s *Session) spawn() (SpawnedTile, bool) {
	grid, spawned, ok := SpawnRandomTileWithOdds(s.grid, s.rng, s.opts.Spawn4Prob)
	s.grid = grid
	return spawned, ok
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Options returns the rules this session plays by.
func (s *Session) Options() Options { return s.opts }

// Grid returns the current board.
func (s *Session) Grid() Grid { return s.grid }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.score }

// Won reports whether the win tile has been reached in this game.
func (s *Session) Won() bool { return s.won }

// Over reports whether no moves remain.
func (s *Session) Over() bool { return s.over }

// KeepPlaying reports whether the player chose to continue after winning.
func (s *Session) KeepPlaying() bool { return s.keepPlaying }

// Moves returns the number of successful moves in this game.
func (s *Session) Moves() int { return s.moves }

// CanUndo reports whether an undo snapshot is available.
func (s *Session) CanUndo() bool { return s.undo != nil && !s.opts.DisableUndo }

// State derives the lifecycle state from the flags.
func (s *Session) State() State {
	switch {
	case s.over:
		return StateOver
	case s.won && !s.keepPlaying:
		return StateWonPending
	case s.won:
		return StateContinuing
	default:
		return StatePlaying
	}
}

// AcceptsMoves reports whether directional moves are currently allowed.
func (s *Session) AcceptsMoves() bool {
	st := s.State()
	return st == StatePlaying || st == StateContinuing
}

// Move resolves a move, spawns a tile if anything changed and updates the flags.
// Moves while the game is over or waiting for keep-playing are rejected without error.
func (s *Session) Move(dir Direction) (Turn, error) {
	turn := Turn{Direction: dir}
	if !dir.Valid() {
		return turn, fmt.Errorf("%w: direction %d", ErrInvalidArgument, int(dir))
	}
	if !s.AcceptsMoves() {
		turn.Rejected = true
		return turn, nil
	}

	res, err := ResolveMove(s.grid, dir)
	if err != nil {
		return turn, err
	}
	turn.Result = res
	if !res.Moved {
		return turn, nil
	}

	s.undo = &undoState{
		grid:        s.grid.Clone(),
		score:       s.score,
		won:         s.won,
		over:        s.over,
		keepPlaying: s.keepPlaying,
	}

	s.grid = res.Grid
	s.score += res.ScoreDelta
	s.moves++

	turn.Events = append(turn.Events, Event{Kind: EventMoved, Direction: dir})
	for _, m := range res.Merges {
		turn.Events = append(turn.Events, Event{Kind: EventMerged, Position: m.Position, Value: m.Value})
	}

	wonNow := !s.won && res.Reached(s.opts.WinValue)
	if wonNow {
		s.won = true
	}

	if spawned, ok := s.spawn(); ok {
		turn.Spawned = &spawned
		turn.Events = append(turn.Events, spawnEvent(spawned))
	}

	s.over = !HasAvailableMoves(s.grid)

	if wonNow {
		turn.Events = append(turn.Events, Event{Kind: EventWon, Value: s.opts.WinValue})
	}
	if s.over {
		turn.Events = append(turn.Events, Event{Kind: EventGameOver, Value: s.score})
	}

	return turn, nil
}

// ContinueAfterWin lets the player keep playing after reaching the win tile.
// It is a no-op in any other state.
func (s *Session) ContinueAfterWin() bool {
	if s.State() != StateWonPending {
		return false
	}
	s.keepPlaying = true
	return true
}

// Undo restores the state captured before the last successful move.
// Only one level is kept: a second consecutive Undo is a no-op.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	u := s.undo
	s.grid = u.grid
	s.score = u.score
	s.won = u.won
	s.over = u.over
	s.keepPlaying = u.keepPlaying
	s.moves--
	s.undo = nil
	return true
}
