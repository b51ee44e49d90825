package t2048

// Snapshot captures the complete game state for determinism testing,
// replay checks and spectator feeds.
type Snapshot struct {
	SessionID   string  `json:"session_id"`
	Game        string  `json:"game"`
	Tick        uint64  `json:"tick"`
	Score       int     `json:"score"`
	Best        int     `json:"best"`
	Moves       int     `json:"moves"`
	Board       [][]int `json:"board"`
	MaxTile     int     `json:"max_tile"`
	State       State   `json:"state"`
	Won         bool    `json:"won"`
	KeepPlaying bool    `json:"keep_playing"`
	CanUndo     bool    `json:"can_undo"`
	Paused      bool    `json:"paused"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Game: g.ID(), Best: g.best}
	}
	return Snapshot{
		SessionID:   g.session.ID(),
		Game:        g.ID(),
		Tick:        g.tick,
		Score:       g.session.Score(),
		Best:        g.best,
		Moves:       g.session.Moves(),
		Board:       g.session.Grid().Values(),
		MaxTile:     g.session.Grid().MaxTile(),
		State:       g.session.State(),
		Won:         g.session.Won(),
		KeepPlaying: g.session.KeepPlaying(),
		CanUndo:     g.session.CanUndo(),
		Paused:      g.paused || g.tooSmall,
	}
}
