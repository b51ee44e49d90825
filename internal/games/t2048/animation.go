package t2048

import "github.com/vovakirdan/tui-2048/internal/config"

// animPhase represents the current phase of animation.
type animPhase int

const (
	phaseNone animPhase = iota
	phaseSlide
	phasePop
)

// tileAnim is one tile travelling across the board.
type tileAnim struct {
	value  int
	from   Position
	to     Position
	merged bool
}

// animation is presentation state for the last move. The session has
// already applied the move; the animation only delays what is drawn.
type animation struct {
	phase   animPhase
	ticks   int
	sliding []tileAnim
	still   map[Position]int // Tiles that did not move, with pre-move values
	pops    []Position       // Merge targets and the spawned tile
}

// start begins the slide phase for a completed turn.
func (a *animation) start(prev Grid, turn Turn, cfg config.AnimationConfig) {
	*a = animation{}
	if cfg.SlideTicks <= 0 && cfg.PopTicks <= 0 {
		return
	}

	moving := make(map[Position]bool, len(turn.Result.Moves))
	for _, m := range turn.Result.Moves {
		moving[m.From] = true
		a.sliding = append(a.sliding, tileAnim{
			value:  m.Value,
			from:   m.From,
			to:     m.To,
			merged: m.Merged,
		})
	}

	a.still = make(map[Position]int)
	for pos, t := range prev.Tiles() {
		if !moving[pos] {
			a.still[pos] = t.Value
		}
	}

	for _, m := range turn.Result.Merges {
		a.pops = append(a.pops, m.Position)
	}
	if turn.Spawned != nil {
		a.pops = append(a.pops, turn.Spawned.Position)
	}

	switch {
	case cfg.SlideTicks > 0:
		a.phase = phaseSlide
	case len(a.pops) > 0:
		a.phase = phasePop
	}
}

// update advances the animation by one tick.
func (a *animation) update(cfg config.AnimationConfig) {
	if a.phase == phaseNone {
		return
	}
	a.ticks++

	switch a.phase {
	case phaseSlide:
		if a.ticks >= cfg.SlideTicks {
			a.ticks = 0
			if cfg.PopTicks > 0 && len(a.pops) > 0 {
				a.phase = phasePop
			} else {
				a.phase = phaseNone
			}
		}
	case phasePop:
		if a.ticks >= cfg.PopTicks {
			*a = animation{}
		}
	}
}

// active reports whether an animation is in progress.
func (a *animation) active() bool {
	return a.phase != phaseNone
}

// progress returns the completion of the current phase in [0, 1].
func (a *animation) progress(cfg config.AnimationConfig) float64 {
	var duration int
	switch a.phase {
	case phaseSlide:
		duration = cfg.SlideTicks
	case phasePop:
		duration = cfg.PopTicks
	default:
		return 1
	}
	if duration <= 0 {
		return 1
	}
	p := float64(a.ticks) / float64(duration)
	if p > 1 {
		p = 1
	}
	return p
}

// popping reports whether pos is highlighted in the pop phase.
func (a *animation) popping(pos Position) bool {
	if a.phase != phasePop {
		return false
	}
	for _, p := range a.pops {
		if p == pos {
			return true
		}
	}
	return false
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolate returns the fractional board position of the tile at progress t.
func (ta tileAnim) interpolate(t float64) (row, col float64) {
	e := easeOutQuad(t)
	row = float64(ta.from.Row) + float64(ta.to.Row-ta.from.Row)*e
	col = float64(ta.from.Col) + float64(ta.to.Col-ta.from.Col)*e
	return row, col
}
