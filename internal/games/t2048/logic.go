package t2048

import "fmt"

// Spawn defaults.
const (
	DefaultWinValue          = 2048
	DefaultSpawn4Probability = 0.10
)

// MergeEvent records a merge produced by a move.
type MergeEvent struct {
	Position  Position // Where the merged tile ends up
	Value     int      // Value after merging
	TileID    int      // Surviving tile
	RetiredID int      // Tile consumed by the merge
}

// TileMove records one tile travelling during a move.
// Merged tiles travel onto the tile they merge with.
type TileMove struct {
	TileID int
	From   Position
	To     Position
	Value  int  // Value before the move
	Merged bool // Whether this tile was consumed by a merge
}

// MoveResult is the outcome of resolving one move.
type MoveResult struct {
	Grid       Grid
	ScoreDelta int
	Moved      bool // Any tile moved or merged
	Won        bool // A merge produced DefaultWinValue
	Merges     []MergeEvent
	Moves      []TileMove
}

// Reached reports whether any merge in this move produced value.
func (r MoveResult) Reached(value int) bool {
	for _, m := range r.Merges {
		if m.Value == value {
			return true
		}
	}
	return false
}

// traversals returns row and column visiting orders so that tiles nearest
// the destination edge are processed first.
func traversals(size int, v Vector) (rows, cols []int) {
	rows = make([]int, size)
	cols = make([]int, size)
	for i := range size {
		rows[i] = i
		cols[i] = i
	}
	if v.Row == 1 {
		reverse(rows)
	}
	if v.Col == 1 {
		reverse(cols)
	}
	return rows, cols
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// farthestPosition walks from p along v over empty cells.
// farthest is the last empty cell reached (p itself if none); next is the
// first cell beyond it, valid only when hasNext is true.
func (g Grid) farthestPosition(p Position, v Vector) (farthest, next Position, hasNext bool) {
	cell := p
	for {
		farthest = cell
		cell = farthest.Add(v)
		if !g.InBounds(cell) {
			return farthest, cell, false
		}
		if _, occupied := g.At(cell); occupied {
			return farthest, cell, true
		}
	}
}

// ResolveMove slides every tile on g in direction dir and merges equal
// neighbours. Each target cell absorbs at most one merge per move.
// The input grid is left untouched; the new grid is in the result.
func ResolveMove(g Grid, dir Direction) (MoveResult, error) {
	v, ok := dir.Vector()
	if !ok {
		return MoveResult{Grid: g}, fmt.Errorf("%w: direction %d", ErrInvalidArgument, int(dir))
	}

	out := g.Clone()
	res := MoveResult{}
	merged := make([]bool, len(out.cells))
	rows, cols := traversals(out.size, v)

	for _, r := range rows {
		for _, c := range cols {
			pos := Position{Row: r, Col: c}
			tile, occupied := out.At(pos)
			if !occupied {
				continue
			}

			farthest, next, hasNext := out.farthestPosition(pos, v)

			if hasNext {
				target, _ := out.At(next)
				if target.Value == tile.Value && !merged[out.index(next)] {
					target.Value *= 2
					out.set(next, target)
					out.clear(pos)
					merged[out.index(next)] = true

					res.ScoreDelta += target.Value
					res.Moved = true
					if target.Value == DefaultWinValue {
						res.Won = true
					}
					res.Merges = append(res.Merges, MergeEvent{
						Position:  next,
						Value:     target.Value,
						TileID:    target.ID,
						RetiredID: tile.ID,
					})
					res.Moves = append(res.Moves, TileMove{
						TileID: tile.ID,
						From:   pos,
						To:     next,
						Value:  tile.Value,
						Merged: true,
					})
					continue
				}
			}

			if farthest != pos {
				out.clear(pos)
				out.set(farthest, tile)
				res.Moved = true
				res.Moves = append(res.Moves, TileMove{
					TileID: tile.ID,
					From:   pos,
					To:     farthest,
					Value:  tile.Value,
				})
			}
		}
	}

	if !res.Moved {
		// No cell changed; hand back the caller's grid unchanged.
		res.Grid = g
		return res, nil
	}
	res.Grid = out
	return res, nil
}

// SpawnedTile describes a tile added by SpawnRandomTile.
type SpawnedTile struct {
	Tile     Tile
	Position Position
}

// SpawnRandomTile places a 2 (or a 4 with DefaultSpawn4Probability) on a
// uniformly chosen empty cell. On a full grid it returns g unchanged and ok=false.
func SpawnRandomTile(g Grid, rng RandomSource) (Grid, SpawnedTile, bool) {
	return SpawnRandomTileWithOdds(g, rng, DefaultSpawn4Probability)
}

// SpawnRandomTileWithOdds is SpawnRandomTile with a custom probability of spawning a 4.
func SpawnRandomTileWithOdds(g Grid, rng RandomSource, spawn4Prob float64) (Grid, SpawnedTile, bool) {
	empty := g.EmptyPositions()
	if len(empty) == 0 {
		return g, SpawnedTile{}, false
	}

	pos := empty[rng.Intn(len(empty))]

	value := 2
	if rng.Float64() < spawn4Prob {
		value = 4
	}

	out := g.Clone()
	tile := out.place(pos, value)
	return out, SpawnedTile{Tile: tile, Position: pos}, true
}

// HasAvailableMoves returns true if any cell is empty or any two 4-neighbours
// share a value. Only right and down neighbours are checked since adjacency is symmetric.
func HasAvailableMoves(g Grid) bool {
	if g.HasEmptyCell() {
		return true
	}
	for r := range g.size {
		for c := range g.size {
			val := g.Value(r, c)
			if c < g.size-1 && g.Value(r, c+1) == val {
				return true
			}
			if r < g.size-1 && g.Value(r+1, c) == val {
				return true
			}
		}
	}
	return false
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(g Grid) bool {
	return !HasAvailableMoves(g)
}

// SlideLine slides and merges a single line of values towards index 0 using
// the filter-then-pairwise-merge approach. It returns the new line and the
// score gained. It is an independent formulation of one row of ResolveMove
// and is used to cross-check it.
func SlideLine(line []int) (result []int, score int) {
	result = make([]int, len(line))
	writePos := 0
	lastMerged := false

	for _, v := range line {
		if v == 0 {
			continue
		}

		if writePos > 0 && !lastMerged && result[writePos-1] == v {
			// Merge with previous tile
			result[writePos-1] *= 2
			score += result[writePos-1]
			lastMerged = true
			continue
		}

		result[writePos] = v
		writePos++
		lastMerged = false
	}

	return result, score
}
