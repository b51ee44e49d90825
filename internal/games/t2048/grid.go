package t2048

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the default board dimension.
const BoardSize = 4

// Board size limits accepted by NewGrid.
const (
	MinBoardSize = 2
	MaxBoardSize = 8
)

// ErrInvalidArgument is returned when an operation receives input outside its domain,
// such as an unknown direction or a non power-of-two tile value.
var ErrInvalidArgument = errors.New("t2048: invalid argument")

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all valid directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Vector is a unit displacement on the grid.
type Vector struct {
	Row, Col int
}

// Vector returns the displacement for the direction.
// ok is false for values outside the four known directions.
func (d Direction) Vector() (v Vector, ok bool) {
	switch d {
	case DirUp:
		return Vector{Row: -1}, true
	case DirDown:
		return Vector{Row: 1}, true
	case DirLeft:
		return Vector{Col: -1}, true
	case DirRight:
		return Vector{Col: 1}, true
	}
	return Vector{}, false
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	_, ok := d.Vector()
	return ok
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDirection converts a name ("up", "down", "left", "right") to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, s)
}

// Position is a 0-indexed (row, col) grid coordinate.
type Position struct {
	Row, Col int
}

// Add returns the position displaced by v.
func (p Position) Add(v Vector) Position {
	return Position{Row: p.Row + v.Row, Col: p.Col + v.Col}
}

// Tile is an occupied cell. ID is stable across moves so a renderer can
// follow a tile; Value is a power of two >= 2.
type Tile struct {
	ID    int
	Value int
}

// Grid is an N×N board. The zero Tile marks an empty cell.
// Grids are values: operations in this package return modified copies and
// never mutate their inputs.
type Grid struct {
	size   int
	cells  []Tile
	nextID int
}

// NewGrid creates an empty grid of the given size.
func NewGrid(size int) (Grid, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return Grid{}, fmt.Errorf("%w: board size %d outside [%d, %d]", ErrInvalidArgument, size, MinBoardSize, MaxBoardSize)
	}
	return Grid{
		size:   size,
		cells:  make([]Tile, size*size),
		nextID: 1,
	}, nil
}

// GridFromValues builds a square grid from row-major values, 0 meaning empty.
// Tiles receive IDs in row-major order starting at 1.
func GridFromValues(rows [][]int) (Grid, error) {
	g, err := NewGrid(len(rows))
	if err != nil {
		return Grid{}, err
	}
	for r, row := range rows {
		if len(row) != g.size {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidArgument, r, len(row), g.size)
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if !IsTileValue(v) {
				return Grid{}, fmt.Errorf("%w: value %d at (%d, %d) is not a power of two >= 2", ErrInvalidArgument, v, r, c)
			}
			g.place(Position{Row: r, Col: c}, v)
		}
	}
	return g, nil
}

// MustGrid is like GridFromValues but panics on error. Intended for tests and fixtures.
func MustGrid(rows [][]int) Grid {
	g, err := GridFromValues(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// IsTileValue reports whether v is a legal tile value (a power of two >= 2).
func IsTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// Size returns the board dimension N.
func (g Grid) Size() int {
	return g.size
}

// InBounds reports whether p lies on the board.
func (g Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

func (g Grid) index(p Position) int {
	return p.Row*g.size + p.Col
}

// At returns the tile at p and whether the cell is occupied.
func (g Grid) At(p Position) (Tile, bool) {
	if !g.InBounds(p) {
		return Tile{}, false
	}
	t := g.cells[g.index(p)]
	return t, t.Value != 0
}

// Value returns the tile value at (row, col), 0 when empty or out of bounds.
func (g Grid) Value(row, col int) int {
	t, _ := g.At(Position{Row: row, Col: col})
	return t.Value
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	cells := make([]Tile, len(g.cells))
	copy(cells, g.cells)
	return Grid{size: g.size, cells: cells, nextID: g.nextID}
}

// place puts a new tile with a fresh ID at p. The caller owns g.
func (g *Grid) place(p Position, value int) Tile {
	t := Tile{ID: g.nextID, Value: value}
	g.nextID++
	g.cells[g.index(p)] = t
	return t
}

func (g *Grid) set(p Position, t Tile) {
	g.cells[g.index(p)] = t
}

func (g *Grid) clear(p Position) {
	g.cells[g.index(p)] = Tile{}
}

// EmptyPositions returns all empty cells in row-major order.
func (g Grid) EmptyPositions() []Position {
	var out []Position
	for r := range g.size {
		for c := range g.size {
			if g.cells[r*g.size+c].Value == 0 {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for _, t := range g.cells {
		if t.Value == 0 {
			return true
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, t := range g.cells {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// Values returns the board as row-major values, 0 for empty cells.
func (g Grid) Values() [][]int {
	out := make([][]int, g.size)
	for r := range g.size {
		out[r] = make([]int, g.size)
		for c := range g.size {
			out[r][c] = g.cells[r*g.size+c].Value
		}
	}
	return out
}

// Tiles returns every occupied cell keyed by position.
func (g Grid) Tiles() map[Position]Tile {
	out := make(map[Position]Tile)
	for i, t := range g.cells {
		if t.Value != 0 {
			out[Position{Row: i / g.size, Col: i % g.size}] = t
		}
	}
	return out
}

// Equal reports whether both grids hold the same tiles (IDs and values) in the same cells.
func (g Grid) Equal(other Grid) bool {
	if g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// SameValues reports whether both grids show the same values, ignoring tile IDs.
func (g Grid) SameValues(other Grid) bool {
	if g.size != other.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i].Value != other.cells[i].Value {
			return false
		}
	}
	return true
}

// String renders the values as rows separated by newlines, "." for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range g.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := g.cells[r*g.size+c].Value
			if v == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}
