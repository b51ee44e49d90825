package t2048

import (
	"errors"
	"testing"
)

func TestNewGrid(t *testing.T) {
	for _, size := range []int{MinBoardSize, BoardSize, MaxBoardSize} {
		g, err := NewGrid(size)
		if err != nil {
			t.Fatalf("NewGrid(%d): %v", size, err)
		}
		if g.Size() != size {
			t.Errorf("Size() = %d, want %d", g.Size(), size)
		}
		if len(g.EmptyPositions()) != size*size {
			t.Errorf("NewGrid(%d) has %d empty cells, want %d", size, len(g.EmptyPositions()), size*size)
		}
	}

	for _, size := range []int{-1, 0, 1, MaxBoardSize + 1} {
		if _, err := NewGrid(size); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewGrid(%d) err = %v, want ErrInvalidArgument", size, err)
		}
	}
}

func TestGridFromValues(t *testing.T) {
	g, err := GridFromValues([][]int{
		{2, 0, 4},
		{0, 8, 0},
		{16, 0, 0},
	})
	if err != nil {
		t.Fatalf("GridFromValues: %v", err)
	}

	// IDs are assigned in row-major order.
	wantIDs := map[Position]Tile{
		{0, 0}: {ID: 1, Value: 2},
		{0, 2}: {ID: 2, Value: 4},
		{1, 1}: {ID: 3, Value: 8},
		{2, 0}: {ID: 4, Value: 16},
	}
	tiles := g.Tiles()
	if len(tiles) != len(wantIDs) {
		t.Fatalf("Tiles() has %d entries, want %d", len(tiles), len(wantIDs))
	}
	for pos, want := range wantIDs {
		if tiles[pos] != want {
			t.Errorf("tile at %v = %+v, want %+v", pos, tiles[pos], want)
		}
	}
}

func TestGridFromValuesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
	}{
		{"not square", [][]int{{2, 0}, {0}}},
		{"not power of two", [][]int{{3, 0}, {0, 0}}},
		{"value one", [][]int{{1, 0}, {0, 0}}},
		{"negative", [][]int{{-2, 0}, {0, 0}}},
		{"too small", [][]int{{2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GridFromValues(tt.rows); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestIsTileValue(t *testing.T) {
	for _, v := range []int{2, 4, 8, 1024, 65536} {
		if !IsTileValue(v) {
			t.Errorf("IsTileValue(%d) = false", v)
		}
	}
	for _, v := range []int{-4, 0, 1, 3, 6, 1000} {
		if IsTileValue(v) {
			t.Errorf("IsTileValue(%d) = true", v)
		}
	}
}

func TestGridQueries(t *testing.T) {
	g := MustGrid([][]int{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	})

	if n := len(g.EmptyPositions()); n != 8 {
		t.Errorf("EmptyPositions count = %d, want 8", n)
	}
	if first := g.EmptyPositions()[0]; first != (Position{0, 1}) {
		t.Errorf("first empty position = %v, want (0, 1)", first)
	}
	if !g.HasEmptyCell() {
		t.Error("HasEmptyCell() = false")
	}
	if g.MaxTile() != 2048 {
		t.Errorf("MaxTile() = %d, want 2048", g.MaxTile())
	}
	if g.Value(1, 3) != 256 {
		t.Errorf("Value(1, 3) = %d, want 256", g.Value(1, 3))
	}
	if g.Value(-1, 0) != 0 || g.Value(0, 4) != 0 {
		t.Error("out-of-bounds Value should be 0")
	}
	if _, ok := g.At(Position{Row: 4, Col: 0}); ok {
		t.Error("At out of bounds reported occupied")
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := MustGrid([][]int{{2, 0}, {0, 4}})
	c := g.Clone()
	c.set(Position{0, 1}, Tile{ID: 99, Value: 8})

	if g.Value(0, 1) != 0 {
		t.Error("mutating a clone changed the original")
	}
	if !g.Equal(MustGrid([][]int{{2, 0}, {0, 4}})) {
		t.Error("original grid changed")
	}
}

func TestGridEquality(t *testing.T) {
	a := MustGrid([][]int{{2, 4}, {0, 0}})
	b := MustGrid([][]int{{2, 4}, {0, 0}})
	if !a.Equal(b) || !a.SameValues(b) {
		t.Error("identical grids should be equal")
	}

	c := b.Clone()
	c.set(Position{0, 0}, Tile{ID: 7, Value: 2})
	if a.Equal(c) {
		t.Error("grids with different IDs should not be Equal")
	}
	if !a.SameValues(c) {
		t.Error("grids with the same values should be SameValues")
	}

	if a.SameValues(MustGrid([][]int{{2, 4, 0}, {0, 0, 0}, {0, 0, 0}})) {
		t.Error("grids of different sizes should differ")
	}
}

func TestGridString(t *testing.T) {
	g := MustGrid([][]int{{2, 0}, {16, 4}})
	want := "2 .\n16 4"
	if g.String() != want {
		t.Errorf("String() = %q, want %q", g.String(), want)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"up", DirUp},
		{"U", DirUp},
		{" down ", DirDown},
		{"l", DirLeft},
		{"Right", DirRight},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseDirection(sideways) err = %v, want ErrInvalidArgument", err)
	}
}

func TestDirectionVectors(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Vector
	}{
		{DirUp, Vector{Row: -1}},
		{DirDown, Vector{Row: 1}},
		{DirLeft, Vector{Col: -1}},
		{DirRight, Vector{Col: 1}},
	}
	for _, tt := range tests {
		got, ok := tt.dir.Vector()
		if !ok || got != tt.want {
			t.Errorf("%v.Vector() = %v, %v; want %v", tt.dir, got, ok, tt.want)
		}
	}

	if Direction(7).Valid() {
		t.Error("Direction(7) should be invalid")
	}
	if s := Direction(7).String(); s != "Direction(7)" {
		t.Errorf("Direction(7).String() = %q", s)
	}
}
