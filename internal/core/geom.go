// Package core holds the types shared by games and the terminal platform:
// the screen buffer, display roles, input frames and runtime config.
// It imports no UI library, so games built on it stay testable headless.
package core

// Rect is an area of the screen in cells.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// Right returns the first column past the rect.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row below the rect.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether cell (x, y) lies in the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the middle cell, rounding down.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Abs returns |x|.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
