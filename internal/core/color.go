package core

// Color is the display role of a screen cell.
// Games pick roles; the platform decides how each role looks on a terminal.
type Color uint8

const (
	ColorDefault Color = iota
	ColorFrame         // Board borders
	ColorMuted         // Secondary text such as hints
	ColorAccent        // Highlights, e.g. a tile that just merged

	// Tile roles, one per power of two from 2 to 2048.
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper // Every tile above 2048
)
