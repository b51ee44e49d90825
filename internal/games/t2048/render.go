package t2048

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardDimensions returns the board size on screen, borders included.
func boardDimensions(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// TileColor returns the display role for a tile value.
// Values that are not tiles get core.ColorDefault.
func TileColor(value int) core.Color {
	if !IsTileValue(value) {
		return core.ColorDefault
	}
	c := core.ColorTile2 + core.Color(bits.Len(uint(value))-2)
	return min(c, core.ColorTileSuper)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.session.Grid().Size()
	boardW, boardH := boardDimensions(size)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGridLines(dst, boardX, boardY, size)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCenteredColor(y+1, "Please resize terminal", core.ColorMuted)
}

// renderHUD draws the score, best score and move counter.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	dst.DrawText(boardX+(boardW-len(title))/2, 0, title)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.session.Score()))

	bestStr := fmt.Sprintf("Best: %d", g.best)
	bestX := boardX + boardW - len(bestStr)
	if bestX < boardX {
		bestX = boardX
	}
	dst.DrawText(bestX, 1, bestStr)

	info := fmt.Sprintf("Moves: %d  Max: %d", g.session.Moves(), g.session.Grid().MaxTile())
	if g.session.CanUndo() {
		info += "  [U]ndo"
	}
	dst.DrawText(boardX+(boardW-len(info))/2, 2, info)
}

// renderGridLines draws the cell borders.
func (g *Game) renderGridLines(dst *core.Screen, boardX, boardY, size int) {
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == size:
				corner = '┐'
			case y == size && x == 0:
				corner = '└'
			case y == size && x == size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColor(px, py, corner, core.ColorFrame)

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorFrame)
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorFrame)
				}
			}
		}
	}
}

// renderTiles draws tiles, following the slide animation when one is running.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	if g.anim.phase == phaseSlide {
		for pos, value := range g.anim.still {
			drawTile(dst, boardX, boardY, float64(pos.Row), float64(pos.Col), value, TileColor(value))
		}
		t := g.anim.progress(g.cfg.Animation)
		for _, ta := range g.anim.sliding {
			row, col := ta.interpolate(t)
			drawTile(dst, boardX, boardY, row, col, ta.value, TileColor(ta.value))
		}
		return
	}

	for pos, tile := range g.session.Grid().Tiles() {
		color := TileColor(tile.Value)
		if g.anim.popping(pos) {
			color = core.ColorAccent
		}
		drawTile(dst, boardX, boardY, float64(pos.Row), float64(pos.Col), tile.Value, color)
	}
}

// drawTile fills the cell at a possibly fractional board position and centers the value in it.
func drawTile(dst *core.Screen, boardX, boardY int, row, col float64, value int, color core.Color) {
	cellX := boardX + int(math.Round(col*cellWidth)) + 1
	cellY := boardY + int(math.Round(row*cellHeight)) + 1
	inner := core.Rect{X: cellX, Y: cellY, W: cellWidth - 1, H: cellHeight - 1}
	dst.DrawRect(inner, ' ', color)

	valStr := strconv.Itoa(value)
	padLeft := max((inner.W-len(valStr))/2, 0)
	dst.DrawTextColor(cellX+padLeft, cellY, valStr, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX, centerY := core.Rect{X: boardX, Y: boardY, W: boardW, H: boardH}.Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	switch g.session.State() {
	case StateWonPending:
		g.drawOverlay(dst, centerX, centerY,
			"YOU WIN!",
			fmt.Sprintf("Reached %d", g.session.Options().WinValue),
			"C: keep playing",
			"R: restart")
	case StateOver:
		lines := []string{
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.session.Score()),
			fmt.Sprintf("Max tile: %d", g.session.Grid().MaxTile()),
		}
		if g.session.CanUndo() {
			lines = append(lines, "U: undo  R: restart")
		} else {
			lines = append(lines, "R: restart")
		}
		g.drawOverlay(dst, centerX, centerY, lines...)
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	box := core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH}
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorAccent)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | U: Undo | C: Continue | P: Pause | R: Restart | Q: Quit"
}
