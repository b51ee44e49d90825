package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#edc22e"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9f6f2")).Background(lipgloss.Color("#8f7a66"))
)

// tileStyle paints a tile: a background fill with dark text on light tiles.
func tileStyle(bg string, lightText bool) lipgloss.Style {
	fg := "#776e65"
	if lightText {
		fg = "#f9f6f2"
	}
	return lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg))
}

// colorStyles maps display roles to terminal styles.
// Tile colours follow the classic 2048 palette.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorFrame:     lipgloss.NewStyle().Foreground(lipgloss.Color("#bbada0")),
	core.ColorMuted:     dimStyle,
	core.ColorAccent:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9f6f2")).Background(lipgloss.Color("#8f7a66")),
	core.ColorTile2:     tileStyle("#eee4da", false),
	core.ColorTile4:     tileStyle("#ede0c8", false),
	core.ColorTile8:     tileStyle("#f2b179", true),
	core.ColorTile16:    tileStyle("#f59563", true),
	core.ColorTile32:    tileStyle("#f67c5f", true),
	core.ColorTile64:    tileStyle("#f65e3b", true),
	core.ColorTile128:   tileStyle("#edcf72", true),
	core.ColorTile256:   tileStyle("#edcc61", true),
	core.ColorTile512:   tileStyle("#edc850", true),
	core.ColorTile1024:  tileStyle("#edc53f", true),
	core.ColorTile2048:  tileStyle("#edc22e", true),
	core.ColorTileSuper: tileStyle("#3c3a32", true),
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of cells with the same role share one styled segment.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < s.Width() {
			role := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != role {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if role == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(role).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
