package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// difficultyInfo describes a preset in the difficulty picker.
var difficultyInfo = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "Fewer 4s, undo allowed",
	config.DifficultyNormal: "Configured rules",
	config.DifficultyHard:   "More 4s, no undo",
}

// difficultyPicker is the second menu stage, shown after a board is chosen.
type difficultyPicker struct {
	cursor int
}

func newDifficultyPicker(initial config.DifficultyPreset) difficultyPicker {
	p := difficultyPicker{}
	for i, d := range config.DifficultyPresets {
		if d == initial {
			p.cursor = i
		}
	}
	return p
}

func (p *difficultyPicker) up() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *difficultyPicker) down() {
	if p.cursor < len(config.DifficultyPresets)-1 {
		p.cursor++
	}
}

func (p difficultyPicker) selected() config.DifficultyPreset {
	return config.DifficultyPresets[p.cursor]
}

func (p difficultyPicker) view(title string, width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", width))
	b.WriteString("\n\n")

	for i, d := range config.DifficultyPresets {
		cursor := "  "
		name := fmt.Sprintf("%-6s", strings.ToUpper(string(d)))
		if i == p.cursor {
			cursor = "> "
			name = cursorStyle.Render(name)
		}
		b.WriteString(centerText(cursor+name+"  "+dimStyle.Render(difficultyInfo[d]), width))
		b.WriteString("\n")
	}

	return b.String()
}
