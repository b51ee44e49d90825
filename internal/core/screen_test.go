package core

import (
	"strings"
	"testing"
)

func picture(rows ...string) string {
	return strings.Join(rows, "\n")
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		draw func(s *Screen)
		want string
	}{
		{
			name: "blank",
			w:    3, h: 2,
			draw: func(*Screen) {},
			want: picture("   ", "   "),
		},
		{
			name: "text clipped at the right edge",
			w:    6, h: 2,
			draw: func(s *Screen) {
				s.DrawText(1, 0, "ab")
				s.DrawText(4, 1, "xyz")
			},
			want: picture(" ab   ", "    xy"),
		},
		{
			name: "writes outside are ignored",
			w:    3, h: 1,
			draw: func(s *Screen) {
				s.Set(-1, 0, 'A')
				s.Set(3, 0, 'A')
				s.Set(0, -1, 'A')
				s.Set(0, 1, 'A')
				s.DrawText(-1, 0, "xy")
			},
			want: picture("y  "),
		},
		{
			name: "centered text",
			w:    8, h: 1,
			draw: func(s *Screen) { s.DrawTextCentered(0, "2048") },
			want: picture("  2048  "),
		},
		{
			name: "filled rect",
			w:    5, h: 3,
			draw: func(s *Screen) { s.DrawRect(Rect{X: 1, Y: 1, W: 3, H: 2}, '#', ColorDefault) },
			want: picture("     ", " ### ", " ### "),
		},
		{
			name: "box",
			w:    6, h: 4,
			draw: func(s *Screen) { s.DrawBox(Rect{X: 0, Y: 0, W: 5, H: 4}, ColorFrame) },
			want: picture(
				"┌───┐ ",
				"│   │ ",
				"│   │ ",
				"└───┘ ",
			),
		},
		{
			name: "box larger than the screen",
			w:    3, h: 2,
			draw: func(s *Screen) { s.DrawBox(Rect{X: 1, Y: 0, W: 4, H: 4}, ColorFrame) },
			want: picture(" ┌─", " │ "),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(tt.w, tt.h)
			tt.draw(s)
			if got := s.String(); got != tt.want {
				t.Errorf("screen:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawRect(Rect{X: 0, Y: 0, W: 6, H: 3}, ' ', ColorTile8)
	s.DrawTextColor(1, 1, "8", ColorAccent)

	if c := s.GetCell(1, 1); c.Rune != '8' || c.Color != ColorAccent {
		t.Errorf("GetCell(1, 1) = %+v", c)
	}
	if c := s.GetCell(5, 2); c.Color != ColorTile8 {
		t.Errorf("fill color = %v, want ColorTile8", c.Color)
	}

	s.Set(5, 2, 'x')
	if s.GetCell(5, 2).Color != ColorDefault {
		t.Error("Set kept the previous color")
	}
	if s.GetCell(-1, 0) != (Cell{Rune: ' '}) {
		t.Errorf("GetCell outside = %+v, want a blank cell", s.GetCell(-1, 0))
	}

	s.Clear()
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("after Clear (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "top")
	s.DrawText(0, 2, "bottom")

	s.Resize(4, 2)
	if got, want := s.String(), picture("top ", "    "); got != want {
		t.Errorf("shrunk:\n%s\nwant:\n%s", got, want)
	}

	s.Resize(5, 3)
	if got, want := s.String(), picture("top  ", "     ", "     "); got != want {
		t.Errorf("grown:\n%s\nwant:\n%s", got, want)
	}

	s.Resize(-3, 1)
	if s.Width() != 0 || s.Height() != 1 {
		t.Errorf("negative width gave %dx%d", s.Width(), s.Height())
	}

	empty := NewScreen(0, 0)
	empty.Resize(2, 1)
	if empty.String() != "  " {
		t.Errorf("resized empty screen = %q", empty.String())
	}
}

func TestScreenRowOutside(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 1, "ab")
	if s.Row(1) != "ab  " {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
	for _, y := range []int{-1, 2} {
		if s.Row(y) != "    " {
			t.Errorf("Row(%d) = %q, want blanks", y, s.Row(y))
		}
	}
}
