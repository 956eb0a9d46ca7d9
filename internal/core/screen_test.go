package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)
	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("got %dx%d, want 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("cell (%d,%d) = %+v, want blank", x, y, c)
			}
		}
	}
}

func TestScreenSetWithColor(t *testing.T) {
	s := NewScreen(6, 3)
	s.SetWithColor(2, 1, '●', ColorBrightRed)

	got := s.GetCell(2, 1)
	if got.Rune != '●' || got.Color != ColorBrightRed {
		t.Errorf("GetCell(2,1) = %+v", got)
	}

	// Plain Set resets the color.
	s.Set(2, 1, 'x')
	if c := s.GetCell(2, 1); c.Color != ColorDefault || c.Rune != 'x' {
		t.Errorf("after Set got %+v", c)
	}

	for _, p := range [][2]int{{-1, 0}, {6, 0}, {0, -1}, {0, 3}} {
		s.SetWithColor(p[0], p[1], 'Z', ColorCyan)
		if s.Get(p[0], p[1]) != ' ' {
			t.Errorf("out of bounds (%d,%d) should read as space", p[0], p[1])
		}
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(4, 4)
	s.Fill('#')
	if s.Row(3) != "####" {
		t.Errorf("Row(3) after Fill = %q", s.Row(3))
	}
	s.SetWithColor(0, 0, 'A', ColorGreen)
	s.Clear()
	if c := s.GetCell(0, 0); c != blank {
		t.Errorf("after Clear got %+v", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"inside", 2, "Hello", "  Hello   "},
		{"clipped right", 7, "Hello", "       Hel"},
		{"clipped left", -2, "Hello", "llo       "},
		{"multibyte", 0, "★★", "★★        "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 1)
			s.DrawText(tt.x, 0, tt.text)
			if got := s.Row(0); got != tt.want {
				t.Errorf("Row(0) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenDrawTextWithColor(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextWithColor(1, 1, "abc", ColorYellow)
	for x := 1; x <= 3; x++ {
		if c := s.GetCell(x, 1); c.Color != ColorYellow {
			t.Errorf("cell %d color = %v, want yellow", x, c.Color)
		}
	}
	if s.GetCell(4, 1).Color != ColorDefault {
		t.Error("color leaked past the text")
	}

	s.DrawTextCenteredWithColor(0, "★★", ColorCyan)
	if s.Get(4, 0) != '★' || s.GetCell(5, 0).Color != ColorCyan {
		t.Errorf("centered text misplaced: %q", s.Row(0))
	}
}

func TestScreenShapes(t *testing.T) {
	s := NewScreen(8, 6)
	s.DrawRect(NewRect(1, 1, 2, 2), '#')
	s.DrawHLine(4, 0, 3, '-')
	s.DrawVLine(7, 2, 3, '|')

	want := []string{
		"    --- ",
		" ##     ",
		" ##    |",
		"       |",
		"       |",
		"        ",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("String() =\n%s", got)
	}
}

func TestScreenDrawBoxWithColor(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBoxWithColor(NewRect(0, 0, 6, 4), ColorGray)

	want := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("String() =\n%s", got)
	}
	if s.GetCell(0, 0).Color != ColorGray || s.GetCell(5, 3).Color != ColorGray {
		t.Error("box corners should carry the color")
	}
	if s.GetCell(2, 1).Color != ColorDefault {
		t.Error("box interior should stay uncolored")
	}
}

func TestScreenResizeKeepsCells(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextWithColor(0, 0, "Hello", ColorBlue)

	s.Resize(3, 2)
	if s.Row(0) != "Hel" {
		t.Errorf("Row(0) after shrink = %q", s.Row(0))
	}
	s.Resize(8, 4)
	if !strings.HasPrefix(s.Row(0), "Hel ") {
		t.Errorf("Row(0) after grow = %q", s.Row(0))
	}
	if s.GetCell(1, 0).Color != ColorBlue {
		t.Error("color lost across resize")
	}
	if s.Row(-1) != strings.Repeat(" ", 8) {
		t.Errorf("out of range row = %q", s.Row(-1))
	}
}
