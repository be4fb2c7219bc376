package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	expected := strings.Repeat(" ", 8)
	for y := range 3 {
		if got := s.Row(y); got != expected {
			t.Errorf("Row(%d) = %q, expected blank", y, got)
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, 2)
	if s.Width() != 0 {
		t.Errorf("Width() = %d, expected 0", s.Width())
	}
	s.Set(0, 0, 'X') // must not panic
}

func TestScreenSetOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)

	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 4}} {
		s.Set(p[0], p[1], 'X')
		if c := s.GetCell(p[0], p[1]); c != blank {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], c)
		}
	}
	if strings.Contains(s.String(), "X") {
		t.Error("out-of-bounds writes leaked into the screen")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(5, 1)
	s.SetColored(1, 0, '◆', ColorCyan)
	s.DrawTextColored(3, 0, "ab", ColorRed)

	tests := []struct {
		x        int
		expected Cell
	}{
		{0, blank},
		{1, Cell{Rune: '◆', Color: ColorCyan}},
		{3, Cell{Rune: 'a', Color: ColorRed}},
		{4, Cell{Rune: 'b', Color: ColorRed}},
	}
	for _, tt := range tests {
		if got := s.GetCell(tt.x, 0); got != tt.expected {
			t.Errorf("GetCell(%d, 0) = %+v, expected %+v", tt.x, got, tt.expected)
		}
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(3, 0, "Score")
	if got := s.Row(0); got != "   Sc" {
		t.Errorf("Row(0) = %q, expected %q", got, "   Sc")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawRect(NewRect(0, 0, 3, 2), '#')
	s.Clear()
	if got := s.String(); got != "   \n   " {
		t.Errorf("String() = %q, expected blank rows", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3))

	expected := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestScreenDrawBoxTooSmall(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawBox(NewRect(1, 1, 1, 1))
	if strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")) != "" {
		t.Error("a box narrower than two cells should draw nothing")
	}
}

func TestScreenDrawVLine(t *testing.T) {
	s := NewScreen(2, 4)
	s.DrawVLine(1, 1, 5, '┊', ColorGray)

	if s.GetCell(1, 0) != blank {
		t.Error("line should start at y=1")
	}
	for y := 1; y < 4; y++ {
		if c := s.GetCell(1, y); c.Rune != '┊' || c.Color != ColorGray {
			t.Errorf("GetCell(1, %d) = %+v, expected gray ┊", y, c)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	s.Resize(2, 3)
	if got := s.String(); got != "ab\nde\n  " {
		t.Errorf("after shrink/grow String() = %q", got)
	}

	s.Resize(4, 1)
	if got := s.Row(0); got != "ab  " {
		t.Errorf("Row(0) = %q, expected %q", got, "ab  ")
	}
	if s.Row(1) != "" {
		t.Error("Row() out of range should be empty")
	}
}
