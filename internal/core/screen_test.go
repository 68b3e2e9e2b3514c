package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'V', ColorYellow)
	if cell := s.GetCell(5, 5); cell.Rune != 'V' || cell.Color != ColorYellow {
		t.Errorf("GetCell(5, 5) = %+v, expected yellow 'V'", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 1)
	s.DrawTextCentered(0, "Veda", ColorGreen)

	if got := strings.TrimSpace(s.Row(0)); got != "Veda" {
		t.Errorf("Row(0) = %q, expected %q", got, "Veda")
	}
	if s.GetCell(8, 0).Color != ColorGreen {
		t.Error("centered text should carry its color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawRect(NewRect(0, 0, 10, 5), 'x', ColorDefault)
	s.DrawBox(NewRect(1, 1, 5, 3), ColorWhite)

	if s.Get(1, 1) != '┌' || s.Get(5, 1) != '┐' || s.Get(1, 3) != '└' || s.Get(5, 3) != '┘' {
		t.Errorf("box corners wrong:\n%s", s.String())
	}
	if s.Get(3, 2) != ' ' {
		t.Error("box interior should be blanked")
	}
	if s.Get(0, 0) != 'x' {
		t.Error("cells outside the box must be untouched")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(2, 2, 'X')
	s.Resize(20, 5)

	if s.Width() != 20 || s.Height() != 5 {
		t.Errorf("size after Resize = %dx%d, expected 20x5", s.Width(), s.Height())
	}
	if s.Get(2, 2) != ' ' {
		t.Error("Resize should clear the buffer")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawHLine(0, 1, 3, '─', ColorGray)

	if got := s.String(); got != "abc\n───" {
		t.Errorf("String() = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"What is the first stage", 10, []string{"What is", "the first", "stage"}},
		{"short", 10, []string{"short"}},
		{"abcdefghijkl", 5, []string{"abcde", "fghij", "kl"}},
		{"", 10, nil},
	}

	for _, tc := range tests {
		got := WrapText(tc.text, tc.width)
		if len(got) != len(tc.want) {
			t.Errorf("WrapText(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("WrapText(%q, %d)[%d] = %q, expected %q", tc.text, tc.width, i, got[i], tc.want[i])
			}
		}
	}
}

func TestSetColoredOutsidePalette(t *testing.T) {
	s := NewScreen(4, 1)
	s.SetColored(0, 0, 'x', colorCount)
	s.SetColored(1, 0, 'y', ColorGray)

	if c := s.GetCell(0, 0).Color; c != ColorDefault {
		t.Errorf("color outside palette = %d, expected ColorDefault", c)
	}
	if c := s.GetCell(1, 0).Color; c != ColorGray {
		t.Errorf("GetCell(1, 0).Color = %d, expected ColorGray", c)
	}
	if colorCount.Valid() || !ColorGray.Valid() {
		t.Error("Valid() should accept palette slots only")
	}
}
