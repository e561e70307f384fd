package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/royalur/internal/board"
	"github.com/samdwyer/royalur/internal/rules"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00ff00", true},
		{"#F2C14E", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestParseHexColorComponents(t *testing.T) {
	got, err := ParseHexColor("#102030")
	if err != nil {
		t.Fatalf("ParseHexColor() error = %v", err)
	}
	if want := tcell.NewRGBColor(0x10, 0x20, 0x30); got != want {
		t.Errorf("ParseHexColor(#102030) = %v, want %v", got, want)
	}
}

func TestNewTheme(t *testing.T) {
	theme, err := NewTheme("#FF0000", "#0000FF")
	if err != nil {
		t.Fatalf("NewTheme() error = %v", err)
	}
	if theme.Color(rules.PlayerOne) != tcell.NewRGBColor(255, 0, 0) {
		t.Error("NewTheme() player one should be red")
	}
	if theme.Color(rules.Player(9)) != tcell.ColorWhite {
		t.Error("Theme.Color() of an unknown player should be white")
	}

	if _, err := NewTheme("#FF0000", "nope"); err == nil {
		t.Error("NewTheme() with a bad colour should fail")
	}
}

// screenLine returns row y of the simulated screen as text.
func screenLine(sim tcell.SimulationScreen, y int) string {
	cells, width, _ := sim.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func TestRenderStandardBoard(t *testing.T) {
	screen, sim, err := NewSimulationScreen(80, 24)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error = %v", err)
	}
	defer screen.Close()

	layout := board.MustLoadLayout("standard")
	s, err := layout.NewSnapshot(7, rules.PlayerOne)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	sq := s.Squares["m1"]
	sq.Occupant = rules.PlayerTwo
	s.Squares["m1"] = sq
	s.WaitingPieceNum[rules.PlayerTwo] = 6

	NewRenderer(screen, DefaultTheme()).Render(Frame{
		Layout:   layout,
		Snapshot: s,
		Message:  "hello",
	})

	if got := screenLine(sim, 0); !strings.HasPrefix(got, "Royal Game of Ur (standard)") {
		t.Errorf("title line = %q", got)
	}

	// Top row: t0 is a rosette, columns 4 and 5 are gaps.
	top := screenLine(sim, boardY)
	if !strings.HasPrefix(top[boardX:], "[*] [ ] [ ] [ ]         [*] [ ]") {
		t.Errorf("top row = %q", top)
	}

	middle := screenLine(sim, boardY+cellHeight)
	if !strings.HasPrefix(middle[boardX:], "[ ] [2] [ ] [*]") {
		t.Errorf("middle row = %q", middle)
	}

	found := false
	for y := boardY + 3*cellHeight; y < 24; y++ {
		if strings.Contains(screenLine(sim, y), "player_two   waiting 6  on board 1  home 0/7") {
			found = true
		}
	}
	if !found {
		t.Error("counter line for player_two not rendered")
	}
}

func TestDrawTextClipsAtEdge(t *testing.T) {
	screen, sim, err := NewSimulationScreen(10, 2)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error = %v", err)
	}
	defer screen.Close()

	if got := screen.DrawText(7, 0, "abcdef", tcell.StyleDefault); got != 10 {
		t.Errorf("DrawText() = %d, want 10", got)
	}
	screen.Show()
	if got := screenLine(sim, 0); got != "       abc" {
		t.Errorf("line = %q, want %q", got, "       abc")
	}
}
