package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/royalur/internal/rules"
)

// Theme holds the colour of each player's pieces.
type Theme struct {
	Players map[rules.Player]tcell.Color
}

// DefaultTheme is used when no colours are configured.
func DefaultTheme() Theme {
	return Theme{Players: map[rules.Player]tcell.Color{
		rules.PlayerOne: MustParseHexColor("#F2C14E"),
		rules.PlayerTwo: MustParseHexColor("#5FB7D4"),
	}}
}

// NewTheme builds a theme from hex colours, "#RRGGBB" or "RRGGBB".
func NewTheme(one, two string) (Theme, error) {
	c1, err := ParseHexColor(one)
	if err != nil {
		return Theme{}, fmt.Errorf("player one colour: %w", err)
	}
	c2, err := ParseHexColor(two)
	if err != nil {
		return Theme{}, fmt.Errorf("player two colour: %w", err)
	}
	return Theme{Players: map[rules.Player]tcell.Color{
		rules.PlayerOne: c1,
		rules.PlayerTwo: c2,
	}}, nil
}

// Color returns p's colour, white for unknown players.
func (t Theme) Color(p rules.Player) tcell.Color {
	if c, ok := t.Players[p]; ok {
		return c
	}
	return tcell.ColorWhite
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
