package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode selects which entry of a ColorSet the renderer uses.
type ColorMode int

const (
	// ModeBasic uses named terminal colours.
	ModeBasic ColorMode = iota
	// ModePalette uses the xterm 256-colour palette.
	ModePalette
	// ModeTrueColor uses 24-bit RGB.
	ModeTrueColor
)

// String returns the mode name used in configuration.
func (m ColorMode) String() string {
	switch m {
	case ModeBasic:
		return "basic"
	case ModePalette:
		return "palette"
	case ModeTrueColor:
		return "truecolor"
	default:
		return "unknown"
	}
}

// ParseColorMode converts a configuration string into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "16":
		return ModeBasic, nil
	case "palette", "256":
		return ModePalette, nil
	case "truecolor", "24bit", "rgb":
		return ModeTrueColor, nil
	default:
		return ModeBasic, fmt.Errorf("unknown color mode %q", s)
	}
}

// ColorSet holds one colour per rendering mode.
type ColorSet struct {
	Name    string `json:"name"`    // tcell colour name (e.g., "green")
	Palette int    `json:"palette"` // xterm palette index 0-255
	Hex     string `json:"hex"`     // RGB hex code (e.g., "#008700")
}

// Color returns the tcell colour for the given mode.
func (c ColorSet) Color(mode ColorMode) tcell.Color {
	switch mode {
	case ModePalette:
		return tcell.PaletteColor(c.Palette)
	case ModeTrueColor:
		if color, err := ParseHexColor(c.Hex); err == nil {
			return color
		}
	}
	return tcell.GetColor(c.Name)
}

// Highlight returns the set's RGB colour blended toward white by t (0..1).
// Used for symbols drawn on top of a floor's own background.
func (c ColorSet) Highlight(t float64) tcell.Color {
	base, err := colorful.Hex(normalizeHex(c.Hex))
	if err != nil {
		return tcell.ColorWhite
	}
	r, g, b := base.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = normalizeHex(hex)
	if len(hex) != 7 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

func normalizeHex(hex string) string {
	return "#" + strings.TrimPrefix(strings.TrimSpace(hex), "#")
}
