package strip

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette lists the selectable strip backgrounds in picker order.
var Palette = []string{"#f43f5e", "#3b82f6", "#10b981", "#8b5cf6", "#000000"}

// DefaultBackground is the initial strip colour (rose).
const DefaultBackground = "#f43f5e"

const (
	black = "#000000"
	white = "#ffffff"
)

// lightBackgrounds get black text. This is a fixed list, not a luminance test;
// #10b981 is included even though white reads fine on it.
var lightBackgrounds = map[string]bool{
	"#ffffff": true,
	"#f8fafc": true,
	"#10b981": true,
}

// Style is the strip background plus its derived text colour.
type Style struct {
	Background string
	Foreground string
}

// NewStyle derives the foreground for bg.
func NewStyle(bg string) Style {
	bg = normalize(bg)
	return Style{Background: bg, Foreground: TextColorFor(bg)}
}

// TextColorFor returns "#000000" for allow-listed light backgrounds and
// "#ffffff" for everything else. Comparison ignores case.
func TextColorFor(bg string) string {
	if lightBackgrounds[normalize(bg)] {
		return black
	}
	return white
}

// InPalette reports whether hex is one of the selectable backgrounds.
func InPalette(hex string) bool {
	hex = normalize(hex)
	for _, p := range Palette {
		if p == hex {
			return true
		}
	}
	return false
}

// ColorName is the label shown on the picker button.
func ColorName(hex string) string {
	switch normalize(hex) {
	case "#f43f5e":
		return "Rose"
	case "#3b82f6":
		return "Blue"
	case "#10b981":
		return "Green"
	case "#8b5cf6":
		return "Purple"
	case "#000000":
		return "Black"
	default:
		return hex
	}
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque colour.
func ParseHexColor(s string) (color.RGBA, error) {
	s = normalize(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("strip: invalid color %q", s)
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("strip: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("strip: invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func mustColor(hex string) color.RGBA {
	c, err := ParseHexColor(hex)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
