package render

import (
	"image/color"
	"strconv"
	"strings"
)

var (
	defaultStroke = color.NRGBA{0x1e, 0x1e, 0x1e, 0xff}
	accent        = color.NRGBA{0x63, 0x66, 0xf1, 0xff}
	shadow        = color.NRGBA{0, 0, 0, 0x2e}
)

// parseColor parses #rgb or #rrggbb. Anything else yields fallback.
func parseColor(s string, fallback color.Color) color.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c color.Color, a uint8) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}

// ParseColor parses a #rgb or #rrggbb color. Invalid input is white.
func ParseColor(s string) color.Color {
	return parseColor(s, color.White)
}
