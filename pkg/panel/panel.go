// Package panel holds the canvas configuration presets and validation
// behind the canvas settings panel: page sizes, background colors and
// patterns.
package panel

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/errors"
)

// Canvas size limits for finite pages.
const (
	MinSide = 100
	MaxSide = 10000
)

// SizePreset is a named page size. Zero width and height is infinite.
type SizePreset struct {
	Name   string
	Label  string
	Width  int
	Height int
}

// SizePresets lists the page sizes offered by the panel.
var SizePresets = []SizePreset{
	{Name: "infinite", Label: "Infinite"},
	{Name: "a4-portrait", Label: "A4 Portrait", Width: 794, Height: 1123},
	{Name: "a4-landscape", Label: "A4 Landscape", Width: 1123, Height: 794},
	{Name: "letter", Label: "US Letter", Width: 816, Height: 1056},
	{Name: "hd", Label: "HD 1280×720", Width: 1280, Height: 720},
	{Name: "full-hd", Label: "Full HD 1920×1080", Width: 1920, Height: 1080},
	{Name: "square", Label: "Square 1080", Width: 1080, Height: 1080},
	{Name: "story", Label: "Story 1080×1920", Width: 1080, Height: 1920},
}

// ColorPreset is a named background color.
type ColorPreset struct {
	Name  string
	Color string
}

// LightBackgrounds are drawn with dark pattern and border ink.
var LightBackgrounds = []ColorPreset{
	{"White", "#ffffff"},
	{"Paper", "#fdfcf7"},
	{"Slate 50", "#f8fafc"},
	{"Cream", "#fef9c3"},
	{"Mint", "#ecfdf5"},
	{"Sky", "#eff6ff"},
	{"Rose", "#fff1f2"},
}

// DarkBackgrounds are drawn with light pattern and border ink.
var DarkBackgrounds = []ColorPreset{
	{"Charcoal", "#1e1e1e"},
	{"Slate 900", "#0f172a"},
	{"Graphite", "#27272a"},
	{"Navy", "#1e293b"},
	{"Forest", "#14532d"},
	{"Blackboard", "#0b3d2e"},
}

// FindSize returns the preset with the given name.
func FindSize(name string) (SizePreset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range SizePresets {
		if p.Name == name {
			return p, true
		}
	}
	return SizePreset{}, false
}

// Apply returns cfg resized to the named preset.
func Apply(cfg board.CanvasConfig, name string) (board.CanvasConfig, error) {
	p, ok := FindSize(name)
	if !ok {
		return cfg, errors.New(errors.ErrCodeInvalidCanvas, "unknown size preset %q", name)
	}
	cfg.Width, cfg.Height = p.Width, p.Height
	return cfg, nil
}

// MatchSize returns the preset matching cfg's dimensions, if any.
func MatchSize(cfg board.CanvasConfig) (SizePreset, bool) {
	for _, p := range SizePresets {
		if p.Width == cfg.Width && p.Height == cfg.Height {
			return p, true
		}
	}
	return SizePreset{}, false
}

// Validate checks a canvas configuration.
func Validate(cfg board.CanvasConfig) error {
	if cfg.Width != 0 || cfg.Height != 0 {
		if cfg.Width < MinSide || cfg.Width > MaxSide || cfg.Height < MinSide || cfg.Height > MaxSide {
			return errors.New(errors.ErrCodeInvalidCanvas,
				"canvas size %dx%d out of range (both 0 for infinite, or %d..%d)", cfg.Width, cfg.Height, MinSide, MaxSide)
		}
	}
	if err := errors.ValidateColor(cfg.BgColor); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCanvas, err, "background color")
	}
	if !cfg.BgPattern.Valid() {
		return errors.New(errors.ErrCodeInvalidCanvas, "unknown pattern %q", cfg.BgPattern)
	}
	return nil
}

// IsLight reports whether bg should be paired with dark ink. Preset
// membership decides; other colors fall back to relative luminance.
func IsLight(bg string) bool {
	n := normalize(bg)
	for _, p := range LightBackgrounds {
		if normalize(p.Color) == n {
			return true
		}
	}
	for _, p := range DarkBackgrounds {
		if normalize(p.Color) == n {
			return false
		}
	}
	return Luminance(bg) > 0.5
}

// Luminance returns the WCAG relative luminance of a hex color, or 1 for
// unparseable input.
func Luminance(hex string) float64 {
	s := normalize(hex)
	if len(s) != 6 {
		return 1
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 1
	}
	lin := func(c uint64) float64 {
		f := float64(c) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(v>>16&0xff) + 0.7152*lin(v>>8&0xff) + 0.0722*lin(v&0xff)
}

func normalize(c string) string {
	s := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c), "#"))
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	return s
}
