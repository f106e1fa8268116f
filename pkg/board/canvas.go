package board

// Pattern is the background pattern of the canvas.
type Pattern string

const (
	PatternNone  Pattern = "none"
	PatternGrid  Pattern = "grid"
	PatternDots  Pattern = "dots"
	PatternLines Pattern = "lines"
)

// Patterns lists the supported background patterns.
var Patterns = []Pattern{PatternNone, PatternGrid, PatternDots, PatternLines}

// Valid reports whether p is a known pattern.
func (p Pattern) Valid() bool {
	for _, v := range Patterns {
		if v == p {
			return true
		}
	}
	return false
}

// CanvasConfig describes the drawing surface. Width and Height of zero
// mean an infinite canvas.
type CanvasConfig struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	BgColor    string  `json:"bgColor"`
	BgPattern  Pattern `json:"bgPattern"`
	ShowBorder bool    `json:"showBorder"`
}

// Infinite reports whether the canvas is unbounded.
func (c CanvasConfig) Infinite() bool {
	return c.Width <= 0 || c.Height <= 0
}

// DefaultCanvas returns the initial canvas: infinite, white, grid.
func DefaultCanvas() CanvasConfig {
	return CanvasConfig{
		BgColor:    "#ffffff",
		BgPattern:  PatternGrid,
		ShowBorder: true,
	}
}
