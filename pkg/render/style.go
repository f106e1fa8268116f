package render

import (
	"strings"

	"github.com/matzehuels/sketchboard/pkg/errors"
)

// Style controls how rough shape outlines look.
type Style interface {
	// Name identifies the style in configuration and flags.
	Name() string
	// Roughness returns the jitter factor for a shape seed. Zero draws
	// straight lines.
	Roughness(seed int64) float64
}

// HandDrawn is the default sketch style.
type HandDrawn struct{}

func (HandDrawn) Name() string { return "handdrawn" }

// Roughness derives a factor in [0.8, 1.5) from the seed.
func (HandDrawn) Roughness(seed int64) float64 {
	return 0.8 + 0.7*newRNG(seed*31+7).next()
}

// Simple draws clean geometric outlines.
type Simple struct{}

func (Simple) Name() string             { return "simple" }
func (Simple) Roughness(int64) float64 { return 0 }

// StyleNames lists the accepted style names.
var StyleNames = []string{HandDrawn{}.Name(), Simple{}.Name()}

// ParseStyle resolves a style by name. An empty name selects HandDrawn.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "handdrawn", "hand-drawn", "sketch":
		return HandDrawn{}, nil
	case "simple", "clean":
		return Simple{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want %s)", name, strings.Join(StyleNames, ", "))
}
