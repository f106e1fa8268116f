// Package fonts provides the monospace faces used to draw text and
// sticky notes onto raster surfaces.
//
// The Go Mono family ships with golang.org/x/image, so no font files are
// embedded here. Parsed fonts and per-size faces are cached for the
// lifetime of the process.
package fonts

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

// Weight selects a face of the monospace family.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// FontFamily is the family name recorded in exported artifacts.
const FontFamily = "Go Mono"

// AdvanceRatio is the glyph advance of Go Mono relative to its size.
// Every glyph of a monospace face shares it.
const AdvanceRatio = 0.6

var (
	parseOnce sync.Once
	parsed    map[Weight]*truetype.Font
	parseErr  error

	facesMu sync.Mutex
	faces   = map[faceKey]font.Face{}
)

type faceKey struct {
	weight Weight
	size   float64
}

func load() error {
	parseOnce.Do(func() {
		parsed = map[Weight]*truetype.Font{}
		for w, data := range map[Weight][]byte{Regular: gomono.TTF, Bold: gomonobold.TTF} {
			f, err := truetype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse font: %w", err)
				return
			}
			parsed[w] = f
		}
	})
	return parseErr
}

// Face returns a cached face of the given weight and size in pixels.
// Sizes are rounded to a tenth of a pixel before caching.
func Face(w Weight, size float64) (font.Face, error) {
	if err := load(); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 1
	}
	key := faceKey{weight: w, size: math.Round(size*10) / 10}

	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[key]; ok {
		return f, nil
	}
	f := truetype.NewFace(parsed[w], &truetype.Options{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faces[key] = f
	return f, nil
}

// MonoFace returns the regular face at size.
func MonoFace(size float64) (font.Face, error) {
	return Face(Regular, size)
}

// TextWidth estimates the rendered width of s at size without a face.
func TextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * AdvanceRatio
}
