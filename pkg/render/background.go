package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/fonts"
	"github.com/matzehuels/sketchboard/pkg/panel"
)

const (
	// patternSpacing is the pattern period in world units.
	patternSpacing = 20.0
	checkerSize    = 16.0
	labelSize      = 12.0
)

var (
	outsideLight = color.NRGBA{0xe5, 0xe7, 0xeb, 0xff}
	outsideDark  = color.NRGBA{0x11, 0x18, 0x27, 0xff}
)

// ink returns the pattern and border colors for a background: dark ink
// on light backgrounds, light ink on dark ones.
func ink(bg string) (pattern, border color.NRGBA) {
	if panel.IsLight(bg) {
		return color.NRGBA{0, 0, 0, 0x1a}, color.NRGBA{0, 0, 0, 0x66}
	}
	return color.NRGBA{0xff, 0xff, 0xff, 0x1f}, color.NRGBA{0xff, 0xff, 0xff, 0x80}
}

// mod is a floored modulo so negative pans still offset forward.
func mod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// drawBackground paints the canvas surface for a w×h viewport.
func drawBackground(dc *gg.Context, w, h int, cfg board.CanvasConfig, view board.View) {
	if cfg.Infinite() {
		drawInfinite(dc, w, h, cfg, view)
		return
	}
	drawFinite(dc, w, h, cfg, view)
}

func drawInfinite(dc *gg.Context, w, h int, cfg board.CanvasConfig, view board.View) {
	dc.SetColor(parseColor(cfg.BgColor, color.White))
	dc.Clear()
	ptn, _ := ink(cfg.BgColor)
	drawPattern(dc, cfg.BgPattern, ptn, 0, 0, float64(w), float64(h), view.Pan.X, view.Pan.Y, view.Zoom)
}

func drawFinite(dc *gg.Context, w, h int, cfg board.CanvasConfig, view board.View) {
	light := panel.IsLight(cfg.BgColor)
	outside := outsideLight
	if !light {
		outside = outsideDark
	}
	dc.SetColor(outside)
	dc.Clear()

	// faint checkerboard marks the area outside the page
	dc.SetColor(withAlpha(color.Black, 0x08))
	if !light {
		dc.SetColor(withAlpha(color.White, 0x08))
	}
	for y := 0.0; y < float64(h); y += checkerSize {
		for x := 0.0; x < float64(w); x += checkerSize {
			if (int(x/checkerSize)+int(y/checkerSize))%2 == 0 {
				dc.DrawRectangle(x, y, checkerSize, checkerSize)
			}
		}
	}
	dc.Fill()

	z := view.Zoom
	if z <= 0 {
		z = 1
	}
	px, py := view.Pan.X, view.Pan.Y
	pw, ph := float64(cfg.Width)*z, float64(cfg.Height)*z

	dc.SetColor(withAlpha(color.Black, 0x14))
	dc.DrawRectangle(px+2, py+8, pw+4, ph+4)
	dc.Fill()
	dc.SetColor(shadow)
	dc.DrawRectangle(px, py+4, pw, ph)
	dc.Fill()

	dc.SetColor(parseColor(cfg.BgColor, color.White))
	dc.DrawRectangle(px, py, pw, ph)
	dc.Fill()

	ptn, border := ink(cfg.BgColor)
	dc.Push()
	dc.DrawRectangle(px, py, pw, ph)
	dc.Clip()
	drawPattern(dc, cfg.BgPattern, ptn, px, py, px+pw, py+ph, px, py, z)
	dc.ResetClip()
	dc.Pop()

	if !cfg.ShowBorder {
		return
	}
	dc.Push()
	dc.SetColor(border)
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	dc.DrawRectangle(px, py, pw, ph)
	dc.Stroke()
	dc.Pop()

	if face, err := fonts.MonoFace(labelSize); err == nil {
		dc.SetFontFace(face)
		dc.SetColor(border)
		dc.DrawStringAnchored(sizeLabel(cfg), px+pw, py-6, 1, 0)
	}
}

func sizeLabel(cfg board.CanvasConfig) string {
	return fmt.Sprintf("%d × %d px", cfg.Width, cfg.Height)
}

// drawPattern tiles the pattern over the screen rectangle (x0,y0)-(x1,y1)
// with its lattice anchored at the screen point (ox,oy).
func drawPattern(dc *gg.Context, p board.Pattern, c color.Color, x0, y0, x1, y1, ox, oy, zoom float64) {
	if zoom <= 0 {
		zoom = 1
	}
	step := patternSpacing * zoom
	if p == board.PatternNone || p == "" || step < 2 {
		return
	}
	sx := x0 + mod(ox-x0, step)
	sy := y0 + mod(oy-y0, step)

	dc.Push()
	defer dc.Pop()
	dc.SetColor(c)
	dc.SetLineWidth(1)

	switch p {
	case board.PatternGrid:
		for x := sx; x <= x1; x += step {
			dc.DrawLine(x, y0, x, y1)
		}
		for y := sy; y <= y1; y += step {
			dc.DrawLine(x0, y, x1, y)
		}
		dc.Stroke()
	case board.PatternLines:
		for y := sy; y <= y1; y += step {
			dc.DrawLine(x0, y, x1, y)
		}
		dc.Stroke()
	case board.PatternDots:
		r := math.Max(1, zoom)
		// dots cover less area than lines, so draw them stronger
		dc.SetColor(withAlpha(c, uint8(min(255, 2*int(colorAlpha(c))))))
		for y := sy; y <= y1; y += step {
			for x := sx; x <= x1; x += step {
				dc.DrawCircle(x, y, r)
			}
		}
		dc.Fill()
	}
}

func colorAlpha(c color.Color) uint8 {
	return color.NRGBAModel.Convert(c).(color.NRGBA).A
}
