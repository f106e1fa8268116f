package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/fonts"
	"github.com/matzehuels/sketchboard/pkg/geom"
)

const (
	stickyPadding     = 12.0
	stickyShadowShift = 4.0
	lineHeight        = 1.5
)

// drawCtx carries what a draw function needs besides the shape.
type drawCtx struct {
	dc     *gg.Context
	zoom   float64
	style  Style
	images *ImageCache
}

// lineWidth converts a world stroke width to device pixels. gg strokes in
// device space regardless of the current transform.
func (c drawCtx) lineWidth(w float64) float64 {
	if w <= 0 {
		w = board.DefaultStrokeWidth
	}
	return w * c.zoom
}

type drawFunc func(c drawCtx, s board.Shape)

// drawers maps every shape kind to its draw function. A kind missing here
// is caught by the package tests.
var drawers = map[board.Kind]drawFunc{
	board.KindPencil:  drawPencil,
	board.KindRect:    drawRect,
	board.KindEllipse: drawEllipse,
	board.KindDiamond: drawDiamond,
	board.KindLine:    drawLine,
	board.KindArrow:   drawArrow,
	board.KindText:    drawText,
	board.KindSticky:  drawSticky,
	board.KindImage:   drawImage,
}

func drawShape(c drawCtx, s board.Shape) {
	fn, ok := drawers[s.Type]
	if !ok {
		return
	}
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.dc.SetLineWidth(c.lineWidth(s.StrokeWidth))
	c.dc.SetColor(parseColor(s.Color, defaultStroke))
	fn(c, s)
}

func corners(s board.Shape) []r2.Vec {
	b := geom.BoundingBox(s)
	return []r2.Vec{
		{X: b.X, Y: b.Y},
		{X: b.X + b.W, Y: b.Y},
		{X: b.X + b.W, Y: b.Y + b.H},
		{X: b.X, Y: b.Y + b.H},
	}
}

func fillPolygon(c drawCtx, s board.Shape, pts []r2.Vec) {
	if !s.Filled() {
		return
	}
	c.dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			c.dc.MoveTo(p.X, p.Y)
		} else {
			c.dc.LineTo(p.X, p.Y)
		}
	}
	c.dc.ClosePath()
	c.dc.SetColor(parseColor(s.Fill, color.Transparent))
	c.dc.Fill()
	c.dc.SetColor(parseColor(s.Color, defaultStroke))
}

func drawRect(c drawCtx, s board.Shape) {
	pts := corners(s)
	fillPolygon(c, s, pts)

	rough := c.style.Roughness(s.Seed)
	rnd := newRNG(s.Seed)
	sketchPolygon(c.dc, pts, rough, rnd)
	// second pass over top and bottom
	sketchLine(c.dc, pts[0], pts[1], rough/2, rnd)
	sketchLine(c.dc, pts[3], pts[2], rough/2, rnd)
}

func drawDiamond(c drawCtx, s board.Shape) {
	b := geom.BoundingBox(s)
	cx, cy := b.Center()
	pts := []r2.Vec{
		{X: cx, Y: b.Y},
		{X: b.X + b.W, Y: cy},
		{X: cx, Y: b.Y + b.H},
		{X: b.X, Y: cy},
	}
	fillPolygon(c, s, pts)
	sketchPolygon(c.dc, pts, c.style.Roughness(s.Seed), newRNG(s.Seed))
}

func drawEllipse(c drawCtx, s board.Shape) {
	b := geom.BoundingBox(s)
	cx, cy := b.Center()
	pts := ellipsePoints(cx, cy, b.W/2, b.H/2, c.style.Roughness(s.Seed), newRNG(s.Seed))
	fillPolygon(c, s, pts)

	c.dc.NewSubPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.Stroke()
}

func drawLine(c drawCtx, s board.Shape) {
	sketchLine(c.dc, r2.Vec{X: s.X, Y: s.Y}, r2.Vec{X: s.X2, Y: s.Y2}, c.style.Roughness(s.Seed), newRNG(s.Seed))
}

func drawArrow(c drawCtx, s board.Shape) {
	tail, head := r2.Vec{X: s.X, Y: s.Y}, r2.Vec{X: s.X2, Y: s.Y2}
	rough := c.style.Roughness(s.Seed)
	rnd := newRNG(s.Seed)
	sketchLine(c.dc, tail, head, rough, rnd)

	length := math.Max(12, 4*s.StrokeWidth)
	f1, f2 := arrowFeathers(tail, head, length)
	sketchLine(c.dc, head, f1, rough, rnd)
	sketchLine(c.dc, head, f2, rough, rnd)
}

func drawPencil(c drawCtx, s board.Shape) {
	pts := s.Points
	switch len(pts) {
	case 0:
		return
	case 1:
		c.dc.DrawCircle(pts[0].X, pts[0].Y, math.Max(s.StrokeWidth, 1)/2)
		c.dc.Fill()
		return
	}
	c.dc.NewSubPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for i := 1; i < len(pts)-1; i++ {
		mx, my := (pts[i].X+pts[i+1].X)/2, (pts[i].Y+pts[i+1].Y)/2
		c.dc.QuadraticTo(pts[i].X, pts[i].Y, mx, my)
	}
	last := pts[len(pts)-1]
	c.dc.LineTo(last.X, last.Y)
	c.dc.Stroke()
}

// drawLines draws text lines with baselines lineHeight*size apart, the
// first one size below y.
func drawLines(c drawCtx, text string, x, y, size float64) {
	if size <= 0 {
		size = board.DefaultFontSize
	}
	face, err := fonts.MonoFace(size)
	if err != nil {
		return
	}
	c.dc.SetFontFace(face)
	for i, line := range strings.Split(text, "\n") {
		c.dc.DrawString(line, x, y+size+float64(i)*size*lineHeight)
	}
}

func drawText(c drawCtx, s board.Shape) {
	drawLines(c, s.Text, s.X, s.Y, s.FontSize)
}

func drawSticky(c drawCtx, s board.Shape) {
	b := geom.BoundingBox(s)
	cx, cy := b.Center()
	c.dc.RotateAbout(gg.Radians(rotationFor(s.Seed)), cx, cy)

	c.dc.SetColor(shadow)
	c.dc.DrawRectangle(b.X+stickyShadowShift/2, b.Y+stickyShadowShift, b.W, b.H)
	c.dc.Fill()

	fill := s.Fill
	if !s.Filled() {
		fill = board.DefaultStickyFill
	}
	c.dc.SetColor(parseColor(fill, parseColor(board.DefaultStickyFill, color.White)))
	c.dc.DrawRectangle(b.X, b.Y, b.W, b.H)
	c.dc.Fill()

	c.dc.DrawRectangle(b.X, b.Y, b.W, b.H)
	c.dc.Clip()
	c.dc.SetColor(parseColor(s.Color, defaultStroke))
	drawLines(c, s.Text, b.X+stickyPadding, b.Y+stickyPadding, s.FontSize)
	c.dc.ResetClip()
}

func drawImage(c drawCtx, s board.Shape) {
	if c.images == nil || s.ImageDataURL == "" {
		return
	}
	img, ok := c.images.Get(s.ImageDataURL)
	if !ok {
		return
	}
	b := geom.BoundingBox(s)
	size := img.Bounds().Size()
	if size.X == 0 || size.Y == 0 || b.W == 0 || b.H == 0 {
		return
	}
	c.dc.Translate(b.X, b.Y)
	c.dc.Scale(b.W/float64(size.X), b.H/float64(size.Y))
	c.dc.DrawImage(img, 0, 0)
}
