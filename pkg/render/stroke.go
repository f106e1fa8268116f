package render

import (
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// jitterStep is the segment subdivision length in world units.
	jitterStep = 8.0
	// jitterAmp is the largest offset of an interior point at roughness 1.
	jitterAmp = 1.6

	ellipseSamples = 64
	featherAngle   = 0.4
)

// sketchPath adds a jittered polyline from a to b to the current path.
// When move is false the first point continues the existing subpath.
func sketchPath(dc *gg.Context, a, b r2.Vec, rough float64, rnd *rng, move bool) {
	d := r2.Sub(b, a)
	steps := int(math.Ceil(r2.Norm(d) / jitterStep))
	if steps < 1 {
		steps = 1
	}
	if move {
		dc.MoveTo(a.X, a.Y)
	} else {
		dc.LineTo(a.X, a.Y)
	}
	for i := 1; i < steps; i++ {
		p := r2.Add(a, r2.Scale(float64(i)/float64(steps), d))
		if rough > 0 {
			p.X += rnd.signed() * rough * jitterAmp
			p.Y += rnd.signed() * rough * jitterAmp
		}
		dc.LineTo(p.X, p.Y)
	}
	dc.LineTo(b.X, b.Y)
}

// sketchLine strokes one jittered segment.
func sketchLine(dc *gg.Context, a, b r2.Vec, rough float64, rnd *rng) {
	dc.NewSubPath()
	sketchPath(dc, a, b, rough, rnd, true)
	dc.Stroke()
}

// sketchPolygon strokes a closed jittered polygon edge by edge.
func sketchPolygon(dc *gg.Context, pts []r2.Vec, rough float64, rnd *rng) {
	for i := range pts {
		sketchLine(dc, pts[i], pts[(i+1)%len(pts)], rough, rnd)
	}
}

// ellipsePoints samples the parametric ellipse inscribed in the box,
// nudging every sample radially.
func ellipsePoints(cx, cy, rx, ry, rough float64, rnd *rng) []r2.Vec {
	pts := make([]r2.Vec, ellipseSamples)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / ellipseSamples
		j := 0.0
		if rough > 0 {
			j = rnd.signed() * rough * jitterAmp
		}
		pts[i] = r2.Vec{X: cx + (rx+j)*math.Cos(t), Y: cy + (ry+j)*math.Sin(t)}
	}
	return pts
}

// arrowFeathers returns the two head segment endpoints for an arrow
// pointing from tail to head.
func arrowFeathers(tail, head r2.Vec, length float64) (r2.Vec, r2.Vec) {
	d := r2.Sub(tail, head)
	n := r2.Norm(d)
	if n == 0 {
		d = r2.Vec{X: -1}
	} else {
		d = r2.Scale(1/n, d)
	}
	back := r2.Add(head, r2.Scale(length, d))
	return r2.Rotate(back, featherAngle, head), r2.Rotate(back, -featherAngle, head)
}
