package render

import (
	"github.com/fogleman/gg"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/geom"
)

// Selection overlay sizes in screen pixels.
const (
	selectionMargin = 4.0
	selectionDash   = 4.0
)

// drawSelection frames s with a dashed box and, for resizable kinds, the
// eight resize handles. The current transform is world space, so pixel
// sizes are divided by zoom; gg dashes and line widths are already in
// device pixels.
func drawSelection(dc *gg.Context, s board.Shape, zoom float64) {
	if zoom <= 0 {
		zoom = 1
	}
	box := geom.BoundingBox(s)
	frame := box.Expand(selectionMargin / zoom)

	dc.Push()
	defer dc.Pop()

	dc.SetColor(accent)
	dc.SetLineWidth(1)
	dc.SetDash(selectionDash, selectionDash)
	dc.DrawRectangle(frame.X, frame.Y, frame.W, frame.H)
	dc.Stroke()
	dc.SetDash()

	if !s.Type.Resizable() {
		return
	}
	size := geom.HandleSize / zoom
	for _, h := range geom.ResizeHandles(box) {
		dc.DrawRectangle(h.X-size/2, h.Y-size/2, size, size)
		dc.SetRGB(1, 1, 1)
		dc.FillPreserve()
		dc.SetColor(accent)
		dc.Stroke()
	}
}
