package render

import (
	"image"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/errors"
)

// Scene is everything a frame depends on. The renderer only reads it.
type Scene struct {
	Shapes   []board.Shape
	View     board.View
	Canvas   board.CanvasConfig
	Selected string // id of the selected shape, empty for none
}

// Renderer draws scenes onto raster surfaces.
type Renderer struct {
	style  Style
	images *ImageCache
	logger *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle sets the outline style (default HandDrawn).
func WithStyle(s Style) Option {
	return func(r *Renderer) {
		if s != nil {
			r.style = s
		}
	}
}

// WithImages shares an image cache with the renderer.
func WithImages(c *ImageCache) Option {
	return func(r *Renderer) { r.images = c }
}

// WithLogger sets the renderer's logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{style: HandDrawn{}, logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}
	if r.images == nil {
		r.images = NewImageCache(WithImageLogger(r.logger))
	}
	return r
}

// Images returns the renderer's image cache.
func (r *Renderer) Images() *ImageCache { return r.images }

// Style returns the renderer's outline style.
func (r *Renderer) Style() Style { return r.style }

// Frame renders the viewport of size w×h: background, shapes through the
// scene's pan and zoom, and the selection overlay.
func (r *Renderer) Frame(sc Scene, w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)
	view := sc.View
	if view.Zoom <= 0 {
		view.Zoom = 1
	}
	drawBackground(dc, w, h, sc.Canvas, view)

	dc.Push()
	dc.Translate(view.Pan.X, view.Pan.Y)
	dc.Scale(view.Zoom, view.Zoom)
	r.drawShapes(dc, sc.Shapes, view.Zoom)
	if sc.Selected != "" {
		if i := board.IndexOf(sc.Shapes, sc.Selected); i >= 0 {
			drawSelection(dc, sc.Shapes[i], view.Zoom)
		}
	}
	dc.Pop()
	return dc.Image()
}

// Page renders a finite canvas at exactly Width×Height pixels. Pan, zoom
// and selection are ignored.
func (r *Renderer) Page(sc Scene) (image.Image, error) {
	if sc.Canvas.Infinite() {
		return nil, errors.New(errors.ErrCodeInvalidCanvas, "page render needs a finite canvas")
	}
	w, h := sc.Canvas.Width, sc.Canvas.Height
	dc := gg.NewContext(w, h)
	drawInfinite(dc, w, h, sc.Canvas, board.DefaultView())
	r.drawShapes(dc, sc.Shapes, 1)
	return dc.Image(), nil
}

func (r *Renderer) drawShapes(dc *gg.Context, shapes []board.Shape, zoom float64) {
	c := drawCtx{dc: dc, zoom: zoom, style: r.style, images: r.images}
	for _, s := range shapes {
		drawShape(c, s)
	}
}
