package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync/atomic"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/sketchboard/pkg/board"
)

func TestEveryKindHasDrawer(t *testing.T) {
	for _, k := range board.Kinds() {
		if _, ok := drawers[k]; !ok {
			t.Errorf("no draw function for %q", k)
		}
	}
}

func sampleShapes() []board.Shape {
	return []board.Shape{
		{ID: "p", Type: board.KindPencil, Points: []board.Point{{X: 10, Y: 10}, {X: 20, Y: 30}, {X: 40, Y: 35}}, Color: "#1e1e1e", StrokeWidth: 2, Fill: board.Transparent, Seed: 1},
		{ID: "r", Type: board.KindRect, X: 50, Y: 50, X2: 150, Y2: 120, Color: "#e03131", StrokeWidth: 2, Fill: "#ffc9c9", Seed: 2},
		{ID: "e", Type: board.KindEllipse, X: 160, Y: 40, X2: 260, Y2: 110, Color: "#1971c2", StrokeWidth: 4, Fill: board.Transparent, Seed: 3},
		{ID: "d", Type: board.KindDiamond, X: 20, Y: 140, X2: 100, Y2: 200, Color: "#2f9e44", StrokeWidth: 2, Fill: board.Transparent, Seed: 4},
		{ID: "l", Type: board.KindLine, X: 120, Y: 150, X2: 200, Y2: 190, Color: "#1e1e1e", StrokeWidth: 1, Fill: board.Transparent, Seed: 5},
		{ID: "a", Type: board.KindArrow, X: 210, Y: 150, X2: 280, Y2: 150, Color: "#1e1e1e", StrokeWidth: 2, Fill: board.Transparent, Seed: 6},
		{ID: "t", Type: board.KindText, X: 10, Y: 210, Text: "hello\nworld", Color: "#1e1e1e", StrokeWidth: 2, Fill: board.Transparent, FontSize: 16, Seed: 7},
		{ID: "s", Type: board.KindSticky, X: 300, Y: 20, Text: "todo", Color: "#1e1e1e", StrokeWidth: 2, Fill: board.Transparent, FontSize: 16, Seed: 8},
	}
}

func rgbaOf(img image.Image) *image.RGBA {
	if r, ok := img.(*image.RGBA); ok {
		return r
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func TestFrameIsDeterministic(t *testing.T) {
	r := New()
	sc := Scene{
		Shapes: sampleShapes(),
		View:   board.View{Pan: board.Point{X: 15, Y: -5}, Zoom: 1.25},
		Canvas: board.DefaultCanvas(),
	}
	a := rgbaOf(r.Frame(sc, 400, 300))
	b := rgbaOf(r.Frame(sc, 400, 300))
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("redrawing an unchanged scene changed pixels")
	}
}

func TestHandDrawnDiffersFromSimple(t *testing.T) {
	sc := Scene{
		Shapes: []board.Shape{{ID: "r", Type: board.KindRect, X: 20, Y: 20, X2: 180, Y2: 120, Color: "#000000", StrokeWidth: 2, Fill: board.Transparent, Seed: 99}},
		View:   board.DefaultView(),
		Canvas: board.CanvasConfig{BgColor: "#ffffff", BgPattern: board.PatternNone},
	}
	hand := rgbaOf(New(WithStyle(HandDrawn{})).Frame(sc, 200, 150))
	simple := rgbaOf(New(WithStyle(Simple{})).Frame(sc, 200, 150))
	if bytes.Equal(hand.Pix, simple.Pix) {
		t.Error("hand-drawn and simple renders are identical")
	}
}

func TestPageIgnoresView(t *testing.T) {
	r := New()
	cfg := board.CanvasConfig{Width: 800, Height: 600, BgColor: "#ffffff", BgPattern: board.PatternGrid, ShowBorder: true}
	shapes := []board.Shape{{ID: "r", Type: board.KindRect, X: 100, Y: 100, X2: 300, Y2: 200, Color: "#000000", StrokeWidth: 2, Fill: board.Transparent, Seed: 1}}

	var first []byte
	for _, v := range []board.View{
		board.DefaultView(),
		{Pan: board.Point{X: -400, Y: 250}, Zoom: 0.2},
		{Pan: board.Point{X: 30, Y: 30}, Zoom: 5},
	} {
		img, err := r.Page(Scene{Shapes: shapes, View: v, Canvas: cfg, Selected: "r"})
		if err != nil {
			t.Fatalf("Page: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
			t.Fatalf("page size = %dx%d, want 800x600", b.Dx(), b.Dy())
		}
		pix := rgbaOf(img).Pix
		if first == nil {
			first = pix
		} else if !bytes.Equal(first, pix) {
			t.Error("page pixels depend on the view")
		}
	}

	if _, err := r.Page(Scene{Canvas: board.DefaultCanvas()}); err == nil {
		t.Error("Page on infinite canvas should fail")
	}
}

func TestSelectionOverlay(t *testing.T) {
	shape := board.Shape{ID: "r", Type: board.KindRect, X: 50, Y: 50, X2: 150, Y2: 100, Color: "#000000", StrokeWidth: 1, Fill: board.Transparent, Seed: 1}
	sc := Scene{
		Shapes: []board.Shape{shape},
		View:   board.DefaultView(),
		Canvas: board.CanvasConfig{BgColor: "#ffffff", BgPattern: board.PatternNone},
	}
	r := New(WithStyle(Simple{}))
	plain := rgbaOf(r.Frame(sc, 200, 150))

	sc.Selected = "r"
	selected := rgbaOf(r.Frame(sc, 200, 150))

	// top edge of the se handle, clear of the rect outline and the frame
	if plain.At(148, 96) == selected.At(148, 96) {
		t.Error("no handle drawn at the se corner")
	}

	sc.Selected = "missing"
	if !bytes.Equal(rgbaOf(r.Frame(sc, 200, 150)).Pix, plain.Pix) {
		t.Error("unknown selection id changed the frame")
	}
}

func TestFiniteBackground(t *testing.T) {
	r := New()
	sc := Scene{
		View:   board.View{Pan: board.Point{X: 100, Y: 100}, Zoom: 0.5},
		Canvas: board.CanvasConfig{Width: 200, Height: 200, BgColor: "#1e1e1e", BgPattern: board.PatternNone, ShowBorder: false},
	}
	img := rgbaOf(r.Frame(sc, 300, 300))

	if got := img.RGBAAt(150, 150); got != (color.RGBA{0x1e, 0x1e, 0x1e, 0xff}) {
		t.Errorf("page pixel = %v, want bg color", got)
	}
	corner := img.RGBAAt(1, 1)
	if corner.R > 0x40 || corner == (color.RGBA{0x1e, 0x1e, 0x1e, 0xff}) {
		t.Errorf("outside pixel = %v, want dark outside tone", corner)
	}
}

func TestInfinitePatternScrollsWithPan(t *testing.T) {
	r := New()
	base := Scene{View: board.DefaultView(), Canvas: board.CanvasConfig{BgColor: "#ffffff", BgPattern: board.PatternGrid}}
	a := rgbaOf(r.Frame(base, 100, 100))

	shifted := base
	shifted.View.Pan = board.Point{X: 20, Y: 20}
	b := rgbaOf(r.Frame(shifted, 100, 100))
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("panning by one pattern period should look identical")
	}

	shifted.View.Pan = board.Point{X: 7, Y: 0}
	c := rgbaOf(r.Frame(shifted, 100, 100))
	if bytes.Equal(a.Pix, c.Pix) {
		t.Error("panning by a fraction of the period did not move the grid")
	}
}

func TestMod(t *testing.T) {
	if got := mod(-5, 20); got != 15 {
		t.Errorf("mod(-5,20) = %v, want 15", got)
	}
	if got := mod(45, 20); got != 5 {
		t.Errorf("mod(45,20) = %v, want 5", got)
	}
}

func TestArrowFeathers(t *testing.T) {
	f1, f2 := arrowFeathers(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 100, Y: 0}, 15)
	for _, f := range []r2.Vec{f1, f2} {
		if d := r2.Norm(r2.Sub(f, r2.Vec{X: 100})); math.Abs(d-15) > 1e-9 {
			t.Errorf("feather length = %v, want 15", d)
		}
		if f.X >= 100 {
			t.Errorf("feather %v points forward", f)
		}
	}
	if math.Abs(f1.Y+f2.Y) > 1e-9 {
		t.Errorf("feathers not symmetric: %v %v", f1, f2)
	}
	angle := math.Atan2(math.Abs(f1.Y), 100-f1.X)
	if math.Abs(angle-featherAngle) > 1e-9 {
		t.Errorf("feather angle = %v, want %v", angle, featherAngle)
	}
}

func TestEllipseSamples(t *testing.T) {
	pts := ellipsePoints(50, 50, 40, 20, 0, newRNG(1))
	if len(pts) != ellipseSamples {
		t.Fatalf("len = %d, want %d", len(pts), ellipseSamples)
	}
	if pts[0] != (r2.Vec{X: 90, Y: 50}) {
		t.Errorf("first sample = %v, want {90 50}", pts[0])
	}
}

func TestImageDrawnOnceDecoded(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.RGBA{0, 0, 0xff, 0xff}}, image.Point{}, draw.Src)
	payload, err := EncodePNGDataURL(src)
	if err != nil {
		t.Fatalf("EncodePNGDataURL: %v", err)
	}

	var ready atomic.Int32
	cache := NewImageCache(WithOnReady(func() { ready.Add(1) }))
	r := New(WithImages(cache), WithStyle(Simple{}))
	sc := Scene{
		Shapes: []board.Shape{{ID: "i", Type: board.KindImage, X: 10, Y: 10, X2: 50, Y2: 50, ImageDataURL: payload, Seed: 1}},
		View:   board.DefaultView(),
		Canvas: board.CanvasConfig{BgColor: "#ffffff", BgPattern: board.PatternNone},
	}

	r.Frame(sc, 60, 60)
	cache.Wait()
	if ready.Load() != 1 {
		t.Errorf("ready callbacks = %d, want 1", ready.Load())
	}
	second := rgbaOf(r.Frame(sc, 60, 60))
	if got := second.RGBAAt(30, 30); got.B < 0xf0 || got.R > 0x10 {
		t.Errorf("pixel inside image = %v, want blue", got)
	}
}
