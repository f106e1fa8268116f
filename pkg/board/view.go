package board

// Zoom limits.
const (
	MinZoom = 0.2
	MaxZoom = 5.0
)

// View maps world space to screen space.
type View struct {
	Pan  Point   `json:"pan"`
	Zoom float64 `json:"zoom"`
}

// DefaultView returns the identity view.
func DefaultView() View {
	return View{Zoom: 1}
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ToWorld converts a screen position to world space.
func (v View) ToWorld(sx, sy float64) (float64, float64) {
	z := v.zoom()
	return (sx - v.Pan.X) / z, (sy - v.Pan.Y) / z
}

// ToScreen converts a world position to screen space.
func (v View) ToScreen(wx, wy float64) (float64, float64) {
	z := v.zoom()
	return wx*z + v.Pan.X, wy*z + v.Pan.Y
}

func (v View) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}
