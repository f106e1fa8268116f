package board

// SchemaVersion is the version written by this build. Records without a
// version field are read as version 1.
const SchemaVersion = 1

// Document is the persisted whiteboard record. Pan, Zoom and CanvasConfig
// are optional in stored records; nil or zero means the record did not
// carry them.
type Document struct {
	Version      int           `json:"version"`
	Shapes       []Shape       `json:"shapes"`
	Pan          *Point        `json:"pan,omitempty"`
	Zoom         float64       `json:"zoom,omitempty"`
	CanvasConfig *CanvasConfig `json:"canvasConfig,omitempty"`
}

// NewDocument assembles a document from live board state.
func NewDocument(shapes []Shape, view View, cfg CanvasConfig) Document {
	pan := view.Pan
	return Document{
		Version:      SchemaVersion,
		Shapes:       CloneShapes(shapes),
		Pan:          &pan,
		Zoom:         view.Zoom,
		CanvasConfig: &cfg,
	}
}

// View returns the stored view with the zoom clamped into range.
// A missing pan reads as the origin and a missing zoom as 1.
func (d Document) View() View {
	v := DefaultView()
	if d.Pan != nil {
		v.Pan = *d.Pan
	}
	if d.Zoom != 0 {
		v.Zoom = ClampZoom(d.Zoom)
	}
	return v
}

// Canvas returns the stored canvas, or the default canvas when the record
// has none.
func (d Document) Canvas() CanvasConfig {
	if d.CanvasConfig == nil {
		return DefaultCanvas()
	}
	return *d.CanvasConfig
}

// ImagePayloads returns the embedded payload of every image shape.
func (d Document) ImagePayloads() []string {
	var out []string
	for _, s := range d.Shapes {
		if s.Type == KindImage && s.ImageDataURL != "" {
			out = append(out, s.ImageDataURL)
		}
	}
	return out
}
