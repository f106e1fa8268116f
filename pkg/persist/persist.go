// Package persist saves boards to a store and exports them as rasters.
//
// A board is one JSON record under one key. Save overwrites it whole;
// Load never fails loudly: a missing, unreadable or foreign record reads
// as "nothing saved" and the caller keeps its current board.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchboard/pkg/board"
	"github.com/matzehuels/sketchboard/pkg/controller"
	"github.com/matzehuels/sketchboard/pkg/errors"
	"github.com/matzehuels/sketchboard/pkg/observability"
	"github.com/matzehuels/sketchboard/pkg/render"
	"github.com/matzehuels/sketchboard/pkg/store"
)

// DefaultMaxBytes caps the size of one saved record.
const DefaultMaxBytes = 5 << 20

// Adapter connects a board to a store. The zero Key uses the default
// board key.
type Adapter struct {
	Store    store.Store
	Key      string
	Images   *render.ImageCache // optional; warmed on Load
	Logger   *log.Logger
	MaxBytes int
}

// New creates an adapter for the named board.
func New(s store.Store, key string, logger *log.Logger) *Adapter {
	return &Adapter{Store: s, Key: key, Logger: logger}
}

func (a *Adapter) key() string {
	if a.Key == "" {
		return store.DefaultKeyer{}.BoardKey("")
	}
	return a.Key
}

func (a *Adapter) logger() *log.Logger {
	if a.Logger == nil {
		return log.Default()
	}
	return a.Logger
}

func (a *Adapter) maxBytes() int {
	if a.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return a.MaxBytes
}

// Save writes doc as the board record, replacing any previous save.
func (a *Adapter) Save(ctx context.Context, doc board.Document) (err error) {
	key := a.key()
	var size int
	defer func() { observability.Store().OnSave(ctx, key, size, err) }()

	doc.Version = board.SchemaVersion
	if doc.Shapes == nil {
		doc.Shapes = []board.Shape{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode board")
	}
	size = len(data)
	if size > a.maxBytes() {
		return errors.New(errors.ErrCodeQuotaExceeded,
			"board is %d bytes, limit is %d", size, a.maxBytes())
	}
	if err := a.Store.Set(ctx, key, data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write board %s", key)
	}
	a.logger().Info("saved board", "key", key, "shapes", len(doc.Shapes), "bytes", size)
	return nil
}

// Load reads the board record. ok is false when nothing usable is saved;
// the reason is logged.
func (a *Adapter) Load(ctx context.Context) (doc board.Document, ok bool) {
	key := a.key()
	defer func() { observability.Store().OnLoad(ctx, key, ok) }()

	data, found, err := a.Store.Get(ctx, key)
	if err != nil {
		a.logger().Warn("load failed", "key", key, "err", err)
		return board.Document{}, false
	}
	if !found {
		a.logger().Debug("no saved board", "key", key)
		return board.Document{}, false
	}
	doc, err = Decode(data)
	if err != nil {
		a.logger().Warn("ignoring saved board", "key", key, "err", err)
		return board.Document{}, false
	}
	if a.Images != nil {
		for _, p := range doc.ImagePayloads() {
			a.Images.Prefetch(p)
		}
	}
	a.logger().Info("loaded board", "key", key, "shapes", len(doc.Shapes))
	return doc, true
}

// Delete removes the board record.
func (a *Adapter) Delete(ctx context.Context) error {
	if err := a.Store.Delete(ctx, a.key()); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete board %s", a.key())
	}
	return nil
}

// Location describes where the board lives, if the store can tell.
func (a *Adapter) Location() string {
	if l, ok := a.Store.(store.Locator); ok {
		return l.Location(a.key())
	}
	return a.key()
}

// Decode parses a board record. The record must be a JSON object with a
// shapes array. Records without a version are version 1; newer versions
// are rejected. Shapes of unknown kind are dropped, and shapes with a
// missing or repeated id get a fresh one. Pan, zoom and canvas are left
// nil or zero when the record lacks them.
func Decode(data []byte) (board.Document, error) {
	var rec *board.Document
	if err := json.Unmarshal(data, &rec); err != nil {
		return board.Document{}, errors.Wrap(errors.ErrCodeDecode, err, "parse board")
	}
	if rec == nil {
		return board.Document{}, errors.New(errors.ErrCodeDecode, "board record is null")
	}
	doc := *rec
	if doc.Shapes == nil {
		return board.Document{}, errors.New(errors.ErrCodeDecode, "board record has no shapes array")
	}
	if doc.Version == 0 {
		doc.Version = 1
	}
	if doc.Version > board.SchemaVersion {
		return board.Document{}, errors.New(errors.ErrCodeUnsupportedVersion,
			"board version %d is newer than %d", doc.Version, board.SchemaVersion)
	}
	shapes := make([]board.Shape, 0, len(doc.Shapes))
	seen := make(map[string]bool, len(doc.Shapes))
	for _, s := range doc.Shapes {
		if !s.Type.Valid() {
			continue
		}
		if s.ID == "" || seen[s.ID] {
			s.ID = board.NewID()
		}
		seen[s.ID] = true
		shapes = append(shapes, s)
	}
	doc.Shapes = shapes
	return doc, nil
}

// ExportRaster renders the board for download. A finite canvas renders
// as its page at exactly Width×Height, ignoring pan and zoom. An infinite
// canvas renders the current viewport of size viewW×viewH. The selection
// overlay is never exported. Pending image decodes are awaited first.
func ExportRaster(ctx context.Context, r *render.Renderer, sc render.Scene, viewW, viewH int) (img image.Image, err error) {
	start := time.Now()
	defer func() {
		w, h := 0, 0
		if img != nil {
			w, h = img.Bounds().Dx(), img.Bounds().Dy()
		}
		observability.Render().OnExport(ctx, "raster", w, h, time.Since(start), err)
	}()

	for _, s := range sc.Shapes {
		if s.Type == board.KindImage {
			r.Images().Prefetch(s.ImageDataURL)
		}
	}
	r.Images().Wait()

	sc.Selected = ""
	if !sc.Canvas.Infinite() {
		return r.Page(sc)
	}
	if viewW <= 0 || viewH <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidCanvas,
			"infinite canvas export needs a viewport size, got %dx%d", viewW, viewH)
	}
	return r.Frame(sc, viewW, viewH), nil
}

// ExportName is the suggested download name for an export taken at t.
// ext is "png" or "pdf".
func ExportName(cfg board.CanvasConfig, t time.Time, ext string) string {
	if cfg.Infinite() {
		return fmt.Sprintf("whiteboard-%d.%s", t.UnixMilli(), ext)
	}
	return fmt.Sprintf("whiteboard-%dx%d-%d.%s", cfg.Width, cfg.Height, t.UnixMilli(), ext)
}

var _ controller.Persister = (*Adapter)(nil)
