// Package pkg provides the core libraries for the Sketchboard whiteboard.
//
// # Overview
//
// Sketchboard is a whiteboard with a hand-drawn look: shapes are stored as
// plain geometry and given a sketchy outline only when drawn, from a seed
// each shape carries, so the wobble is stable across redraws and exports.
// The pkg directory is organized into four areas:
//
//  1. Model - [board] shapes and documents, [geom] hit testing and transforms
//  2. State - [history] undo snapshots, [controller] input handling
//  3. Output - [render] raster drawing, [sink] PNG/PDF encoding
//  4. Infrastructure - [store], [persist], [config], [server]
//
// # Architecture
//
// Input flows one way through the controller; output is a pure function of
// a snapshot:
//
//	pointer / keyboard events
//	         ↓
//	    [controller] (tools, gestures, history commits)
//	         ↓
//	    Snapshot → [render] Frame / Page → [sink] PNG / PDF
//	         ↕
//	    [persist] ↔ [store] (file, memory, Redis, MongoDB)
//
// # Quick Start
//
// Draw a rectangle and render the viewport:
//
//	ctrl := controller.New(controller.Options{})
//	ctrl.Dispatch(controller.SelectTool{Tool: controller.ToolRect})
//	ctrl.Dispatch(controller.PointerDown{X: 10, Y: 10})
//	ctrl.Dispatch(controller.PointerUp{X: 120, Y: 80})
//
//	r := render.New()
//	img := r.Frame(ctrl.Snapshot().Scene(), 1280, 720)
//	data, _ := sink.EncodePNG(img)
//
// Persist the board:
//
//	s, _ := store.Open(ctx, store.Options{Backend: store.BackendFile, Dir: dir})
//	adapter := persist.New(s, store.DefaultKeyer{}.BoardKey(""), logger)
//	ctrl := controller.New(controller.Options{Persister: adapter})
//	ctrl.Dispatch(controller.Save{})
//
// # Main Packages
//
// [board] - Shapes, styles, views, canvas configuration and the saved
// document. Shape kinds: pencil, rect, ellipse, diamond, line, arrow, text,
// sticky and image.
//
// [geom] - Bounding boxes, hit testing with a zoom-aware tolerance, resize
// handles and the move/resize transforms.
//
// [history] - Linear undo/redo over whole-board snapshots with a bounded
// depth.
//
// [controller] - The single owner of mutable board state. Hosts feed it
// events and draw its snapshots; events also have a JSON wire form.
//
// [render] - Rough outlines, backgrounds, selection overlays and image
// decoding, drawn with gg.
//
// [panel] - Canvas size and background presets plus validation.
//
// [persist] - Saves documents to a store with schema versioning, a size
// quota and raster export.
//
// [store] - Key/value backends with connection retry.
//
// [sink] - PNG and PDF encoders for exported rasters.
//
// [server] - HTTP access to a controller: events in, frames and exports out.
//
// [config] - TOML configuration with defaults.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Optional hooks for history, storage and export events.
//
// # Testing
//
//	go test ./pkg/...
//	go test ./pkg/controller -run Undo
//
// [board]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/board
// [geom]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/geom
// [history]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/history
// [controller]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/controller
// [render]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/render
// [panel]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/panel
// [persist]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/persist
// [store]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/store
// [sink]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/sink
// [server]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sketchboard/pkg/observability
package pkg
