// Package board defines the whiteboard data model: shapes, the canvas
// configuration, the view (pan and zoom) and the persisted document.
//
// # Shapes
//
// A [Shape] is one drawable primitive. Its [Kind] is a closed set:
//
//	pencil rect ellipse diamond line arrow text sticky image
//
// Two-point kinds (rect, ellipse, diamond, line, arrow, image) span
// (X,Y)-(X2,Y2). Pencil strokes carry [Shape.Points]. Text and sticky
// notes are anchored at (X,Y) and carry [Shape.Text].
//
// Every shape has a Seed fixed at creation. Renderers derive their jitter
// from it so an unchanged shape looks identical on every redraw.
//
// Shapes live in a single ordered slice; later shapes are drawn on top.
// Shapes never reference each other.
//
// # Coordinates
//
// Shapes are stored in world space. A [View] maps world space to screen
// space:
//
//	screen = world*zoom + pan
//
// Zoom is clamped to [MinZoom, MaxZoom].
package board
