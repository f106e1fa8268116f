// Package render draws boards onto raster surfaces.
//
// Shapes are drawn with a sketchy stroke: every segment is subdivided into
// short steps and each interior point is nudged by a pseudo-random offset.
// The offsets come from a generator seeded with the shape's Seed, so an
// unchanged shape is pixel-identical on every redraw. The [Simple] style
// turns the jitter off.
//
// # Surfaces
//
// [Renderer.Frame] draws what a viewer sees: background (infinite or
// finite page), every shape through the current pan and zoom, and the
// selection overlay. [Renderer.Page] draws a finite canvas at its exact
// pixel size, ignoring pan, zoom and selection; it backs raster export.
//
// # Images
//
// Image shapes embed their pixels as a data URL. Decoding happens in the
// background through [ImageCache]; a shape whose image is not decoded yet
// (or failed to decode) is skipped, and the cache's ready callback asks
// the host for another frame.
package render
