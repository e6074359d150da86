// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

// Paint is a fully resolved paint: styles with color-table indices
// become paints with concrete colors. Flat paints use Color0 only.
// Gradient paints sweep from Color0 at Point0 to Color1 at Point1, in
// canvas coordinates; for radial paints Point0 is the center and
// Point1 lies on the edge. How the sweep is interpolated is up to the
// Canvas implementation.
type Paint struct {
	Kind           StyleKind
	Color0, Color1 Color
	Point0, Point1 Point
}

// FlatPaint returns a flat paint of the given color.
func FlatPaint(c Color) Paint {
	return Paint{Kind: StyleFlat, Color0: c}
}

// Canvas is the drawing capability a Document is rendered through. The
// renderer drives it; implementations rasterize, re-emit vector output
// or record calls for testing.
//
// Path construction is stateful: MoveTo starts a new subpath and the
// other path operations extend it from the current position. Fill and
// Stroke paint the current path with the current fill or stroke paint
// and then discard it. Save pushes the current paint state; Restore
// pops it.
//
// All coordinates are in canvas units (the Header.Width x Header.Height
// coordinate space); any scaling to device pixels is the
// implementation's concern.
type Canvas interface {
	MoveTo(p Point) error
	LineTo(p Point) error
	QuadTo(control, p Point) error
	CubeTo(control0, control1, p Point) error
	// ArcTo appends an elliptical arc from the current position to p,
	// with the given radii and x-axis rotation in degrees, choosing
	// among the four candidate arcs with the SVG large-arc and sweep
	// flags.
	ArcTo(radiusX, radiusY, rotation float64, largeArc, sweep bool, p Point) error
	ClosePath() error

	SetFill(p Paint) error
	SetStroke(p Paint, width float64) error
	Fill() error
	Stroke() error

	Save() error
	Restore() error
}
