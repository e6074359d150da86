// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"errors"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/tinyvg-go/tinyvg/internal/gradient"
)

var errRestoreWithoutSave = errors.New("tinyvg: restore without matching save")

// defaultTolerance is the curve flattening tolerance, in device
// pixels, used when Rasterizer.Tolerance is zero.
const defaultTolerance = 0.25

// hairlineWidth is the minimum stroke width in device pixels. Zero
// width strokes stay visible rather than vanishing.
const hairlineWidth = 1.0

// Path op kinds recorded by the Canvas methods.
const (
	opMoveTo = iota
	opLineTo
	opQuadTo
	opCubeTo
	opClose
)

// pathOp is one recorded path operation, in canvas coordinates.
type pathOp struct {
	kind       uint8
	p0, p1, p2 Point
}

type paintState struct {
	fill   Paint
	stroke Paint
	width  float64
}

// Rasterizer is a Canvas that draws onto a raster image through a scan
// rasterizer.
//
// The zero value is usable, in that it has no raster image to draw
// onto, so rendering into it checks the command stream but paints
// nothing. Call SetDstImage to attach an image and Reset to map the
// document's canvas onto it.
type Rasterizer struct {
	// Tolerance is the maximum distance, in device pixels, by which a
	// flattened curve or arc may deviate from the true one. Zero means
	// a default that is visually smooth at typical on-screen scales.
	Tolerance float64

	dst    draw.Image
	rect   image.Rectangle
	drawOp draw.Op

	// scaleX and scaleY map the document canvas onto rect.
	scaleX, scaleY float64

	path  []pathOp
	pen   Point // canvas-space position after the last path op
	start Point // canvas-space start of the current subpath

	state paintState
	stack []paintState

	z vector.Rasterizer

	// scratch buffers reused across Stroke calls.
	flat     []Point
	flatSubs []flatSubpath
}

// flatSubpath indexes one flattened subpath inside the flat buffer.
type flatSubpath struct {
	start, end int
	closed     bool
}

// SetDstImage sets the Rasterizer to draw onto dst within r, with the
// given compositing operator for the first paint operation (subsequent
// ones always composite over).
func (z *Rasterizer) SetDstImage(dst draw.Image, r image.Rectangle, op draw.Op) {
	z.dst = dst
	if r.Empty() {
		r = image.Rectangle{}
	}
	z.rect = r
	z.drawOp = op
}

// Reset recomputes the canvas-to-pixel transform for a document
// header, scaling Header.Width x Header.Height canvas units to fill
// the destination rectangle. The scale factors may differ per axis.
func (z *Rasterizer) Reset(h Header) {
	z.scaleX, z.scaleY = 1, 1
	if h.Width > 0 {
		z.scaleX = float64(z.rect.Dx()) / float64(h.Width)
	}
	if h.Height > 0 {
		z.scaleY = float64(z.rect.Dy()) / float64(h.Height)
	}
	z.path = z.path[:0]
	z.stack = z.stack[:0]
	z.state = paintState{}
}

func (z *Rasterizer) sx() float64 {
	if z.scaleX == 0 {
		return 1
	}
	return z.scaleX
}

func (z *Rasterizer) sy() float64 {
	if z.scaleY == 0 {
		return 1
	}
	return z.scaleY
}

// avgScale is the isotropic approximation of the canvas-to-pixel
// transform, used for stroke widths and flattening steps.
func (z *Rasterizer) avgScale() float64 {
	return (z.sx() + z.sy()) / 2
}

func (z *Rasterizer) tolerance() float64 {
	if z.Tolerance > 0 {
		return z.Tolerance
	}
	return defaultTolerance
}

// dev maps a canvas point to device pixels, local to the destination
// rectangle.
func (z *Rasterizer) dev(p Point) Point {
	return Point{X: p.X * z.sx(), Y: p.Y * z.sy()}
}

func (z *Rasterizer) MoveTo(p Point) error {
	z.path = append(z.path, pathOp{kind: opMoveTo, p0: p})
	z.pen, z.start = p, p
	return nil
}

func (z *Rasterizer) LineTo(p Point) error {
	z.path = append(z.path, pathOp{kind: opLineTo, p0: p})
	z.pen = p
	return nil
}

func (z *Rasterizer) QuadTo(control, p Point) error {
	z.path = append(z.path, pathOp{kind: opQuadTo, p0: control, p1: p})
	z.pen = p
	return nil
}

func (z *Rasterizer) CubeTo(control0, control1, p Point) error {
	z.path = append(z.path, pathOp{kind: opCubeTo, p0: control0, p1: control1, p2: p})
	z.pen = p
	return nil
}

// ArcTo flattens the arc into line segments at record time, so that
// both the fill and the stroke paths see plain geometry. The
// flattening step honors Tolerance, converted to canvas units.
func (z *Rasterizer) ArcTo(radiusX, radiusY, rotation float64, largeArc, sweep bool, p Point) error {
	tol := z.tolerance() / z.avgScale()
	arcToLines(z.pen, radiusX, radiusY, rotation, largeArc, sweep, p, tol, func(q Point) {
		z.path = append(z.path, pathOp{kind: opLineTo, p0: q})
	})
	z.pen = p
	return nil
}

func (z *Rasterizer) ClosePath() error {
	z.path = append(z.path, pathOp{kind: opClose})
	z.pen = z.start
	return nil
}

func (z *Rasterizer) SetFill(p Paint) error {
	z.state.fill = p
	return nil
}

func (z *Rasterizer) SetStroke(p Paint, width float64) error {
	z.state.stroke = p
	z.state.width = width
	return nil
}

func (z *Rasterizer) Save() error {
	z.stack = append(z.stack, z.state)
	return nil
}

func (z *Rasterizer) Restore() error {
	if len(z.stack) == 0 {
		return errRestoreWithoutSave
	}
	z.state = z.stack[len(z.stack)-1]
	z.stack = z.stack[:len(z.stack)-1]
	return nil
}

// Fill paints the current path with the fill paint, using the
// saturating nonzero winding of the scan rasterizer, and discards the
// path.
func (z *Rasterizer) Fill() error {
	defer z.clearPath()
	if z.dst == nil || len(z.path) == 0 {
		return nil
	}
	z.beginDraw()
	// open tracks whether the scan rasterizer holds an unclosed
	// contour. Drawing ops after a ClosePath continue from the subpath
	// start (the scan rasterizer's pen is already there) and reopen
	// the contour.
	open := false
	for _, op := range z.path {
		switch op.kind {
		case opMoveTo:
			if open {
				z.z.ClosePath()
			}
			z.z.MoveTo(z.vec(op.p0))
			open = true
		case opLineTo:
			z.z.LineTo(z.vec(op.p0))
			open = true
		case opQuadTo:
			bx, by := z.vec(op.p0)
			cx, cy := z.vec(op.p1)
			z.z.QuadTo(bx, by, cx, cy)
			open = true
		case opCubeTo:
			bx, by := z.vec(op.p0)
			cx, cy := z.vec(op.p1)
			dx, dy := z.vec(op.p2)
			z.z.CubeTo(bx, by, cx, cy, dx, dy)
			open = true
		case opClose:
			if open {
				z.z.ClosePath()
				open = false
			}
		}
	}
	if open {
		z.z.ClosePath()
	}
	z.endDraw(z.state.fill)
	return nil
}

// Stroke paints the outline of the current path with the stroke paint
// and discards the path. The path is flattened to polylines, then each
// segment contributes an offset quad and each vertex a disc, giving
// round joins and caps; the saturating winding of the scan rasterizer
// merges the overlaps.
func (z *Rasterizer) Stroke() error {
	defer z.clearPath()
	if z.dst == nil || len(z.path) == 0 {
		return nil
	}
	z.flatten()
	if len(z.flatSubs) == 0 {
		return nil
	}
	hw := z.state.width * z.avgScale() / 2
	if hw < hairlineWidth/2 {
		hw = hairlineWidth / 2
	}
	z.beginDraw()
	for _, sub := range z.flatSubs {
		pts := z.flat[sub.start:sub.end]
		if len(pts) == 1 {
			// Degenerate subpath: a round dot.
			z.disc(pts[0], hw)
			continue
		}
		for i := 1; i < len(pts); i++ {
			z.segmentQuad(pts[i-1], pts[i], hw)
		}
		if sub.closed {
			z.segmentQuad(pts[len(pts)-1], pts[0], hw)
		}
		for _, p := range pts {
			z.disc(p, hw)
		}
	}
	z.endDraw(z.state.stroke)
	return nil
}

func (z *Rasterizer) clearPath() {
	z.path = z.path[:0]
}

// vec maps a canvas point to device pixels as scan rasterizer
// coordinates.
func (z *Rasterizer) vec(p Point) (x, y float32) {
	d := z.dev(p)
	return float32(d.X), float32(d.Y)
}

func (z *Rasterizer) beginDraw() {
	z.z.Reset(z.rect.Dx(), z.rect.Dy())
	z.z.DrawOp = z.drawOp
}

func (z *Rasterizer) endDraw(p Paint) {
	z.z.Draw(z.dst, z.rect, z.paintImage(p), image.Point{})
	// Only the first paint operation uses the configured operator;
	// later commands composite over what is already drawn.
	z.drawOp = draw.Over
}

// paintImage resolves a paint to a source image in device coordinates.
func (z *Rasterizer) paintImage(p Paint) image.Image {
	switch p.Kind {
	case StyleLinear:
		p0, p1 := z.dev(p.Point0), z.dev(p.Point1)
		return gradient.NewLinear(p0.X, p0.Y, p1.X, p1.Y, p.Color0.rgba64(), p.Color1.rgba64())
	case StyleRadial:
		c, e := z.dev(p.Point0), z.dev(p.Point1)
		r := math.Hypot(e.X-c.X, e.Y-c.Y)
		return gradient.NewCircular(c.X, c.Y, r, p.Color0.rgba64(), p.Color1.rgba64())
	default:
		return image.NewUniform(p.Color0)
	}
}

// segmentQuad emits the offset rectangle covering one stroked segment.
// Vertex order is chosen so every quad winds the same way as the discs.
func (z *Rasterizer) segmentQuad(a, b Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Unit normal, 90 degrees counterclockwise from the direction.
	nx, ny := -dy / length * hw, dx / length * hw
	z.z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.z.ClosePath()
}

// disc emits a clockwise circle fan at p, providing round joins and
// caps. The angular step keeps the chord sagitta within the flattening
// tolerance.
func (z *Rasterizer) disc(p Point, hw float64) {
	tol := z.tolerance()
	n := 8
	if tol < hw {
		step := 2 * math.Acos(1-tol/hw)
		if step > 0 {
			if k := int(math.Ceil(2 * math.Pi / step)); k > n {
				n = k
			}
		}
	}
	if n > 256 {
		n = 256
	}
	z.z.MoveTo(float32(p.X+hw), float32(p.Y))
	for i := 1; i < n; i++ {
		// Negative angles keep the fan clockwise, matching the quads.
		a := -2 * math.Pi * float64(i) / float64(n)
		z.z.LineTo(float32(p.X+hw*math.Cos(a)), float32(p.Y+hw*math.Sin(a)))
	}
	z.z.ClosePath()
}

// flatten converts the recorded path into device-space polylines in
// z.flat / z.flatSubs.
func (z *Rasterizer) flatten() {
	z.flat = z.flat[:0]
	z.flatSubs = z.flatSubs[:0]
	tol := z.tolerance()

	var pen Point
	open := false
	begin := 0
	emit := func(p Point) { z.flat = append(z.flat, p) }
	finish := func(closed bool) {
		if !open {
			return
		}
		z.flatSubs = append(z.flatSubs, flatSubpath{start: begin, end: len(z.flat), closed: closed})
		open = false
	}
	// ensureOpen reopens a subpath at the pen after a ClosePath, so
	// that segments continuing from the subpath start are kept.
	ensureOpen := func() {
		if open {
			return
		}
		begin = len(z.flat)
		emit(pen)
		open = true
	}

	for _, op := range z.path {
		switch op.kind {
		case opMoveTo:
			finish(false)
			begin = len(z.flat)
			pen = z.dev(op.p0)
			emit(pen)
			open = true
		case opLineTo:
			ensureOpen()
			emit(z.dev(op.p0))
			pen = z.dev(op.p0)
		case opQuadTo:
			ensureOpen()
			flattenQuad(pen, z.dev(op.p0), z.dev(op.p1), tol, emit)
			pen = z.dev(op.p1)
		case opCubeTo:
			ensureOpen()
			flattenCube(pen, z.dev(op.p0), z.dev(op.p1), z.dev(op.p2), tol, emit)
			pen = z.dev(op.p2)
		case opClose:
			if open {
				pen = z.flat[begin]
			}
			finish(true)
		}
	}
	finish(false)
}

// maxBezierDepth bounds the recursive subdivision; 2^10 segments per
// curve is far below the tolerance threshold for any sane input.
const maxBezierDepth = 10

// flattenCube appends line targets approximating the cubic bezier
// (p0, c0, c1, p1) within tol, excluding p0 itself.
func flattenCube(p0, c0, c1, p1 Point, tol float64, emit func(Point)) {
	flattenCubeRec(p0, c0, c1, p1, tol, 0, emit)
	emit(p1)
}

func flattenCubeRec(p0, c0, c1, p1 Point, tol float64, depth int, emit func(Point)) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	d0 := math.Abs((c0.X-p1.X)*dy - (c0.Y-p1.Y)*dx)
	d1 := math.Abs((c1.X-p1.X)*dy - (c1.Y-p1.Y)*dx)
	if depth >= maxBezierDepth || (d0+d1)*(d0+d1) <= tol*tol*(dx*dx+dy*dy) {
		return
	}
	// Subdivide at the midpoint (de Casteljau).
	ab := midpoint(p0, c0)
	bc := midpoint(c0, c1)
	cd := midpoint(c1, p1)
	abc := midpoint(ab, bc)
	bcd := midpoint(bc, cd)
	mid := midpoint(abc, bcd)
	flattenCubeRec(p0, ab, abc, mid, tol, depth+1, emit)
	emit(mid)
	flattenCubeRec(mid, bcd, cd, p1, tol, depth+1, emit)
}

// flattenQuad degree-elevates the quadratic to a cubic and flattens
// that.
func flattenQuad(p0, control, p1 Point, tol float64, emit func(Point)) {
	c0 := Point{X: p0.X + 2*(control.X-p0.X)/3, Y: p0.Y + 2*(control.Y-p0.Y)/3}
	c1 := Point{X: p1.X + 2*(control.X-p1.X)/3, Y: p1.Y + 2*(control.Y-p1.Y)/3}
	flattenCube(p0, c0, c1, p1, tol, emit)
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
