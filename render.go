// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"image"
	"image/draw"
	"image/png"
	"io"
)

// Render draws the document onto c, one command at a time in stream
// order: later commands paint over earlier ones. Fill-kind commands
// fill their geometry, draw-kind commands stroke it, and outline-fill
// commands fill first and stroke second. The first failure reported by
// c aborts the render.
//
// Render has no state of its own beyond the path cursor; it is safe to
// call it repeatedly, and concurrently with a distinct Canvas per call.
func (d *Document) Render(c Canvas) error {
	r := renderer{doc: d, c: c}
	for i := range d.Commands {
		if err := r.command(&d.Commands[i]); err != nil {
			return err
		}
	}
	return nil
}

// Rasterize renders the document into a new RGBA image of the given
// pixel size, scaling the Header.Width x Header.Height canvas to fit.
// The image starts fully transparent; a document with no commands
// yields a blank canvas.
func (d *Document) Rasterize(width, height int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var z Rasterizer
	z.SetDstImage(img, img.Bounds(), draw.Over)
	z.Reset(d.Header)
	if err := d.Render(&z); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderToPNG rasterizes the document at the given pixel size and
// writes the result as a PNG stream to w.
func (d *Document) RenderToPNG(w io.Writer, width, height int) error {
	img, err := d.Rasterize(width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return &RenderError{Op: "encode png", Err: err}
	}
	return nil
}

type renderer struct {
	doc *Document
	c   Canvas
	// cur is the path cursor; horizontal and vertical line segments
	// take their missing coordinate from it.
	cur Point
}

func (r *renderer) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RenderError{Op: op, Err: err}
}

// paint resolves a style against the color table. Decode has already
// range-checked every index. A gradient whose axis has collapsed to a
// single point, or whose endpoints share a color, degenerates to the
// flat paint it converges to.
func (r *renderer) paint(s Style) Paint {
	c0 := r.doc.Colors[s.ColorIndex0]
	if s.Kind == StyleFlat {
		return FlatPaint(c0)
	}
	if s.Point0 == s.Point1 || s.ColorIndex0 == s.ColorIndex1 {
		return FlatPaint(c0)
	}
	return Paint{
		Kind:   s.Kind,
		Color0: c0,
		Color1: r.doc.Colors[s.ColorIndex1],
		Point0: s.Point0,
		Point1: s.Point1,
	}
}

func (r *renderer) command(cmd *Command) error {
	if err := r.c.Save(); err != nil {
		return r.wrap("save", err)
	}
	var err error
	switch cmd.Kind {
	case CommandFillPolygon:
		err = r.fill(cmd, func() error { return r.polyline(cmd.Points, true) })
	case CommandFillRectangles:
		err = r.fill(cmd, func() error { return r.rectangles(cmd.Rectangles) })
	case CommandFillPath:
		err = r.fill(cmd, func() error { return r.path(&cmd.Path) })
	case CommandDrawLines:
		err = r.stroke(cmd.Style, cmd.LineWidth, func() error { return r.lines(cmd.Lines) })
	case CommandDrawLineLoop:
		err = r.stroke(cmd.Style, cmd.LineWidth, func() error { return r.polyline(cmd.Points, true) })
	case CommandDrawLineStrip:
		err = r.stroke(cmd.Style, cmd.LineWidth, func() error { return r.polyline(cmd.Points, false) })
	case CommandDrawLinePath:
		err = r.stroke(cmd.Style, cmd.LineWidth, func() error { return r.path(&cmd.Path) })
	case CommandOutlineFillPolygon:
		err = r.outlineFill(cmd, func() error { return r.polyline(cmd.Points, true) })
	case CommandOutlineFillRectangles:
		err = r.outlineFill(cmd, func() error { return r.rectangles(cmd.Rectangles) })
	case CommandOutlineFillPath:
		err = r.outlineFill(cmd, func() error { return r.path(&cmd.Path) })
	}
	if err != nil {
		return err
	}
	return r.wrap("restore", r.c.Restore())
}

func (r *renderer) fill(cmd *Command, build func() error) error {
	if err := r.c.SetFill(r.paint(cmd.Style)); err != nil {
		return r.wrap("set fill", err)
	}
	if err := build(); err != nil {
		return err
	}
	return r.wrap("fill", r.c.Fill())
}

func (r *renderer) stroke(s Style, width float64, build func() error) error {
	if err := r.c.SetStroke(r.paint(s), width); err != nil {
		return r.wrap("set stroke", err)
	}
	if err := build(); err != nil {
		return err
	}
	return r.wrap("stroke", r.c.Stroke())
}

// outlineFill paints the command's fill first and its outline stroke
// second, so the stroke sits on top. Fill and Stroke consume the
// current path, so the geometry is built once for each pass.
func (r *renderer) outlineFill(cmd *Command, build func() error) error {
	if err := r.fill(cmd, build); err != nil {
		return err
	}
	return r.stroke(cmd.OutlineStyle, cmd.LineWidth, build)
}

func (r *renderer) moveTo(p Point) error {
	r.cur = p
	return r.wrap("move to", r.c.MoveTo(p))
}

func (r *renderer) lineTo(p Point) error {
	r.cur = p
	return r.wrap("line to", r.c.LineTo(p))
}

// polyline emits a point list as one subpath. Decode never produces an
// empty point list, but a hand-built Document may.
func (r *renderer) polyline(pts []Point, closed bool) error {
	if len(pts) == 0 {
		return nil
	}
	if err := r.moveTo(pts[0]); err != nil {
		return err
	}
	for _, p := range pts[1:] {
		if err := r.lineTo(p); err != nil {
			return err
		}
	}
	if closed {
		return r.wrap("close path", r.c.ClosePath())
	}
	return nil
}

// rectangles emits each rectangle as a closed four-segment subpath.
func (r *renderer) rectangles(rects []Rectangle) error {
	for _, rect := range rects {
		if err := r.moveTo(Point{X: rect.X, Y: rect.Y}); err != nil {
			return err
		}
		if err := r.lineTo(Point{X: rect.X + rect.Width, Y: rect.Y}); err != nil {
			return err
		}
		if err := r.lineTo(Point{X: rect.X + rect.Width, Y: rect.Y + rect.Height}); err != nil {
			return err
		}
		if err := r.lineTo(Point{X: rect.X, Y: rect.Y + rect.Height}); err != nil {
			return err
		}
		if err := r.wrap("close path", r.c.ClosePath()); err != nil {
			return err
		}
	}
	return nil
}

// lines emits each line as its own open subpath.
func (r *renderer) lines(lines []Line) error {
	for _, l := range lines {
		if err := r.moveTo(l.Start); err != nil {
			return err
		}
		if err := r.lineTo(l.End); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) path(p *Path) error {
	if err := r.moveTo(p.Start); err != nil {
		return err
	}
	start := p.Start
	for i := range p.Segments {
		seg := &p.Segments[i]
		switch seg.Kind {
		case SegmentLine:
			if err := r.lineTo(seg.To); err != nil {
				return err
			}
		case SegmentHorizontalLine:
			if err := r.lineTo(Point{X: seg.To.X, Y: r.cur.Y}); err != nil {
				return err
			}
		case SegmentVerticalLine:
			if err := r.lineTo(Point{X: r.cur.X, Y: seg.To.Y}); err != nil {
				return err
			}
		case SegmentCubicBezier:
			r.cur = seg.To
			if err := r.wrap("cube to", r.c.CubeTo(seg.Control0, seg.Control1, seg.To)); err != nil {
				return err
			}
		case SegmentQuadraticBezier:
			r.cur = seg.To
			if err := r.wrap("quad to", r.c.QuadTo(seg.Control0, seg.To)); err != nil {
				return err
			}
		case SegmentArcCircle, SegmentArcEllipse:
			r.cur = seg.To
			err := r.c.ArcTo(seg.RadiusX, seg.RadiusY, seg.Rotation, seg.LargeArc, seg.Sweep, seg.To)
			if err := r.wrap("arc to", err); err != nil {
				return err
			}
		case SegmentClosePath:
			r.cur = start
			if err := r.wrap("close path", r.c.ClosePath()); err != nil {
				return err
			}
		}
	}
	return nil
}
