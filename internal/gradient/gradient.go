// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gradient provides two-stop linear and radial gradient images
// for use as rasterizer paint sources.
package gradient

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/math/f64"
)

// Shape is the gradient shape.
type Shape uint8

const (
	ShapeLinear Shape = iota
	ShapeRadial
)

// Gradient is a very large image.Image (the same size as an
// image.Uniform) whose colors sweep between two stops. Offsets outside
// [0, 1] clamp to the endpoint colors; TinyVG gradients have exactly
// two stops and pad spread, so no stop list or spread mode is carried.
type Gradient struct {
	shape Shape

	// pix2grad transforms coordinates from pixel space (the arguments
	// to the Image.At method) to gradient space. Gradient space is
	// where a linear gradient ranges from x == 0 to x == 1, and a
	// radial gradient has center (0, 0) and radius 1.
	//
	// For a linear gradient, the bottom row is ignored.
	pix2grad f64.Aff3

	c0, c1 color.RGBA64
}

// NewLinear returns a linear gradient from c0 at (x1, y1) to c1 at
// (x2, y2), in pixel space. A zero-length axis yields a uniform c0.
func NewLinear(x1, y1, x2, y2 float64, c0, c1 color.RGBA64) *Gradient {
	g := &Gradient{shape: ShapeLinear, c0: c0, c1: c1}
	dx, dy := x2-x1, y2-y1
	d := dx*dx + dy*dy
	if d == 0 {
		g.c1 = c0
		return g
	}
	// The top row [a, b, c] of the pix2grad matrix satisfies the three
	// simultaneous equations:
	//	a*(x1   ) + b*(y1   ) + c = 0   (eq #0)
	//	a*(x1+dy) + b*(y1-dx) + c = 0   (eq #1)
	//	a*(x1+dx) + b*(y1+dy) + c = 1   (eq #2)
	// which solve to a = dx/d and b = dy/d with d = dx*dx + dy*dy.
	a := dx / d
	b := dy / d
	g.pix2grad = f64.Aff3{
		a, b, -a*x1 - b*y1,
		0, 0, 0,
	}
	return g
}

// NewCircular returns a radial gradient with c0 at the center (cx, cy)
// and c1 at radius r, in pixel space. A non-positive radius yields a
// uniform c0.
func NewCircular(cx, cy, r float64, c0, c1 color.RGBA64) *Gradient {
	g := &Gradient{shape: ShapeRadial, c0: c0, c1: c1}
	if r <= 0 {
		g.c1 = c0
		return g
	}
	invR := 1 / r
	g.pix2grad = f64.Aff3{
		invR, 0, -cx * invR,
		0, invR, -cy * invR,
	}
	return g
}

// ColorModel satisfies the image.Image interface.
func (g *Gradient) ColorModel() color.Model {
	return color.RGBA64Model
}

// Bounds satisfies the image.Image interface.
func (g *Gradient) Bounds() image.Rectangle {
	return image.Rectangle{
		Min: image.Point{-1e9, -1e9},
		Max: image.Point{+1e9, +1e9},
	}
}

// At satisfies the image.Image interface.
func (g *Gradient) At(x, y int) color.Color {
	px := float64(x) + 0.5
	py := float64(y) + 0.5

	var offset float64
	if g.shape == ShapeLinear {
		offset = g.pix2grad[0]*px + g.pix2grad[1]*py + g.pix2grad[2]
	} else {
		gx := g.pix2grad[0]*px + g.pix2grad[1]*py + g.pix2grad[2]
		gy := g.pix2grad[3]*px + g.pix2grad[4]*py + g.pix2grad[5]
		offset = math.Sqrt(gx*gx + gy*gy)
	}

	// Pad spread: clamp to the endpoint colors.
	if offset <= 0 || math.IsNaN(offset) {
		return g.c0
	}
	if offset >= 1 {
		return g.c1
	}

	t := offset
	s := 1 - t
	return color.RGBA64{
		R: uint16(s*float64(g.c0.R) + t*float64(g.c1.R)),
		G: uint16(s*float64(g.c0.G) + t*float64(g.c1.G)),
		B: uint16(s*float64(g.c0.B) + t*float64(g.c1.B)),
		A: uint16(s*float64(g.c0.A) + t*float64(g.c1.A)),
	}
}
