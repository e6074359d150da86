// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gradient

import (
	"image/color"
	"testing"
)

var (
	red  = color.RGBA64{R: 0xffff, A: 0xffff}
	blue = color.RGBA64{B: 0xffff, A: 0xffff}
)

func at(g *Gradient, x, y int) color.RGBA64 {
	return g.At(x, y).(color.RGBA64)
}

func TestLinearEndpoints(t *testing.T) {
	// Axis from x=0 to x=100; the At arguments are pixel indices, so the
	// sample points sit at half-pixel centers.
	g := NewLinear(0, 0, 100, 0, red, blue)

	if got := at(g, -10, 0); got != red {
		t.Errorf("before the axis start: got %v; want %v", got, red)
	}
	if got := at(g, 150, 0); got != blue {
		t.Errorf("past the axis end: got %v; want %v", got, blue)
	}

	mid := at(g, 49, 0) // center x = 49.5, offset 0.495
	if mid.R <= mid.B-0x1000 || mid.B <= mid.R-0x1000 {
		t.Errorf("midpoint: got %v; want roughly equal red and blue", mid)
	}
	if mid == red || mid == blue {
		t.Errorf("midpoint: got an endpoint color %v; want a blend", mid)
	}
}

func TestLinearIsPerpendicularInvariant(t *testing.T) {
	// Moving perpendicular to the axis must not change the color.
	g := NewLinear(0, 0, 100, 0, red, blue)
	a := at(g, 30, -500)
	b := at(g, 30, 500)
	if a != b {
		t.Errorf("got %v and %v; want identical colors along a perpendicular", a, b)
	}
}

func TestLinearDiagonalAxis(t *testing.T) {
	g := NewLinear(0, 0, 100, 100, red, blue)
	if got := at(g, 0, 0); got.R < 0xf000 {
		t.Errorf("near start: got %v; want mostly red", got)
	}
	if got := at(g, 99, 99); got.B < 0xf000 {
		t.Errorf("near end: got %v; want mostly blue", got)
	}
}

func TestLinearZeroLengthAxis(t *testing.T) {
	g := NewLinear(50, 50, 50, 50, red, blue)
	for _, p := range [][2]int{{0, 0}, {50, 50}, {1000, -1000}} {
		if got := at(g, p[0], p[1]); got != red {
			t.Errorf("At(%d, %d): got %v; want uniform %v", p[0], p[1], got, red)
		}
	}
}

func TestCircular(t *testing.T) {
	g := NewCircular(100, 100, 50, red, blue)

	if got := at(g, 100, 100); got.R < 0xf000 {
		t.Errorf("center: got %v; want mostly red", got)
	}
	if got := at(g, 200, 100); got != blue {
		t.Errorf("beyond the radius: got %v; want %v", got, blue)
	}
	// Equidistant points get the same color.
	a := at(g, 125, 100)
	b := at(g, 100, 125)
	if a != b {
		t.Errorf("got %v and %v; want identical colors at equal radii", a, b)
	}
}

func TestCircularNonPositiveRadius(t *testing.T) {
	g := NewCircular(10, 10, 0, red, blue)
	if got := at(g, 500, 500); got != red {
		t.Errorf("got %v; want uniform %v", got, red)
	}
}

func TestBoundsContainTypicalImages(t *testing.T) {
	g := NewLinear(0, 0, 1, 0, red, blue)
	r := g.Bounds()
	if r.Min.X > -1<<20 || r.Max.X < 1<<20 {
		t.Errorf("bounds %v too small to act as a paint source", r)
	}
}
