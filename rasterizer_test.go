// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"errors"
	"image"
	"testing"
)

// rasterize decodes src and renders it at the given pixel size.
func rasterize(t *testing.T, src []byte, width, height int) *image.RGBA {
	t.Helper()
	doc := mustDecode(t, src)
	img, err := doc.Rasterize(width, height)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func opaque(t *testing.T, img *image.RGBA, x, y int) bool {
	t.Helper()
	return img.RGBAAt(x, y).A > 0x80
}

func TestRasterizerFillSquare(t *testing.T) {
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(1).rgba(255, 0, 0, 255)
	b.command(CommandFillRectangles, StyleFlat)
	b.varUint(1).varUint(0)
	b.unit(2).unit(2).unit(6).unit(6)
	img := rasterize(t, b.end(), 10, 10)

	c := img.RGBAAt(5, 5)
	if c.A != 255 || c.R < 200 || c.B > 50 {
		t.Errorf("interior pixel: got %v; want opaque red", c)
	}
	if opaque(t, img, 0, 0) {
		t.Errorf("corner pixel: got %v; want transparent", img.RGBAAt(0, 0))
	}
}

func TestRasterizerScalesToImageSize(t *testing.T) {
	// A 10x10 canvas rendered at 20x20 doubles every coordinate.
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(1).rgba(255, 0, 0, 255)
	b.command(CommandFillRectangles, StyleFlat)
	b.varUint(1).varUint(0)
	b.unit(2).unit(2).unit(6).unit(6)
	img := rasterize(t, b.end(), 20, 20)

	if !opaque(t, img, 10, 10) {
		t.Error("scaled interior pixel (10,10) is transparent")
	}
	if opaque(t, img, 2, 2) {
		t.Error("pixel (2,2) painted; the rectangle starts at device (4,4)")
	}
	if opaque(t, img, 17, 17) {
		t.Error("pixel (17,17) painted; the rectangle ends at device (16,16)")
	}
}

func TestRasterizerStrokeLine(t *testing.T) {
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(1).rgba(0, 0, 0, 255)
	b.command(CommandDrawLines, StyleFlat)
	b.varUint(1).varUint(0).unit(2)
	b.point(2, 5).point(8, 5)
	img := rasterize(t, b.end(), 10, 10)

	if !opaque(t, img, 5, 5) {
		t.Error("pixel on the stroked line is transparent")
	}
	if opaque(t, img, 5, 1) {
		t.Error("pixel far from the stroked line is painted")
	}
}

func TestRasterizerHairlineStroke(t *testing.T) {
	// Zero and sub-pixel stroke widths still paint a minimum-width line.
	for _, width := range []float64{0, 0.25} {
		b := new(builder)
		b.header(2, 10, 10)
		b.varUint(1).rgba(0, 0, 0, 255)
		b.command(CommandDrawLines, StyleFlat)
		b.varUint(1).varUint(0).unit(width)
		b.point(2, 5).point(8, 5)
		img := rasterize(t, b.end(), 10, 10)

		if img.RGBAAt(5, 5).A == 0 {
			t.Errorf("width %g stroke vanished; want a hairline", width)
		}
	}
}

func TestRasterizerFillArcPath(t *testing.T) {
	// Two semicircular arcs over a vertical diameter form a full disc.
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(1).rgba(0, 0, 255, 255)
	b.command(CommandFillPath, StyleFlat)
	b.varUint(3).varUint(0)
	b.point(5, 1)
	b.u8(4).unit(4).point(5, 9)
	b.u8(4).unit(4).point(5, 1)
	b.u8(6)
	img := rasterize(t, b.end(), 10, 10)

	if !opaque(t, img, 3, 5) || !opaque(t, img, 7, 5) {
		t.Error("disc interior is transparent")
	}
	if opaque(t, img, 0, 0) {
		t.Error("pixel outside the disc is painted")
	}
}

func TestRasterizerFillCurvedPath(t *testing.T) {
	// A blob bounded by a cubic on top and a quadratic at the bottom.
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(1).rgba(255, 0, 0, 255)
	b.command(CommandFillPath, StyleFlat)
	b.varUint(4).varUint(0)
	b.point(2, 2)
	b.u8(3).point(4, 0).point(6, 0).point(8, 2)
	b.u8(0).point(8, 8)
	b.u8(7).point(5, 10).point(2, 8)
	b.u8(6)
	img := rasterize(t, b.end(), 10, 10)

	if !opaque(t, img, 5, 5) {
		t.Error("blob interior is transparent")
	}
	if opaque(t, img, 0, 5) {
		t.Error("pixel left of the blob is painted")
	}
}

func TestRasterizerStrokeCurvedPath(t *testing.T) {
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(1).rgba(0, 0, 0, 255)
	b.command(CommandDrawLinePath, StyleFlat)
	b.varUint(2).varUint(0).unit(2)
	b.point(1, 5)
	b.u8(7).point(5, 1).point(9, 5)
	b.u8(3).point(8, 8).point(2, 8).point(1, 5)
	img := rasterize(t, b.end(), 10, 10)

	if !opaque(t, img, 5, 3) {
		t.Error("pixel on the quadratic crest is transparent")
	}
	if !opaque(t, img, 5, 7) {
		t.Error("pixel on the cubic belly is transparent")
	}
	if opaque(t, img, 5, 5) {
		t.Error("pixel inside the open curve is painted")
	}
}

func TestRasterizerZOrder(t *testing.T) {
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(2).rgba(255, 0, 0, 255).rgba(0, 0, 255, 255)
	b.command(CommandFillRectangles, StyleFlat)
	b.varUint(1).varUint(0)
	b.unit(0).unit(0).unit(6).unit(6)
	b.command(CommandFillRectangles, StyleFlat)
	b.varUint(1).varUint(1)
	b.unit(4).unit(4).unit(6).unit(6)
	img := rasterize(t, b.end(), 10, 10)

	if c := img.RGBAAt(5, 5); c.B < 200 || c.R > 50 {
		t.Errorf("overlap pixel: got %v; want the later blue fill on top", c)
	}
	if c := img.RGBAAt(1, 1); c.R < 200 || c.B > 50 {
		t.Errorf("non-overlap pixel: got %v; want red", c)
	}
}

func TestRasterizerLinearGradient(t *testing.T) {
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(2).rgba(255, 0, 0, 255).rgba(0, 0, 255, 255)
	b.command(CommandFillRectangles, StyleLinear)
	b.varUint(1)
	b.point(0, 5).point(10, 5).varUint(0).varUint(1)
	b.unit(0).unit(0).unit(10).unit(10)
	img := rasterize(t, b.end(), 10, 10)

	if c := img.RGBAAt(0, 5); c.R <= c.B {
		t.Errorf("left edge: got %v; want mostly red", c)
	}
	if c := img.RGBAAt(9, 5); c.B <= c.R {
		t.Errorf("right edge: got %v; want mostly blue", c)
	}
}

func TestRasterizerRadialGradient(t *testing.T) {
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(2).rgba(255, 0, 0, 255).rgba(0, 0, 255, 255)
	b.command(CommandFillRectangles, StyleRadial)
	b.varUint(1)
	b.point(5, 5).point(5, 9).varUint(0).varUint(1)
	b.unit(0).unit(0).unit(10).unit(10)
	img := rasterize(t, b.end(), 10, 10)

	if c := img.RGBAAt(5, 5); c.R <= c.B {
		t.Errorf("center: got %v; want mostly red", c)
	}
	if c := img.RGBAAt(0, 0); c.B <= c.R {
		t.Errorf("corner beyond the radius: got %v; want blue", c)
	}
}

func TestRasterizerRestoreWithoutSave(t *testing.T) {
	var z Rasterizer
	if err := z.Restore(); !errors.Is(err, errRestoreWithoutSave) {
		t.Fatalf("got %v; want errRestoreWithoutSave", err)
	}
}

func TestRasterizerSaveRestore(t *testing.T) {
	var z Rasterizer
	red := FlatPaint(Color{R: 1, A: 1})
	blue := FlatPaint(Color{B: 1, A: 1})
	if err := z.SetFill(red); err != nil {
		t.Fatal(err)
	}
	if err := z.Save(); err != nil {
		t.Fatal(err)
	}
	if err := z.SetFill(blue); err != nil {
		t.Fatal(err)
	}
	if err := z.Restore(); err != nil {
		t.Fatal(err)
	}
	if z.state.fill != red {
		t.Errorf("fill after restore: got %+v; want the saved red paint", z.state.fill)
	}
}

func TestRasterizerWithoutImageIsNoop(t *testing.T) {
	// A Rasterizer with no destination image still validates the stream.
	b := new(builder)
	b.header(0, 10, 10)
	b.varUint(1).rgba(255, 0, 0, 255)
	b.command(CommandFillRectangles, StyleFlat)
	b.varUint(1).varUint(0)
	b.unit(2).unit(2).unit(6).unit(6)
	doc := mustDecode(t, b.end())

	var z Rasterizer
	z.Reset(doc.Header)
	if err := doc.Render(&z); err != nil {
		t.Fatal(err)
	}
}
