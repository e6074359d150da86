// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import "image/color"

// Color is the normalized internal color representation. All decoded
// color encodings are converted to straight (non-premultiplied) RGBA
// components in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA implements image/color.Color, returning alpha-premultiplied
// 16-bit components.
func (c Color) RGBA() (r, g, b, a uint32) {
	ca := clamp01(c.A)
	r = uint32(clamp01(c.R)*ca*0xffff + 0.5)
	g = uint32(clamp01(c.G)*ca*0xffff + 0.5)
	b = uint32(clamp01(c.B)*ca*0xffff + 0.5)
	a = uint32(ca*0xffff + 0.5)
	return r, g, b, a
}

// rgba64 returns c as a premultiplied color.RGBA64, the stop format
// used by the gradient paints.
func (c Color) rgba64() color.RGBA64 {
	r, g, b, a := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
