// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tinyvg decodes and renders TinyVG vector images.
//
// TinyVG is a compact binary format for vector graphics: a small header,
// a color table and a flat stream of draw commands. Compared to SVG it
// trades expressiveness for a trivial, dependency-free encoding that is
// cheap to parse and render.
//
// # File structure
//
// A TinyVG file starts with the two magic bytes 0x72 0x56, a version
// byte (this package supports version 1) and a flags byte. The flags
// byte packs three fields:
//
//	bits 4-7: scale, the number of fractional bits in every coordinate
//	bits 2-3: color encoding (RGBA 8888, RGB 565 or RGBA float32)
//	bits 0-1: coordinate range (16, 8 or 32 bit signed coordinates)
//
// The canvas width and height follow, encoded in the coordinate-range
// width, then a variable-length color count and that many fixed-size
// color records, then the command stream. Every coordinate in the file
// is a signed integer of the coordinate-range width, interpreted as a
// fixed-point number with 'scale' fractional bits.
//
// Counts and color indices use a variable-length unsigned encoding: the
// low seven bits of each byte carry value bits, least significant group
// first, and a set high bit means another byte follows.
//
// Commands carry a paint style (a flat color-table reference or a two
// stop linear or radial gradient) and one of several geometry payloads:
// point lists, rectangle lists, line lists, or paths built from line,
// bezier and elliptical-arc segments. Command id 0 terminates the
// stream.
//
// # Decoding and rendering
//
// Decode parses an encoded file into an immutable Document:
//
//	doc, err := tinyvg.Decode(src, nil)
//
// A Document can be rendered onto anything that implements the Canvas
// interface, or rasterized directly:
//
//	img, err := doc.Rasterize(int(doc.Header.Width), int(doc.Header.Height))
//
// Documents are pure values. Rendering the same Document from multiple
// goroutines is safe as long as each render uses its own Canvas.
package tinyvg
