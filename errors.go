// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"errors"
	"fmt"
)

// Decoding failure kinds. Decode never returns these directly; it wraps
// them in a *ParseError carrying the byte offset. Use errors.Is to test
// for a kind.
var (
	ErrUnexpectedEOF         = errors.New("tinyvg: unexpected end of file")
	ErrInvalidMagic          = errors.New("tinyvg: invalid magic number")
	ErrUnsupportedVersion    = errors.New("tinyvg: unsupported version")
	ErrInvalidEnumValue      = errors.New("tinyvg: invalid enumeration value")
	ErrMalformedVarUint      = errors.New("tinyvg: malformed variable-length integer")
	ErrColorIndexOutOfRange  = errors.New("tinyvg: color index out of range")
	ErrGeometryCountMismatch = errors.New("tinyvg: geometry count mismatch")
)

// ParseError is the error type returned by Decode and DecodeHeader. It
// records the position of the first structural violation; everything
// after that position is unparseable, so decoding is not resumed.
type ParseError struct {
	// Offset is the byte offset at which decoding failed.
	Offset int
	// Err is one of the Err... sentinel values above.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v (at byte offset %d)", e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RenderError is the error type returned by the rendering entry points.
// It wraps a failure reported by the drawing context or, for the raster
// convenience paths, by the image encoder.
type RenderError struct {
	// Op names the operation that failed, e.g. "fill" or "encode png".
	Op string
	// Err is the underlying error.
	Err error
}

func (e *RenderError) Error() string {
	return "tinyvg: render " + e.Op + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error { return e.Err }
