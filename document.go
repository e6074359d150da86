// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

// CoordinateRange selects the width of the signed integer used for
// every coordinate in the encoded file.
type CoordinateRange uint8

const (
	CoordinateRangeDefault  CoordinateRange = 0 // 16-bit coordinates
	CoordinateRangeReduced  CoordinateRange = 1 // 8-bit coordinates
	CoordinateRangeEnhanced CoordinateRange = 2 // 32-bit coordinates
)

// ColorEncoding selects the pixel layout of color-table records.
type ColorEncoding uint8

const (
	ColorEncodingRGBA8888 ColorEncoding = 0
	ColorEncodingRGB565   ColorEncoding = 1
	ColorEncodingRGBAF32  ColorEncoding = 2
)

// Header is the decoded file header.
type Header struct {
	// Version is the format version; only version 1 is supported.
	Version uint8
	// Scale is the number of fractional bits used to interpret every
	// raw coordinate as a fixed-point value.
	Scale           uint8
	ColorEncoding   ColorEncoding
	CoordinateRange CoordinateRange
	// Width and Height are the canvas size in display units.
	Width  uint32
	Height uint32
}

// Point is a position on the canvas, after fixed-point scaling.
type Point struct {
	X, Y float64
}

// Rectangle is an axis-aligned rectangle geometry record.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// Line is a single straight line segment with explicit endpoints, used
// by the draw-lines command.
type Line struct {
	Start, End Point
}

// StyleKind discriminates the Style and Paint variants.
type StyleKind uint8

const (
	StyleFlat   StyleKind = 0
	StyleLinear StyleKind = 1
	StyleRadial StyleKind = 2
)

// Style is the paint description attached to a command, before color
// lookup. Flat styles use ColorIndex0 only. Gradient styles run from
// ColorIndex0 at Point0 to ColorIndex1 at Point1; for radial gradients
// Point0 is the center and Point1 lies on the edge.
//
// Decode guarantees that every color index is a valid index into the
// document's color table.
type Style struct {
	Kind           StyleKind
	Point0, Point1 Point
	ColorIndex0    uint32
	ColorIndex1    uint32
}

// SegmentKind discriminates the path-segment variants.
type SegmentKind uint8

const (
	SegmentLine            SegmentKind = 0
	SegmentHorizontalLine  SegmentKind = 1
	SegmentVerticalLine    SegmentKind = 2
	SegmentCubicBezier     SegmentKind = 3
	SegmentArcCircle       SegmentKind = 4
	SegmentArcEllipse      SegmentKind = 5
	SegmentClosePath       SegmentKind = 6
	SegmentQuadraticBezier SegmentKind = 7
)

// PathSegment is one step of a path. Which fields are meaningful
// depends on Kind:
//
//	SegmentLine             To
//	SegmentHorizontalLine   To.X (To.Y comes from the cursor)
//	SegmentVerticalLine     To.Y (To.X comes from the cursor)
//	SegmentCubicBezier      Control0, Control1, To
//	SegmentQuadraticBezier  Control0, To
//	SegmentArcCircle        RadiusX (== RadiusY), LargeArc, Sweep, To
//	SegmentArcEllipse       RadiusX, RadiusY, Rotation, LargeArc, Sweep, To
//	SegmentClosePath        none
//
// Every non-close segment moves the path cursor to its end point.
type PathSegment struct {
	Kind               SegmentKind
	To                 Point
	Control0, Control1 Point
	RadiusX, RadiusY   float64
	// Rotation is the ellipse x-axis rotation in degrees.
	Rotation        float64
	LargeArc, Sweep bool
}

// Path is the geometry of a path-bearing command: an explicit starting
// point followed by segments that advance the cursor.
type Path struct {
	Start    Point
	Segments []PathSegment
}

// CommandKind discriminates the draw-command variants. The values match
// the command ids in the encoded form.
type CommandKind uint8

const (
	CommandFillPolygon           CommandKind = 1
	CommandFillRectangles        CommandKind = 2
	CommandFillPath              CommandKind = 3
	CommandDrawLines             CommandKind = 4
	CommandDrawLineLoop          CommandKind = 5
	CommandDrawLineStrip         CommandKind = 6
	CommandDrawLinePath          CommandKind = 7
	CommandOutlineFillPolygon    CommandKind = 8
	CommandOutlineFillRectangles CommandKind = 9
	CommandOutlineFillPath       CommandKind = 10
)

// Command is one decoded draw command. Style is the fill style for
// fill commands and the line style for draw commands. LineWidth is set
// for draw and outline commands; OutlineStyle only for outline
// commands. Exactly one geometry field is populated, per Kind:
//
//	FillPolygon, DrawLineLoop, DrawLineStrip, OutlineFillPolygon   Points
//	FillRectangles, OutlineFillRectangles                          Rectangles
//	FillPath, DrawLinePath, OutlineFillPath                        Path
//	DrawLines                                                      Lines
type Command struct {
	Kind         CommandKind
	Style        Style
	LineWidth    float64
	OutlineStyle Style
	Points       []Point
	Rectangles   []Rectangle
	Lines        []Line
	Path         Path
}

// Document is a fully decoded TinyVG file: header, color table and the
// ordered command list. It is created by Decode and must not be
// modified afterwards; a Document may be shared freely between
// goroutines and rendered concurrently.
type Document struct {
	Header   Header
	Colors   []Color
	Commands []Command
}
