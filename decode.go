// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

// Encoded-form constants.
const (
	magic0 = 0x72
	magic1 = 0x56

	supportedVersion = 1

	// Command byte layout: id in the low 6 bits, primary style kind in
	// the top 2 bits. Id 0 terminates the command stream.
	commandIDMask    = 0x3f
	commandEnd       = 0
	commandKindMax   = uint8(CommandOutlineFillPath)
	styleKindShift   = 6
	invalidStyleKind = 3

	// Segment tag layout: kind in the low 4 bits, arc flags above.
	segmentKindMask = 0x0f
	segmentKindMax  = uint8(SegmentQuadraticBezier)
	segmentLargeArc = 0x10
	segmentSweep    = 0x20
)

// DefaultMaxGeometryCount is the cap applied to count fields when
// DecodeOptions does not set one. A malformed but well-terminated
// stream can declare an arbitrarily large count; the cap bounds the
// allocation that declaration can force.
const DefaultMaxGeometryCount = 1 << 20

// DecodeOptions are the optional parameters to Decode.
type DecodeOptions struct {
	// MaxGeometryCount caps every count field (color count, geometry
	// counts) before its backing storage is allocated. Zero means
	// DefaultMaxGeometryCount.
	MaxGeometryCount uint32
}

// Decode parses an encoded TinyVG document. opts may be nil, which
// means to use the default decode options.
//
// Decoding is fail-fast: the first structural violation aborts the
// whole decode and is reported as a *ParseError. Bytes after the end
// command are ignored.
func Decode(src []byte, opts *DecodeOptions) (*Document, error) {
	d := decoder{r: reader{data: src}, maxCount: DefaultMaxGeometryCount}
	if opts != nil && opts.MaxGeometryCount != 0 {
		d.maxCount = opts.MaxGeometryCount
	}
	doc := &Document{}
	var err error
	if doc.Header, err = d.header(); err != nil {
		return nil, err
	}
	if doc.Colors, err = d.colorTable(); err != nil {
		return nil, err
	}
	d.colors = doc.Colors
	if doc.Commands, err = d.commands(); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeHeader parses only the file header, without touching the color
// table or command stream.
func DecodeHeader(src []byte) (Header, error) {
	d := decoder{r: reader{data: src}}
	return d.header()
}

type decoder struct {
	r        reader
	hdr      Header
	colors   []Color
	maxCount uint32
}

func (d *decoder) header() (Header, error) {
	m, err := d.r.bytes(2)
	if err != nil {
		return Header{}, err
	}
	if m[0] != magic0 || m[1] != magic1 {
		return Header{}, &ParseError{Offset: 0, Err: ErrInvalidMagic}
	}
	version, err := d.r.u8()
	if err != nil {
		return Header{}, err
	}
	if version != supportedVersion {
		return Header{}, &ParseError{Offset: 2, Err: ErrUnsupportedVersion}
	}
	flagsOff := d.r.off
	flags, err := d.r.u8()
	if err != nil {
		return Header{}, err
	}
	h := Header{
		Version:         version,
		Scale:           flags >> 4,
		ColorEncoding:   ColorEncoding(flags >> 2 & 0x03),
		CoordinateRange: CoordinateRange(flags & 0x03),
	}
	if h.ColorEncoding > ColorEncodingRGBAF32 || h.CoordinateRange > CoordinateRangeEnhanced {
		return Header{}, &ParseError{Offset: flagsOff, Err: ErrInvalidEnumValue}
	}
	d.hdr = h
	if h.Width, err = d.extent(); err != nil {
		return Header{}, err
	}
	if h.Height, err = d.extent(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// extent reads an unsigned canvas dimension in the coordinate-range
// width.
func (d *decoder) extent() (uint32, error) {
	switch d.hdr.CoordinateRange {
	case CoordinateRangeReduced:
		v, err := d.r.u8()
		return uint32(v), err
	case CoordinateRangeEnhanced:
		return d.r.u32()
	default:
		v, err := d.r.u16()
		return uint32(v), err
	}
}

// unit reads one signed fixed-point scalar: a raw integer of the
// coordinate-range width divided by 2^scale. This is the only place
// the scale is applied.
func (d *decoder) unit() (float64, error) {
	var raw int32
	switch d.hdr.CoordinateRange {
	case CoordinateRangeReduced:
		v, err := d.r.u8()
		if err != nil {
			return 0, err
		}
		raw = int32(int8(v))
	case CoordinateRangeEnhanced:
		v, err := d.r.u32()
		if err != nil {
			return 0, err
		}
		raw = int32(v)
	default:
		v, err := d.r.u16()
		if err != nil {
			return 0, err
		}
		raw = int32(int16(v))
	}
	return float64(raw) / float64(uint32(1)<<d.hdr.Scale), nil
}

func (d *decoder) point() (Point, error) {
	x, err := d.unit()
	if err != nil {
		return Point{}, err
	}
	y, err := d.unit()
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func (d *decoder) colorTable() ([]Color, error) {
	n, err := d.count(0)
	if err != nil {
		return nil, err
	}
	colors := make([]Color, 0, n)
	for i := 0; i < n; i++ {
		c, err := d.color()
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

func (d *decoder) color() (Color, error) {
	switch d.hdr.ColorEncoding {
	case ColorEncodingRGB565:
		v, err := d.r.u16()
		if err != nil {
			return Color{}, err
		}
		return Color{
			R: float64(v&0x001f) / 31,
			G: float64(v>>5&0x003f) / 63,
			B: float64(v>>11&0x001f) / 31,
			A: 1,
		}, nil
	case ColorEncodingRGBAF32:
		var f [4]float32
		for i := range f {
			v, err := d.r.f32()
			if err != nil {
				return Color{}, err
			}
			f[i] = v
		}
		return Color{R: float64(f[0]), G: float64(f[1]), B: float64(f[2]), A: float64(f[3])}, nil
	default: // RGBA8888, validated in header
		b, err := d.r.bytes(4)
		if err != nil {
			return Color{}, err
		}
		return Color{
			R: float64(b[0]) / 255,
			G: float64(b[1]) / 255,
			B: float64(b[2]) / 255,
			A: float64(b[3]) / 255,
		}, nil
	}
}

// count reads a varuint count field and validates it against both the
// structural minimum for its context and the configured allocation
// cap. Violations of either are geometry-count errors.
func (d *decoder) count(min int) (int, error) {
	off := d.r.off
	v, err := d.r.varUint()
	if err != nil {
		return 0, err
	}
	if v > uint64(d.maxCount) || int(v) < min {
		return 0, &ParseError{Offset: off, Err: ErrGeometryCountMismatch}
	}
	return int(v), nil
}

// colorIndex reads a varuint color-table index and validates it
// immediately; an out-of-range index is fatal, never clamped.
func (d *decoder) colorIndex() (uint32, error) {
	off := d.r.off
	v, err := d.r.varUint()
	if err != nil {
		return 0, err
	}
	if v >= uint64(len(d.colors)) {
		return 0, &ParseError{Offset: off, Err: ErrColorIndexOutOfRange}
	}
	return uint32(v), nil
}

func (d *decoder) style(kind StyleKind) (Style, error) {
	s := Style{Kind: kind}
	var err error
	if kind == StyleFlat {
		s.ColorIndex0, err = d.colorIndex()
		return s, err
	}
	if s.Point0, err = d.point(); err != nil {
		return Style{}, err
	}
	if s.Point1, err = d.point(); err != nil {
		return Style{}, err
	}
	if s.ColorIndex0, err = d.colorIndex(); err != nil {
		return Style{}, err
	}
	if s.ColorIndex1, err = d.colorIndex(); err != nil {
		return Style{}, err
	}
	return s, nil
}

func (d *decoder) commands() ([]Command, error) {
	var cmds []Command
	for {
		off := d.r.off
		b, err := d.r.u8()
		if err != nil {
			return nil, err
		}
		id := b & commandIDMask
		if id == commandEnd {
			return cmds, nil
		}
		if id > commandKindMax {
			return nil, &ParseError{Offset: off, Err: ErrInvalidEnumValue}
		}
		styleKind := b >> styleKindShift
		if styleKind == invalidStyleKind {
			return nil, &ParseError{Offset: off, Err: ErrInvalidEnumValue}
		}
		cmd, err := d.command(CommandKind(id), StyleKind(styleKind))
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
}

func (d *decoder) command(kind CommandKind, styleKind StyleKind) (Command, error) {
	cmd := Command{Kind: kind}

	n, err := d.count(minGeometryCount(kind))
	if err != nil {
		return Command{}, err
	}
	if cmd.Style, err = d.style(styleKind); err != nil {
		return Command{}, err
	}

	switch kind {
	case CommandDrawLines, CommandDrawLineLoop, CommandDrawLineStrip, CommandDrawLinePath:
		if cmd.LineWidth, err = d.unit(); err != nil {
			return Command{}, err
		}
	case CommandOutlineFillPolygon, CommandOutlineFillRectangles, CommandOutlineFillPath:
		if cmd.LineWidth, err = d.unit(); err != nil {
			return Command{}, err
		}
		off := d.r.off
		sk, err := d.r.u8()
		if err != nil {
			return Command{}, err
		}
		if sk >= invalidStyleKind {
			return Command{}, &ParseError{Offset: off, Err: ErrInvalidEnumValue}
		}
		if cmd.OutlineStyle, err = d.style(StyleKind(sk)); err != nil {
			return Command{}, err
		}
	}

	switch kind {
	case CommandFillPolygon, CommandDrawLineLoop, CommandDrawLineStrip, CommandOutlineFillPolygon:
		cmd.Points, err = d.points(n)
	case CommandFillRectangles, CommandOutlineFillRectangles:
		cmd.Rectangles, err = d.rectangles(n)
	case CommandDrawLines:
		cmd.Lines, err = d.lines(n)
	case CommandFillPath, CommandDrawLinePath, CommandOutlineFillPath:
		cmd.Path, err = d.path(n)
	}
	if err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// minGeometryCount is the structural minimum for a command's declared
// geometry count: polygons, loops and strips need two points to have
// any extent, everything else at least one record.
func minGeometryCount(kind CommandKind) int {
	switch kind {
	case CommandFillPolygon, CommandDrawLineLoop, CommandDrawLineStrip, CommandOutlineFillPolygon:
		return 2
	default:
		return 1
	}
}

func (d *decoder) points(n int) ([]Point, error) {
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		p, err := d.point()
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func (d *decoder) rectangles(n int) ([]Rectangle, error) {
	rects := make([]Rectangle, 0, n)
	for i := 0; i < n; i++ {
		var rect Rectangle
		var err error
		if rect.X, err = d.unit(); err != nil {
			return nil, err
		}
		if rect.Y, err = d.unit(); err != nil {
			return nil, err
		}
		if rect.Width, err = d.unit(); err != nil {
			return nil, err
		}
		if rect.Height, err = d.unit(); err != nil {
			return nil, err
		}
		rects = append(rects, rect)
	}
	return rects, nil
}

func (d *decoder) lines(n int) ([]Line, error) {
	lines := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		start, err := d.point()
		if err != nil {
			return nil, err
		}
		end, err := d.point()
		if err != nil {
			return nil, err
		}
		lines = append(lines, Line{Start: start, End: end})
	}
	return lines, nil
}

func (d *decoder) path(n int) (Path, error) {
	start, err := d.point()
	if err != nil {
		return Path{}, err
	}
	p := Path{Start: start, Segments: make([]PathSegment, 0, n)}
	for i := 0; i < n; i++ {
		seg, err := d.segment()
		if err != nil {
			return Path{}, err
		}
		p.Segments = append(p.Segments, seg)
	}
	return p, nil
}

func (d *decoder) segment() (PathSegment, error) {
	off := d.r.off
	tag, err := d.r.u8()
	if err != nil {
		return PathSegment{}, err
	}
	kind := tag & segmentKindMask
	if kind > segmentKindMax {
		return PathSegment{}, &ParseError{Offset: off, Err: ErrInvalidEnumValue}
	}
	seg := PathSegment{
		Kind:     SegmentKind(kind),
		LargeArc: tag&segmentLargeArc != 0,
		Sweep:    tag&segmentSweep != 0,
	}
	switch seg.Kind {
	case SegmentLine:
		seg.To, err = d.point()
	case SegmentHorizontalLine:
		seg.To.X, err = d.unit()
	case SegmentVerticalLine:
		seg.To.Y, err = d.unit()
	case SegmentCubicBezier:
		if seg.Control0, err = d.point(); err != nil {
			return PathSegment{}, err
		}
		if seg.Control1, err = d.point(); err != nil {
			return PathSegment{}, err
		}
		seg.To, err = d.point()
	case SegmentQuadraticBezier:
		if seg.Control0, err = d.point(); err != nil {
			return PathSegment{}, err
		}
		seg.To, err = d.point()
	case SegmentArcCircle:
		var radius float64
		if radius, err = d.unit(); err != nil {
			return PathSegment{}, err
		}
		seg.RadiusX, seg.RadiusY = radius, radius
		seg.To, err = d.point()
	case SegmentArcEllipse:
		if seg.RadiusX, err = d.unit(); err != nil {
			return PathSegment{}, err
		}
		if seg.RadiusY, err = d.unit(); err != nil {
			return PathSegment{}, err
		}
		if seg.Rotation, err = d.unit(); err != nil {
			return PathSegment{}, err
		}
		seg.To, err = d.point()
	case SegmentClosePath:
		// no payload
	}
	if err != nil {
		return PathSegment{}, err
	}
	return seg, nil
}
