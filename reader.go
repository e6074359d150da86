// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import "math"

// maxVarUintLen is the maximum number of bytes a variable-length
// unsigned integer may occupy. Ten 7-bit groups cover a uint64; any
// longer run of continuation bytes is malformed rather than merely
// redundant.
const maxVarUintLen = 10

// reader consumes an encoded TinyVG document from a byte slice. Every
// read either yields the full requested value or fails; no partial
// reads are exposed. The offset only moves forward and is reported in
// ParseError values.
type reader struct {
	data []byte
	off  int
}

// fail wraps err with the current offset.
func (r *reader) fail(err error) error {
	return &ParseError{Offset: r.off, Err: err}
}

func (r *reader) u8() (uint8, error) {
	if r.off+1 > len(r.data) {
		return 0, r.fail(ErrUnexpectedEOF)
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if r.off+2 > len(r.data) {
		return 0, r.fail(ErrUnexpectedEOF)
	}
	v := uint16(r.data[r.off]) | uint16(r.data[r.off+1])<<8
	r.off += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.off+4 > len(r.data) {
		return 0, r.fail(ErrUnexpectedEOF)
	}
	v := uint32(r.data[r.off]) | uint32(r.data[r.off+1])<<8 |
		uint32(r.data[r.off+2])<<16 | uint32(r.data[r.off+3])<<24
	r.off += 4
	return v, nil
}

func (r *reader) f32() (float32, error) {
	u, err := r.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// varUint reads a variable-length unsigned integer: little-endian 7-bit
// groups, high bit set on every byte except the last.
func (r *reader) varUint() (uint64, error) {
	start := r.off
	var v uint64
	for i := 0; i < maxVarUintLen; i++ {
		b, err := r.u8()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, &ParseError{Offset: start, Err: ErrMalformedVarUint}
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.data) {
		return nil, r.fail(ErrUnexpectedEOF)
	}
	v := r.data[r.off : r.off+n : r.off+n]
	r.off += n
	return v, nil
}
