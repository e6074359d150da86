// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import (
	"errors"
	"testing"
)

func TestReaderFixedWidth(t *testing.T) {
	r := reader{data: []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}}
	if got, err := r.u8(); err != nil || got != 0x11 {
		t.Fatalf("u8: got %#x, %v; want 0x11, nil", got, err)
	}
	if got, err := r.u16(); err != nil || got != 0x3322 {
		t.Fatalf("u16: got %#x, %v; want 0x3322, nil", got, err)
	}
	if got, err := r.u32(); err != nil || got != 0x77665544 {
		t.Fatalf("u32: got %#x, %v; want 0x77665544, nil", got, err)
	}
	if r.off != 7 {
		t.Fatalf("offset: got %d; want 7", r.off)
	}
	if _, err := r.u8(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("u8 past end: got %v; want ErrUnexpectedEOF", err)
	}
}

func TestReaderEOFIsFatalNotPartial(t *testing.T) {
	r := reader{data: []byte{0x01}}
	if _, err := r.u16(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("u16 with one byte left: got %v; want ErrUnexpectedEOF", err)
	}
	// The failed read must not have consumed the remaining byte.
	if r.off != 0 {
		t.Fatalf("offset after failed read: got %d; want 0", r.off)
	}
}

func TestReaderVarUint(t *testing.T) {
	tests := []struct {
		data []byte
		want uint64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xac, 0x02}, 300},
		{[]byte{0x80, 0x80, 0x40}, 1 << 20},
	}
	for _, tc := range tests {
		r := reader{data: tc.data}
		got, err := r.varUint()
		if err != nil {
			t.Errorf("varUint(% x): %v", tc.data, err)
			continue
		}
		if got != tc.want {
			t.Errorf("varUint(% x): got %d; want %d", tc.data, got, tc.want)
		}
		if r.off != len(tc.data) {
			t.Errorf("varUint(% x): consumed %d bytes; want %d", tc.data, r.off, len(tc.data))
		}
	}
}

func TestReaderVarUintMalformed(t *testing.T) {
	// Eleven continuation bytes never terminate within the limit.
	data := make([]byte, 11)
	for i := range data {
		data[i] = 0xff
	}
	r := reader{data: data}
	if _, err := r.varUint(); !errors.Is(err, ErrMalformedVarUint) {
		t.Fatalf("got %v; want ErrMalformedVarUint", err)
	}
}

func TestReaderVarUintTruncated(t *testing.T) {
	r := reader{data: []byte{0x80}}
	if _, err := r.varUint(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("got %v; want ErrUnexpectedEOF", err)
	}
}

func TestReaderBytes(t *testing.T) {
	r := reader{data: []byte{1, 2, 3}}
	b, err := r.bytes(2)
	if err != nil || len(b) != 2 || b[0] != 1 || b[1] != 2 {
		t.Fatalf("bytes(2): got % x, %v", b, err)
	}
	if _, err := r.bytes(2); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("bytes past end: got %v; want ErrUnexpectedEOF", err)
	}
}

func TestParseErrorOffset(t *testing.T) {
	r := reader{data: []byte{0x01, 0x02}}
	r.off = 2
	_, err := r.u8()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %T; want *ParseError", err)
	}
	if perr.Offset != 2 {
		t.Fatalf("offset: got %d; want 2", perr.Offset)
	}
}
