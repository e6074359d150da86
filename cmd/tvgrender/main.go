// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The tvgrender command renders a TinyVG vector image to a PNG file.
//
// Usage: tvgrender [-o output.png] input.tvg
//
// When -o is not given, the output path is the input path with its
// extension replaced by .png. The exit code is 0 on success and
// non-zero on any decode or render failure, with the error reported on
// stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tinyvg-go/tinyvg"
)

var outputFlag = flag.String("o", "", "output path (default: input path with a .png extension)")

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tvgrender [-o output.png] input.tvg")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)
	output := *outputFlag
	if output == "" {
		output = input[:len(input)-len(filepath.Ext(input))] + ".png"
	}

	if err := run(input, output); err != nil {
		logger.Error().Err(err).Str("input", input).Str("output", output).Msg("render failed")
		os.Exit(1)
	}
	logger.Info().Str("output", output).Msg("rendered")
}

func run(input, output string) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	doc, err := tinyvg.Decode(src, nil)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	renderErr := doc.RenderToPNG(f, int(doc.Header.Width), int(doc.Header.Height))
	closeErr := f.Close()
	if renderErr != nil {
		return renderErr
	}
	return closeErr
}
