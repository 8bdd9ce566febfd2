// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codec wraps libvips (via bimg) for image transcoding. It owns the
// format capability table, encode option validation, and resize geometry;
// pixel-level work is delegated entirely to the library.
package codec

import (
	"fmt"

	bimg "gopkg.in/h2non/bimg.v1"

	"github.com/pdiddy/pixelpress/pkg/types"
)

// Transcoder encodes source images into one configured output format.
// A Transcoder is safe for concurrent use: Encode does not mutate state.
type Transcoder struct {
	format   types.Format
	vipsType bimg.ImageType

	quality     int
	lossless    bool
	compression int
	strip       bool
	resize      types.ResizeConfig
}

// NewTranscoder validates the conversion settings against the format
// capability table and returns a ready Transcoder.
func NewTranscoder(cfg types.ConvertConfig) (*Transcoder, error) {
	vt, err := vipsTypeFor(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}

	if cfg.Quality < 0 || cfg.Quality > 100 {
		return nil, fmt.Errorf("quality %d out of range 0-100", cfg.Quality)
	}
	if cfg.Lossless && !SupportsLossless(cfg.OutputFormat) {
		return nil, fmt.Errorf("format %q has no lossless mode", cfg.OutputFormat)
	}
	if cfg.Compression < 0 || cfg.Compression > 9 {
		return nil, fmt.Errorf("compression level %d out of range 0-9", cfg.Compression)
	}

	quality := cfg.Quality
	if quality == 0 {
		quality = 80
	}

	return &Transcoder{
		format:      cfg.OutputFormat,
		vipsType:    vt,
		quality:     quality,
		lossless:    cfg.Lossless,
		compression: cfg.Compression,
		strip:       cfg.StripMetadata,
		resize:      cfg.Resize,
	}, nil
}

// Format returns the configured output format.
func (t *Transcoder) Format() types.Format {
	return t.format
}

// Encode transcodes one source image and returns the encoded bytes.
func (t *Transcoder) Encode(src []byte) ([]byte, error) {
	opts := bimg.Options{
		Type:          t.vipsType,
		StripMetadata: t.strip,
	}
	if SupportsQuality(t.format) {
		opts.Quality = t.quality
	}
	if t.lossless {
		opts.Lossless = true
	}
	if SupportsCompression(t.format) {
		opts.Compression = t.compression
	}

	if t.resize.Enabled() {
		size, err := bimg.NewImage(src).Size()
		if err != nil {
			return nil, fmt.Errorf("reading image dimensions: %w", err)
		}
		w, h := FitSize(size.Width, size.Height, t.resize.Width, t.resize.Height, t.resize.KeepAspect)
		if w != size.Width || h != size.Height {
			opts.Width = w
			opts.Height = h
			// Dimensions are already aspect-corrected by FitSize.
			opts.Force = true
		}
	}

	out, err := bimg.NewImage(src).Process(opts)
	if err != nil {
		return nil, fmt.Errorf("encoding to %s: %w", t.format, err)
	}
	return out, nil
}
