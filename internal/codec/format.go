// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"fmt"

	bimg "gopkg.in/h2non/bimg.v1"

	"github.com/pdiddy/pixelpress/pkg/types"
)

// formatSpec describes what the codec supports for one output format.
type formatSpec struct {
	vipsType bimg.ImageType

	// quality: the format accepts a 1-100 lossy quality setting.
	quality bool

	// lossless: the format has a lossless encoding mode.
	lossless bool

	// compression: the format accepts a 0-9 compression level.
	compression bool
}

// formatSpecs maps output formats to libvips types and capabilities.
var formatSpecs = map[types.Format]formatSpec{
	types.FormatWebP: {vipsType: bimg.WEBP, quality: true, lossless: true},
	types.FormatJPEG: {vipsType: bimg.JPEG, quality: true},
	types.FormatPNG:  {vipsType: bimg.PNG, compression: true},
	types.FormatTIFF: {vipsType: bimg.TIFF, quality: true},
	types.FormatGIF:  {vipsType: bimg.GIF},
	types.FormatAVIF: {vipsType: bimg.AVIF, quality: true, lossless: true},
	types.FormatHEIF: {vipsType: bimg.HEIF, quality: true},
}

// SupportsQuality reports whether format accepts a lossy quality setting.
func SupportsQuality(format types.Format) bool {
	return formatSpecs[format].quality
}

// SupportsLossless reports whether format has a lossless mode.
func SupportsLossless(format types.Format) bool {
	return formatSpecs[format].lossless
}

// SupportsCompression reports whether format accepts a compression level.
func SupportsCompression(format types.Format) bool {
	return formatSpecs[format].compression
}

// vipsTypeFor returns the libvips image type for an output format.
func vipsTypeFor(format types.Format) (bimg.ImageType, error) {
	spec, ok := formatSpecs[format]
	if !ok {
		return bimg.UNKNOWN, fmt.Errorf("no codec support for format %q", format)
	}
	return spec.vipsType, nil
}
