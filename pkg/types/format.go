// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"sort"
	"strings"
)

// Format identifies an output image format the codec can encode.
type Format string

const (
	FormatWebP Format = "webp"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatGIF  Format = "gif"
	FormatAVIF Format = "avif"
	FormatHEIF Format = "heif"
)

// Formats lists every supported output format in display order.
var Formats = []Format{
	FormatWebP, FormatJPEG, FormatPNG, FormatTIFF, FormatGIF, FormatAVIF, FormatHEIF,
}

// ParseFormat normalizes a user-supplied format name. "jpg" is accepted as
// an alias for "jpeg".
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "jpg" {
		name = "jpeg"
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (supported: %s)", s, FormatNames())
}

// Ext returns the output filename extension, with leading dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// FormatNames returns the supported format names as a comma-separated string.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// inputFilters maps a filter group name to the file extensions it selects.
// Extensions are lowercase with leading dot; matching is case-insensitive.
var inputFilters = map[string][]string{
	"png":  {".png"},
	"jpeg": {".jpg", ".jpeg"},
	"webp": {".webp"},
	"bmp":  {".bmp"},
	"gif":  {".gif"},
	"tiff": {".tiff", ".tif"},
	"avif": {".avif"},
	"heif": {".heif", ".heic"},
	"all":  {".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif", ".tiff", ".tif", ".avif", ".heif", ".heic"},
}

// FilterExtensions returns the extension set for a named input filter group.
func FilterExtensions(name string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "all"
	}
	if key == "jpg" {
		key = "jpeg"
	}
	exts, ok := inputFilters[key]
	if !ok {
		return nil, fmt.Errorf("unknown input filter %q (known: %s)", name, FilterNames())
	}
	return exts, nil
}

// FilterNames returns the known filter group names, sorted.
func FilterNames() string {
	names := make([]string, 0, len(inputFilters))
	for k := range inputFilters {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
