// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect reports image properties and EXIF metadata for one file.
package inspect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pixelpress/internal/codec"
	"github.com/pdiddy/pixelpress/internal/display"
)

// Row is one property/value pair in an inspection report.
type Row struct {
	Property string `json:"property" yaml:"property"`
	Value    string `json:"value" yaml:"value"`
}

// Report is an ordered list of image properties.
type Report struct {
	Path string `json:"path" yaml:"path"`
	Rows []Row  `json:"rows" yaml:"rows"`
}

// File probes an image on disk and builds its report.
func File(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading %s: %w", path, err)
	}
	info, err := codec.Probe(data)
	if err != nil {
		return Report{}, fmt.Errorf("probing %s: %w", path, err)
	}
	return Build(path, int64(len(data)), info), nil
}

// Build assembles the report rows from probed metadata and the file size.
func Build(path string, fileSize int64, info codec.Info) Report {
	rows := []Row{
		{"Filename", filepath.Base(path)},
		{"Format", strings.ToUpper(info.Format)},
		{"Dimensions", fmt.Sprintf("%d x %d px", info.Width, info.Height)},
		{"Megapixels", display.FormatMegapixels(info.Width, info.Height)},
		{"File size", display.FormatBytes(fileSize)},
		{"Alpha channel", yesNo(info.Alpha)},
	}
	if info.Colourspace != "" {
		rows = append(rows, Row{"Colourspace", info.Colourspace})
	}
	if info.Orientation > 1 {
		rows = append(rows, Row{"Orientation", fmt.Sprintf("%d", info.Orientation)})
	}
	if info.HasProfile {
		rows = append(rows, Row{"ICC profile", "yes"})
	}

	exif := info.Exif
	if !exif.Empty() {
		if exif.Make != "" || exif.Model != "" {
			rows = append(rows, Row{"Camera", strings.TrimSpace(exif.Make + " " + exif.Model)})
		}
		if exif.DateTime != "" {
			rows = append(rows, Row{"Taken", exif.DateTime})
		}
		if exif.ExposureTime != "" {
			rows = append(rows, Row{"Exposure", exif.ExposureTime + " s"})
		}
		if exif.FNumber != "" {
			rows = append(rows, Row{"Aperture", "f/" + exif.FNumber})
		}
		if exif.ISO > 0 {
			rows = append(rows, Row{"ISO", fmt.Sprintf("%d", exif.ISO)})
		}
		if exif.FocalLength != "" {
			rows = append(rows, Row{"Focal length", exif.FocalLength + " mm"})
		}
		if exif.Software != "" {
			rows = append(rows, Row{"Software", exif.Software})
		}
	}

	return Report{Path: path, Rows: rows}
}

// Render writes the report as an aligned two-column table.
func Render(w io.Writer, r Report) {
	width := 0
	for _, row := range r.Rows {
		if len(row.Property) > width {
			width = len(row.Property)
		}
	}
	for _, row := range r.Rows {
		fmt.Fprintf(w, "%-*s  %s\n", width, row.Property, row.Value)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
