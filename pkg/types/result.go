// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileStatus indicates the outcome of a single file conversion.
type FileStatus string

const (
	StatusConverted FileStatus = "converted"
	StatusSkipped   FileStatus = "skipped"
	StatusFailed    FileStatus = "failed"
)

// FileResult records the outcome of converting one source image.
type FileResult struct {
	// Source is the path of the input image.
	Source string `json:"source" yaml:"source"`

	// Output is the path of the converted image. Empty when the
	// conversion failed before an output path was written.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Status is the conversion outcome.
	Status FileStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is StatusFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// OriginalSize is the input file size in bytes.
	OriginalSize int64 `json:"original_size" yaml:"original_size"`

	// NewSize is the output file size in bytes (zero on failure or skip).
	NewSize int64 `json:"new_size" yaml:"new_size"`

	// Duration is the wall-clock time spent on this file.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// SizeSaved returns the byte difference between input and output. Negative
// means the output grew.
func (r FileResult) SizeSaved() int64 {
	return r.OriginalSize - r.NewSize
}

// CompressionRatio returns the space saved as a percentage of the original
// size. Zero when the original size is unknown.
func (r FileResult) CompressionRatio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.SizeSaved()) / float64(r.OriginalSize) * 100
}
