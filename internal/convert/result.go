// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "github.com/pdiddy/pixelpress/pkg/types"

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// InputBytes and OutputBytes aggregate sizes over converted files.
	InputBytes  int64
	OutputBytes int64

	// Results lists per-file outcomes in discovery order.
	Results []types.FileResult
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// SpaceSaved returns the aggregate byte difference between inputs and
// outputs. Negative means the outputs grew overall.
func (r BatchResult) SpaceSaved() int64 {
	return r.InputBytes - r.OutputBytes
}
