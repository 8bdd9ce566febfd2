// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display provides formatting helpers for human-readable output.
package display

import "fmt"

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, ...).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatSaving renders a byte delta as a signed human-readable string.
// Positive deltas (output smaller) render without a sign; negative deltas
// render with a leading minus.
func FormatSaving(bytes int64) string {
	if bytes < 0 {
		return "-" + FormatBytes(-bytes)
	}
	return FormatBytes(bytes)
}

// FormatMegapixels renders a pixel count in megapixels.
func FormatMegapixels(width, height int) string {
	mp := float64(width) * float64(height) / 1e6
	return fmt.Sprintf("%.2f MP", mp)
}
