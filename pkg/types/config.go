// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResizeConfig holds optional resize dimensions applied during conversion.
// A zero width or height means "derive from the other dimension" when
// KeepAspect is set, or "leave unchanged" when both are zero.
type ResizeConfig struct {
	// Width is the target width in pixels (0 = auto).
	Width int `json:"width" yaml:"width"`

	// Height is the target height in pixels (0 = auto).
	Height int `json:"height" yaml:"height"`

	// KeepAspect scales the image to fit within Width x Height while
	// preserving the source aspect ratio.
	KeepAspect bool `json:"keep_aspect" yaml:"keep_aspect"`
}

// Enabled reports whether a resize was requested.
func (r ResizeConfig) Enabled() bool {
	return r.Width > 0 || r.Height > 0
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// InputDir is the directory scanned for source images.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// InputFilter names the extension filter group (default "all").
	InputFilter string `json:"input_filter" yaml:"input_filter"`

	// OutputFormat is the target encoding format.
	OutputFormat Format `json:"output_format" yaml:"output_format"`

	// Quality is the lossy encoder quality, 1-100 (0 selects the default
	// of 80). Ignored for formats without a quality knob.
	Quality int `json:"quality" yaml:"quality"`

	// Lossless enables lossless encoding for formats that support it
	// (webp, avif).
	Lossless bool `json:"lossless" yaml:"lossless"`

	// Compression is the PNG zlib compression level, 0-9.
	Compression int `json:"compression" yaml:"compression"`

	// Recursive scans subdirectories of InputDir.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// Force overwrites existing output files instead of skipping them.
	Force bool `json:"force" yaml:"force"`

	// DeleteOriginal removes the source file after a successful
	// conversion, unless the output path equals the source path.
	DeleteOriginal bool `json:"delete_original" yaml:"delete_original"`

	// StripMetadata drops EXIF and other metadata from the output.
	StripMetadata bool `json:"strip_metadata" yaml:"strip_metadata"`

	// Resize holds optional output dimensions.
	Resize ResizeConfig `json:"resize" yaml:"resize"`

	// OutputDir relocates converted files, preserving the relative
	// directory structure under InputDir. Empty writes siblings.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Suffix is appended to the output filename stem (e.g. "_web").
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`

	// RenamePattern renames output stems. Supports {name}, {date}, and
	// {time} placeholders.
	RenamePattern string `json:"rename_pattern,omitempty" yaml:"rename_pattern,omitempty"`

	// Workers is the conversion pool size (default 4, clamped to 1-16).
	Workers int `json:"workers" yaml:"workers"`

	// DryRun reports what would be converted without writing anything.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// PoolSize returns Workers clamped to the accepted range.
func (c ConvertConfig) PoolSize() int {
	switch {
	case c.Workers <= 0:
		return 4
	case c.Workers > 16:
		return 16
	default:
		return c.Workers
	}
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// HistoryDir is the directory holding the history database.
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxResults is the default number of runs shown by listing
	// commands (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	History HistoryConfig `json:"history" yaml:"history"`
}
