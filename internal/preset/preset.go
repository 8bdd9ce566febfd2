// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preset loads named conversion presets from a directory of YAML files.
// Each *.yaml file in the directory is one preset: the base filename is the
// preset name and the document holds conversion settings. Unset fields leave
// the corresponding configuration value untouched.
package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pixelpress/pkg/types"
)

// Preset holds conversion overrides. Pointer fields distinguish "unset"
// from an explicit zero value.
type Preset struct {
	Format         *string `yaml:"format,omitempty"`
	InputFilter    *string `yaml:"input_filter,omitempty"`
	Quality        *int    `yaml:"quality,omitempty"`
	Lossless       *bool   `yaml:"lossless,omitempty"`
	Compression    *int    `yaml:"compression,omitempty"`
	Recursive      *bool   `yaml:"recursive,omitempty"`
	StripMetadata  *bool   `yaml:"strip_metadata,omitempty"`
	DeleteOriginal *bool   `yaml:"delete_original,omitempty"`
	Width          *int    `yaml:"width,omitempty"`
	Height         *int    `yaml:"height,omitempty"`
	KeepAspect     *bool   `yaml:"keep_aspect,omitempty"`
	OutputDir      *string `yaml:"output_dir,omitempty"`
	Suffix         *string `yaml:"suffix,omitempty"`
	Pattern        *string `yaml:"pattern,omitempty"`
	Workers        *int    `yaml:"workers,omitempty"`
}

// Apply copies every set field onto cfg.
func (p Preset) Apply(cfg *types.ConvertConfig) {
	if p.Format != nil {
		cfg.OutputFormat = types.Format(*p.Format)
	}
	if p.InputFilter != nil {
		cfg.InputFilter = *p.InputFilter
	}
	if p.Quality != nil {
		cfg.Quality = *p.Quality
	}
	if p.Lossless != nil {
		cfg.Lossless = *p.Lossless
	}
	if p.Compression != nil {
		cfg.Compression = *p.Compression
	}
	if p.Recursive != nil {
		cfg.Recursive = *p.Recursive
	}
	if p.StripMetadata != nil {
		cfg.StripMetadata = *p.StripMetadata
	}
	if p.DeleteOriginal != nil {
		cfg.DeleteOriginal = *p.DeleteOriginal
	}
	if p.Width != nil {
		cfg.Resize.Width = *p.Width
	}
	if p.Height != nil {
		cfg.Resize.Height = *p.Height
	}
	if p.KeepAspect != nil {
		cfg.Resize.KeepAspect = *p.KeepAspect
	}
	if p.OutputDir != nil {
		cfg.OutputDir = *p.OutputDir
	}
	if p.Suffix != nil {
		cfg.Suffix = *p.Suffix
	}
	if p.Pattern != nil {
		cfg.RenamePattern = *p.Pattern
	}
	if p.Workers != nil {
		cfg.Workers = *p.Workers
	}
}

// Load reads all *.yaml files in dir and returns a map of preset name to
// preset. A missing directory is not an error; Load returns an empty map.
// An unparsable file aborts the load so a typo is never silently ignored.
func Load(dir string) (map[string]Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Preset{}, nil
		}
		return nil, fmt.Errorf("reading preset directory %s: %w", dir, err)
	}

	presets := make(map[string]Preset)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading preset %s: %w", name, err)
		}

		var p Preset
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing preset %s: %w", name, err)
		}
		presets[strings.TrimSuffix(name, filepath.Ext(name))] = p
	}

	return presets, nil
}

// Names returns the preset names in sorted order.
func Names(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
