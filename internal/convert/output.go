// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/pixelpress/pkg/types"
)

// ExpandPattern substitutes {name}, {date}, and {time} placeholders in an
// output rename pattern. The timestamp is fixed per run so every file in a
// batch shares the same date and time values.
func ExpandPattern(pattern, name string, now time.Time) string {
	out := strings.ReplaceAll(pattern, "{name}", name)
	out = strings.ReplaceAll(out, "{date}", now.Format("20060102"))
	out = strings.ReplaceAll(out, "{time}", now.Format("150405"))
	return out
}

// OutputPath computes where the converted form of source is written:
// rename pattern, then suffix, then relocation under OutputDir with the
// source's relative directory structure preserved.
func OutputPath(source string, format types.Format, cfg types.ConvertConfig, runTime time.Time) (string, error) {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if cfg.RenamePattern != "" {
		stem = ExpandPattern(cfg.RenamePattern, stem, runTime)
	}
	stem += cfg.Suffix
	if stem == "" {
		return "", fmt.Errorf("empty output name for %s", source)
	}

	dir := filepath.Dir(source)
	if cfg.OutputDir != "" {
		rel, err := filepath.Rel(cfg.InputDir, dir)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = "."
		}
		dir = filepath.Join(cfg.OutputDir, rel)
	}

	return filepath.Join(dir, stem+format.Ext()), nil
}
