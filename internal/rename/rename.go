// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rename applies pattern-based batch renames to the image files of
// a single directory.
package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/pixelpress/internal/scan"
	"github.com/pdiddy/pixelpress/pkg/types"
)

// Rename is one planned filename change. Both paths are in the same
// directory; only the basename changes.
type Rename struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Expand substitutes {name}, {date}, {time}, and {counter} placeholders.
// The counter is zero-padded to four digits.
func Expand(pattern, name string, now time.Time, counter int) string {
	out := strings.ReplaceAll(pattern, "{name}", name)
	out = strings.ReplaceAll(out, "{date}", now.Format("20060102"))
	out = strings.ReplaceAll(out, "{time}", now.Format("150405"))
	out = strings.ReplaceAll(out, "{counter}", fmt.Sprintf("%04d", counter))
	return out
}

// Plan scans dir (flat, no recursion) for image files and builds the
// rename list in sorted filename order, with {counter} starting at 1. The
// original extension is always preserved. Plan fails when the pattern is
// empty or produces duplicate names.
func Plan(dir, pattern string, now time.Time) ([]Rename, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("rename pattern must not be empty")
	}

	exts, err := types.FilterExtensions("all")
	if err != nil {
		return nil, err
	}
	files, err := scan.Discover(dir, exts, false)
	if err != nil {
		return nil, err
	}

	renames := make([]Rename, 0, len(files))
	claimed := make(map[string]string, len(files))
	counter := 1
	for _, file := range files {
		base := filepath.Base(file)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		newName := Expand(pattern, stem, now, counter) + ext
		counter++

		to := filepath.Join(dir, newName)
		if owner, taken := claimed[to]; taken {
			return nil, fmt.Errorf("pattern %q maps both %s and %s to %s",
				pattern, filepath.Base(owner), base, newName)
		}
		claimed[to] = file

		if to == file {
			continue
		}
		renames = append(renames, Rename{From: file, To: to})
	}
	return renames, nil
}

// Apply performs the planned renames in order, refusing to overwrite files
// that already exist. It returns the number applied; on error, earlier
// renames stay applied.
func Apply(renames []Rename) (int, error) {
	for i, r := range renames {
		if _, err := os.Lstat(r.To); err == nil {
			return i, fmt.Errorf("renaming %s: %s already exists", filepath.Base(r.From), filepath.Base(r.To))
		}
		if err := os.Rename(r.From, r.To); err != nil {
			return i, fmt.Errorf("renaming %s: %w", filepath.Base(r.From), err)
		}
	}
	return len(renames), nil
}
