// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the concurrent batch image conversion
// pipeline: discovery, worker-pool dispatch, per-file transcode, and
// result aggregation. Per-file failures are recorded, never fatal.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pixelpress/internal/display"
	"github.com/pdiddy/pixelpress/internal/scan"
	"github.com/pdiddy/pixelpress/pkg/types"
)

// Encoder transcodes one image buffer into the configured output format.
// internal/codec provides the libvips-backed implementation; tests use
// fakes. Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(src []byte) ([]byte, error)
	Format() types.Format
}

// ProgressFunc receives completion counts as the batch advances. It may be
// called from multiple goroutines.
type ProgressFunc func(done, total int)

// Run executes the batch conversion pipeline: discover files, dispatch one
// task per file to a bounded worker pool, and aggregate results. Per-file
// status lines are written to w. Cancelling ctx stops dispatch of new
// files; files already being encoded finish and are recorded. The returned
// error is non-nil only for discovery failures or cancellation.
func Run(ctx context.Context, enc Encoder, cfg types.ConvertConfig, w io.Writer, progress ProgressFunc) (BatchResult, error) {
	exts, err := types.FilterExtensions(cfg.InputFilter)
	if err != nil {
		return BatchResult{}, err
	}

	files, err := scan.Discover(cfg.InputDir, exts, cfg.Recursive)
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	if len(files) == 0 {
		fmt.Fprintf(w, "no images matching filter %q under %s\n", cfg.InputFilter, cfg.InputDir)
		return result, nil
	}

	fmt.Fprintf(w, "found %d images under %s\n", len(files), cfg.InputDir)
	fmt.Fprintf(w, "output: %s, quality: %d, workers: %d\n\n",
		enc.Format(), cfg.Quality, cfg.PoolSize())

	runTime := time.Now()
	resolver := NewResolver()
	sw := &syncWriter{w: w}
	slots := make([]types.FileResult, len(files))
	started := make([]bool, len(files))
	var done int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.PoolSize())

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		started[i] = true
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				started[i] = false
				return err
			}
			slots[i] = ConvertFile(enc, path, cfg, resolver, runTime, sw)
			if progress != nil {
				progress(int(atomic.AddInt64(&done, 1)), len(files))
			}
			return nil
		})
	}

	runErr := g.Wait()
	if runErr == nil {
		// A context cancelled before any dispatch never reaches a worker,
		// so g.Wait alone cannot report it.
		runErr = ctx.Err()
	}

	for i, res := range slots {
		if !started[i] || res.Status == "" {
			continue
		}
		result.Results = append(result.Results, res)
		switch res.Status {
		case types.StatusConverted:
			result.Converted++
			result.InputBytes += res.OriginalSize
			result.OutputBytes += res.NewSize
		case types.StatusSkipped:
			result.Skipped++
		case types.StatusFailed:
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\nbatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	if cfg.DryRun {
		fmt.Fprintf(w, "dry run: nothing written\n")
	} else if result.Converted > 0 {
		fmt.Fprintf(w, "space saved: %s (input %s -> output %s)\n",
			display.FormatSaving(result.SpaceSaved()),
			display.FormatBytes(result.InputBytes),
			display.FormatBytes(result.OutputBytes))
	}
	if runErr != nil {
		fmt.Fprintf(w, "cancelled: %d of %d files not processed\n",
			len(files)-result.Total(), len(files))
	}

	return result, runErr
}

// ConvertFile converts a single image: compute the output path, skip when
// the output already exists, transcode, and write atomically. The outcome
// is recorded in the returned FileResult and never as an error; w receives
// a one-line status.
func ConvertFile(enc Encoder, source string, cfg types.ConvertConfig, resolver *Resolver, runTime time.Time, w io.Writer) types.FileResult {
	start := time.Now()
	rel := relPath(cfg.InputDir, source)
	result := types.FileResult{Source: source, Status: types.StatusFailed}

	fi, err := os.Stat(source)
	if err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
		return result
	}
	result.OriginalSize = fi.Size()

	out, err := OutputPath(source, enc.Format(), cfg, runTime)
	if err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
		return result
	}
	out = resolver.Resolve(source, out)
	result.Output = out

	if !cfg.Force {
		if _, err := os.Stat(out); err == nil && out != source {
			result.Status = types.StatusSkipped
			result.Duration = time.Since(start)
			fmt.Fprintf(w, "skipped:   %s (output exists)\n", rel)
			return result
		}
	}

	if cfg.DryRun {
		result.Status = types.StatusConverted
		result.Duration = time.Since(start)
		fmt.Fprintf(w, "planned:   %s -> %s\n", rel, filepath.Base(out))
		return result
	}

	src, err := os.ReadFile(source)
	if err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
		return result
	}

	encoded, err := enc.Encode(src)
	if err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
		return result
	}

	if err := writeAtomic(out, encoded); err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)
		fmt.Fprintf(w, "failed:    %s (%v)\n", rel, err)
		return result
	}
	result.NewSize = int64(len(encoded))

	if cfg.DeleteOriginal && source != out {
		if err := os.Remove(source); err != nil {
			fmt.Fprintf(w, "warning:   could not remove %s: %v\n", rel, err)
		}
	}

	result.Status = types.StatusConverted
	result.Duration = time.Since(start)

	if saved := result.SizeSaved(); saved > 0 {
		fmt.Fprintf(w, "converted: %s -> %s (%s, saved %.1f%%)\n",
			rel, filepath.Base(out), display.FormatBytes(result.NewSize), result.CompressionRatio())
	} else {
		fmt.Fprintf(w, "converted: %s -> %s (%s)\n",
			rel, filepath.Base(out), display.FormatBytes(result.NewSize))
	}
	return result
}

// writeAtomic writes data to a temp file in the target directory and
// renames it into place, so a crashed run never leaves a truncated output.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pixelpress-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// relPath renders source relative to root for log lines, falling back to
// the basename when source is outside root.
func relPath(root, source string) string {
	rel, err := filepath.Rel(root, source)
	if err != nil || len(rel) >= 2 && rel[:2] == ".." {
		return filepath.Base(source)
	}
	return rel
}

// syncWriter serializes status lines from concurrent workers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
