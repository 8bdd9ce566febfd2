// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pdiddy/pixelpress/pkg/types"
)

// fakeEncoder implements Encoder for testing. It returns canned bytes or an
// error, depending on configuration.
type fakeEncoder struct {
	format types.Format
	output []byte
	err    error

	mu    sync.Mutex
	calls int
}

func (f *fakeEncoder) Encode(src []byte) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func (f *fakeEncoder) Format() types.Format {
	if f.format == "" {
		return types.FormatWebP
	}
	return f.format
}

// setupImage creates a fake source image and returns its path and the
// directory used as InputDir.
func setupImage(t *testing.T, name string, size int) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, bytes.Repeat([]byte("p"), size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, dir
}

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name       string
		enc        *fakeEncoder
		cfg        types.ConvertConfig
		preCreate  bool // create the output file before running
		wantStatus types.FileStatus
		wantLog    string
	}{
		{
			name:       "successful conversion",
			enc:        &fakeEncoder{output: []byte("webp")},
			wantStatus: types.StatusConverted,
			wantLog:    "converted:",
		},
		{
			name:       "skip existing output",
			enc:        &fakeEncoder{output: []byte("should not be used")},
			preCreate:  true,
			wantStatus: types.StatusSkipped,
			wantLog:    "skipped:",
		},
		{
			name:       "force overwrites existing output",
			enc:        &fakeEncoder{output: []byte("webp")},
			cfg:        types.ConvertConfig{Force: true},
			preCreate:  true,
			wantStatus: types.StatusConverted,
			wantLog:    "converted:",
		},
		{
			name:       "encode failure",
			enc:        &fakeEncoder{err: errors.New("vips blew up")},
			wantStatus: types.StatusFailed,
			wantLog:    "failed:",
		},
		{
			name:       "dry run plans without writing",
			enc:        &fakeEncoder{output: []byte("webp")},
			cfg:        types.ConvertConfig{DryRun: true},
			wantStatus: types.StatusConverted,
			wantLog:    "planned:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, dir := setupImage(t, "photo.png", 100)
			cfg := tt.cfg
			cfg.InputDir = dir

			outPath := filepath.Join(dir, "photo.webp")
			if tt.preCreate {
				if err := os.WriteFile(outPath, []byte("old"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			res := ConvertFile(tt.enc, source, cfg, NewResolver(), time.Now(), &log)

			if res.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", res.Status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log %q does not contain %q", log.String(), tt.wantLog)
			}

			if tt.name == "successful conversion" {
				data, err := os.ReadFile(outPath)
				if err != nil {
					t.Fatalf("reading output: %v", err)
				}
				if string(data) != "webp" {
					t.Errorf("output = %q, want encoded bytes", data)
				}
				if res.OriginalSize != 100 || res.NewSize != 4 {
					t.Errorf("sizes = (%d, %d), want (100, 4)", res.OriginalSize, res.NewSize)
				}
			}
			if tt.name == "dry run plans without writing" {
				if _, err := os.Stat(outPath); err == nil {
					t.Error("dry run must not write output")
				}
			}
		})
	}
}

func TestConvertFile_DeleteOriginal(t *testing.T) {
	source, dir := setupImage(t, "photo.png", 50)
	cfg := types.ConvertConfig{InputDir: dir, DeleteOriginal: true}

	var log bytes.Buffer
	res := ConvertFile(&fakeEncoder{output: []byte("x")}, source, cfg, NewResolver(), time.Now(), &log)

	if res.Status != types.StatusConverted {
		t.Fatalf("status = %q", res.Status)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Error("source should have been removed")
	}
}

func TestConvertFile_DeleteOriginalSamePath(t *testing.T) {
	// webp -> webp with no renaming: the output path equals the source, so
	// delete-original must be suppressed.
	source, dir := setupImage(t, "photo.webp", 50)
	cfg := types.ConvertConfig{InputDir: dir, DeleteOriginal: true, Force: true}

	var log bytes.Buffer
	res := ConvertFile(&fakeEncoder{output: []byte("new")}, source, cfg, NewResolver(), time.Now(), &log)

	if res.Status != types.StatusConverted {
		t.Fatalf("status = %q (%s)", res.Status, res.Error)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		t.Fatalf("source should still exist: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("in-place output = %q, want %q", data, "new")
	}
}

func TestRun_MixedResults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Pre-create output for "b" to trigger a skip.
	if err := os.WriteFile(filepath.Join(dir, "b.webp"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	enc := &fakeEncoder{output: []byte("webp")}
	// Filter to png so the pre-created b.webp is not itself an input.
	cfg := types.ConvertConfig{InputDir: dir, InputFilter: "png", Recursive: true, Workers: 2}

	var log bytes.Buffer
	var mu sync.Mutex
	var lastDone, lastTotal int
	progress := func(done, total int) {
		mu.Lock()
		lastDone, lastTotal = done, total
		mu.Unlock()
	}

	res, err := Run(context.Background(), enc, cfg, &log, progress)
	if err != nil {
		t.Fatal(err)
	}

	if res.Converted != 1 || res.Skipped != 1 || res.Failed != 0 {
		t.Errorf("counts = (%d, %d, %d), want (1, 1, 0)", res.Converted, res.Skipped, res.Failed)
	}
	if res.Total() != 2 {
		t.Errorf("total = %d, want 2 (c.txt filtered out)", res.Total())
	}
	if lastDone != 2 || lastTotal != 2 {
		t.Errorf("progress = (%d, %d), want (2, 2)", lastDone, lastTotal)
	}
	if !strings.Contains(log.String(), "batch summary:") {
		t.Error("log should contain batch summary")
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	cfg := types.ConvertConfig{InputDir: t.TempDir(), InputFilter: "all", Recursive: true}

	var log bytes.Buffer
	res, err := Run(context.Background(), &fakeEncoder{output: []byte("x")}, cfg, &log, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total() != 0 {
		t.Errorf("total = %d, want 0", res.Total())
	}
	if !strings.Contains(log.String(), "no images") {
		t.Errorf("log = %q, want no-images notice", log.String())
	}
}

func TestRun_FailuresDoNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	enc := &fakeEncoder{err: errors.New("decode error")}
	cfg := types.ConvertConfig{InputDir: dir, InputFilter: "png", Recursive: true}

	var log bytes.Buffer
	res, err := Run(context.Background(), enc, cfg, &log, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed != 3 || res.Converted != 0 {
		t.Errorf("counts = (%d converted, %d failed), want (0, 3)", res.Converted, res.Failed)
	}
	if !res.HasFailures() {
		t.Error("HasFailures should be true")
	}
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 8; i++ {
		name := filepath.Join(dir, "img"+string(rune('a'+i))+".png")
		if err := os.WriteFile(name, []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := types.ConvertConfig{InputDir: dir, InputFilter: "png", Recursive: true, Workers: 1}
	var log bytes.Buffer
	res, err := Run(ctx, &fakeEncoder{output: []byte("x")}, cfg, &log, nil)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res.Total() != 0 {
		t.Errorf("total = %d, want 0 for pre-cancelled context", res.Total())
	}
	if !strings.Contains(log.String(), "cancelled:") {
		t.Errorf("log = %q, want cancellation notice", log.String())
	}
}

func TestRun_SpaceSaved(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "big.png"), bytes.Repeat([]byte("p"), 1000), 0o644); err != nil {
		t.Fatal(err)
	}

	enc := &fakeEncoder{output: bytes.Repeat([]byte("w"), 400)}
	cfg := types.ConvertConfig{InputDir: dir, InputFilter: "png", Recursive: true}

	var log bytes.Buffer
	res, err := Run(context.Background(), enc, cfg, &log, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.SpaceSaved() != 600 {
		t.Errorf("SpaceSaved = %d, want 600", res.SpaceSaved())
	}
	if !strings.Contains(log.String(), "space saved:") {
		t.Error("log should report space saved")
	}
}
