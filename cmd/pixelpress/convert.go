// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pixelpress/internal/codec"
	"github.com/pdiddy/pixelpress/internal/convert"
	"github.com/pdiddy/pixelpress/internal/history"
	"github.com/pdiddy/pixelpress/internal/preset"
	"github.com/pdiddy/pixelpress/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <directory>",
	Short: "Convert a directory of images to another format",
	Long: `Convert scans a directory for images matching the input filter and
transcodes them with a bounded worker pool. Existing outputs are skipped
unless --force is given. Optional resizing, metadata stripping, and
output renaming are applied per file.

Interrupting a run (Ctrl-C) stops cleanly after in-flight files finish.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(cmd, args[0])
	if err != nil {
		return err
	}

	enc, err := codec.NewTranscoder(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	result, runErr := convert.Run(ctx, enc, cfg, os.Stdout, nil)
	finished := time.Now()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !cfg.DryRun && !noHistory && result.Total() > 0 {
		if err := recordRun(cmd, cfg, started, finished, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record history: %v\n", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed to convert", result.Failed)
	}
	return nil
}

// convertConfig builds the conversion settings from defaults, the selected
// preset, and explicitly set flags, in that order of precedence.
func convertConfig(cmd *cobra.Command, dir string) (types.ConvertConfig, error) {
	f := cmd.Flags()

	cfg := types.ConvertConfig{
		InputDir:     dir,
		InputFilter:  "all",
		OutputFormat: types.FormatWebP,
		Quality:      80,
		Workers:      4,
	}

	if name, _ := f.GetString("preset"); name != "" {
		p, ok := loadedPresets[name]
		if !ok {
			return cfg, fmt.Errorf("unknown preset %q (available: %v)", name, preset.Names(loadedPresets))
		}
		p.Apply(&cfg)
	}

	setString := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	setInt := func(name string, dst *int) {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if f.Changed(name) {
			*dst, _ = f.GetBool(name)
		}
	}

	if f.Changed("format") {
		v, _ := f.GetString("format")
		cfg.OutputFormat = types.Format(v)
	}
	setString("input-filter", &cfg.InputFilter)
	setInt("quality", &cfg.Quality)
	setBool("lossless", &cfg.Lossless)
	setInt("compression", &cfg.Compression)
	setBool("recursive", &cfg.Recursive)
	setBool("force", &cfg.Force)
	setBool("delete-original", &cfg.DeleteOriginal)
	setBool("strip-metadata", &cfg.StripMetadata)
	setInt("width", &cfg.Resize.Width)
	setInt("height", &cfg.Resize.Height)
	setBool("keep-aspect", &cfg.Resize.KeepAspect)
	setString("output-dir", &cfg.OutputDir)
	setString("suffix", &cfg.Suffix)
	setString("pattern", &cfg.RenamePattern)
	setInt("workers", &cfg.Workers)
	setBool("dry-run", &cfg.DryRun)

	format, err := types.ParseFormat(string(cfg.OutputFormat))
	if err != nil {
		return cfg, err
	}
	cfg.OutputFormat = format

	if _, err := types.FilterExtensions(cfg.InputFilter); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func recordRun(cmd *cobra.Command, cfg types.ConvertConfig, started, finished time.Time, result convert.BatchResult) error {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	run := history.Run{
		StartedAt:    started,
		FinishedAt:   finished,
		SourceDir:    cfg.InputDir,
		InputFilter:  cfg.InputFilter,
		OutputFormat: string(cfg.OutputFormat),
		Quality:      cfg.Quality,
		Converted:    result.Converted,
		Skipped:      result.Skipped,
		Failed:       result.Failed,
		InputBytes:   result.InputBytes,
		OutputBytes:  result.OutputBytes,
	}
	id, err := store.RecordRun(context.Background(), run, result.Results)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "recorded run %d\n", id)
	return nil
}

func init() {
	convertCmd.Flags().String("format", "webp", "output format: "+types.FormatNames())
	convertCmd.Flags().String("input-filter", "all", "input extension filter: "+types.FilterNames())
	convertCmd.Flags().Int("quality", 80, "lossy encoder quality, 1-100")
	convertCmd.Flags().Bool("lossless", false, "lossless encoding (webp, avif)")
	convertCmd.Flags().Int("compression", 0, "PNG compression level, 0-9")
	convertCmd.Flags().BoolP("recursive", "r", false, "scan subdirectories")
	convertCmd.Flags().Bool("force", false, "overwrite existing output files")
	convertCmd.Flags().Bool("delete-original", false, "remove source files after successful conversion")
	convertCmd.Flags().Bool("strip-metadata", false, "drop EXIF and other metadata from outputs")
	convertCmd.Flags().Int("width", 0, "target width in pixels (0 = unchanged)")
	convertCmd.Flags().Int("height", 0, "target height in pixels (0 = unchanged)")
	convertCmd.Flags().Bool("keep-aspect", false, "fit within width x height, preserving aspect ratio")
	convertCmd.Flags().String("output-dir", "", "write outputs under this directory, preserving structure")
	convertCmd.Flags().String("suffix", "", "append to output filename stems (e.g. _web)")
	convertCmd.Flags().String("pattern", "", "rename output stems: {name}, {date}, {time} placeholders")
	convertCmd.Flags().IntP("workers", "w", 4, "conversion pool size, 1-16")
	convertCmd.Flags().Bool("dry-run", false, "report planned conversions without writing")
	convertCmd.Flags().String("preset", "", "apply a named preset before flag overrides")
	convertCmd.Flags().Bool("no-history", false, "do not record this run in the history database")
	convertCmd.Flags().String("history-dir", "", "history database directory (default: ./.pixelpress)")

	rootCmd.AddCommand(convertCmd)
}
