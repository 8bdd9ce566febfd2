// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pixelpress/internal/display"
	"github.com/pdiddy/pixelpress/internal/history"
	"github.com/pdiddy/pixelpress/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded conversion runs",
	Long: `History manages the local SQLite database of past conversion runs.
Use subcommands to list recent runs, show per-file detail, export the
full history, or clear it.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversion runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No conversion runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-16s  %-30s  %-6s  %-9s  %-9s  %s\n",
		"ID", "Started", "Source", "Format", "Converted", "Failed", "Saved")
	for _, r := range runs {
		source := r.SourceDir
		if len(source) > 30 {
			source = "..." + source[len(source)-27:]
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-16s  %-30s  %-6s  %-9d  %-9d  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), source,
			r.OutputFormat, r.Converted, r.Failed,
			display.FormatSaving(r.InputBytes-r.OutputBytes))
	}
	fmt.Fprintf(os.Stdout, "\n%d run(s)\n", len(runs))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show per-file detail for one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	files, err := store.RunFiles(context.Background(), runID)
	if err != nil {
		return err
	}

	for _, f := range files {
		switch f.Status {
		case string(types.StatusConverted):
			fmt.Fprintf(os.Stdout, "converted: %s -> %s (%s -> %s, %s)\n",
				f.Source, f.Output,
				display.FormatBytes(f.InputBytes), display.FormatBytes(f.OutputBytes),
				time.Duration(f.DurationMS)*time.Millisecond)
		case string(types.StatusSkipped):
			fmt.Fprintf(os.Stdout, "skipped: %s\n", f.Source)
		default:
			fmt.Fprintf(os.Stdout, "failed: %s: %s\n", f.Source, f.Error)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d file(s)\n", len(files))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml", "":
		return store.ExportYAML(context.Background(), out)
	case "json":
		return store.ExportJSON(context.Background(), out)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// --- clear subcommand ---

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewStore(historyConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

// --- shared helpers ---

func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	dir, _ := cmd.Flags().GetString("history-dir")
	if dir == "" {
		dir = viper.GetString("history_dir")
	}
	if dir == "" {
		dir = ".pixelpress"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.HistoryConfig{
		HistoryDir: dir,
		MaxResults: maxResults,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("history-dir", "", "history database directory (default: ./.pixelpress)")
	historyCmd.PersistentFlags().Int("max-results", 20, "default number of runs listed")

	historyListCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("output", "", "write export to a file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
