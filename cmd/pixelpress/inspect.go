// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pixelpress/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <files...>",
	Short: "Show image properties and EXIF metadata",
	Long: `Inspect prints the format, dimensions, colourspace, and EXIF metadata
of one or more image files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	reports := make([]inspect.Report, 0, len(args))
	for _, path := range args {
		report, err := inspect.File(path)
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", path, err)
		}
		reports = append(reports, report)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		inspect.Render(os.Stdout, report)
	}
	return nil
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output reports as JSON")

	rootCmd.AddCommand(inspectCmd)
}
