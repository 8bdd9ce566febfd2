// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pixelpress/internal/dedupe"
	"github.com/pdiddy/pixelpress/internal/display"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <directory>",
	Short: "Find duplicate images by content hash",
	Long: `Dedupe recursively scans a directory and groups images with identical
content, comparing file sizes first and MD5 hashes for candidates.
Groups are listed largest waste first.

With --delete, every duplicate after the first file in each group is
removed. The first file (sorted by path) is always kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runDedupe,
}

func runDedupe(cmd *cobra.Command, args []string) error {
	groups, err := dedupe.Scan(args[0])
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}

	if len(groups) == 0 {
		fmt.Println("No duplicates found.")
		return nil
	}

	for i, g := range groups {
		fmt.Fprintf(os.Stdout, "group %d (%s wasted):\n", i+1, display.FormatBytes(g.WastedBytes))
		for j, path := range g.Paths {
			marker := "  keep:"
			if j > 0 {
				marker = "  dup: "
			}
			fmt.Fprintf(os.Stdout, "%s %s\n", marker, path)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d duplicate group(s), %s wasted\n",
		len(groups), display.FormatBytes(dedupe.TotalWasted(groups)))

	if del, _ := cmd.Flags().GetBool("delete"); del {
		return deleteDuplicates(groups)
	}
	return nil
}

func deleteDuplicates(groups []dedupe.Group) error {
	deleted := 0
	for _, g := range groups {
		for _, path := range g.Paths[1:] {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("deleted %d duplicate(s): %w", deleted, err)
			}
			fmt.Fprintf(os.Stdout, "deleted: %s\n", path)
			deleted++
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d duplicate(s) deleted\n", deleted)
	return nil
}

func init() {
	dedupeCmd.Flags().Bool("json", false, "output duplicate groups as JSON")
	dedupeCmd.Flags().Bool("delete", false, "delete every duplicate after the first in each group")

	rootCmd.AddCommand(dedupeCmd)
}
