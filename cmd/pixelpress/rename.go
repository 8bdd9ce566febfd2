// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pixelpress/internal/rename"
)

var renameCmd = &cobra.Command{
	Use:   "rename <directory> <pattern>",
	Short: "Batch-rename images in a directory using a pattern",
	Long: `Rename applies a filename pattern to every image in a directory.
The pattern supports {name} (original stem), {counter} (zero-padded
sequence number), {date} (YYYYMMDD), and {time} (HHMMSS) placeholders.
File extensions are preserved.

Use --dry-run to preview the renames without touching any files.
Existing files are never overwritten.`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	dir, pattern := args[0], args[1]

	renames, err := rename.Plan(dir, pattern, time.Now())
	if err != nil {
		return err
	}
	if len(renames) == 0 {
		fmt.Println("Nothing to rename.")
		return nil
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	for _, r := range renames {
		verb := "renamed"
		if dryRun {
			verb = "planned"
		}
		fmt.Fprintf(os.Stdout, "%s: %s -> %s\n",
			verb, filepath.Base(r.From), filepath.Base(r.To))
	}
	if dryRun {
		fmt.Fprintf(os.Stdout, "\n%d rename(s) planned (dry run)\n", len(renames))
		return nil
	}

	applied, err := rename.Apply(renames)
	if err != nil {
		return fmt.Errorf("applied %d of %d rename(s): %w", applied, len(renames), err)
	}
	fmt.Fprintf(os.Stdout, "\n%d file(s) renamed\n", applied)
	return nil
}

func init() {
	renameCmd.Flags().Bool("dry-run", false, "preview renames without applying them")

	rootCmd.AddCommand(renameCmd)
}
