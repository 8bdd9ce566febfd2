// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pixelpress CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pixelpress/internal/preset"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedPresets holds conversion presets loaded from the preset directory
// at startup.
var loadedPresets map[string]preset.Preset

// rootCmd is the base command for the pixelpress CLI.
var rootCmd = &cobra.Command{
	Use:   "pixelpress",
	Short: "Batch image conversion toolkit",
	Long: `pixelpress converts directories of images between formats (WebP, JPEG,
PNG, TIFF, GIF, AVIF, HEIF) using a bounded worker pool, with optional
resizing, metadata stripping, and output renaming.

Each operation is a subcommand: convert, rename, dedupe, inspect, and
history. Conversion runs are recorded in a local SQLite history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("preset-dir")
		if dir == "" {
			dir = viper.GetString("preset_dir")
		}
		if dir == "" {
			dir = ".presets"
		}
		p, err := preset.Load(dir)
		if err != nil {
			return err
		}
		loadedPresets = p
		if len(p) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded presets: %v\n", preset.Names(p))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pixelpress.yaml or ~/.config/pixelpress/config.yaml)")
	rootCmd.PersistentFlags().String("preset-dir", "", "directory of conversion preset YAML files (default: ./.presets)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pixelpress")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pixelpress"))
		}
	}

	viper.SetEnvPrefix("PIXELPRESS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
