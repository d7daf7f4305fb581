// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tangle-engine CLI.
// See docs/ARCHITECTURE § CLI Surface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the tangle-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "tangle-engine",
	Short: "Extract source files from annotated literate documents",
	Long: `tangle-engine reads documents that interleave prose with fenced code
regions, each annotated by a JSON line naming an output file or a reusable
snippet, and writes the referenced source files to disk.

Each operation is a subcommand: tangle writes the outputs, check resolves
everything without writing, list prints a document inventory, and status
reports drift between cataloged outputs and the files on disk.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tangle-engine.yaml or ~/.config/tangle-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tangle-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tangle-engine"))
		}
	}

	viper.SetEnvPrefix("TANGLE_ENGINE")
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
