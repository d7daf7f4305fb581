// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/tangle-engine/internal/catalog"
	"github.com/pdiddy/tangle-engine/internal/emit"
	"github.com/pdiddy/tangle-engine/internal/scan"
	"github.com/pdiddy/tangle-engine/pkg/types"
)

var tangleCmd = &cobra.Command{
	Use:   "tangle [document]",
	Short: "Extract and write the source files a document defines",
	Long: `Tangle scans the document for annotated fenced regions, expands snippet
references, and writes each registered output file below the output
directory. Parent directories are created as needed and existing files
are overwritten; re-running an unchanged document is idempotent.

With --catalog, written outputs are also recorded in the catalog
database so a later "status" run can report drift.`,
	Args: cobra.ExactArgs(1),
	RunE: runTangle,
}

func runTangle(cmd *cobra.Command, args []string) error {
	cfg := tangleConfig(cmd)
	doc := args[0]

	lines, err := scan.ReadDocument(doc)
	if err != nil {
		return err
	}

	store, err := scan.Scan(lines, os.Stdout)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", doc, err)
	}

	summary, err := emit.WriteAll(store, cfg.Tangle.OutputDir, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("\ntangled %d file(s), %d bytes\n", summary.Written, summary.Bytes)

	if cfg.Catalog.Enabled {
		return recordOutputs(cfg, doc, store)
	}
	return nil
}

// recordOutputs registers the run's outputs in the catalog database.
func recordOutputs(cfg types.Config, doc string, store *types.Store) error {
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer cat.Close()

	names := store.Keys(types.KindFile)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(cfg.Tangle.OutputDir, name)
	}

	n, err := cat.Record(context.Background(), doc, paths)
	if err != nil {
		return fmt.Errorf("recording outputs: %w", err)
	}
	fmt.Printf("cataloged %d output(s)\n", n)
	return nil
}

// --- shared helpers ---

// tangleConfig resolves settings with flags taking precedence over the
// config file and environment.
func tangleConfig(cmd *cobra.Command) types.Config {
	cfg := types.Config{
		Tangle:  types.TangleConfig{OutputDir: "."},
		Catalog: catalogSettings(cmd),
	}

	if v := viper.GetString("tangle.output_dir"); v != "" {
		cfg.Tangle.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.Tangle.OutputDir = v
	}
	return cfg
}

// catalogSettings resolves the catalog configuration for commands that
// touch the catalog database.
func catalogSettings(cmd *cobra.Command) types.CatalogConfig {
	cfg := types.CatalogConfig{Path: types.DefaultCatalogPath}

	if viper.IsSet("catalog.enabled") {
		cfg.Enabled = viper.GetBool("catalog.enabled")
	}
	if v := viper.GetString("catalog.path"); v != "" {
		cfg.Path = v
	}
	if on, _ := cmd.Flags().GetBool("catalog"); on {
		cfg.Enabled = true
	}
	if v, _ := cmd.Flags().GetString("catalog-path"); v != "" {
		cfg.Path = v
	}
	return cfg
}

func init() {
	tangleCmd.Flags().String("output-dir", "", `directory output filenames resolve against (default ".")`)
	tangleCmd.Flags().Bool("catalog", false, "record written outputs in the catalog database")
	tangleCmd.Flags().String("catalog-path", "", `catalog database location (default "`+types.DefaultCatalogPath+`")`)

	rootCmd.AddCommand(tangleCmd)
}
