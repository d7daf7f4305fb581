// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tangle-engine/internal/catalog"
	"github.com/pdiddy/tangle-engine/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report drift between cataloged outputs and the files on disk",
	Long: `Status reads the catalog database and compares each recorded output
against the file currently on disk: current (unchanged), modified
(hand-edited or re-tangled from a different document), or missing
(deleted). Nothing is re-tangled or repaired.

Outputs are only recorded when tangle runs with --catalog.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := catalogSettings(cmd)

	if _, err := os.Stat(cfg.Path); err != nil {
		return fmt.Errorf("no catalog at %s (run tangle with --catalog first)", cfg.Path)
	}

	cat, err := catalog.Open(cfg.Path)
	if err != nil {
		return err
	}
	defer cat.Close()

	summary, err := cat.Status(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasDrift() {
		return fmt.Errorf("%d of %d output(s) drifted", summary.Modified+summary.Missing, summary.Total())
	}
	return nil
}

func init() {
	statusCmd.Flags().String("catalog-path", "", `catalog database location (default "`+types.DefaultCatalogPath+`")`)

	rootCmd.AddCommand(statusCmd)
}
