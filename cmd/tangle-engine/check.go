// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tangle-engine/internal/resolve"
	"github.com/pdiddy/tangle-engine/internal/scan"
	"github.com/pdiddy/tangle-engine/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [document]",
	Short: "Resolve every output in memory without writing files",
	Long: `Check scans the document and fully expands every registered output
file, reporting undefined and cyclic snippet references. Unlike tangle
it keeps going after a failure, so one run lists every broken output.
Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc := args[0]

	lines, err := scan.ReadDocument(doc)
	if err != nil {
		return err
	}

	store, err := scan.Scan(lines, io.Discard)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", doc, err)
	}

	names := store.Keys(types.KindFile)
	failed := 0
	for _, name := range names {
		seg, _ := store.Lookup(types.KindFile, name)
		if _, err := resolve.Expand(store, seg); err != nil {
			fmt.Printf("fail    %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Printf("ok      %s\n", name)
	}

	fmt.Printf("\n%d of %d file(s) resolvable\n", len(names)-failed, len(names))
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to resolve", failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
