// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit materializes resolved segments onto the filesystem.
// See docs/ARCHITECTURE § Materializer.
package emit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tangle-engine/internal/resolve"
	"github.com/pdiddy/tangle-engine/pkg/types"
)

// Summary holds the outcome of one materialization pass.
type Summary struct {
	Written int
	Bytes   int64
}

// WriteAll resolves every registered output file in first-registration
// order and writes the result below outDir, creating parent directories
// as needed and overwriting existing files. One progress line is
// printed to w per file.
//
// The first failure aborts the pass: files already written stay on
// disk, the failing file and everything after it are not written.
// Re-running after a fix converges, since every write is a full
// overwrite.
func WriteAll(store *types.Store, outDir string, w io.Writer) (Summary, error) {
	var summary Summary
	for _, name := range store.Keys(types.KindFile) {
		seg, _ := store.Lookup(types.KindFile, name)

		lines, err := resolve.Expand(store, seg)
		if err != nil {
			return summary, fmt.Errorf("resolving %s: %w", name, err)
		}

		n, err := writeFile(filepath.Join(outDir, name), lines)
		if err != nil {
			return summary, err
		}

		fmt.Fprintf(w, "wrote   %s (%d bytes)\n", name, n)
		summary.Written++
		summary.Bytes += n
	}
	return summary, nil
}

// writeFile joins lines (terminators already attached) and writes them
// to dest, creating the parent directory path first.
func writeFile(dest string, lines []string) (int64, error) {
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	content := strings.Join(lines, "")
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", dest, err)
	}
	return int64(len(content)), nil
}
