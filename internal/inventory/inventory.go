// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inventory summarizes a scanned document without resolving
// references or writing any output files.
// See docs/ARCHITECTURE § Inventory.
package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tangle-engine/internal/resolve"
	"github.com/pdiddy/tangle-engine/pkg/types"
)

// Entry describes one registered key: the segment's size and the
// snippet references appearing in it.
type Entry struct {
	// Name is the output filename or snippet name.
	Name string `json:"name" yaml:"name"`

	// Lines is the raw line count of the segment, before expansion.
	Lines int `json:"lines" yaml:"lines"`

	// Refs lists referenced snippet names in order of first appearance.
	// Purely syntactic: names are listed whether or not they resolve.
	Refs []string `json:"refs,omitempty" yaml:"refs,omitempty"`
}

// Report is the inventory of one scanned document.
type Report struct {
	// Document is the path of the scanned document.
	Document string `json:"document" yaml:"document"`

	// Files lists output-file keys in first-registration order.
	Files []Entry `json:"files" yaml:"files"`

	// Snippets lists snippet keys in first-registration order.
	Snippets []Entry `json:"snippets" yaml:"snippets"`

	// Unreferenced counts segments no current key points at.
	Unreferenced int `json:"unreferenced" yaml:"unreferenced"`
}

// Build assembles the inventory for a scanned store.
func Build(document string, store *types.Store) Report {
	r := Report{
		Document:     document,
		Unreferenced: store.Unreferenced(),
	}
	for _, name := range store.Keys(types.KindFile) {
		seg, _ := store.Lookup(types.KindFile, name)
		r.Files = append(r.Files, entryFor(name, seg))
	}
	for _, name := range store.Keys(types.KindSnippet) {
		seg, _ := store.Lookup(types.KindSnippet, name)
		r.Snippets = append(r.Snippets, entryFor(name, seg))
	}
	return r
}

func entryFor(name string, seg *types.Segment) Entry {
	e := Entry{Name: name, Lines: len(seg.Lines)}
	seen := make(map[string]bool)
	for _, line := range seg.Lines {
		ref, ok := resolve.ParseReference(line)
		if !ok || seen[ref] {
			continue
		}
		seen[ref] = true
		e.Refs = append(e.Refs, ref)
	}
	return e
}

// WriteText renders the report as an aligned console listing.
func WriteText(w io.Writer, r Report) error {
	fmt.Fprintf(w, "Document: %s\n", r.Document)

	fmt.Fprintf(w, "\nFiles (%d):\n", len(r.Files))
	writeEntries(w, r.Files)

	fmt.Fprintf(w, "\nSnippets (%d):\n", len(r.Snippets))
	writeEntries(w, r.Snippets)

	if r.Unreferenced > 0 {
		fmt.Fprintf(w, "\n%d segment(s) not reachable under any key\n", r.Unreferenced)
	}
	return nil
}

func writeEntries(w io.Writer, entries []Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "  %-32s %5d lines", e.Name, e.Lines)
		if len(e.Refs) > 0 {
			fmt.Fprintf(w, "  refs: %s", strings.Join(e.Refs, ", "))
		}
		fmt.Fprintln(w)
	}
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML renders the report as YAML.
func WriteYAML(w io.Writer, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = w.Write(data)
	return err
}
