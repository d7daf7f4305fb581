// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve expands snippet references inside captured segments.
// See docs/ARCHITECTURE § Resolver.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/tangle-engine/pkg/types"
)

var (
	// ErrUndefinedSnippet reports a reference to a name no region in the
	// document registered.
	ErrUndefinedSnippet = errors.New("undefined snippet reference")

	// ErrCyclicSnippet reports a snippet that includes itself, directly
	// or through intermediate snippets.
	ErrCyclicSnippet = errors.New("cyclic snippet reference")
)

const (
	refOpen  = "<<"
	refClose = ">>"
)

// ParseReference reports whether a raw line is a snippet reference. The
// entire line, terminator aside, must be << followed by a non-empty
// name and >>. Indented, prefixed, or suffixed forms are not references
// and pass through as plain content.
func ParseReference(line string) (string, bool) {
	body := trimTerminator(line)
	if !strings.HasPrefix(body, refOpen) || !strings.HasSuffix(body, refClose) {
		return "", false
	}
	name := body[len(refOpen) : len(body)-len(refClose)]
	if name == "" {
		return "", false
	}
	return name, true
}

// trimTerminator strips a single trailing \n or \r\n.
func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Expand returns the fully resolved lines of seg: plain lines pass
// through unchanged, and each reference line is replaced in place by
// the expansion of the named snippet, depth-first. No separators are
// added beyond the terminators the included lines already carry.
//
// A reference to an unregistered name fails with ErrUndefinedSnippet.
// A snippet encountered again while its own expansion is in progress
// fails with ErrCyclicSnippet; the message names the inclusion chain.
// Repeated inclusion of the same snippet on separate paths is fine.
func Expand(store *types.Store, seg *types.Segment) ([]string, error) {
	e := &expander{store: store, inProgress: make(map[string]bool)}
	return e.expand(seg)
}

// expander carries the state of one expansion: the snippets on the
// current inclusion path, both as a set for cycle checks and as a
// slice for error reporting.
type expander struct {
	store      *types.Store
	inProgress map[string]bool
	chain      []string
}

func (e *expander) expand(seg *types.Segment) ([]string, error) {
	var out []string
	for _, line := range seg.Lines {
		name, ok := ParseReference(line)
		if !ok {
			out = append(out, line)
			continue
		}
		included, err := e.include(name)
		if err != nil {
			return nil, err
		}
		out = append(out, included...)
	}
	return out, nil
}

// include resolves one reference, guarding the inclusion path against
// cycles.
func (e *expander) include(name string) ([]string, error) {
	if e.inProgress[name] {
		cycle := strings.Join(append(e.chain, name), " -> ")
		return nil, fmt.Errorf("%w: %s", ErrCyclicSnippet, cycle)
	}
	seg, ok := e.store.Lookup(types.KindSnippet, name)
	if !ok {
		return nil, fmt.Errorf("%w: <<%s>>%s", ErrUndefinedSnippet, name, e.via())
	}

	e.inProgress[name] = true
	e.chain = append(e.chain, name)
	lines, err := e.expand(seg)
	e.chain = e.chain[:len(e.chain)-1]
	delete(e.inProgress, name)

	return lines, err
}

// via names the inclusion path for error messages; empty at top level.
func (e *expander) via() string {
	if len(e.chain) == 0 {
		return ""
	}
	return fmt.Sprintf(" (via %s)", strings.Join(e.chain, " -> "))
}
