// Package scan partitions a literate document into fenced code regions
// and prose, filling a segment store with the regions' content.
// See docs/ARCHITECTURE § Scanner.
package scan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/tangle-engine/pkg/types"
)

// ErrUnterminatedRegion reports a document that ends inside a fenced
// region, which almost always means a missing closing fence.
var ErrUnterminatedRegion = errors.New("document ends inside a fenced region")

// Fence markers are runs of 3 or 4 identical backticks or tildes.
const (
	fenceMin = 3
	fenceMax = 4
)

// state is the scanner's position relative to fenced regions.
type state int

const (
	// stateOutside consumes prose between regions.
	stateOutside state = iota

	// stateOpening follows a fence-open line; the next line decides
	// whether the region is tracked or untracked.
	stateOpening

	// stateTracked captures region lines into the current segment.
	stateTracked

	// stateUntracked discards region lines until the closing fence.
	stateUntracked
)

func (s state) String() string {
	switch s {
	case stateOutside:
		return "outside"
	case stateOpening:
		return "opening"
	case stateTracked:
		return "tracked"
	case stateUntracked:
		return "untracked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// scanner carries the mutable state of one pass over a document.
type scanner struct {
	store   *types.Store
	state   state
	marker  string          // fence marker captured by the open line
	current types.SegmentID // segment receiving lines while tracked
	w       io.Writer       // progress stream
}

// Scan consumes the document lines in order and returns the populated
// store. One progress line is printed to w per registered key. A
// document still inside a region at the end of input fails with
// ErrUnterminatedRegion.
//
// A region closes on any line that begins with its opening marker, so a
// longer fence run (or a marker with trailing text) also closes it.
func Scan(lines []string, w io.Writer) (*types.Store, error) {
	sc := &scanner{store: types.NewStore(), state: stateOutside, w: w}
	for _, line := range lines {
		sc.step(line)
	}
	if sc.state != stateOutside {
		return nil, fmt.Errorf("%w (%s, marker %q)", ErrUnterminatedRegion, sc.state, sc.marker)
	}
	return sc.store, nil
}

// step applies one line to the transition table. The table is total
// over the four states; anything else is an implementation defect and
// panics rather than guessing.
func (sc *scanner) step(line string) {
	switch sc.state {
	case stateOutside:
		if marker, ok := openingMarker(line); ok {
			sc.marker = marker
			sc.state = stateOpening
		}
	case stateOpening:
		if strings.HasPrefix(line, sc.marker) {
			// Empty region: the would-be annotation line already
			// closes the fence. No segment is created.
			sc.state = stateOutside
			return
		}
		meta, ok := parseMetadata(line)
		if !ok {
			sc.state = stateUntracked
			return
		}
		sc.open(meta)
		sc.state = stateTracked
	case stateTracked:
		if strings.HasPrefix(line, sc.marker) {
			sc.state = stateOutside
			return
		}
		sc.store.Append(sc.current, line)
	case stateUntracked:
		if strings.HasPrefix(line, sc.marker) {
			sc.state = stateOutside
		}
	default:
		panic(fmt.Sprintf("scan: no transition from %s for line %q", sc.state, line))
	}
}

// open allocates the segment for a tracked region and registers it
// under the annotation's keys. An annotation with neither field yields
// a segment nothing points at; it is kept in the arena and silently
// never emitted.
func (sc *scanner) open(meta types.Metadata) {
	sc.current = sc.store.Alloc()
	if meta.Filename != "" {
		sc.store.Register(types.KindFile, meta.Filename, sc.current)
		fmt.Fprintf(sc.w, "file    %s\n", meta.Filename)
	}
	if meta.Name != "" {
		sc.store.Register(types.KindSnippet, meta.Name, sc.current)
		fmt.Fprintf(sc.w, "snippet %s\n", meta.Name)
	}
}

// openingMarker reports whether line opens a fenced region and returns
// the captured marker: a run of 3 or 4 identical backticks or tildes at
// the start of the line. Longer runs capture only the first four
// characters.
func openingMarker(line string) (string, bool) {
	if len(line) < fenceMin {
		return "", false
	}
	c := line[0]
	if c != '`' && c != '~' {
		return "", false
	}
	n := 1
	for n < fenceMax && n < len(line) && line[n] == c {
		n++
	}
	if n < fenceMin {
		return "", false
	}
	return line[:n], true
}

// parseMetadata decodes the first line inside a fenced region as a JSON
// annotation object. Unknown fields are ignored; anything that is not
// an object, fails to parse, or carries a wrongly typed recognized
// field rejects the line and the region is scanned as untracked.
func parseMetadata(line string) (types.Metadata, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return types.Metadata{}, false
	}
	var meta types.Metadata
	if err := json.Unmarshal([]byte(trimmed), &meta); err != nil {
		return types.Metadata{}, false
	}
	return meta, true
}
