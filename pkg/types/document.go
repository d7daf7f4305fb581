// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Kind selects one of the store's two key spaces.
// See docs/ARCHITECTURE § Segment Store.
type Kind string

const (
	// KindFile keys a segment by the output path it is written to.
	KindFile Kind = "file"

	// KindSnippet keys a segment by the name other regions include it under.
	KindSnippet Kind = "snippet"
)

// Metadata is the parsed annotation from the first line inside a fenced
// region. Either field, both, or neither may be set; unknown fields in
// the annotation are ignored.
type Metadata struct {
	// Filename is the output path the region's content is written to,
	// relative to the output directory. May contain subdirectories.
	Filename string `json:"filename"`

	// Name registers the region as a reusable snippet, included
	// elsewhere by a whole-line <<Name>> reference.
	Name string `json:"name"`
}

// SegmentID identifies a segment within a store's arena.
type SegmentID int

// Segment holds the raw lines of one fenced region in document order.
// Each line keeps its original terminator, so emission reproduces the
// source bytes exactly. A segment grows while its region is open and is
// never modified afterwards.
type Segment struct {
	Lines []string
}

// Store owns every segment captured from a single document and indexes
// them two ways: by output filename and by snippet name. One segment
// may be registered under both kinds, one, or neither; registration
// never copies content. A store is scoped to one run and is not safe
// for concurrent use.
type Store struct {
	segments []*Segment

	files    map[string]SegmentID
	snippets map[string]SegmentID

	// Key order follows first registration so emission and listings are
	// deterministic. Re-registering a key rebinds it but keeps its
	// original position.
	fileOrder    []string
	snippetOrder []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		files:    make(map[string]SegmentID),
		snippets: make(map[string]SegmentID),
	}
}

// Alloc adds an empty segment to the arena and returns its ID.
func (s *Store) Alloc() SegmentID {
	s.segments = append(s.segments, &Segment{})
	return SegmentID(len(s.segments) - 1)
}

// Append adds one raw line to the segment identified by id.
func (s *Store) Append(id SegmentID, line string) {
	s.segments[id].Lines = append(s.segments[id].Lines, line)
}

// Segment returns the arena segment for id.
func (s *Store) Segment(id SegmentID) *Segment {
	return s.segments[id]
}

// Register binds key to the segment id in the kind's key space. A
// duplicate key displaces the previous binding; the displaced segment
// stays in the arena but is no longer reachable under that key.
func (s *Store) Register(kind Kind, key string, id SegmentID) {
	switch kind {
	case KindFile:
		if _, exists := s.files[key]; !exists {
			s.fileOrder = append(s.fileOrder, key)
		}
		s.files[key] = id
	case KindSnippet:
		if _, exists := s.snippets[key]; !exists {
			s.snippetOrder = append(s.snippetOrder, key)
		}
		s.snippets[key] = id
	default:
		panic(fmt.Sprintf("store: register with unknown kind %q", kind))
	}
}

// Lookup returns the segment bound to key in the kind's key space and
// whether the key exists.
func (s *Store) Lookup(kind Kind, key string) (*Segment, bool) {
	var id SegmentID
	var ok bool
	switch kind {
	case KindFile:
		id, ok = s.files[key]
	case KindSnippet:
		id, ok = s.snippets[key]
	default:
		panic(fmt.Sprintf("store: lookup with unknown kind %q", kind))
	}
	if !ok {
		return nil, false
	}
	return s.segments[id], true
}

// Keys returns the kind's keys in first-registration order. The slice
// is a copy and safe for the caller to keep.
func (s *Store) Keys(kind Kind) []string {
	switch kind {
	case KindFile:
		return append([]string(nil), s.fileOrder...)
	case KindSnippet:
		return append([]string(nil), s.snippetOrder...)
	default:
		panic(fmt.Sprintf("store: keys with unknown kind %q", kind))
	}
}

// SegmentCount returns the number of segments in the arena, reachable
// or not.
func (s *Store) SegmentCount() int {
	return len(s.segments)
}

// Unreferenced counts arena segments no current key points at: regions
// whose annotation carried neither field, plus segments displaced by a
// later duplicate key.
func (s *Store) Unreferenced() int {
	reachable := make(map[SegmentID]bool, len(s.files)+len(s.snippets))
	for _, id := range s.files {
		reachable[id] = true
	}
	for _, id := range s.snippets {
		reachable[id] = true
	}
	return len(s.segments) - len(reachable)
}
