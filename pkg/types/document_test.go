// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"reflect"
	"testing"
)

func TestStoreRegisterAndLookup(t *testing.T) {
	s := NewStore()

	id := s.Alloc()
	s.Append(id, "line 1\n")
	s.Append(id, "line 2\n")
	s.Register(KindFile, "out.txt", id)

	seg, ok := s.Lookup(KindFile, "out.txt")
	if !ok {
		t.Fatal("out.txt not found")
	}
	want := []string{"line 1\n", "line 2\n"}
	if !reflect.DeepEqual(seg.Lines, want) {
		t.Errorf("Lines = %q, want %q", seg.Lines, want)
	}

	if _, ok := s.Lookup(KindSnippet, "out.txt"); ok {
		t.Error("file key should not be visible in the snippet key space")
	}
	if _, ok := s.Lookup(KindFile, "absent"); ok {
		t.Error("lookup of unregistered key should miss")
	}
}

func TestStoreSharedSegment(t *testing.T) {
	s := NewStore()
	id := s.Alloc()
	s.Append(id, "shared\n")
	s.Register(KindFile, "a.txt", id)
	s.Register(KindSnippet, "a", id)

	fileSeg, _ := s.Lookup(KindFile, "a.txt")
	snipSeg, _ := s.Lookup(KindSnippet, "a")
	if fileSeg != snipSeg {
		t.Error("both keys should reach the same segment")
	}
}

func TestStoreDuplicateKeyRebinds(t *testing.T) {
	s := NewStore()

	first := s.Alloc()
	s.Append(first, "old\n")
	s.Register(KindFile, "out.txt", first)

	other := s.Alloc()
	s.Register(KindFile, "other.txt", other)

	second := s.Alloc()
	s.Append(second, "new\n")
	s.Register(KindFile, "out.txt", second)

	seg, _ := s.Lookup(KindFile, "out.txt")
	if !reflect.DeepEqual(seg.Lines, []string{"new\n"}) {
		t.Errorf("Lines = %q, want the rebound segment", seg.Lines)
	}

	// The rebound key keeps its first-registration position.
	keys := s.Keys(KindFile)
	if !reflect.DeepEqual(keys, []string{"out.txt", "other.txt"}) {
		t.Errorf("Keys = %q, want [out.txt other.txt]", keys)
	}
}

func TestStoreKeysReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Register(KindSnippet, "a", s.Alloc())
	s.Register(KindSnippet, "b", s.Alloc())

	keys := s.Keys(KindSnippet)
	keys[0] = "mutated"

	if got := s.Keys(KindSnippet); got[0] != "a" {
		t.Errorf("Keys = %q, caller mutation leaked into the store", got)
	}
}

func TestStoreUnreferenced(t *testing.T) {
	s := NewStore()

	s.Register(KindFile, "kept.txt", s.Alloc())

	// Orphan: allocated, never registered.
	s.Append(s.Alloc(), "orphan\n")

	// Displaced: registered, then the key is rebound elsewhere.
	s.Register(KindSnippet, "dup", s.Alloc())
	s.Register(KindSnippet, "dup", s.Alloc())

	if got := s.SegmentCount(); got != 4 {
		t.Errorf("SegmentCount = %d, want 4", got)
	}
	if got := s.Unreferenced(); got != 2 {
		t.Errorf("Unreferenced = %d, want 2", got)
	}
}

func TestStoreEmpty(t *testing.T) {
	s := NewStore()
	if got := s.Keys(KindFile); len(got) != 0 {
		t.Errorf("Keys = %q, want none", got)
	}
	if s.SegmentCount() != 0 || s.Unreferenced() != 0 {
		t.Error("empty store should count nothing")
	}
}
