package inventory

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tangle-engine/pkg/types"
)

// addSegment allocates a segment with the given lines and registers it.
func addSegment(store *types.Store, kind types.Kind, key string, lines ...string) {
	id := store.Alloc()
	for _, line := range lines {
		store.Append(id, line)
	}
	store.Register(kind, key, id)
}

// sampleStore builds a store with two files, one snippet, and one
// orphan segment.
func sampleStore() *types.Store {
	store := types.NewStore()
	addSegment(store, types.KindSnippet, "util", "func helper() {}\n")
	addSegment(store, types.KindFile, "main.go",
		"package main\n",
		"<<util>>\n",
		"<<util>>\n",
		"<<ghost>>\n")
	addSegment(store, types.KindFile, "a/b.txt", "content\n")
	store.Append(store.Alloc(), "orphaned\n")
	return store
}

func TestBuild(t *testing.T) {
	r := Build("doc.md", sampleStore())

	assert.Equal(t, "doc.md", r.Document)
	assert.Equal(t, []Entry{
		{Name: "main.go", Lines: 4, Refs: []string{"util", "ghost"}},
		{Name: "a/b.txt", Lines: 1},
	}, r.Files)
	assert.Equal(t, []Entry{
		{Name: "util", Lines: 1},
	}, r.Snippets)
	assert.Equal(t, 1, r.Unreferenced)
}

func TestBuildRefsAreSyntactic(t *testing.T) {
	// References are listed even when nothing defines them; the
	// inventory never resolves.
	store := types.NewStore()
	addSegment(store, types.KindFile, "x.txt", "<<undefined-name>>\n")

	r := Build("doc.md", store)

	require.Len(t, r.Files, 1)
	assert.Equal(t, []string{"undefined-name"}, r.Files[0].Refs)
}

func TestBuildEmptyStore(t *testing.T) {
	r := Build("doc.md", types.NewStore())

	assert.Empty(t, r.Files)
	assert.Empty(t, r.Snippets)
	assert.Zero(t, r.Unreferenced)
}

func TestWriteText(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteText(&buf, Build("doc.md", sampleStore())))
	out := buf.String()

	for _, want := range []string{
		"Document: doc.md",
		"Files (2):",
		"main.go",
		"refs: util, ghost",
		"a/b.txt",
		"Snippets (1):",
		"util",
		"1 segment(s) not reachable",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteTextNoUnreferencedLine(t *testing.T) {
	store := types.NewStore()
	addSegment(store, types.KindFile, "x.txt", "x\n")

	var buf strings.Builder
	require.NoError(t, WriteText(&buf, Build("doc.md", store)))

	assert.NotContains(t, buf.String(), "not reachable",
		"the unreferenced line should be omitted when the count is zero")
}

func TestWriteJSONRoundTrip(t *testing.T) {
	report := Build("doc.md", sampleStore())

	var buf strings.Builder
	require.NoError(t, WriteJSON(&buf, report))

	var decoded Report
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &decoded))
	assert.Equal(t, report, decoded)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	report := Build("doc.md", sampleStore())

	var buf strings.Builder
	require.NoError(t, WriteYAML(&buf, report))

	var decoded Report
	require.NoError(t, yaml.Unmarshal([]byte(buf.String()), &decoded))
	assert.Equal(t, report, decoded)
}
