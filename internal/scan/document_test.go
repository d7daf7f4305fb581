// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{name: "empty input", data: "", want: nil},
		{name: "single line no terminator", data: "abc", want: []string{"abc"}},
		{name: "single line", data: "abc\n", want: []string{"abc\n"}},
		{name: "two lines", data: "a\nb\n", want: []string{"a\n", "b\n"}},
		{name: "final line unterminated", data: "a\nb", want: []string{"a\n", "b"}},
		{name: "crlf", data: "a\r\nb\r\n", want: []string{"a\r\n", "b\r\n"}},
		{name: "blank lines", data: "\n\n", want: []string{"\n", "\n"}},
		{name: "mixed terminators", data: "a\r\nb\nc", want: []string{"a\r\n", "b\n", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines([]byte(tt.data))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.data, got, tt.want)
			}
			// Joining the lines must reproduce the input exactly.
			if joined := strings.Join(got, ""); joined != tt.data {
				t.Errorf("join(SplitLines(%q)) = %q", tt.data, joined)
			}
		})
	}
}

func TestReadDocument(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "doc.md")
	content := "# Title\r\n\nbody\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if joined := strings.Join(lines, ""); joined != content {
		t.Errorf("joined lines = %q, want %q", joined, content)
	}
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "absent.md"))
	if err == nil {
		t.Fatal("expected error for missing document")
	}
	if !strings.Contains(err.Error(), "absent.md") {
		t.Errorf("error = %q, want it to name the document", err)
	}
}
