// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"fmt"
	"os"
)

// ReadDocument reads the file at path and returns its lines with their
// original terminators attached. The whole document is loaded at once;
// input documents are hand-written prose, not bulk data.
func ReadDocument(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	return SplitLines(data), nil
}

// SplitLines splits data after each newline byte, keeping the
// terminator (\n or \r\n) attached to its line. A final line without a
// terminator is returned as-is, so joining the result reproduces the
// input bytes exactly.
func SplitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i+1]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}
