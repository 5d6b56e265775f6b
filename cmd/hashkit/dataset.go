package main

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// loadDataset returns the non-empty lines of path, or item_0..item_{count-1}
// when path is empty.
func loadDataset(fs afero.Fs, path string, count int) ([]string, error) {
	if path == "" {
		return generateItems(count), nil
	}

	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	lines := strings.Split(string(raw), "\n")
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items, nil
}

func generateItems(count int) []string {
	items := make([]string, count)
	for i := range items {
		items[i] = fmt.Sprintf("item_%d", i)
	}
	return items
}
