package app

import (
	"bytes"
	"fmt"
	"os"
)

// loadSecret prefers the inline value and falls back to reading path.
// Trailing newlines from the file are dropped.
func loadSecret(value, path string) ([]byte, error) {
	if value != "" {
		return []byte(value), nil
	}
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing secret file: %w", err)
	}
	return bytes.TrimRight(data, "\r\n"), nil
}
