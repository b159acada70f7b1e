package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadROM resolves a ROM path and returns its raw bytes together with the
// cleaned absolute path.
func ReadROM(relPath string) ([]byte, string, error) {
	fullPath, err := filepath.Abs(relPath)
	if err != nil {
		return nil, "", fmt.Errorf("resolving rom path %q: %w", relPath, err)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, "", fmt.Errorf("reading rom %q: %w", fullPath, err)
	}
	return data, fullPath, nil
}
