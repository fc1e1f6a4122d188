package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File stores documents on the local file system.
type File struct{}

func (File) Read(_ context.Context, location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", location, err)
	}
	return data, nil
}

// Write creates missing parent directories.
func (File) Write(_ context.Context, location string, data []byte) error {
	if dir := filepath.Dir(location); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for '%s': %w", location, err)
		}
	}
	if err := os.WriteFile(location, data, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", location, err)
	}
	return nil
}
