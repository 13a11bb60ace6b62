// Package assets bundles the tray and notification icons.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed icons/*.png
var icons embed.FS

// InstallIcons writes the bundled icons into dir, leaving files that already
// exist untouched so users can replace them with their own.
func InstallIcons(dir string) error {
	entries, err := fs.ReadDir(icons, "icons")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create icon directory %s: %w", dir, err)
	}

	for _, e := range entries {
		dest := filepath.Join(dir, e.Name())
		if _, err := os.Stat(dest); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check icon %s: %w", dest, err)
		}

		data, err := icons.ReadFile("icons/" + e.Name())
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return fmt.Errorf("failed to write icon %s: %w", dest, err)
		}
	}
	return nil
}
