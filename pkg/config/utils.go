package config

import (
	"errors"
	"os"
	"path/filepath"
)

// FindUp returns the first dir/name found walking from dir to the
// filesystem root. A directory holding go.mod ends the walk after it has
// been checked, so a checkout never picks up an env file from its parent.
func FindUp(dir, name string) (string, error) {
	if name == "" {
		name = ".env"
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		if isModuleRoot(dir) {
			return "", os.ErrNotExist
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func isModuleRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "go.mod"))
	return !errors.Is(err, os.ErrNotExist)
}
