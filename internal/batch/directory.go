package batch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/freightdocs/invoice-extractor/constants"
)

// LoadDirectory walks root and reads every non-hidden file with an allowed
// extension into a Source. Unreadable files are skipped with a walk error
// only when the walk itself cannot continue.
func LoadDirectory(root string) ([]Source, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}

	var sources []Source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if isHidden(path) {
			if d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !constants.IsAllowedExt(filepath.Ext(path)) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sources = append(sources, Source{Filename: filepath.Base(path), Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
