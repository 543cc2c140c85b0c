package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner by walking directories recursively.
// Symlinks are followed; resolved directories are remembered so link cycles
// terminate. A root that cannot be read is an error, anything unreadable
// below it is skipped with a warning.
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan walks each root and returns the paths of all package candidates.
// A root may itself be a package file.
func (s *FileSystemScanner) Scan(ctx context.Context, roots []string) ([]string, error) {
	w := &walker{seen: make(map[string]bool)}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}

		if !info.IsDir() {
			if info.Mode().IsRegular() && MatchesPackage(root) {
				w.found = append(w.found, root)
			}
			continue
		}

		if real, err := filepath.EvalSymlinks(root); err == nil {
			if w.seen[real] {
				continue
			}
			w.seen[real] = true
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
		if err := w.dir(ctx, root, entries); err != nil {
			return nil, err
		}
	}

	logrus.Debugf("Found %d package candidates", len(w.found))
	return w.found, nil
}

type walker struct {
	seen  map[string]bool
	found []string
}

func (w *walker) dir(ctx context.Context, dir string, entries []os.DirEntry) error {
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		path := filepath.Join(dir, entry.Name())

		// Stat, not Lstat, so symlinked packages and directories count.
		info, err := os.Stat(path)
		if err != nil {
			logrus.Warnf("Skipping %s: %v", path, err)
			continue
		}

		switch {
		case info.IsDir():
			if err := w.descend(ctx, path); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if MatchesPackage(path) {
				logrus.Debugf("Found package candidate: %s", path)
				w.found = append(w.found, path)
			}
		}
	}

	return nil
}

func (w *walker) descend(ctx context.Context, dir string) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		logrus.Warnf("Skipping %s: %v", dir, err)
		return nil
	}
	if w.seen[real] {
		return nil
	}
	w.seen[real] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		logrus.Warnf("Skipping unreadable directory %s: %v", dir, err)
		return nil
	}

	return w.dir(ctx, dir, entries)
}
