package fixtures

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Repository discovers fixture sources on the filesystem.
type Repository struct {
	logger *slog.Logger
}

// NewRepository creates a new fixture repository.
func NewRepository(logger *slog.Logger) *Repository {
	return &Repository{logger: logger}
}

// Discover walks the given paths and returns every fixture found, in
// first-discovery order. Directories are searched recursively with their
// contents in lexicographic path order; regular files are loaded as single
// sources. Paths that do not exist or are neither directory nor regular
// file are skipped silently.
func (r *Repository) Discover(paths []string) ([]Fixture, error) {
	var fixtures []Fixture

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			r.logger.Debug("skipping fixture path", "path", path, "reason", err)
			continue
		}

		switch {
		case info.IsDir():
			found, err := r.discoverDir(path)
			if err != nil {
				return nil, err
			}
			fixtures = append(fixtures, found...)
		case info.Mode().IsRegular():
			fixture, err := parseFile(path)
			if err != nil {
				return nil, err
			}
			fixtures = append(fixtures, fixture)
		default:
			r.logger.Debug("skipping fixture path", "path", path, "reason", "not a directory or regular file")
		}
	}

	return fixtures, nil
}

// discoverDir collects every fixture file under dir. filepath.WalkDir visits
// entries in lexical order, which gives the documented deterministic
// ordering.
func (r *Repository) discoverDir(dir string) ([]Fixture, error) {
	var fixtures []Fixture

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isFixtureFile(path) {
			return nil
		}

		fixture, err := parseFile(path)
		if err != nil {
			return err
		}
		fixtures = append(fixtures, fixture)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search fixture directory %s: %w", dir, err)
	}

	return fixtures, nil
}

// parseFile dispatches on file extension to the matching parser.
func parseFile(path string) (Fixture, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path)
	case ".xlsx":
		return parseXLSX(path)
	default:
		return Fixture{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// isFixtureFile reports whether a file inside a searched directory is a
// fixture source. Unlike explicit file arguments, other files in a
// directory are simply ignored.
func isFixtureFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".xlsx":
		return true
	}
	return false
}
