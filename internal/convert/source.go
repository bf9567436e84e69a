// Package convert orchestrates the conversion pipeline: read model
// bytes from a source, decode, assemble, and serialize the scene plus
// a conversion manifest.
package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source supplies raw model bytes by logical path. *vp.Archive
// satisfies it; DirSource adapts a plain directory so loose files
// convert the same way as archived ones.
type Source interface {
	Read(path string) ([]byte, error)
	List() []string
}

// DirSource reads files relative to a root directory.
type DirSource struct {
	Root string
}

// Read returns the contents of the file at path, relative to the root.
func (d DirSource) Read(path string) ([]byte, error) {
	full := filepath.Join(d.Root, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// List returns all regular files under the root, as slash-separated
// paths relative to it.
func (d DirSource) List() []string {
	var result []string
	filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.Root, path)
		if err != nil {
			return nil
		}
		result = append(result, filepath.ToSlash(rel))
		return nil
	})
	return result
}

// matchModels filters a listing to POF files matching pattern. An
// empty pattern matches every model; otherwise the pattern is a glob
// against the base name, with substring match as a fallback.
func matchModels(files []string, pattern string) []string {
	var matched []string
	pattern = strings.ToLower(pattern)
	for _, f := range files {
		if !strings.HasSuffix(strings.ToLower(f), ".pof") {
			continue
		}
		if pattern != "" {
			ok, _ := filepath.Match(pattern, strings.ToLower(filepath.Base(f)))
			if !ok && !strings.Contains(strings.ToLower(f), pattern) {
				continue
			}
		}
		matched = append(matched, f)
	}
	return matched
}
