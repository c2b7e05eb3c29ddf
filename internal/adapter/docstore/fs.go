// Package docstore provides document stores for the knowledge base:
// a filesystem store for plain-text files and a BoltDB store for
// ingested documents.
package docstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"bankrag/internal/port"
)

// FSStore loads documents from plain-text files in a directory.
type FSStore struct {
	dir      string
	patterns []string
}

// NewFSStore creates a store over dir. patterns are doublestar globs
// used by Sources for discovery; empty defaults to "**/*.txt".
func NewFSStore(dir string, patterns []string) *FSStore {
	if len(patterns) == 0 {
		patterns = []string{"**/*.txt"}
	}
	return &FSStore{dir: dir, patterns: patterns}
}

func (s *FSStore) Load(ctx context.Context, source string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, source))
	if errors.Is(err, os.ErrNotExist) {
		return "", port.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Sources lists files under the store directory matching the configured
// patterns. Names are relative to the directory, sorted for stable
// index build order.
func (s *FSStore) Sources(ctx context.Context) ([]string, error) {
	fsys := os.DirFS(s.dir)
	seen := make(map[string]struct{})
	var sources []string

	for _, pattern := range s.patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			sources = append(sources, m)
		}
	}

	sort.Strings(sources)
	return sources, nil
}
