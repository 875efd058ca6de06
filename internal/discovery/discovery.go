// Package discovery lists the files below a source root on disk. It is the
// only part of route compilation that touches the filesystem.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// Walker lists files below Root.
type Walker struct {
	// Root is the directory to walk. Returned paths start with it, in slash
	// form (e.g. "app/blog/page.vue").
	Root string

	// Ignore holds doublestar globs matched against paths relative to Root
	// ("**/components", "drafts/*.vue"). A matching directory is skipped
	// with everything below it.
	Ignore []string
}

// ListFiles walks Root and returns the sorted list of files. A missing root
// yields an empty list.
func (w *Walker) ListFiles(ctx context.Context) ([]string, error) {
	for _, pattern := range w.Ignore {
		if _, err := doublestar.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
	}

	var files []string
	err := filepath.WalkDir(w.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == w.Root && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(w.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if shouldIgnoreDir(d.Name()) || w.ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.ignored(rel) {
			return nil
		}
		files = append(files, path.Join(filepath.ToSlash(w.Root), rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", w.Root, err)
	}

	slices.Sort(files)
	return files, nil
}

func (w *Walker) ignored(rel string) bool {
	for _, pattern := range w.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// shouldIgnoreDir reports whether a directory is never part of a source tree.
func shouldIgnoreDir(name string) bool {
	// Hidden directories (.git, .nuxt, .output, etc.)
	if strings.HasPrefix(name, ".") {
		return true
	}
	return name == "node_modules"
}
