// Package approutes compiles a folder of page, layout and error files into
// the nested route records consumed by a front-end router.
//
// A source tree such as
//
//	app/
//	├── layout.vue
//	├── page.vue
//	├── (marketing)/about/page.vue
//	└── blog/[slug]/page.vue
//
// becomes
//
//	{path: "", component: layout, children: [
//	    {path: "", component: page},
//	    {path: "about", component: about},
//	    {path: "blog", children: [{path: ":slug", component: post}]},
//	]}
//
// Compile is pure: it works on a snapshot of file paths and performs no I/O.
// CreateRoutes obtains that snapshot from a FileLister first.
package approutes

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/rafbgarcia/approutes/internal/conventions"
	"github.com/rafbgarcia/approutes/internal/discovery"
)

// SourceKind selects the discovery convention.
type SourceKind string

// SourceFolder is the folder convention: one directory per route segment.
const SourceFolder SourceKind = "folder"

// DefaultSource is the source root used when Config.Source is empty.
const DefaultSource = "app"

// Config is the input of a compilation. The zero value is usable.
type Config struct {
	// Source is the root folder. Defaults to DefaultSource. When any listed
	// path starts with it, all of them must and are made relative to it;
	// otherwise the listing is taken as already relative.
	Source string

	// I18n enables locale expansion. nil means a single locale.
	I18n *I18n

	// Type selects the discovery convention. Defaults to SourceFolder.
	Type SourceKind

	// Extensions lists the component file extensions that may carry a
	// route role. Defaults to conventions.DefaultExtensions.
	Extensions []string

	// Files provides the snapshot for CreateRoutes. Defaults to walking
	// Source on disk.
	Files FileLister

	// Loader is attached to every produced LazyComponent.
	Loader ModuleLoader

	// Logger receives diagnostics at error sites. Defaults to NopLogger.
	Logger *Logger
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Source) == "" {
		c.Source = DefaultSource
	}
	if c.Type == "" {
		c.Type = SourceFolder
	}
	if len(c.Extensions) == 0 {
		c.Extensions = conventions.DefaultExtensions
	}
	if c.Logger == nil {
		c.Logger = NopLogger()
	}
	return c
}

// FileLister provides the snapshot of files below a source root.
type FileLister interface {
	ListFiles(ctx context.Context) ([]string, error)
}

// StaticFiles is a FileLister over an in-memory list.
type StaticFiles []string

// ListFiles returns a copy of the list.
func (s StaticFiles) ListFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone([]string(s)), nil
}

// Dir returns a FileLister that walks root on disk, skipping hidden
// directories, node_modules and paths matching any of the ignore globs.
func Dir(root string, ignore ...string) FileLister {
	return &discovery.Walker{Root: root, Ignore: ignore}
}

// CreateRoutes lists the files of cfg.Files and compiles them.
func CreateRoutes(ctx context.Context, cfg Config) ([]RouteRecord, error) {
	cfg = cfg.withDefaults()
	if cfg.Files == nil {
		cfg.Files = Dir(cfg.Source)
	}
	files, err := cfg.Files.ListFiles(ctx)
	if err != nil {
		cfg.Logger.Error("listing route files failed", "source", cfg.Source, "error", err)
		return nil, fmt.Errorf("listing %s: %w", cfg.Source, err)
	}
	return Compile(cfg, files)
}

// Compile turns a snapshot of file paths into route records. The result is
// never nil, is freshly allocated on every call and depends only on the set
// of paths, not on their order. On error no records are returned.
func Compile(cfg Config, files []string) ([]RouteRecord, error) {
	cfg = cfg.withDefaults()
	records, err := compile(cfg, files)
	if err != nil {
		cfg.Logger.Debug("route compilation failed", "source", cfg.Source, "files", len(files), "error", err)
		return nil, err
	}
	return records, nil
}

func compile(cfg Config, files []string) ([]RouteRecord, error) {
	if cfg.Type != SourceFolder {
		return nil, &CompileError{
			Kind:   ErrUnsupportedSourceKind,
			Detail: fmt.Sprintf("%q (supported: %q)", cfg.Type, SourceFolder),
		}
	}

	plan, err := cfg.I18n.plan()
	if err != nil {
		return nil, err
	}

	refs, err := normalize(cfg.Source, files)
	if err != nil {
		return nil, err
	}

	root, err := buildTree(refs, cfg.Extensions)
	if err != nil {
		return nil, err
	}
	if err := checkConflicts(root); err != nil {
		return nil, err
	}

	f := flattener{loader: cfg.Loader}
	records := f.records(root, "")
	if records == nil {
		records = []RouteRecord{}
	}
	return plan.expand(records), nil
}

// fileRef is one listed file: its path relative to the source and the path
// it will be imported from.
type fileRef struct {
	rel        string
	importPath string
}

// normalize converts listed paths to slash form relative to source, drops
// duplicates and sorts them. Once any path carries the source prefix, every
// path must.
func normalize(source string, files []string) ([]fileRef, error) {
	src := strings.TrimSuffix(strings.TrimPrefix(toSlash(source), "./"), "/")
	if src == "." {
		src = ""
	}

	paths := make([]string, len(files))
	anchored := false
	for i, f := range files {
		paths[i] = strings.TrimPrefix(toSlash(f), "./")
		if src != "" && strings.HasPrefix(paths[i], src+"/") {
			anchored = true
		}
	}
	slices.Sort(paths)

	byRel := make(map[string]fileRef, len(files))
	for _, p := range paths {
		rel := p
		if anchored {
			if !strings.HasPrefix(p, src+"/") {
				return nil, &CompileError{
					Kind:    ErrMalformedSegmentSyntax,
					Path:    p,
					Segment: strings.SplitN(strings.TrimLeft(p, "/"), "/", 2)[0],
					Detail:  fmt.Sprintf("path is outside the source root %q", src),
				}
			}
			rel = strings.TrimPrefix(p, src+"/")
		}
		rel = strings.TrimLeft(rel, "/")
		if rel == "" {
			continue
		}
		if slices.Contains(strings.Split(rel, "/"), "..") {
			return nil, &CompileError{
				Kind:    ErrMalformedSegmentSyntax,
				Path:    p,
				Segment: "..",
				Detail:  "paths must stay below the source root",
			}
		}
		rel = path.Clean(rel)
		if prev, ok := byRel[rel]; ok && prev.importPath <= p {
			continue
		}
		byRel[rel] = fileRef{rel: rel, importPath: p}
	}

	refs := make([]fileRef, 0, len(byRel))
	for _, ref := range byRel {
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, func(a, b fileRef) int {
		return strings.Compare(a.rel, b.rel)
	})
	return refs, nil
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
