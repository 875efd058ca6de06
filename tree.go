package approutes

import (
	"errors"
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/rafbgarcia/approutes/internal/conventions"
)

// node is one folder of the source tree.
type node struct {
	seg      conventions.Segment
	dir      string // folder path relative to the source, "" for the root
	files    map[conventions.Role]fileRef
	slots    map[string]fileRef
	children map[string]*node
}

func newNode(seg conventions.Segment, dir string) *node {
	return &node{
		seg:      seg,
		dir:      dir,
		files:    make(map[conventions.Role]fileRef),
		slots:    make(map[string]fileRef),
		children: make(map[string]*node),
	}
}

// child returns the node for a folder, creating it on first use.
func (n *node) child(seg conventions.Segment) *node {
	if c, ok := n.children[seg.Raw]; ok {
		return c
	}
	c := newNode(seg, path.Join(n.dir, seg.Raw))
	n.children[seg.Raw] = c
	return c
}

// sortedChildren returns children by folder name so traversal is
// deterministic.
func (n *node) sortedChildren() []*node {
	names := slices.Sorted(maps.Keys(n.children))
	out := make([]*node, len(names))
	for i, name := range names {
		out[i] = n.children[name]
	}
	return out
}

// hasView reports whether the folder renders a page or named slots.
func (n *node) hasView() bool {
	_, ok := n.files[conventions.RolePage]
	return ok || len(n.slots) > 0
}

// viewRef returns the file that stands for the folder's view: its page, or
// its first named slot when it has none.
func (n *node) viewRef() (fileRef, bool) {
	if ref, ok := n.files[conventions.RolePage]; ok {
		return ref, true
	}
	if len(n.slots) == 0 {
		return fileRef{}, false
	}
	return n.slots[slices.Min(slices.Collect(maps.Keys(n.slots)))], true
}

func (n *node) add(f conventions.File, ref fileRef) error {
	if f.Role == conventions.RoleSlot {
		if prev, ok := n.slots[f.Slot]; ok {
			return conflict(n.dir, fmt.Sprintf("two %q slot files", f.Slot), prev, ref)
		}
		n.slots[f.Slot] = ref
		return nil
	}
	if prev, ok := n.files[f.Role]; ok {
		return conflict(n.dir, fmt.Sprintf("two %s files", f.Role), prev, ref)
	}
	n.files[f.Role] = ref
	return nil
}

// buildTree groups files by folder and classifies them. Files that carry no
// route role and files below ignored folders are skipped.
func buildTree(refs []fileRef, extensions []string) (*node, error) {
	root := newNode(conventions.Segment{Kind: conventions.Static}, "")

	for _, ref := range refs {
		dir, name := path.Split(ref.rel)
		f, ok, err := conventions.ClassifyFile(name, extensions)
		if err != nil {
			return nil, malformed(ref.rel, err)
		}
		if !ok {
			continue
		}

		n := root
		skip := false
		for _, raw := range strings.Split(strings.TrimSuffix(dir, "/"), "/") {
			if raw == "" {
				continue
			}
			seg, err := conventions.ParseSegment(raw)
			if err != nil {
				return nil, malformed(path.Join(n.dir, raw), err)
			}
			if seg.Kind == conventions.Ignored {
				skip = true
				break
			}
			n = n.child(seg)
		}
		if skip {
			continue
		}
		if err := n.add(f, ref); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// checkConflicts rejects views that the router could not tell apart: two
// pages whose URL patterns are equal once parameter names are erased. This
// covers pages hoisted out of different route groups as well as sibling
// dynamic folders such as [id] and [slug].
func checkConflicts(root *node) error {
	seen := make(map[string]fileRef)

	claim := func(shape string, ref fileRef) error {
		if prev, ok := seen[shape]; ok {
			return conflict(path.Dir(ref.rel), fmt.Sprintf("pages resolve to the same URL %s", shape), prev, ref)
		}
		seen[shape] = ref
		return nil
	}

	var walk func(n *node, shape string) error
	walk = func(n *node, shape string) error {
		if ref, ok := n.viewRef(); ok {
			if err := claim(joinPath(shape, ""), ref); err != nil {
				return err
			}
		}
		if ref, ok := n.files[conventions.RoleNotFound]; ok {
			if err := claim(joinPath(joinPath(shape, "*"), ""), ref); err != nil {
				return err
			}
		}
		for _, c := range n.sortedChildren() {
			if err := walk(c, joinPath(shape, c.seg.Shape())); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, "")
}

func conflict(dir, detail string, a, b fileRef) error {
	files := []string{a.importPath, b.importPath}
	slices.Sort(files)
	if dir == "." {
		dir = ""
	}
	return &CompileError{
		Kind:   ErrConflictingRouteDefinition,
		Path:   dir,
		Files:  files,
		Detail: detail,
	}
}

func malformed(p string, err error) error {
	var syntaxErr *conventions.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &CompileError{
			Kind:    ErrMalformedSegmentSyntax,
			Path:    p,
			Segment: syntaxErr.Segment,
			Detail:  syntaxErr.Reason,
		}
	}
	return &CompileError{Kind: ErrMalformedSegmentSyntax, Path: p, Detail: err.Error()}
}

// joinPath appends a router path segment to a resolved URL. An empty
// segment (index or pathless record) resolves to the parent with a trailing
// slash.
//
//	joinPath("", "")          → "/"
//	joinPath("/", "blog")     → "/blog"
//	joinPath("/blog", "")     → "/blog/"
//	joinPath("/blog/", ":id") → "/blog/:id"
func joinPath(parent, seg string) string {
	if strings.HasPrefix(seg, "/") {
		return seg
	}
	if seg == "" {
		if strings.HasSuffix(parent, "/") {
			return parent
		}
		return parent + "/"
	}
	return strings.TrimSuffix(parent, "/") + "/" + seg
}
