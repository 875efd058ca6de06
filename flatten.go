package approutes

import (
	"cmp"
	"slices"

	"github.com/rafbgarcia/approutes/internal/conventions"
)

// flattener turns the folder tree into router records.
type flattener struct {
	loader ModuleLoader
}

func (f flattener) lazy(ref fileRef) *LazyComponent {
	c := NewLazyComponent(ref.importPath, f.loader)
	return &c
}

// records returns what a folder contributes to its parent's children: one
// record, nothing for folders without routes, or the children themselves
// for route groups that carry no layout, error or loading file.
func (f flattener) records(n *node, parent string) []RouteRecord {
	here := joinPath(parent, n.seg.Pattern())

	var children []RouteRecord
	for _, c := range n.sortedChildren() {
		children = append(children, f.records(c, here)...)
	}
	if ref, ok := n.files[conventions.RoleNotFound]; ok {
		children = append(children, RouteRecord{
			Path:      conventions.NotFoundPattern,
			Name:      joinPath(here, conventions.NotFoundPattern),
			Component: f.lazy(ref),
		})
	}

	if !n.hasView() && len(children) == 0 {
		return nil
	}

	layout, hasLayout := n.files[conventions.RoleLayout]
	meta := f.meta(n)

	if n.seg.Kind == conventions.Group && !hasLayout && meta.Error == nil && meta.Loading == nil {
		if n.hasView() {
			children = append(children, f.index(n, here))
		}
		return children
	}

	rec := RouteRecord{Path: n.seg.Pattern()}
	if hasLayout || len(children) > 0 || n.seg.Kind == conventions.Group {
		if hasLayout {
			rec.Component = f.lazy(layout)
		}
		if n.hasView() {
			children = append(children, f.index(n, here))
		}
		sortRecords(children)
		rec.Children = children
	} else {
		f.view(&rec, n)
		rec.Name = here
	}
	if !meta.isZero() {
		rec.Meta = meta
	}
	return []RouteRecord{rec}
}

// index returns the "" child that renders a folder's page below its layout
// or next to its subfolders.
func (f flattener) index(n *node, here string) RouteRecord {
	rec := RouteRecord{Name: joinPath(here, "")}
	f.view(&rec, n)
	return rec
}

// view sets the page and named slots of a folder on rec.
func (f flattener) view(rec *RouteRecord, n *node) {
	page, hasPage := n.files[conventions.RolePage]
	if len(n.slots) == 0 {
		if hasPage {
			rec.Component = f.lazy(page)
		}
		return
	}
	rec.Components = make(map[string]LazyComponent, len(n.slots)+1)
	if hasPage {
		rec.Components[conventions.DefaultSlot] = *f.lazy(page)
	}
	for name, ref := range n.slots {
		rec.Components[name] = *f.lazy(ref)
	}
}

func (f flattener) meta(n *node) *RouteMeta {
	meta := &RouteMeta{}
	if ref, ok := n.files[conventions.RoleError]; ok {
		meta.Error = f.lazy(ref)
	}
	if ref, ok := n.files[conventions.RoleLoading]; ok {
		meta.Loading = f.lazy(ref)
	}
	switch n.seg.Kind {
	case conventions.Group:
		meta.Group = n.seg.Name
	case conventions.Dynamic:
		meta.Param = &Param{Name: n.seg.Name}
	case conventions.CatchAll:
		meta.Param = &Param{Name: n.seg.Name, Repeatable: true}
	case conventions.OptionalCatchAll:
		meta.Param = &Param{Name: n.seg.Name, Repeatable: true, Optional: true}
	}
	return meta
}

// sortRecords orders siblings so that static paths come before dynamic ones
// and dynamic ones before catch-alls. Ties are broken by path, then by route
// group, which puts an index record ahead of pathless group records.
func sortRecords(records []RouteRecord) {
	slices.SortStableFunc(records, func(a, b RouteRecord) int {
		return cmp.Or(
			cmp.Compare(conventions.Rank(a.Path), conventions.Rank(b.Path)),
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(groupOf(a), groupOf(b)),
		)
	})
}

func groupOf(r RouteRecord) string {
	if r.Meta == nil {
		return ""
	}
	return r.Meta.Group
}

// ResolvedRoute is a page-rendering record with its full URL.
type ResolvedRoute struct {
	Path   string            `json:"path" yaml:"path"`
	Name   string            `json:"name,omitempty" yaml:"name,omitempty"`
	Import string            `json:"import,omitempty" yaml:"import,omitempty"`
	Slots  map[string]string `json:"slots,omitempty" yaml:"slots,omitempty"`
	Locale string            `json:"locale,omitempty" yaml:"locale,omitempty"`
}

// Resolve lists every record that renders a page, in tree order, with the
// URL it is reachable at.
func Resolve(records []RouteRecord) []ResolvedRoute {
	out := []ResolvedRoute{}
	var walk func(records []RouteRecord, parent string)
	walk = func(records []RouteRecord, parent string) {
		for _, r := range records {
			here := joinPath(parent, r.Path)
			if page, ok := r.view(); ok || len(r.Components) > 0 {
				row := ResolvedRoute{Path: here, Name: r.Name, Import: page.Import}
				for name, c := range r.Components {
					if name == conventions.DefaultSlot {
						continue
					}
					if row.Slots == nil {
						row.Slots = make(map[string]string)
					}
					row.Slots[name] = c.Import
				}
				if r.Meta != nil {
					row.Locale = r.Meta.Locale
				}
				out = append(out, row)
			}
			walk(r.Children, here)
		}
	}
	walk(records, "")
	return out
}
