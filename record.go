package approutes

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
)

// Component is whatever a ModuleLoader produces for an import path. The
// compiler never inspects it.
type Component any

// ModuleLoader turns an import path into a component. It is only invoked
// when a route is activated, never during compilation.
type ModuleLoader interface {
	Load(ctx context.Context, importPath string) (Component, error)
}

// LazyComponent is a deferred reference to a view component.
type LazyComponent struct {
	// Import is the path the component is imported from, as it was listed
	// (e.g. "app/blog/page.vue").
	Import string

	loader ModuleLoader
}

// NewLazyComponent returns a reference to importPath resolved by loader.
// loader may be nil when the reference is only rendered (codegen, manifests).
func NewLazyComponent(importPath string, loader ModuleLoader) LazyComponent {
	return LazyComponent{Import: importPath, loader: loader}
}

// Load resolves the component. It blocks until the loader returns.
func (c LazyComponent) Load(ctx context.Context) (Component, error) {
	if c.loader == nil {
		return nil, fmt.Errorf("loading %s: %w", c.Import, ErrNoLoader)
	}
	comp, err := c.loader.Load(ctx, c.Import)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.Import, err)
	}
	return comp, nil
}

// LoadResult is the outcome of an asynchronous load.
type LoadResult struct {
	Component Component
	Err       error
}

// LoadAsync starts loading the component and returns a channel that
// receives exactly one result and is then closed.
func (c LazyComponent) LoadAsync(ctx context.Context) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		defer close(ch)
		comp, err := c.Load(ctx)
		ch <- LoadResult{Component: comp, Err: err}
	}()
	return ch
}

// MarshalJSON encodes the reference as its import path.
func (c LazyComponent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Import)
}

// MarshalYAML encodes the reference as its import path.
func (c LazyComponent) MarshalYAML() (any, error) {
	return c.Import, nil
}

// Param describes the route parameter introduced by a dynamic segment.
type Param struct {
	Name       string `json:"name" yaml:"name"`
	Repeatable bool   `json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Optional   bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// RouteMeta is the metadata attached to a record.
type RouteMeta struct {
	Locale  string         `json:"locale,omitempty" yaml:"locale,omitempty"`
	Group   string         `json:"group,omitempty" yaml:"group,omitempty"`
	Error   *LazyComponent `json:"error,omitempty" yaml:"error,omitempty"`
	Loading *LazyComponent `json:"loading,omitempty" yaml:"loading,omitempty"`
	Param   *Param         `json:"param,omitempty" yaml:"param,omitempty"`
}

func (m *RouteMeta) isZero() bool {
	return m == nil || *m == RouteMeta{}
}

// RouteRecord is one node of the route tree handed to the router.
type RouteRecord struct {
	// Path is the URL segment relative to the parent record: "" for index
	// and pathless records, "blog", ":id", ":slug(.*)*".
	Path string `json:"path" yaml:"path"`

	// Name is the resolved URL of records that render a page.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Component is the single view of the record: the layout for records
	// with children, the page for leaves.
	Component *LazyComponent `json:"component,omitempty" yaml:"component,omitempty"`

	// Components holds named views. It replaces Component when a page has
	// named slots; the page itself is under "default".
	Components map[string]LazyComponent `json:"components,omitempty" yaml:"components,omitempty"`

	Children []RouteRecord `json:"children,omitempty" yaml:"children,omitempty"`
	Meta     *RouteMeta    `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// clone returns a deep copy of r.
func (r RouteRecord) clone() RouteRecord {
	c := r
	if r.Component != nil {
		comp := *r.Component
		c.Component = &comp
	}
	if r.Components != nil {
		c.Components = maps.Clone(r.Components)
	}
	if r.Meta != nil {
		meta := *r.Meta
		if meta.Error != nil {
			e := *meta.Error
			meta.Error = &e
		}
		if meta.Loading != nil {
			l := *meta.Loading
			meta.Loading = &l
		}
		if meta.Param != nil {
			p := *meta.Param
			meta.Param = &p
		}
		c.Meta = &meta
	}
	if r.Children != nil {
		c.Children = make([]RouteRecord, len(r.Children))
		for i, child := range r.Children {
			c.Children[i] = child.clone()
		}
	}
	return c
}

// view returns the page reference rendered by the record, if any.
func (r RouteRecord) view() (LazyComponent, bool) {
	if c, ok := r.Components["default"]; ok {
		return c, true
	}
	if r.Name != "" && r.Component != nil {
		return *r.Component, true
	}
	return LazyComponent{}, false
}
