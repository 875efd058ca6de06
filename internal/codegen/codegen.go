// Package codegen renders compiled route records as a router module or a
// manifest.
//
// The TypeScript module is meant to be imported by a vue-router setup:
//
//	import routes from "./routes.gen"
//	createRouter({ history: createWebHistory(), routes })
package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rafbgarcia/approutes"
)

// Header is the first line of every generated module.
const Header = "// Code generated by approutes. DO NOT EDIT.\n"

// Format is an output flavour.
type Format string

const (
	FormatTS   Format = "ts"
	FormatJS   Format = "js"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTS, FormatJS, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want ts, js, json or yaml)", s)
}

// Options tune module generation.
type Options struct {
	// ImportPrefix is prepended to every import path, e.g. "@/" or "../".
	ImportPrefix string
}

// Render produces the output for format.
func Render(records []approutes.RouteRecord, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatTS:
		return []byte(TypeScript(records, opts)), nil
	case FormatJS:
		js, err := JavaScript(records, opts)
		if err != nil {
			return nil, err
		}
		return []byte(js), nil
	case FormatJSON, FormatYAML:
		return Manifest(records, format)
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// TypeScript produces a module whose default export is the route array.
// Components are imported lazily.
func TypeScript(records []approutes.RouteRecord, opts Options) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	writeModule(&b, records, opts)
	return b.String()
}

// writeModule writes everything below the header.
func writeModule(b *strings.Builder, records []approutes.RouteRecord, opts Options) {
	b.WriteString("import type { RouteRecordRaw } from \"vue-router\"\n\n")
	b.WriteString("const routes: RouteRecordRaw[] = ")
	if len(records) == 0 {
		b.WriteString("[]\n")
	} else {
		b.WriteString("[\n")
		for _, r := range records {
			writeRecord(b, r, opts, 1)
		}
		b.WriteString("]\n")
	}
	b.WriteString("\nexport default routes\n")
}

func writeRecord(b *strings.Builder, r approutes.RouteRecord, opts Options, depth int) {
	pad := strings.Repeat("  ", depth)
	field := func(key, value string) {
		fmt.Fprintf(b, "%s  %s: %s,\n", pad, key, value)
	}

	b.WriteString(pad + "{\n")
	field("path", strconv.Quote(r.Path))
	if r.Name != "" {
		field("name", strconv.Quote(r.Name))
	}
	if r.Component != nil {
		field("component", lazyImport(*r.Component, opts))
	}
	if len(r.Components) > 0 {
		fmt.Fprintf(b, "%s  components: {\n", pad)
		for _, name := range slotOrder(r.Components) {
			fmt.Fprintf(b, "%s    %s: %s,\n", pad, objectKey(name), lazyImport(r.Components[name], opts))
		}
		fmt.Fprintf(b, "%s  },\n", pad)
	}
	if r.Meta != nil {
		writeMeta(b, r.Meta, opts, pad+"  ")
	}
	if len(r.Children) > 0 {
		fmt.Fprintf(b, "%s  children: [\n", pad)
		for _, c := range r.Children {
			writeRecord(b, c, opts, depth+2)
		}
		fmt.Fprintf(b, "%s  ],\n", pad)
	}
	b.WriteString(pad + "},\n")
}

func writeMeta(b *strings.Builder, m *approutes.RouteMeta, opts Options, pad string) {
	b.WriteString(pad + "meta: {\n")
	if m.Locale != "" {
		fmt.Fprintf(b, "%s  locale: %s,\n", pad, strconv.Quote(m.Locale))
	}
	if m.Group != "" {
		fmt.Fprintf(b, "%s  group: %s,\n", pad, strconv.Quote(m.Group))
	}
	if m.Error != nil {
		fmt.Fprintf(b, "%s  error: %s,\n", pad, lazyImport(*m.Error, opts))
	}
	if m.Loading != nil {
		fmt.Fprintf(b, "%s  loading: %s,\n", pad, lazyImport(*m.Loading, opts))
	}
	if p := m.Param; p != nil {
		fmt.Fprintf(b, "%s  param: { name: %s", pad, strconv.Quote(p.Name))
		if p.Repeatable {
			b.WriteString(", repeatable: true")
		}
		if p.Optional {
			b.WriteString(", optional: true")
		}
		b.WriteString(" },\n")
	}
	b.WriteString(pad + "},\n")
}

func lazyImport(c approutes.LazyComponent, opts Options) string {
	return fmt.Sprintf("() => import(%s)", strconv.Quote(opts.ImportPrefix+c.Import))
}

// slotOrder lists slot names with "default" first, then alphabetically.
func slotOrder(components map[string]approutes.LazyComponent) []string {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == "default":
			return -1
		case b == "default":
			return 1
		}
		return strings.Compare(a, b)
	})
	return names
}

// objectKey returns name bare when it is a valid identifier.
func objectKey(name string) string {
	for i, r := range name {
		ok := r == '_' || r == '$' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || (i > 0 && '0' <= r && r <= '9')
		if !ok {
			return strconv.Quote(name)
		}
	}
	if name == "" {
		return `""`
	}
	return name
}

// Manifest encodes records as JSON or YAML. Lazy components are written as
// their import paths.
func Manifest(records []approutes.RouteRecord, format Format) ([]byte, error) {
	if records == nil {
		records = []approutes.RouteRecord{}
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json manifest: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("encoding yaml manifest: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml manifest: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("manifest format must be json or yaml, got %q", format)
}
