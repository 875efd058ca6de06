// Package display prints compiled routes for humans.
package display

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/rafbgarcia/approutes"
)

// ColorFor reports whether w is a terminal that should get colored output.
// NO_COLOR and non-TTY writers disable color.
func ColorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes route trees and tables.
type Printer struct {
	w io.Writer

	static, dynamic, group, dim, locale, errc *color.Color
}

// New returns a Printer writing to w, with or without ANSI colors.
func New(w io.Writer, colorOutput bool) *Printer {
	p := &Printer{
		w:       w,
		static:  color.New(color.Bold),
		dynamic: color.New(color.FgCyan, color.Bold),
		group:   color.New(color.FgMagenta),
		dim:     color.New(color.FgHiBlack),
		locale:  color.New(color.FgYellow),
		errc:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.static, p.dynamic, p.group, p.dim, p.locale, p.errc} {
		if colorOutput {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Tree prints records as an indented tree, one record per line.
//
//	/  app/layout.vue
//	├── (index)  app/page.vue
//	└── blog
//	    └── :slug  app/blog/[slug]/page.vue
func (p *Printer) Tree(records []approutes.RouteRecord) {
	if len(records) == 0 {
		fmt.Fprintln(p.w, p.dim.Sprint("(no routes)"))
		return
	}
	p.tree(records, "", true)
}

func (p *Printer) tree(records []approutes.RouteRecord, prefix string, top bool) {
	for i, r := range records {
		branch, next := "├── ", "│   "
		if i == len(records)-1 {
			branch, next = "└── ", "    "
		}
		if top {
			branch, next = "", ""
		}
		fmt.Fprintf(p.w, "%s%s%s\n", prefix, branch, p.line(r, top))
		p.tree(r.Children, prefix+next, false)
	}
}

func (p *Printer) line(r approutes.RouteRecord, top bool) string {
	var group string
	if r.Meta != nil {
		group = r.Meta.Group
	}

	var parts []string
	switch {
	case r.Path == "" && group != "":
		parts = append(parts, p.group.Sprintf("(%s)", group))
	case r.Path == "" && top:
		parts = append(parts, p.static.Sprint("/"))
	case r.Path == "":
		parts = append(parts, p.static.Sprint("(index)"))
	case strings.HasPrefix(r.Path, ":"):
		parts = append(parts, p.dynamic.Sprint(r.Path))
	default:
		parts = append(parts, p.static.Sprint(r.Path))
	}

	if r.Component != nil {
		parts = append(parts, p.dim.Sprint(r.Component.Import))
	}
	if len(r.Components) > 0 {
		parts = append(parts, p.slots(r.Components))
	}
	if m := r.Meta; m != nil {
		if m.Locale != "" {
			parts = append(parts, p.locale.Sprintf("[%s]", m.Locale))
		}
		if m.Loading != nil {
			parts = append(parts, p.dim.Sprintf("loading: %s", m.Loading.Import))
		}
		if m.Error != nil {
			parts = append(parts, p.errc.Sprintf("error: %s", m.Error.Import))
		}
	}
	return strings.Join(parts, "  ")
}

func (p *Printer) slots(components map[string]approutes.LazyComponent) string {
	var names []string
	for name := range components {
		if name != "default" {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	var b strings.Builder
	if c, ok := components["default"]; ok {
		b.WriteString(p.dim.Sprint(c.Import))
	}
	for _, name := range names {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p.group.Sprintf("+%s", name))
	}
	return b.String()
}

// Routes prints one line per page with its full URL, aligned on the import
// column.
func (p *Printer) Routes(rows []approutes.ResolvedRoute) {
	if len(rows) == 0 {
		fmt.Fprintln(p.w, p.dim.Sprint("(no routes)"))
		return
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row.Path))
	}
	for _, row := range rows {
		path := p.static
		if strings.Contains(row.Path, ":") {
			path = p.dynamic
		}
		line := path.Sprint(row.Path) + strings.Repeat(" ", width-len(row.Path)) + "  " + p.dim.Sprint(row.Import)
		if row.Locale != "" {
			line += "  " + p.locale.Sprintf("[%s]", row.Locale)
		}
		var slots []string
		for name := range row.Slots {
			slots = append(slots, name)
		}
		slices.Sort(slots)
		for _, name := range slots {
			line += " " + p.group.Sprintf("+%s", name)
		}
		fmt.Fprintln(p.w, line)
	}
}
