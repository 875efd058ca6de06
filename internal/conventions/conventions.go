// Package conventions defines the file and folder naming rules that map a
// source tree to route records.
package conventions

import (
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"
)

// Role is the part a file plays in the route tree, derived from its name.
type Role string

const (
	RolePage     Role = "page"
	RoleLayout   Role = "layout"
	RoleError    Role = "error"
	RoleLoading  Role = "loading"
	RoleNotFound Role = "not-found"
	RoleSlot     Role = "slot"
)

// DefaultSlot is the slot name the router renders a page into.
const DefaultSlot = "default"

// DefaultExtensions are the component file extensions recognized when the
// caller does not configure its own list. Names without an extension are
// always accepted.
var DefaultExtensions = []string{".vue", ".tsx", ".jsx", ".ts", ".js"}

var roleByStem = map[string]Role{
	"page":      RolePage,
	"layout":    RoleLayout,
	"error":     RoleError,
	"loading":   RoleLoading,
	"not-found": RoleNotFound,
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SyntaxError reports a file or folder name that uses the bracket, parenthesis
// or slot markers incorrectly.
type SyntaxError struct {
	Segment string
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("segment %q: %s", e.Segment, e.Reason)
}

// File is a classified route file.
type File struct {
	Role Role
	Slot string // set for RoleSlot only
}

// ClassifyFile returns the role of a file name. ok is false for names that are
// not route files (colocated components, styles, unknown extensions).
//
//	"page.vue"          → page
//	"layout"            → layout
//	"page@sidebar.vue"  → slot "sidebar"
//	"page@default.vue"  → page
//	"button.vue"        → not a route file
func ClassifyFile(name string, extensions []string) (f File, ok bool, err error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	stem := name
	if ext := path.Ext(name); ext != "" {
		if !slices.Contains(extensions, ext) {
			return File{}, false, nil
		}
		stem = strings.TrimSuffix(name, ext)
	}

	base, slot, hasSlot := strings.Cut(stem, "@")
	if hasSlot {
		if base != string(RolePage) {
			return File{}, false, &SyntaxError{Segment: name, Reason: "named slots are only supported on page files"}
		}
		if !identRe.MatchString(slot) {
			return File{}, false, &SyntaxError{Segment: name, Reason: "invalid slot name"}
		}
		if slot == DefaultSlot {
			return File{Role: RolePage}, true, nil
		}
		return File{Role: RoleSlot, Slot: slot}, true, nil
	}

	role, ok := roleByStem[base]
	if !ok {
		return File{}, false, nil
	}
	return File{Role: role}, true, nil
}

// SegmentKind classifies a folder name.
type SegmentKind int

const (
	Static SegmentKind = iota
	Dynamic
	CatchAll
	OptionalCatchAll
	Group
	Ignored
)

func (k SegmentKind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case CatchAll:
		return "catch-all"
	case OptionalCatchAll:
		return "optional catch-all"
	case Group:
		return "group"
	case Ignored:
		return "ignored"
	}
	return "unknown"
}

// Segment is a parsed folder name.
type Segment struct {
	Raw  string
	Kind SegmentKind
	Name string // parameter or group name; the folder name for static segments
}

var (
	dynamicRe          = regexp.MustCompile(`^\[([A-Za-z_][A-Za-z0-9_]*)\]$`)
	catchAllRe         = regexp.MustCompile(`^\[\.\.\.([A-Za-z_][A-Za-z0-9_]*)\]$`)
	optionalCatchAllRe = regexp.MustCompile(`^\[\[([A-Za-z_][A-Za-z0-9_]*)\]\]$`)
	groupRe            = regexp.MustCompile(`^\(([^()\[\]]+)\)$`)
)

// ParseSegment parses a single folder name.
//
//	"blog"        → static "blog"
//	"[id]"        → dynamic "id"
//	"[...slug]"   → catch-all "slug" (one or more segments)
//	"[[slug]]"    → optional catch-all "slug" (zero or more segments)
//	"(marketing)" → group "marketing"
//	"_components" → ignored, together with everything below it
//	".cache"      → ignored
func ParseSegment(raw string) (Segment, error) {
	if raw == "" || raw == "." || raw == ".." {
		return Segment{}, &SyntaxError{Segment: raw, Reason: "not a folder name"}
	}
	if strings.HasPrefix(raw, "_") || strings.HasPrefix(raw, ".") {
		return Segment{Raw: raw, Kind: Ignored, Name: raw}, nil
	}
	if m := optionalCatchAllRe.FindStringSubmatch(raw); m != nil {
		return Segment{Raw: raw, Kind: OptionalCatchAll, Name: m[1]}, nil
	}
	if m := catchAllRe.FindStringSubmatch(raw); m != nil {
		return Segment{Raw: raw, Kind: CatchAll, Name: m[1]}, nil
	}
	if m := dynamicRe.FindStringSubmatch(raw); m != nil {
		return Segment{Raw: raw, Kind: Dynamic, Name: m[1]}, nil
	}
	if m := groupRe.FindStringSubmatch(raw); m != nil {
		return Segment{Raw: raw, Kind: Group, Name: m[1]}, nil
	}
	if strings.ContainsAny(raw, "[]()") {
		return Segment{}, &SyntaxError{Segment: raw, Reason: diagnose(raw)}
	}
	return Segment{Raw: raw, Kind: Static, Name: raw}, nil
}

// diagnose explains why a segment with markers did not match any convention.
func diagnose(raw string) string {
	depth, maxDepth := 0, 0
	for _, r := range raw {
		switch r {
		case '[', '(':
			depth++
			maxDepth = max(maxDepth, depth)
		case ']', ')':
			depth--
			if depth < 0 {
				return "unbalanced markers"
			}
		}
	}
	switch {
	case depth != 0:
		return "unbalanced markers"
	case maxDepth > 1:
		return "nested markers"
	case strings.Trim(raw, "[]().") == "":
		return "empty name"
	}
	return "markers must wrap the whole folder name around a valid identifier"
}

// Pattern returns the router path text for the segment. Groups and ignored
// folders contribute nothing.
//
//	"blog"      → "blog"
//	"[id]"      → ":id"
//	"[...slug]" → ":slug(.*)+"
//	"[[slug]]"  → ":slug(.*)*"
func (s Segment) Pattern() string {
	switch s.Kind {
	case Static:
		return s.Name
	case Dynamic:
		return ":" + s.Name
	case CatchAll:
		return ":" + s.Name + "(.*)+"
	case OptionalCatchAll:
		return ":" + s.Name + "(.*)*"
	}
	return ""
}

// Shape is Pattern with parameter names erased, so that two segments the
// router cannot tell apart compare equal.
func (s Segment) Shape() string {
	switch s.Kind {
	case Dynamic:
		return ":"
	case CatchAll, OptionalCatchAll:
		return "*"
	}
	return s.Pattern()
}

// NotFoundPattern is the catch-all path a not-found file is mounted at.
const NotFoundPattern = ":pathMatch(.*)*"

// Rank orders router paths so that more specific ones come first: static
// paths (including "" for index and pathless records), then dynamic
// parameters, then catch-alls.
func Rank(pattern string) int {
	switch {
	case strings.HasSuffix(pattern, "(.*)*"), strings.HasSuffix(pattern, "(.*)+"):
		return 2
	case strings.HasPrefix(pattern, ":"):
		return 1
	}
	return 0
}
