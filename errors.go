package approutes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedSourceKind is returned when Config.Type names no known
	// discovery convention.
	ErrUnsupportedSourceKind = errors.New("unsupported source kind")

	// ErrConflictingRouteDefinition is returned when two files play the same
	// role at the same URL.
	ErrConflictingRouteDefinition = errors.New("conflicting route definition")

	// ErrInvalidLocaleConfiguration is returned for unusable I18n settings.
	ErrInvalidLocaleConfiguration = errors.New("invalid locale configuration")

	// ErrMalformedSegmentSyntax is returned for folder or file names that
	// misuse the bracket, parenthesis or slot markers.
	ErrMalformedSegmentSyntax = errors.New("malformed segment syntax")

	// ErrNoLoader is returned by LazyComponent.Load when the reference was
	// built without a ModuleLoader.
	ErrNoLoader = errors.New("no module loader configured")
)

// CompileError describes why compilation failed. Kind is one of the Err*
// sentinels above, so callers can use errors.Is.
type CompileError struct {
	Kind    error
	Path    string   // offending file or folder, relative to the source
	Segment string   // offending folder name, file name or locale tag
	Files   []string // files involved in a conflict
	Detail  string
}

func (e *CompileError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Segment != "" {
		fmt.Fprintf(&b, " (segment %q)", e.Segment)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.Files) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Files, ", "))
	}
	return b.String()
}

func (e *CompileError) Unwrap() error {
	return e.Kind
}
