package conventions

import (
	"errors"
	"testing"
)

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		name   string
		want   File
		wantOK bool
	}{
		{"page", File{Role: RolePage}, true},
		{"page.vue", File{Role: RolePage}, true},
		{"page.tsx", File{Role: RolePage}, true},
		{"layout.vue", File{Role: RoleLayout}, true},
		{"error.vue", File{Role: RoleError}, true},
		{"loading.vue", File{Role: RoleLoading}, true},
		{"not-found.vue", File{Role: RoleNotFound}, true},
		{"page@sidebar.vue", File{Role: RoleSlot, Slot: "sidebar"}, true},
		{"page@default.vue", File{Role: RolePage}, true},
		{"button.vue", File{}, false},
		{"page.css", File{}, false},
		{"page.server.ts", File{}, false},
		{"README.md", File{}, false},
	}
	for _, tt := range tests {
		got, ok, err := ClassifyFile(tt.name, nil)
		if err != nil {
			t.Errorf("ClassifyFile(%q) error: %v", tt.name, err)
			continue
		}
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ClassifyFile(%q) = %+v, %v; want %+v, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestClassifyFileCustomExtensions(t *testing.T) {
	if _, ok, _ := ClassifyFile("page.vue", []string{".svelte"}); ok {
		t.Error("page.vue should be ignored when only .svelte is configured")
	}
	if f, ok, _ := ClassifyFile("page.svelte", []string{".svelte"}); !ok || f.Role != RolePage {
		t.Errorf("page.svelte = %+v, %v; want page", f, ok)
	}
}

func TestClassifyFileSlotErrors(t *testing.T) {
	for _, name := range []string{"page@.vue", "page@side-bar.vue", "layout@sidebar.vue"} {
		_, _, err := ClassifyFile(name, nil)
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("ClassifyFile(%q) error = %v, want *SyntaxError", name, err)
			continue
		}
		if syntaxErr.Segment != name {
			t.Errorf("ClassifyFile(%q) segment = %q", name, syntaxErr.Segment)
		}
	}
}

func TestParseSegment(t *testing.T) {
	tests := []struct {
		raw     string
		kind    SegmentKind
		name    string
		pattern string
	}{
		{"blog", Static, "blog", "blog"},
		{"about-us", Static, "about-us", "about-us"},
		{"[id]", Dynamic, "id", ":id"},
		{"[postId]", Dynamic, "postId", ":postId"},
		{"[...slug]", CatchAll, "slug", ":slug(.*)+"},
		{"[[slug]]", OptionalCatchAll, "slug", ":slug(.*)*"},
		{"(marketing)", Group, "marketing", ""},
		{"(shop.v2)", Group, "shop.v2", ""},
		{"_components", Ignored, "_components", ""},
		{".cache", Ignored, ".cache", ""},
	}
	for _, tt := range tests {
		got, err := ParseSegment(tt.raw)
		if err != nil {
			t.Errorf("ParseSegment(%q) error: %v", tt.raw, err)
			continue
		}
		if got.Kind != tt.kind || got.Name != tt.name || got.Raw != tt.raw {
			t.Errorf("ParseSegment(%q) = %+v, want kind=%s name=%q", tt.raw, got, tt.kind, tt.name)
		}
		if p := got.Pattern(); p != tt.pattern {
			t.Errorf("ParseSegment(%q).Pattern() = %q, want %q", tt.raw, p, tt.pattern)
		}
	}
}

func TestParseSegmentMalformed(t *testing.T) {
	tests := []struct {
		raw    string
		reason string
	}{
		{"[id", "unbalanced markers"},
		{"id]", "unbalanced markers"},
		{"(group", "unbalanced markers"},
		{"[[slug]", "unbalanced markers"},
		{"[(id)]", "nested markers"},
		{"((group))", "nested markers"},
		{"[]", "empty name"},
		{"()", "empty name"},
		{"[[]]", "nested markers"},
		{"[my-id]", "markers must wrap the whole folder name around a valid identifier"},
		{"post-[id]", "markers must wrap the whole folder name around a valid identifier"},
		{"[id)", "markers must wrap the whole folder name around a valid identifier"},
		{"..", "not a folder name"},
	}
	for _, tt := range tests {
		_, err := ParseSegment(tt.raw)
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("ParseSegment(%q) error = %v, want *SyntaxError", tt.raw, err)
			continue
		}
		if syntaxErr.Reason != tt.reason {
			t.Errorf("ParseSegment(%q) reason = %q, want %q", tt.raw, syntaxErr.Reason, tt.reason)
		}
	}
}

func TestSegmentShape(t *testing.T) {
	a, _ := ParseSegment("[id]")
	b, _ := ParseSegment("[slug]")
	if a.Shape() != b.Shape() {
		t.Errorf("[id] and [slug] should share a shape, got %q and %q", a.Shape(), b.Shape())
	}
	c, _ := ParseSegment("[...rest]")
	d, _ := ParseSegment("[[rest]]")
	if c.Shape() != d.Shape() {
		t.Errorf("catch-alls should share a shape, got %q and %q", c.Shape(), d.Shape())
	}
	s, _ := ParseSegment("blog")
	if s.Shape() != "blog" {
		t.Errorf("static shape = %q", s.Shape())
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"", 0},
		{"blog", 0},
		{"fr", 0},
		{":id", 1},
		{":slug(.*)+", 2},
		{":slug(.*)*", 2},
		{NotFoundPattern, 2},
	}
	for _, tt := range tests {
		if got := Rank(tt.pattern); got != tt.want {
			t.Errorf("Rank(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}
