package approutes

import (
	"path"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/rafbgarcia/approutes/internal/conventions"
)

var (
	propertyDirs = []string{
		"", "about", "blog", "blog/[id]", "blog/[slug]", "docs/[...path]",
		"[[rest]]", "(grp)", "(grp)/about", "(shop)/cart", "(shop)/(grp)/pricing",
		"_private", "_private/blog",
	}
	propertyNames = []string{
		"page.vue", "page.tsx", "layout.vue", "error.vue", "loading.vue",
		"not-found.vue", "page@aside.vue", "card.vue",
	}
)

// genFiles generates listings drawn from a small vocabulary so that
// conflicts, groups and ignored folders show up often.
func genFiles() gopter.Gen {
	file := gopter.CombineGens(
		gen.OneConstOf(anySlice(propertyDirs)...),
		gen.OneConstOf(anySlice(propertyNames)...),
	).Map(func(values []interface{}) string {
		return path.Join("app", values[0].(string), values[1].(string))
	})
	return gen.SliceOf(file)
}

func anySlice(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func sameOutcome(a []RouteRecord, errA error, b []RouteRecord, errB error) bool {
	if (errA == nil) != (errB == nil) {
		return false
	}
	if errA != nil {
		return errA.Error() == errB.Error()
	}
	return reflect.DeepEqual(a, b)
}

func TestCompileProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 300
	properties := gopter.NewProperties(params)

	properties.Property("compiling twice yields equal results", prop.ForAll(
		func(files []string) bool {
			a, errA := Compile(Config{}, files)
			b, errB := Compile(Config{}, files)
			return sameOutcome(a, errA, b, errB)
		},
		genFiles(),
	))

	properties.Property("input order does not matter", prop.ForAll(
		func(files []string) bool {
			a, errA := Compile(Config{}, files)

			reversed := slices.Clone(files)
			slices.Reverse(reversed)
			b, errB := Compile(Config{}, reversed)

			sorted := slices.Clone(files)
			slices.Sort(sorted)
			c, errC := Compile(Config{}, sorted)

			return sameOutcome(a, errA, b, errB) && sameOutcome(a, errA, c, errC)
		},
		genFiles(),
	))

	properties.Property("siblings are ordered static, dynamic, catch-all", prop.ForAll(
		func(files []string) bool {
			records, err := Compile(Config{}, files)
			if err != nil {
				return true
			}
			return ordered(records)
		},
		genFiles(),
	))

	properties.Property("groups and private folders never reach a URL", prop.ForAll(
		func(files []string) bool {
			records, err := Compile(Config{}, files)
			if err != nil {
				return true
			}
			for _, r := range Resolve(records) {
				for _, seg := range strings.Split(r.Path, "/") {
					if strings.HasPrefix(seg, "(") || strings.HasPrefix(seg, "_") {
						return false
					}
					if seg == "grp" || seg == "shop" || seg == "private" {
						return false
					}
				}
			}
			return true
		},
		genFiles(),
	))

	properties.Property("resolved URLs are unique", prop.ForAll(
		func(files []string) bool {
			records, err := Compile(Config{}, files)
			if err != nil {
				return true
			}
			seen := map[string]bool{}
			for _, r := range Resolve(records) {
				if seen[r.Path] {
					return false
				}
				seen[r.Path] = true
			}
			return true
		},
		genFiles(),
	))

	properties.Property("every extra locale adds one copy of each page", prop.ForAll(
		func(files []string) bool {
			base, err := Compile(Config{}, files)
			if err != nil {
				return true
			}
			cfg := Config{I18n: &I18n{Locales: []string{"en", "fr", "de"}, DefaultLocale: "en"}}
			localized, err := Compile(cfg, files)
			if err != nil {
				return false
			}
			return len(Resolve(localized)) == 3*len(Resolve(base))
		},
		genFiles(),
	))

	properties.TestingRun(t)
}

func ordered(records []RouteRecord) bool {
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1].Path, records[i].Path
		if conventions.Rank(prev) > conventions.Rank(cur) {
			return false
		}
		if conventions.Rank(prev) == conventions.Rank(cur) && prev > cur {
			return false
		}
	}
	for _, r := range records {
		if !ordered(r.Children) {
			return false
		}
	}
	return true
}
