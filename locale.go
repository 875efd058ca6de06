package approutes

import (
	"fmt"

	"golang.org/x/text/language"
)

// Strategy controls which locales get a URL prefix.
type Strategy string

const (
	// PrefixExceptDefault mounts the default locale at the root only and
	// every other locale under its tag.
	PrefixExceptDefault Strategy = "prefix_except_default"

	// PrefixAndDefault mounts every locale under its tag and the default
	// locale at the root as well.
	PrefixAndDefault Strategy = "prefix_and_default"
)

// I18n describes the supported locales.
type I18n struct {
	// Locales are BCP 47 tags, used verbatim as URL prefixes.
	Locales []string

	// DefaultLocale, if set, must be one of Locales, compared in canonical
	// BCP 47 form (en-us matches en-US). It is mounted at the un-prefixed
	// root. When empty every locale is prefixed.
	DefaultLocale string

	// Strategy defaults to PrefixExceptDefault.
	Strategy Strategy
}

// localePlan is a validated I18n.
type localePlan struct {
	root     string   // locale mounted without prefix
	prefixed []string // locales mounted under their tag, in configured order
}

// plan validates the configuration. A nil receiver yields a nil plan, which
// leaves records untouched.
func (i *I18n) plan() (*localePlan, error) {
	if i == nil {
		return nil, nil
	}
	invalid := func(tag, detail string) error {
		return &CompileError{Kind: ErrInvalidLocaleConfiguration, Segment: tag, Detail: detail}
	}

	strategy := i.Strategy
	if strategy == "" {
		strategy = PrefixExceptDefault
	}
	if strategy != PrefixExceptDefault && strategy != PrefixAndDefault {
		return nil, invalid("", fmt.Sprintf("unknown strategy %q", strategy))
	}
	if len(i.Locales) == 0 {
		return nil, invalid("", "no locales configured")
	}

	seen := make(map[string]string, len(i.Locales))
	for _, tag := range i.Locales {
		parsed, err := language.Parse(tag)
		if err != nil {
			return nil, invalid(tag, fmt.Sprintf("not a BCP 47 tag: %v", err))
		}
		canonical := parsed.String()
		if prev, ok := seen[canonical]; ok {
			return nil, invalid(tag, fmt.Sprintf("duplicate of %q", prev))
		}
		seen[canonical] = tag
	}

	p := &localePlan{}
	if i.DefaultLocale != "" {
		parsed, err := language.Parse(i.DefaultLocale)
		if err != nil {
			return nil, invalid(i.DefaultLocale, fmt.Sprintf("not a BCP 47 tag: %v", err))
		}
		tag, ok := seen[parsed.String()]
		if !ok {
			return nil, invalid(i.DefaultLocale, fmt.Sprintf("default locale is not one of %v", i.Locales))
		}
		// Keep the spelling used in Locales.
		p.root = tag
	}
	for _, tag := range i.Locales {
		if tag == p.root && strategy == PrefixExceptDefault {
			continue
		}
		p.prefixed = append(p.prefixed, tag)
	}
	return p, nil
}

// expand replicates records once per locale. The default locale's copy is
// mounted at the root; every prefixed locale gets a top-level record whose
// path is "/" plus its tag and whose children are a copy of the tree.
func (p *localePlan) expand(records []RouteRecord) []RouteRecord {
	if p == nil || len(records) == 0 {
		return records
	}
	var out []RouteRecord
	if p.root != "" {
		out = append(out, localized(records, p.root, "")...)
	}
	for _, tag := range p.prefixed {
		out = append(out, RouteRecord{
			Path:     "/" + tag,
			Children: localized(records, tag, "/"+tag),
			Meta:     &RouteMeta{Locale: tag},
		})
	}
	return out
}

// localized deep-copies records, tagging each with locale and prefixing
// names with prefix.
func localized(records []RouteRecord, locale, prefix string) []RouteRecord {
	out := make([]RouteRecord, len(records))
	for i, r := range records {
		c := r.clone()
		if c.Meta == nil {
			c.Meta = &RouteMeta{}
		}
		c.Meta.Locale = locale
		if c.Name != "" {
			c.Name = prefix + c.Name
		}
		if r.Children != nil {
			c.Children = localized(r.Children, locale, prefix)
		}
		out[i] = c
	}
	return out
}
