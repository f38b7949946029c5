package i18n

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"docindex/internal/domain"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

var (
	placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

	orderedForms = []plural.Form{plural.Zero, plural.One, plural.Two, plural.Few, plural.Many, plural.Other}

	// Integers that together hit every cardinal category CLDR defines for
	// integer operands.
	probeCounts = func() []int {
		counts := make([]int, 0, 1010)
		for n := 0; n <= 1000; n++ {
			counts = append(counts, n)
		}
		return append(counts, 10000, 100000, 1000000, 2000000, 10000000)
	}()
)

// Translator implements domain.Translator for one locale.
type Translator struct {
	locale  string
	tag     language.Tag
	catalog Catalog
	forms   []plural.Form
}

// NewTranslator returns a Translator for locale backed by catalog. A nil
// catalog is treated as empty.
func NewTranslator(locale string, catalog Catalog) (*Translator, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	if catalog == nil {
		catalog = Catalog{}
	}
	return &Translator{
		locale:  locale,
		tag:     tag,
		catalog: catalog,
		forms:   pluralForms(tag),
	}, nil
}

// Locale returns the locale the translator was built for.
func (t *Translator) Locale() string { return t.locale }

// Translate looks msg up by id, falling back to its default text, picks the
// plural form for params["count"] and interpolates {name} placeholders.
func (t *Translator) Translate(msg domain.Message, params map[string]any) string {
	template := msg.Message
	if entry, ok := t.catalog[msg.ID]; ok && entry.Message != "" {
		template = entry.Message
	}
	if count, ok := countParam(params); ok {
		template = t.selectForm(template, count)
	} else if parts := strings.Split(template, "|"); len(parts) > 1 {
		template = parts[len(parts)-1]
	}
	return interpolate(template, params)
}

// selectForm picks one of the "|" separated forms of template. Forms follow the
// CLDR category order restricted to the categories the locale uses; missing
// trailing forms fall back to the last one given.
func (t *Translator) selectForm(template string, count int) string {
	parts := strings.Split(template, "|")
	if len(parts) == 1 {
		return template
	}
	form := plural.Cardinal.MatchPlural(t.tag, count, 0, 0, 0, 0)
	idx := len(parts) - 1
	for i, f := range t.forms {
		if f == form {
			idx = i
			break
		}
	}
	if idx >= len(parts) {
		idx = len(parts) - 1
	}
	return parts[idx]
}

func pluralForms(tag language.Tag) []plural.Form {
	seen := map[plural.Form]bool{}
	for _, n := range probeCounts {
		seen[plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0)] = true
	}
	forms := make([]plural.Form, 0, len(seen))
	for _, f := range orderedForms {
		if seen[f] {
			forms = append(forms, f)
		}
	}
	return forms
}

func countParam(params map[string]any) (int, bool) {
	v, ok := params["count"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

func interpolate(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := params[name]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}
