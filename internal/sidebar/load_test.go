package sidebar

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docindex/internal/domain"
)

const sampleSidebars = `
sidebars:
  docs:
    - type: link
      href: /docs/intro
      label: Introduction
      docId: intro
    - type: category
      label: Getting Started
      items:
        - type: link
          href: /docs/install
          label: Install
        - type: category
          label: Advanced Topics
          items:
            - type: link
              href: https://example.com/external
              label: External
    - type: html
      value: "<hr/>"
  api:
    - type: link
      href: /api
      label: API
`

func TestDecode_KeepsOrderAndTypes(t *testing.T) {
	sbs, err := Decode([]byte(sampleSidebars))
	require.NoError(t, err)
	require.Len(t, sbs.List, 2)
	assert.Equal(t, "docs", sbs.List[0].Name)
	assert.Equal(t, "api", sbs.List[1].Name)

	def, ok := sbs.Default()
	require.True(t, ok)
	require.Len(t, def.Items, 3)

	link, ok := def.Items[0].(*domain.LinkItem)
	require.True(t, ok)
	require.NotNil(t, link.DocID)
	assert.Equal(t, "intro", *link.DocID)

	unknown, ok := def.Items[2].(*domain.UnknownItem)
	require.True(t, ok)
	assert.Equal(t, "html", unknown.Type)

	_, ok = sbs.Get("missing")
	assert.False(t, ok)
}

func TestDecode_JSON(t *testing.T) {
	sbs, err := Decode([]byte(`{"sidebars":{"docs":[{"type":"link","href":"/a","label":"A"}]}}`))
	require.NoError(t, err)
	sb, ok := sbs.Get("docs")
	require.True(t, ok)
	assert.Len(t, sb.Items, 1)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not a mapping", input: "- a\n- b\n"},
		{name: "no sidebars key", input: "other: 1\n"},
		{name: "sidebars not a mapping", input: "sidebars: [1, 2]\n"},
		{name: "item without type", input: "sidebars:\n  docs:\n    - label: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			var valErr *domain.ValidationError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sidebars.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSidebars), 0o644))

	sbs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sbs.List, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestCategories_SlugsFollowLabels(t *testing.T) {
	sbs, err := Decode([]byte(sampleSidebars))
	require.NoError(t, err)
	def, _ := sbs.Default()

	pages := Categories(def)
	require.Len(t, pages, 2)
	assert.Equal(t, "getting-started", pages[0].Slug)
	assert.Equal(t, "getting-started/advanced-topics", pages[1].Slug)
	assert.Equal(t, "docs", pages[1].Sidebar)

	page, ok := FindCategory(def, "/getting-started/advanced-topics/")
	require.True(t, ok)
	assert.Equal(t, "Advanced Topics", page.Category.Label)

	_, ok = FindCategory(def, "nope")
	assert.False(t, ok)
}

func TestCategories_SlugsAreUnique(t *testing.T) {
	sbs, err := Decode([]byte(`
sidebars:
  docs:
    - type: link
      href: /docs/intro
      label: Intro
    - type: category
      label: 入門
      items:
        - type: category
          label: C
          items: []
        - type: category
          label: C++
          items: []
        - type: category
          label: C
          items: []
    - type: category
      label: "!!!"
      items: []
`))
	require.NoError(t, err)
	def, _ := sbs.Default()

	var slugs []string
	for _, p := range Categories(def) {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{
		"category-2",
		"category-2/c",
		"category-2/c-2",
		"category-2/c-3",
		"category-3",
	}, slugs)

	page, ok := FindCategory(def, "category-2/c-2")
	require.True(t, ok)
	assert.Equal(t, "C++", page.Category.Label)
}

func TestUnknown(t *testing.T) {
	sbs, err := Decode([]byte(sampleSidebars))
	require.NoError(t, err)
	def, _ := sbs.Default()

	unknown := Unknown(def)
	require.Len(t, unknown, 1)
	assert.Equal(t, "html", unknown[0].Type)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "getting-started", Slug("  Getting Started "))
	assert.Equal(t, "c-c-interop", Slug("C/C++ Interop"))
	assert.Equal(t, "v2-0", Slug("v2.0"))
}
