package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docindex/internal/domain"
	"docindex/internal/sidebar"
)

func TestDocCardList_SkipsCardsWithoutDestination(t *testing.T) {
	r := newTestRenderer(t, sidebar.Resolver{})
	node, err := r.DocCardList([]domain.Item{
		&domain.LinkItem{Href: "/docs/a", Label: "A"},
		&domain.CategoryItem{Label: "Empty"},
		&domain.LinkItem{Href: "/docs/b", Label: "B"},
	})
	require.NoError(t, err)

	out, err := RenderString(node)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<section class="row doc-card-list">`))
	assert.Equal(t, 2, strings.Count(out, "<article"))
	assert.NotContains(t, out, "Empty")
}

func TestDocCardList_AbortsOnUnknownItem(t *testing.T) {
	r := newTestRenderer(t, sidebar.Resolver{})
	node, err := r.DocCardList([]domain.Item{
		&domain.LinkItem{Href: "/docs/a", Label: "A"},
		&domain.UnknownItem{Type: "banner"},
	})
	require.Error(t, err)
	assert.Nil(t, node)
	assert.Contains(t, err.Error(), "item 1")

	var variantErr *domain.UnrecognizedVariantError
	assert.True(t, errors.As(err, &variantErr))
}

func TestIndexPage(t *testing.T) {
	r := newTestRenderer(t, sidebar.Resolver{})
	node, err := r.IndexPage(&domain.CategoryItem{
		Label:       "Guides",
		Description: strPtr("Everything about guides"),
		Items: []domain.Item{
			&domain.LinkItem{Href: "/docs/intro", Label: "Intro", DocID: strPtr("intro")},
			&domain.LinkItem{Href: "https://example.com", Label: "Elsewhere"},
		},
	})
	require.NoError(t, err)

	out, err := RenderString(node)
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Guides</title>")
	assert.Contains(t, out, "Everything about guides")
	assert.Contains(t, out, `href="/static/css/app.css"`)
	assert.Contains(t, out, `data-bind`)
	assert.Contains(t, out, `data-show=`)
	assert.Contains(t, out, `&#34;intro&#34;.includes($q.toLowerCase())`)
	assert.Equal(t, 2, strings.Count(out, "<article"))
}

func TestIndexPage_EmptyCategory(t *testing.T) {
	r := newTestRenderer(t, sidebar.Resolver{})
	r.StaticBase = "/docs/static/"

	node, err := r.IndexPage(&domain.CategoryItem{Label: "Empty"})
	require.NoError(t, err)

	out, err := RenderString(node)
	require.NoError(t, err)
	assert.Contains(t, out, "This category has no pages yet.")
	assert.Contains(t, out, `href="/docs/static/css/app.css"`)
	assert.NotContains(t, out, "<article")
}

func TestIndexPage_UnknownItem(t *testing.T) {
	r := newTestRenderer(t, sidebar.Resolver{})
	_, err := r.IndexPage(&domain.CategoryItem{
		Label: "Broken",
		Items: []domain.Item{&domain.UnknownItem{Type: "banner"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `category "Broken"`)
	assert.Contains(t, err.Error(), `unknown item type {"type":"banner"}`)
}

func TestHomePage(t *testing.T) {
	r := newTestRenderer(t, sidebar.Resolver{})
	node, err := r.HomePage("Docs", []domain.Item{&domain.LinkItem{Href: "/docs/intro", Label: "Intro"}})
	require.NoError(t, err)

	out, err := RenderString(node)
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Docs</title>")
	assert.Contains(t, out, IconDoc+" Intro")
}

func TestErrorPage(t *testing.T) {
	out, err := RenderString(ErrorPage("Not found", "No such category", "/"))
	require.NoError(t, err)
	assert.Contains(t, out, "No such category")
	assert.Contains(t, out, `<a href="/">Back to index</a>`)

	out, err = RenderString(ErrorPage("Oops", "broken", ""))
	require.NoError(t, err)
	assert.NotContains(t, out, "Back to index")
}
