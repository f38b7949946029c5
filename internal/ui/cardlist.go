package ui

import (
	"fmt"
	"strconv"
	"strings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"docindex/internal/domain"
)

// DocCardList renders a card for every item, skipping items without a
// destination. The first unrecognized entry aborts the list.
func (r *Renderer) DocCardList(items []domain.Item) (Node, error) {
	cards, err := r.cards(items, false)
	if err != nil {
		return nil, err
	}
	return Section(Class("row doc-card-list"), Group(cards)), nil
}

// cards renders items in order. With filterable set, every card is wrapped in
// an element shown only while the quick filter matches its label.
func (r *Renderer) cards(items []domain.Item, filterable bool) ([]Node, error) {
	cards := make([]Node, 0, len(items))
	for i, item := range items {
		card, err := r.DocCard(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if card == nil {
			continue
		}
		if filterable {
			card = Div(Class("doc-card-filter"), data.Show(containsExpr(itemLabel(item))), card)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// IndexPage renders the generated index page of a category.
func (r *Renderer) IndexPage(category *domain.CategoryItem) (Node, error) {
	cards, err := r.cards(category.Items, true)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", category.Label, err)
	}
	return r.indexDocument(category.Label, category.Description, cards), nil
}

// HomePage renders the top-level entries of a sidebar as cards.
func (r *Renderer) HomePage(title string, items []domain.Item) (Node, error) {
	cards, err := r.cards(items, true)
	if err != nil {
		return nil, err
	}
	return r.indexDocument(title, nil, cards), nil
}

func (r *Renderer) indexDocument(title string, description *string, cards []Node) Node {
	var intro Node
	if description != nil && *description != "" {
		intro = P(Class(mutedClass()), Text(*description))
	}

	var body Node
	if len(cards) == 0 {
		body = emptyStateCard("This category has no pages yet.")
	} else {
		body = Group([]Node{
			quickFilterCard("Filter pages"),
			Section(Class("row doc-card-list"), Group(cards)),
		})
	}

	return docPage(title, r.staticBase(), intro, body)
}

func (r *Renderer) staticBase() string {
	if r.StaticBase == "" {
		return defaultStaticBase
	}
	return strings.TrimRight(r.StaticBase, "/")
}

func itemLabel(item domain.Item) string {
	switch it := item.(type) {
	case *domain.LinkItem:
		return it.Label
	case *domain.CategoryItem:
		return it.Label
	}
	return ""
}

func containsExpr(value string) string {
	lower := strings.ToLower(value)
	return "$q === '' || " + strconv.Quote(lower) + ".includes($q.toLowerCase())"
}
