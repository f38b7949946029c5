package ui

import (
	"strings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"docindex/internal/domain"
)

// Card glyphs.
const (
	IconCategory = "🗃️"
	IconDoc      = "📄️"
	IconExternal = "🔗"
)

// CategoryDescriptionMessage is the default description of a category card.
var CategoryDescriptionMessage = domain.Message{
	ID:          "theme.docs.DocCard.categoryDescription",
	Message:     "{count} items",
	Description: "The default description for a category card in the generated index about how many items this category includes",
}

// Renderer turns sidebar entries into doc cards. All collaborators are
// required and must be safe to call repeatedly; Renderer keeps no state
// between calls.
type Renderer struct {
	Links domain.CategoryLinkResolver
	Docs  domain.DocLookup
	URLs  domain.URLClassifier
	T     domain.Translator

	// StaticBase prefixes stylesheet URLs on full pages. Defaults to "/static".
	StaticBase string
}

// NewRenderer returns a Renderer wired to the given collaborators.
func NewRenderer(links domain.CategoryLinkResolver, docs domain.DocLookup, urls domain.URLClassifier, t domain.Translator) *Renderer {
	return &Renderer{Links: links, Docs: docs, URLs: urls, T: t, StaticBase: defaultStaticBase}
}

// CardContainer wraps children in the clickable card element pointing at href.
func CardContainer(href string, children ...Node) Node {
	return Article(
		Class("col col--6"),
		A(
			Href(href),
			Class(cardContainerClass()),
			Group(children),
		),
	)
}

// CardLayout renders a card, or nil when there is no destination.
func CardLayout(href *string, icon, title string, description *string) Node {
	if href == nil || *href == "" {
		return nil
	}

	desc := []Node{Class("text--truncate card-description")}
	if description != nil {
		desc = append(desc, Title(*description), Text(*description))
	}

	return CardContainer(*href,
		H2(
			Class("text--truncate card-title"),
			Title(title),
			Text(icon+" "+title),
		),
		Div(desc...),
	)
}

// CardCategory renders the card for a category. The destination is the first
// link reachable from the category; the description is the translated count of
// direct children. A category's own Description only appears on its index page.
func (r *Renderer) CardCategory(item *domain.CategoryItem) Node {
	var href *string
	if link, ok := r.Links.FirstLink(item); ok {
		href = &link
	}

	description := r.T.Translate(CategoryDescriptionMessage, map[string]any{"count": len(item.Items)})
	return CardLayout(href, IconCategory, item.Label, &description)
}

// CardLink renders the card for a link. The description comes from the linked
// doc's metadata when the link carries a doc id.
func (r *Renderer) CardLink(item *domain.LinkItem) Node {
	icon := IconExternal
	if r.URLs.IsInternal(item.Href) {
		icon = IconDoc
	}

	var description *string
	if item.DocID != nil {
		if doc, ok := r.Docs.DocByID(*item.DocID); ok {
			description = doc.Description
		}
	}

	href := item.Href
	return CardLayout(&href, icon, item.Label, description)
}

// DocCard renders the card for any sidebar entry. A nil node with a nil error
// means the entry has no destination. Entries of any type other than link or
// category yield a *domain.UnrecognizedVariantError.
func (r *Renderer) DocCard(item domain.Item) (Node, error) {
	switch it := item.(type) {
	case *domain.LinkItem:
		if it == nil {
			return nil, domain.ErrUnrecognizedVariant(nil)
		}
		return r.CardLink(it), nil
	case *domain.CategoryItem:
		if it == nil {
			return nil, domain.ErrUnrecognizedVariant(nil)
		}
		return r.CardCategory(it), nil
	default:
		return nil, domain.ErrUnrecognizedVariant(item)
	}
}

// RenderString renders node to a string. A nil node renders as "".
func RenderString(node Node) (string, error) {
	if node == nil {
		return "", nil
	}
	var b strings.Builder
	if err := node.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func cardContainerClass() string {
	return strings.Join([]string{"card", "margin-bottom--lg", "padding--lg", "card-container"}, " ")
}
