package sidebar

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"docindex/internal/domain"
)

// Sidebar is one named navigation tree.
type Sidebar struct {
	Name  string
	Items []domain.Item
}

// Sidebars holds every sidebar of a site in file order.
type Sidebars struct {
	List []Sidebar
}

// Get returns the sidebar with the given name.
func (s *Sidebars) Get(name string) (Sidebar, bool) {
	for _, sb := range s.List {
		if sb.Name == name {
			return sb, true
		}
	}
	return Sidebar{}, false
}

// Default returns the first sidebar in the file.
func (s *Sidebars) Default() (Sidebar, bool) {
	if s == nil || len(s.List) == 0 {
		return Sidebar{}, false
	}
	return s.List[0], true
}

// Load reads a YAML or JSON sidebars file.
func Load(path string) (*Sidebars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sidebars file: %w", err)
	}
	return Decode(data)
}

// Decode parses {sidebars: {<name>: [items...]}} keeping the declared order of
// sidebars. Entries go through domain.DecodeItem, so unknown types survive as
// *domain.UnknownItem.
func Decode(data []byte) (*Sidebars, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode sidebars file: %w", err)
	}
	if len(doc.Content) == 0 {
		return &Sidebars{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, domain.ErrValidation("sidebars file must be a mapping")
	}

	var sidebarsNode *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "sidebars" {
			sidebarsNode = root.Content[i+1]
			break
		}
	}
	if sidebarsNode == nil {
		return nil, domain.ErrValidation("sidebars file has no \"sidebars\" key")
	}
	if sidebarsNode.Kind != yaml.MappingNode {
		return nil, domain.ErrValidation("\"sidebars\" must be a mapping of name to items")
	}

	out := &Sidebars{}
	for i := 0; i+1 < len(sidebarsNode.Content); i += 2 {
		name := sidebarsNode.Content[i].Value
		var raw any
		if err := sidebarsNode.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode sidebar %q: %w", name, err)
		}
		if raw == nil {
			raw = []any{}
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("encode sidebar %q: %w", name, err)
		}
		items, err := domain.DecodeItems(b)
		if err != nil {
			return nil, fmt.Errorf("sidebar %q: %w", name, err)
		}
		out.List = append(out.List, Sidebar{Name: name, Items: items})
	}
	return out, nil
}

// CategoryPage is a category that gets its own generated index page.
type CategoryPage struct {
	Sidebar  string
	Slug     string
	Category *domain.CategoryItem
}

// Categories returns every category in the sidebar, depth first, with a slug
// built from the labels on its path. A label that slugifies to nothing becomes
// "category-<position>", and siblings sharing a slug get "-2", "-3" suffixes,
// so slugs are unique within a sidebar.
func Categories(sb Sidebar) []CategoryPage {
	var pages []CategoryPage
	var walk func(prefix string, items []domain.Item)
	walk = func(prefix string, items []domain.Item) {
		seen := map[string]bool{}
		for i, item := range items {
			cat, ok := item.(*domain.CategoryItem)
			if !ok {
				continue
			}
			s := siblingSlug(cat.Label, i, seen)
			if prefix != "" {
				s = prefix + "/" + s
			}
			pages = append(pages, CategoryPage{Sidebar: sb.Name, Slug: s, Category: cat})
			walk(s, cat.Items)
		}
	}
	walk("", sb.Items)
	return pages
}

func siblingSlug(label string, position int, seen map[string]bool) string {
	base := Slug(label)
	if base == "" {
		base = "category-" + strconv.Itoa(position+1)
	}
	s := base
	for n := 2; seen[s]; n++ {
		s = base + "-" + strconv.Itoa(n)
	}
	seen[s] = true
	return s
}

// FindCategory returns the category page whose slug matches.
func FindCategory(sb Sidebar, slug string) (CategoryPage, bool) {
	slug = strings.Trim(slug, "/")
	for _, p := range Categories(sb) {
		if p.Slug == slug {
			return p, true
		}
	}
	return CategoryPage{}, false
}

// Unknown returns every entry with an unrecognized type in the
// sidebar, depth first.
func Unknown(sb Sidebar) []*domain.UnknownItem {
	var out []*domain.UnknownItem
	var walk func(items []domain.Item)
	walk = func(items []domain.Item) {
		for _, item := range items {
			switch it := item.(type) {
			case *domain.UnknownItem:
				out = append(out, it)
			case *domain.CategoryItem:
				walk(it.Items)
			}
		}
	}
	walk(sb.Items)
	return out
}

// Slug turns a label into a URL path segment.
func Slug(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	value = b.String()
	for strings.Contains(value, "--") {
		value = strings.ReplaceAll(value, "--", "-")
	}
	return strings.Trim(value, "-")
}
