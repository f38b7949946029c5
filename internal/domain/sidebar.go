package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Sidebar entry discriminants.
const (
	ItemTypeLink     = "link"
	ItemTypeCategory = "category"
)

// Item is a sidebar entry. The set of implementations is closed: *LinkItem and
// *CategoryItem are the real variants, and *UnknownItem carries entries whose
// discriminant was not recognized while decoding.
type Item interface {
	ItemType() string
	sidebarItem()
}

// LinkItem is a leaf navigation entry.
type LinkItem struct {
	Href  string
	Label string
	DocID *string // optional id into the doc metadata index
}

func (*LinkItem) ItemType() string { return ItemTypeLink }
func (*LinkItem) sidebarItem()     {}

// CategoryItem groups other sidebar entries. Href is set when the category has
// its own generated index page.
type CategoryItem struct {
	Label       string
	Href        *string
	Description *string
	Items       []Item
}

func (*CategoryItem) ItemType() string { return ItemTypeCategory }
func (*CategoryItem) sidebarItem()     {}

// UnknownItem keeps the raw JSON of an entry with an unsupported discriminant.
type UnknownItem struct {
	Type string
	Raw  json.RawMessage
}

func (u *UnknownItem) ItemType() string { return u.Type }
func (*UnknownItem) sidebarItem()       {}

type linkJSON struct {
	Type  string  `json:"type"`
	Href  string  `json:"href"`
	Label string  `json:"label"`
	DocID *string `json:"docId,omitempty"`
}

type categoryJSON struct {
	Type        string            `json:"type"`
	Label       string            `json:"label"`
	Href        *string           `json:"href,omitempty"`
	Description *string           `json:"description,omitempty"`
	Items       []json.RawMessage `json:"items"`
}

// MarshalJSON encodes the link with its "type" discriminant.
func (l *LinkItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(linkJSON{Type: ItemTypeLink, Href: l.Href, Label: l.Label, DocID: l.DocID})
}

// MarshalJSON encodes the category and its children with their discriminants.
func (c *CategoryItem) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(c.Items))
	for _, item := range c.Items {
		b, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return json.Marshal(categoryJSON{
		Type:        ItemTypeCategory,
		Label:       c.Label,
		Href:        c.Href,
		Description: c.Description,
		Items:       items,
	})
}

// MarshalJSON returns the entry exactly as it was decoded.
func (u *UnknownItem) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return json.Marshal(map[string]string{"type": u.Type})
	}
	return u.Raw, nil
}

// DecodeItem decodes a single sidebar entry, dispatching on its "type" field.
// Unsupported discriminants decode to *UnknownItem; a missing discriminant is a
// ValidationError.
func DecodeItem(data []byte) (Item, error) {
	var head struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode sidebar item: %w", err)
	}
	if head.Type == nil {
		return nil, ErrValidation("sidebar item is missing a type: %s", compact(data))
	}

	switch *head.Type {
	case ItemTypeLink:
		var raw linkJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode link item: %w", err)
		}
		return &LinkItem{Href: raw.Href, Label: raw.Label, DocID: raw.DocID}, nil
	case ItemTypeCategory:
		var raw categoryJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode category item: %w", err)
		}
		items := make([]Item, 0, len(raw.Items))
		for i, child := range raw.Items {
			item, err := DecodeItem(child)
			if err != nil {
				return nil, fmt.Errorf("category %q item %d: %w", raw.Label, i, err)
			}
			items = append(items, item)
		}
		return &CategoryItem{
			Label:       raw.Label,
			Href:        raw.Href,
			Description: raw.Description,
			Items:       items,
		}, nil
	default:
		return &UnknownItem{Type: *head.Type, Raw: json.RawMessage(compact(data))}, nil
	}
}

// DecodeItems decodes a JSON array of sidebar entries.
func DecodeItems(data []byte) ([]Item, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode sidebar items: %w", err)
	}
	items := make([]Item, 0, len(raws))
	for i, raw := range raws {
		item, err := DecodeItem(raw)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func compact(data []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return string(data)
	}
	return buf.String()
}
