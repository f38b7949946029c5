package domain

// DocMetadata is the subset of a document's front matter a card needs.
type DocMetadata struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Permalink   string  `json:"permalink,omitempty" yaml:"permalink,omitempty"`
}

// Message identifies a translatable string. Message is the default (English)
// template used when the active catalog has no entry for ID.
type Message struct {
	ID          string
	Message     string
	Description string
}

// CategoryLinkResolver finds the address a category card should point at.
type CategoryLinkResolver interface {
	FirstLink(category *CategoryItem) (string, bool)
}

// DocLookup resolves doc ids to metadata. Misses return false, never an error.
type DocLookup interface {
	DocByID(id string) (DocMetadata, bool)
}

// URLClassifier decides whether an address stays within the site.
type URLClassifier interface {
	IsInternal(href string) bool
}

// Translator renders a message for the active locale, interpolating params and
// selecting plural forms from params["count"].
type Translator interface {
	Translate(msg Message, params map[string]any) string
}
