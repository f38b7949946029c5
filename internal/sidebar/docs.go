package sidebar

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"docindex/internal/domain"
)

// DocIndex is an in-memory doc metadata index keyed by doc id. It implements
// domain.DocLookup.
type DocIndex struct {
	docs map[string]domain.DocMetadata
}

type docsFile struct {
	Docs []domain.DocMetadata `yaml:"docs"`
}

// NewDocIndex builds an index from docs. Later duplicates replace earlier ones.
func NewDocIndex(docs ...domain.DocMetadata) *DocIndex {
	idx := &DocIndex{docs: make(map[string]domain.DocMetadata, len(docs))}
	for _, d := range docs {
		idx.docs[d.ID] = d
	}
	return idx
}

// LoadDocIndex reads a YAML or JSON file of the form {docs: [{id, title, description, permalink}]}.
func LoadDocIndex(path string) (*DocIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read docs file: %w", err)
	}
	return ParseDocIndex(data)
}

// ParseDocIndex decodes doc metadata from YAML or JSON bytes.
func ParseDocIndex(data []byte) (*DocIndex, error) {
	var f docsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode docs file: %w", err)
	}
	for i, d := range f.Docs {
		if strings.TrimSpace(d.ID) == "" {
			return nil, domain.ErrValidation("doc %d is missing an id", i)
		}
	}
	return NewDocIndex(f.Docs...), nil
}

// DocByID implements domain.DocLookup.
func (idx *DocIndex) DocByID(id string) (domain.DocMetadata, bool) {
	if idx == nil || id == "" {
		return domain.DocMetadata{}, false
	}
	d, ok := idx.docs[id]
	return d, ok
}

// Len returns the number of indexed docs.
func (idx *DocIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.docs)
}
