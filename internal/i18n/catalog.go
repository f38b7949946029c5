// Package i18n resolves translated theme messages with CLDR plural rules.
package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Entry is one translated message as stored in a code.json file.
type Entry struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

// Catalog maps message ids to translations for a single locale.
type Catalog map[string]Entry

// ParseCatalog decodes a code.json document.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if c == nil {
		c = Catalog{}
	}
	return c, nil
}

// LoadCatalog reads <dir>/<locale>/code.json. A missing file yields an empty
// catalog so default messages are used.
func LoadCatalog(dir, locale string) (Catalog, error) {
	if dir == "" {
		return Catalog{}, nil
	}
	path := filepath.Join(dir, locale, "code.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Catalog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return c, nil
}
