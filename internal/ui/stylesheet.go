package ui

import (
	"encoding/json"
	"io/fs"
	"path"
	"strings"
	"sync"

	"docindex/internal/ui/assets"
)

const (
	defaultStaticBase     = "/static"
	defaultStylesheetName = "app.css"
)

var (
	stylesheetNameOnce sync.Once
	stylesheetName     = defaultStylesheetName
)

// StylesheetName returns the file name of the stylesheet under static/css,
// honoring a hashed name from the asset manifest when one is present.
func StylesheetName() string {
	stylesheetNameOnce.Do(func() {
		manifestBytes, err := fs.ReadFile(assets.StaticFS(), "static/css/manifest.json")
		if err != nil {
			return
		}

		manifest := map[string]string{}
		if err := json.Unmarshal(manifestBytes, &manifest); err != nil {
			return
		}

		name := strings.TrimSpace(manifest[defaultStylesheetName])
		if name == "" {
			return
		}

		if path.Base(name) != name || path.Ext(name) != ".css" {
			return
		}

		stylesheetName = name
	})

	return stylesheetName
}

func stylesheetHref(staticBase string) string {
	return staticBase + "/css/" + StylesheetName()
}
