package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLClassifier_IsInternal(t *testing.T) {
	tests := []struct {
		name    string
		siteURL string
		href    string
		want    bool
	}{
		{name: "absolute path", href: "/docs/intro", want: true},
		{name: "relative path", href: "intro", want: true},
		{name: "anchor", href: "#section", want: true},
		// An empty href has no protocol; cards never reach this since they drop empty hrefs.
		{name: "empty", href: "", want: true},
		{name: "https", href: "https://example.com/docs", want: false},
		{name: "protocol relative", href: "//cdn.example.com/x", want: false},
		{name: "mailto", href: "mailto:docs@example.com", want: false},
		{name: "same host with site url", siteURL: "https://docs.example.com", href: "https://docs.example.com/docs/a", want: true},
		{name: "other host with site url", siteURL: "https://docs.example.com", href: "https://github.com/x", want: false},
		{name: "mailto with site url", siteURL: "https://docs.example.com", href: "mailto:docs.example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := URLClassifier{SiteURL: tt.siteURL}
			assert.Equal(t, tt.want, c.IsInternal(tt.href))
		})
	}
}
