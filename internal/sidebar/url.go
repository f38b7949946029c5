package sidebar

import (
	"net/url"
	"regexp"
	"strings"
)

var protocolPattern = regexp.MustCompile(`^(\w*:|//)`)

// HasProtocol reports whether href starts with a scheme or is protocol-relative.
func HasProtocol(href string) bool {
	return protocolPattern.MatchString(href)
}

// URLClassifier implements domain.URLClassifier. Relative addresses,
// including the empty string, are internal. When SiteURL is set, absolute addresses on the same host are
// internal too.
type URLClassifier struct {
	SiteURL string
}

// IsInternal reports whether href stays within the site.
func (c URLClassifier) IsInternal(href string) bool {
	if !HasProtocol(href) {
		return true
	}
	if c.SiteURL == "" {
		return false
	}
	site, err := url.Parse(c.SiteURL)
	if err != nil || site.Host == "" {
		return false
	}
	target, err := url.Parse(href)
	if err != nil {
		return false
	}
	if target.Scheme != "" && target.Scheme != "http" && target.Scheme != "https" {
		return false
	}
	return strings.EqualFold(target.Host, site.Host)
}
