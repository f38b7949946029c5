// Package sidebar loads sidebar trees and doc metadata and provides the default
// collaborators used when rendering doc cards.
package sidebar

import "docindex/internal/domain"

// FirstCategoryLink returns the address a category card should link to: the
// category's own index page when it has one, otherwise the first link reachable
// through its items in order. Entries of unknown type are skipped.
func FirstCategoryLink(category *domain.CategoryItem) (string, bool) {
	if category == nil {
		return "", false
	}
	if category.Href != nil && *category.Href != "" {
		return *category.Href, true
	}
	for _, item := range category.Items {
		switch it := item.(type) {
		case *domain.LinkItem:
			return it.Href, true
		case *domain.CategoryItem:
			if href, ok := FirstCategoryLink(it); ok {
				return href, true
			}
		}
	}
	return "", false
}

// Resolver adapts FirstCategoryLink to domain.CategoryLinkResolver.
type Resolver struct{}

// FirstLink implements domain.CategoryLinkResolver.
func (Resolver) FirstLink(category *domain.CategoryItem) (string, bool) {
	return FirstCategoryLink(category)
}
