// Package domain defines the sidebar entry types, collaborator ports, and errors
// used to render doc cards.
package domain

import (
	"encoding/json"
	"fmt"
)

// NotFoundError indicates a sidebar, category, or document was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates malformed sidebar or metadata input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UnrecognizedVariantError is returned when a sidebar entry carries a type
// discriminant other than "link" or "category". It is a contract violation by
// whatever produced the sidebar, so callers should abort rendering.
type UnrecognizedVariantError struct {
	Item    any
	Message string
}

func (e *UnrecognizedVariantError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnrecognizedVariant creates an UnrecognizedVariantError whose message
// embeds the JSON serialization of item.
func ErrUnrecognizedVariant(item any) *UnrecognizedVariantError {
	return &UnrecognizedVariantError{
		Item:    item,
		Message: "unknown item type " + serializeItem(item),
	}
}

func serializeItem(item any) string {
	if u, ok := item.(*UnknownItem); ok && u != nil && len(u.Raw) > 0 {
		return string(u.Raw)
	}
	b, err := json.Marshal(item)
	if err != nil {
		return fmt.Sprintf("%#v", item)
	}
	return string(b)
}
