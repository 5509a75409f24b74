// Package forms binds submitted values and validates them. A form keeps the
// submitted values so a page can be re-rendered with errors inline.
package forms

import (
	"strings"
)

const (
	MsgRequired     = "This field is required."
	MsgInvalidGroup = "Select a valid choice. That choice is not one of the available choices."
	MsgInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

// Errors maps a field name to its validation messages.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the first message for field, or "".
func (e Errors) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) String() string {
	var parts []string
	for field, msgs := range e {
		parts = append(parts, field+": "+strings.Join(msgs, " "))
	}
	return strings.Join(parts, "; ")
}
