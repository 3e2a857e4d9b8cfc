package domain

import (
	"sort"
	"strings"
)

// FieldErrors carries per-field validation messages, rendered as the body of
// a 400 response: {"field": ["message", ...]}.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e[f], ", "))
	}
	return b.String()
}

// Add appends a message to the given field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}
