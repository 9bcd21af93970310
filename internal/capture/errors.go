package capture

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a form field to its messages
type FieldErrors map[string][]string

// Add appends a message for field
func (e FieldErrors) Add(field, format string, args ...interface{}) {
	e[field] = append(e[field], fmt.Sprintf(format, args...))
}

// Has reports whether field has a message
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
