package xerrors

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors carries per-field validation messages so API clients
// can attach them to form inputs.
type FieldErrors struct {
	Fields map[string]string
}

func NewFieldErrors() *FieldErrors {
	return &FieldErrors{Fields: make(map[string]string)}
}

// Add records a message for a field. The first message per field wins.
func (e *FieldErrors) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *FieldErrors) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the collector as an error only when it holds messages.
func (e *FieldErrors) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *FieldErrors) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
