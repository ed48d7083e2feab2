package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("record not found")
)

// ValidationError reports every invalid field of a rejected write, keyed by
// the wire field name. It is an expected outcome of normal operation; the
// handler layer renders it as a field error map, never as a server fault.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}
