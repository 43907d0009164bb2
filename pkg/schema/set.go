package schema

import (
	"fmt"
	"maps"
	"slices"
)

// Set maps every supported operation to its success schema
// and carries the single error schema shared by all operations.
//
// Set values are immutable; With returns an extended copy.
type Set struct {
	success     map[Operation]*Schema
	errorSchema *Schema
}

// NewSet creates a set with the given error schema and no operations.
func NewSet(errorSchema *Schema) (*Set, error) {
	if errorSchema == nil || errorSchema.Kind() != Error {
		return nil, ErrNotErrorSchema
	}
	return &Set{
		success:     make(map[Operation]*Schema),
		errorSchema: errorSchema,
	}, nil
}

// With returns a copy of the set where the operation uses the given success schema.
// An existing schema for the operation is replaced.
func (s *Set) With(op Operation, successSchema *Schema) (*Set, error) {
	if op == "" {
		return nil, ErrUnknownOperation
	}
	if successSchema == nil || successSchema.Kind() != Success {
		return nil, fmt.Errorf("operation %q: %w", op, ErrNotSuccessSchema)
	}

	next := &Set{
		success:     maps.Clone(s.success),
		errorSchema: s.errorSchema,
	}
	next.success[op] = successSchema
	return next, nil
}

// Success returns the success schema of the operation.
func (s *Set) Success(op Operation) (*Schema, bool) {
	sc, ok := s.success[op]
	return sc, ok
}

// Error returns the error schema shared by all operations.
func (s *Set) Error() *Schema {
	return s.errorSchema
}

// Operations returns the operations known to the set, sorted by name.
func (s *Set) Operations() []Operation {
	return sortedOperations(slices.Collect(maps.Keys(s.success)))
}
