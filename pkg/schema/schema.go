package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Schema declares the fields of one response document shape
// and, for success documents, the order in which they are concatenated for the digest.
//
// A Schema is immutable once constructed and safe for concurrent use.
type Schema struct {
	name        string
	kind        Kind
	fields      []Field
	byTag       map[string]Field
	digestField Field
	digestOrder []Field
	defaults    map[Field]string
}

// Option customizes a schema under construction.
type Option func(*Schema) error

// WithDefault sets the value a record reports for the field when the document did not carry it.
// Defaults never count toward completeness.
func WithDefault(field Field, value string) Option {
	return func(s *Schema) error {
		if _, ok := s.byTag[normalizeTag(string(field))]; !ok {
			return fmt.Errorf("%w: %q", ErrDefaultForUnknownField, field)
		}
		s.defaults[field] = value
		return nil
	}
}

// NewSuccess creates a success schema.
// The digestField carries the gateway's digest and digestOrder lists
// every other field in the order used for the canonical concatenation.
func NewSuccess(name string, fields []Field, digestField Field, digestOrder []Field, opts ...Option) (*Schema, error) {
	s, err := newSchema(name, Success, fields)
	if err != nil {
		return nil, err
	}

	if _, ok := s.byTag[normalizeTag(string(digestField))]; !ok {
		return nil, fmt.Errorf("schema %q: %w: %q", name, ErrDigestFieldNotDeclared, digestField)
	}
	s.digestField = digestField

	if err := checkDigestOrder(s.fields, digestField, digestOrder); err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	s.digestOrder = slices.Clone(digestOrder)

	if err := s.apply(opts); err != nil {
		return nil, err
	}
	return s, nil
}

// NewError creates an error schema. Error documents carry no digest.
func NewError(name string, fields []Field, opts ...Option) (*Schema, error) {
	s, err := newSchema(name, Error, fields)
	if err != nil {
		return nil, err
	}
	if err := s.apply(opts); err != nil {
		return nil, err
	}
	return s, nil
}

func newSchema(name string, kind Kind, fields []Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema %q: %w", name, ErrEmptySchema)
	}

	byTag := make(map[string]Field, len(fields))
	for _, f := range fields {
		tag := normalizeTag(string(f))
		if _, exists := byTag[tag]; exists {
			return nil, fmt.Errorf("schema %q: %w: %q", name, ErrDuplicateField, f)
		}
		byTag[tag] = f
	}

	return &Schema{
		name:     name,
		kind:     kind,
		fields:   slices.Clone(fields),
		byTag:    byTag,
		defaults: make(map[Field]string),
	}, nil
}

func (s *Schema) apply(opts []Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return fmt.Errorf("schema %q: %w", s.name, err)
		}
	}
	return nil
}

func checkDigestOrder(fields []Field, digestField Field, order []Field) error {
	if len(order) != len(fields)-1 {
		return ErrInvalidDigestOrder
	}

	listed := make(map[Field]struct{}, len(order))
	for _, f := range order {
		if f == digestField || !slices.Contains(fields, f) {
			return fmt.Errorf("%w: unexpected %q", ErrInvalidDigestOrder, f)
		}
		if _, dup := listed[f]; dup {
			return fmt.Errorf("%w: duplicated %q", ErrInvalidDigestOrder, f)
		}
		listed[f] = struct{}{}
	}
	return nil
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Kind returns whether the schema describes a success or an error document.
func (s *Schema) Kind() Kind {
	return s.kind
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// ExpectedFieldCount is the number of distinct fields a complete document carries.
func (s *Schema) ExpectedFieldCount() int {
	return len(s.fields)
}

// DigestField returns the field carrying the digest. It is empty for error schemas.
func (s *Schema) DigestField() Field {
	return s.digestField
}

// DigestOrder returns the fields in canonical concatenation order. It is empty for error schemas.
func (s *Schema) DigestOrder() []Field {
	return slices.Clone(s.digestOrder)
}

// Lookup resolves a tag name to a declared field, ignoring case.
func (s *Schema) Lookup(tag string) (Field, bool) {
	f, ok := s.byTag[normalizeTag(tag)]
	return f, ok
}

// Default returns the default value of the field, if one was declared.
func (s *Schema) Default(field Field) (string, bool) {
	v, ok := s.defaults[field]
	return v, ok
}

func (s *Schema) String() string {
	return s.kind.String() + ":" + s.name
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
