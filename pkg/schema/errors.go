package schema

import "errors"

var (
	// ErrEmptySchema is returned when a schema declares no fields.
	ErrEmptySchema = errors.New("schema must declare at least one field")

	// ErrDuplicateField is returned when a field is declared more than once.
	ErrDuplicateField = errors.New("field declared more than once")

	// ErrDigestFieldNotDeclared is returned when the digest field is not one of the schema fields.
	ErrDigestFieldNotDeclared = errors.New("digest field must be one of the schema fields")

	// ErrInvalidDigestOrder is returned when the digest order is not a permutation of the non-digest fields.
	ErrInvalidDigestOrder = errors.New("digest order must list every non-digest field exactly once")

	// ErrDefaultForUnknownField is returned when a default value is given for an undeclared field.
	ErrDefaultForUnknownField = errors.New("default value given for a field the schema does not declare")

	// ErrUnknownOperation is returned when an operation has no success schema.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrNotSuccessSchema is returned when an error schema is used where a success schema is required.
	ErrNotSuccessSchema = errors.New("schema is not a success schema")

	// ErrNotErrorSchema is returned when a success schema is used where an error schema is required.
	ErrNotErrorSchema = errors.New("schema is not an error schema")

	// ErrFieldNotPresent is returned by record accessors when the field has no value and no default.
	ErrFieldNotPresent = errors.New("field not present in record")
)
