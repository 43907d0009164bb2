package schema

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// Record is the typed result of assembling one response document.
// It holds exactly the values found in the document, keyed by field.
type Record struct {
	schema *Schema
	values map[Field]string
}

// NewRecord creates a record of the given schema.
// Values for fields the schema does not declare are dropped.
func NewRecord(s *Schema, values map[Field]string) Record {
	kept := make(map[Field]string, len(values))
	for f, v := range values {
		if declared, ok := s.Lookup(string(f)); ok {
			kept[declared] = v
		}
	}
	return Record{schema: s, values: kept}
}

// Schema returns the schema the record was assembled with.
func (r Record) Schema() *Schema {
	return r.schema
}

// Kind returns whether the record is a success or an error record.
func (r Record) Kind() Kind {
	if r.schema == nil {
		return Success
	}
	return r.schema.Kind()
}

// IsZero reports whether the record holds no schema.
func (r Record) IsZero() bool {
	return r.schema == nil
}

// Get returns the value of the field as found in the document.
func (r Record) Get(field Field) (string, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Value returns the value of the field, falling back to the schema default.
func (r Record) Value(field Field) string {
	if v, ok := r.values[field]; ok {
		return v
	}
	if r.schema != nil {
		if v, ok := r.schema.Default(field); ok {
			return v
		}
	}
	return ""
}

// Values returns a copy of the values found in the document.
func (r Record) Values() map[Field]string {
	return maps.Clone(r.values)
}

// Len returns the number of fields found in the document.
func (r Record) Len() int {
	return len(r.values)
}

// TransactionID returns the gateway transaction id.
func (r Record) TransactionID() string {
	return r.Value(FieldTransactionID)
}

// PaymentSlipLink returns the link to the payment slip of a created transaction.
func (r Record) PaymentSlipLink() string {
	return r.Value(FieldPaymentSlipLink)
}

// Hash returns the digest carried by the document.
func (r Record) Hash() string {
	if r.schema == nil || r.schema.DigestField() == "" {
		return ""
	}
	return r.Value(r.schema.DigestField())
}

// ErrorMessage returns the error message of an error record.
func (r Record) ErrorMessage() string {
	return r.Value(FieldErrorMessage)
}

// Result returns the numeric result code.
func (r Record) Result() (int, error) {
	raw, ok := r.values[FieldResult]
	if !ok {
		if r.schema == nil {
			return 0, ErrFieldNotPresent
		}
		if raw, ok = r.schema.Default(FieldResult); !ok {
			return 0, ErrFieldNotPresent
		}
	}

	code, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid result code %q: %w", raw, err)
	}
	return code, nil
}

type recordJSON struct {
	Schema string           `json:"schema"`
	Kind   Kind             `json:"kind"`
	Fields map[Field]string `json:"fields"`
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{Kind: r.Kind(), Fields: r.values}
	if r.schema != nil {
		out.Schema = r.schema.Name()
	}
	if out.Fields == nil {
		out.Fields = map[Field]string{}
	}
	return json.Marshal(out)
}
