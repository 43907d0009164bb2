package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Field identifies a single value carried by a gateway response document.
// The identifier is the tag name used by the gateway.
type Field string

// Fields used by the built-in schemas.
const (
	FieldTransactionID       Field = "transaction-id"
	FieldPaymentSlipLink     Field = "payment-slip-link"
	FieldExpirationNotice    Field = "expiration-notice"
	FieldInfotext1           Field = "infotext-1"
	FieldInfotext2           Field = "infotext-2"
	FieldResult              Field = "result"
	FieldHash                Field = "hash"
	FieldErrorMessage        Field = "error-message"
	FieldOriginTransactionID Field = "origin-transaction-id"
	FieldRefundTransactionID Field = "refund-transaction-id"
)

// Kind tells whether a schema describes a success document or an error document.
type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Operation names a gateway API call whose response is verified with its own success schema.
type Operation string

// Operations supported by the built-in schema set.
const (
	OperationCreate      Operation = "create"
	OperationUpdate      Operation = "update"
	OperationRefund      Operation = "refund"
	OperationResendEmail Operation = "resend_email"
	OperationCancel      Operation = "cancel"
)

// ParseOperation normalizes the given name into an Operation.
// Matching is case-insensitive and a dash is accepted in place of an underscore.
// The operation is not checked against any schema set.
func ParseOperation(name string) (Operation, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	if normalized == "" {
		return "", ErrUnknownOperation
	}
	return Operation(normalized), nil
}

func sortedOperations(ops []Operation) []Operation {
	slices.Sort(ops)
	return ops
}
