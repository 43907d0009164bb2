package verifier

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
)

// Status is the classification of a verified response.
type Status int

const (
	// Verified means the success document is complete and its digest matches.
	Verified Status = iota + 1
	// ParameterMismatch means the document lacks fields its schema declares.
	ParameterMismatch
	// IntegrityMismatch means the recomputed digest differs from the one carried by the document.
	IntegrityMismatch
	// ParseFailure means the body is not a readable document.
	ParseFailure
	// GatewayError means the gateway reported a failure with a complete error document.
	GatewayError
)

func (s Status) String() string {
	switch s {
	case Verified:
		return "verified"
	case ParameterMismatch:
		return "parameter_mismatch"
	case IntegrityMismatch:
		return "integrity_mismatch"
	case ParseFailure:
		return "parse_failure"
	case GatewayError:
		return "gateway_error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	ErrParseFailure      = errors.New("gateway response could not be parsed")
	ErrParameterMismatch = errors.New("gateway response is missing expected parameters")
	ErrIntegrityMismatch = errors.New("gateway response digest does not match")
	ErrGatewayError      = errors.New("gateway reported an error")
)

// Outcome is the result of verifying one gateway response.
//
// Record is set for Verified and GatewayError only.
// Missing is set for ParameterMismatch and Reason for ParseFailure.
type Outcome struct {
	Status    Status
	Operation schema.Operation
	Record    schema.Record
	Missing   []schema.Field
	Reason    string
	Anomalies []schema.Anomaly
}

// IsVerified reports whether the response passed every check.
func (o Outcome) IsVerified() bool {
	return o.Status == Verified
}

// Err returns nil for a verified outcome and an error matching one of the package sentinels otherwise.
func (o Outcome) Err() error {
	switch o.Status {
	case Verified:
		return nil
	case ParameterMismatch:
		return fmt.Errorf("%w: %v", ErrParameterMismatch, o.Missing)
	case IntegrityMismatch:
		return ErrIntegrityMismatch
	case GatewayError:
		return fmt.Errorf("%w: result %s: %s", ErrGatewayError, o.Record.Value(schema.FieldResult), o.Record.ErrorMessage())
	default:
		return fmt.Errorf("%w: %s", ErrParseFailure, o.Reason)
	}
}

type outcomeJSON struct {
	Status    Status           `json:"status"`
	Operation schema.Operation `json:"operation"`
	Record    *schema.Record   `json:"record,omitempty"`
	Missing   []schema.Field   `json:"missing,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	Anomalies []schema.Anomaly `json:"anomalies,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (o Outcome) MarshalJSON() ([]byte, error) {
	out := outcomeJSON{
		Status:    o.Status,
		Operation: o.Operation,
		Missing:   o.Missing,
		Reason:    o.Reason,
		Anomalies: o.Anomalies,
	}
	if !o.Record.IsZero() {
		out.Record = &o.Record
	}
	return json.Marshal(out)
}
