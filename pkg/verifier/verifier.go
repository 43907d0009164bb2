// Package verifier classifies gateway responses.
//
// A response is parsed with the schema selected by its HTTP status,
// checked for completeness and, for success documents, checked against the digest it carries.
// Every problem shaped by the protocol is reported as an Outcome, never as a Go error or a panic.
package verifier

import (
	"fmt"
	"log/slog"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/integrity"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/internal/assembler"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/internal/logging"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/internal/tagstream"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
	"github.com/go-softwarelab/common/pkg/to"
)

// RawDocument is a response body together with the HTTP status it arrived with.
type RawDocument struct {
	Body   string
	Status int
}

// Verifier verifies gateway responses.
// It keeps no state between calls and is safe for concurrent use.
type Verifier struct {
	log           *slog.Logger
	successStatus int
	schemas       *schema.Set
	digests       *integrity.Verifier
	maxBodySize   int64
}

// New creates a verifier. Without options it verifies the gateway API with SHA-512 digests.
func New(opts ...func(*Config)) (*Verifier, error) {
	cfg := to.OptionsWithDefault(defaultConfig(), opts...)

	digests, err := integrity.New(cfg.Integrity...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure digest verification: %w", err)
	}

	return &Verifier{
		log:           logging.Child(cfg.Logger, "GatewayResponseVerifier"),
		successStatus: cfg.SuccessStatus,
		schemas:       cfg.Schemas,
		digests:       digests,
		maxBodySize:   cfg.MaxBodySize,
	}, nil
}

// Operations returns the operations the verifier knows.
func (v *Verifier) Operations() []schema.Operation {
	return v.schemas.Operations()
}

// VerifyDocument verifies the document as the response to the given operation.
func (v *Verifier) VerifyDocument(doc RawDocument, secret string, op schema.Operation) Outcome {
	return v.Verify(doc.Body, doc.Status, secret, op)
}

// VerifyBytes is Verify for a body that was not converted to a string yet.
func (v *Verifier) VerifyBytes(body []byte, status int, secret string, op schema.Operation) Outcome {
	return v.Verify(string(body), status, secret, op)
}

// Verify classifies the body received with the HTTP status as the response to the given operation.
// The secret is the shared payment key used to recompute the digest. It is never logged.
func (v *Verifier) Verify(body string, status int, secret string, op schema.Operation) (outcome Outcome) {
	log := v.log.With(slog.String(logging.OperationKey, string(op)), slog.Int(logging.StatusKey, status))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Recovered from failure while verifying response", slog.Any("panic", r))
			outcome = parseFailure(op, fmt.Sprintf("unexpected failure: %v", r))
		}
	}()

	if v.maxBodySize > 0 && int64(len(body)) > v.maxBodySize {
		outcome = parseFailure(op, fmt.Sprintf("body of %d bytes exceeds limit of %d bytes", len(body), v.maxBodySize))
		v.logOutcome(log, outcome)
		return outcome
	}

	successSchema, ok := v.schemas.Success(op)
	if !ok {
		outcome = parseFailure(op, fmt.Sprintf("%s: %q", schema.ErrUnknownOperation, op))
		v.logOutcome(log, outcome)
		return outcome
	}

	if status == v.successStatus {
		log.Debug("Verifying success response", slog.String("schema", successSchema.Name()))
		outcome = v.verifySuccess(body, secret, op, successSchema)
	} else {
		log.Debug("Verifying error response", slog.String("schema", v.schemas.Error().Name()))
		outcome = v.verifyError(body, op)
	}

	v.logOutcome(log, outcome)
	return outcome
}

func (v *Verifier) verifySuccess(body, secret string, op schema.Operation, s *schema.Schema) Outcome {
	result, err := assembler.Assemble(s, tagstream.Parse(body))
	if err != nil {
		return parseFailure(op, err.Error())
	}

	if !result.Complete() {
		if gatewayErr, ok := v.errorDocumentWithOKStatus(body, op); ok {
			return gatewayErr
		}
		return Outcome{
			Status:    ParameterMismatch,
			Operation: op,
			Missing:   result.Missing,
			Anomalies: result.Anomalies,
		}
	}

	check, err := v.digests.Verify(result.Record, secret)
	if err != nil {
		return parseFailure(op, err.Error())
	}

	anomalies := append(result.Anomalies, check.Anomalies...)
	if !check.Valid {
		return Outcome{
			Status:    IntegrityMismatch,
			Operation: op,
			Anomalies: anomalies,
		}
	}

	return Outcome{
		Status:    Verified,
		Operation: op,
		Record:    result.Record,
		Anomalies: anomalies,
	}
}

// errorDocumentWithOKStatus recognizes an error document delivered with the success status.
func (v *Verifier) errorDocumentWithOKStatus(body string, op schema.Operation) (Outcome, bool) {
	result, err := assembler.Assemble(v.schemas.Error(), tagstream.Parse(body))
	if err != nil || !result.Complete() {
		return Outcome{}, false
	}

	return Outcome{
		Status:    GatewayError,
		Operation: op,
		Record:    result.Record,
		Anomalies: append(result.Anomalies, schema.Anomaly{Kind: schema.AnomalyErrorWithOKStatus}),
	}, true
}

func (v *Verifier) verifyError(body string, op schema.Operation) Outcome {
	result, err := assembler.Assemble(v.schemas.Error(), tagstream.Parse(body))
	if err != nil {
		return parseFailure(op, err.Error())
	}

	if !result.Complete() {
		return Outcome{
			Status:    ParameterMismatch,
			Operation: op,
			Missing:   result.Missing,
			Anomalies: result.Anomalies,
		}
	}

	return Outcome{
		Status:    GatewayError,
		Operation: op,
		Record:    result.Record,
		Anomalies: result.Anomalies,
	}
}

func (v *Verifier) logOutcome(log *slog.Logger, outcome Outcome) {
	for _, anomaly := range outcome.Anomalies {
		log.Warn("Protocol anomaly in gateway response", slog.String("anomaly", anomaly.String()))
	}

	attrs := []any{slog.String("outcome", outcome.Status.String())}
	if len(outcome.Missing) > 0 {
		attrs = append(attrs, slog.Any("missing", outcome.Missing))
	}
	if outcome.Reason != "" {
		attrs = append(attrs, slog.String("reason", outcome.Reason))
	}
	log.Debug("Gateway response classified", attrs...)
}

func parseFailure(op schema.Operation, reason string) Outcome {
	return Outcome{
		Status:    ParseFailure,
		Operation: op,
		Reason:    reason,
	}
}
