// Package integrity recomputes and checks the digest that the gateway embeds in success documents.
package integrity

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/constants"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/defs"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/internal/util"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
	hash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/go-softwarelab/common/pkg/to"
)

var (
	// ErrNoDigest is returned for schemas that do not carry a digest.
	ErrNoDigest = errors.New("schema carries no digest")

	// ErrMissingValue is returned when a field listed in the digest order has no value.
	ErrMissingValue = errors.New("digest input field has no value")

	// ErrUnsupportedAlgorithm is returned for an unknown digest algorithm.
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

	// ErrUnsupportedCanonicalization is returned for an unknown canonicalization mode.
	ErrUnsupportedCanonicalization = errors.New("unsupported canonicalization")
)

// Config configures digest computation.
type Config struct {
	Algorithm        defs.DigestAlgorithm
	Canonicalization defs.Canonicalization
	Separator        string
}

// DefaultConfig is what the gateway uses: SHA-512 over the values joined with a semicolon.
func DefaultConfig() Config {
	return Config{
		Algorithm:        defs.DigestSHA512,
		Canonicalization: defs.CanonicalJoined,
		Separator:        constants.DigestSeparator,
	}
}

// WithAlgorithm selects the digest algorithm.
func WithAlgorithm(algorithm defs.DigestAlgorithm) func(*Config) {
	return func(cfg *Config) {
		cfg.Algorithm = algorithm
	}
}

// WithCanonicalization selects how field values are concatenated.
func WithCanonicalization(mode defs.Canonicalization) func(*Config) {
	return func(cfg *Config) {
		cfg.Canonicalization = mode
	}
}

// WithSeparator overrides the separator of the joined canonicalization.
func WithSeparator(separator string) func(*Config) {
	// don't override the default
	if separator == "" {
		return func(cfg *Config) {}
	}
	return func(cfg *Config) {
		cfg.Separator = separator
	}
}

// Verifier computes and compares digests. It holds no secrets and is safe for concurrent use.
type Verifier struct {
	cfg Config
}

// New creates a digest verifier.
func New(opts ...func(*Config)) (*Verifier, error) {
	cfg := to.OptionsWithDefault(DefaultConfig(), opts...)

	switch cfg.Algorithm {
	case defs.DigestSHA512, defs.DigestSHA256:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}

	switch cfg.Canonicalization {
	case defs.CanonicalJoined, defs.CanonicalLengthPrefixed:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCanonicalization, cfg.Canonicalization)
	}

	return &Verifier{cfg: cfg}, nil
}

// Config returns the configuration of the verifier.
func (v *Verifier) Config() Config {
	return v.cfg
}

// Check is the result of verifying one record.
type Check struct {
	Valid     bool
	Anomalies []schema.Anomaly
}

// Verify recomputes the digest of a success record and compares it to the digest the record carries.
// The comparison is exact and case-sensitive.
func (v *Verifier) Verify(record schema.Record, secret string) (Check, error) {
	s := record.Schema()
	if s == nil || s.Kind() != schema.Success {
		return Check{}, ErrNoDigest
	}

	values, err := digestInput(s, record)
	if err != nil {
		return Check{}, err
	}

	expected := v.digest(values, secret)
	received, _ := record.Get(s.DigestField())

	return Check{
		Valid:     subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1,
		Anomalies: v.separatorAnomalies(s, record),
	}, nil
}

// Sign computes the digest the gateway would send for the given values.
func (v *Verifier) Sign(s *schema.Schema, values map[schema.Field]string, secret string) (string, error) {
	if s == nil || s.Kind() != schema.Success {
		return "", ErrNoDigest
	}

	input, err := digestInput(s, schema.NewRecord(s, values))
	if err != nil {
		return "", err
	}
	return v.digest(input, secret), nil
}

func digestInput(s *schema.Schema, record schema.Record) ([]string, error) {
	order := s.DigestOrder()
	values := make([]string, 0, len(order))
	for _, f := range order {
		value, ok := record.Get(f)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingValue, f)
		}
		values = append(values, value)
	}
	return values, nil
}

func (v *Verifier) digest(values []string, secret string) string {
	canonical := v.canonical(values, secret)
	defer clear(canonical)

	var sum []byte
	switch v.cfg.Algorithm {
	case defs.DigestSHA256:
		sum = hash.Sha256(canonical)
	default:
		sum = hash.Sha512(canonical)
	}
	return hex.EncodeToString(sum)
}

func (v *Verifier) canonical(values []string, secret string) []byte {
	if v.cfg.Canonicalization == defs.CanonicalLengthPrefixed {
		writer := util.NewWriter()
		writer.WriteStrings(values...)
		writer.WriteOptionalString(secret)
		return writer.Bytes()
	}

	var b strings.Builder
	for _, value := range values {
		b.WriteString(value)
		b.WriteString(v.cfg.Separator)
	}
	b.WriteString(secret)
	return []byte(b.String())
}

func (v *Verifier) separatorAnomalies(s *schema.Schema, record schema.Record) []schema.Anomaly {
	if v.cfg.Canonicalization != defs.CanonicalJoined {
		return nil
	}

	var anomalies []schema.Anomaly
	for _, f := range s.DigestOrder() {
		if value, _ := record.Get(f); strings.Contains(value, v.cfg.Separator) {
			anomalies = append(anomalies, schema.Anomaly{Kind: schema.AnomalySeparatorInValue, Field: f})
		}
	}
	return anomalies
}
