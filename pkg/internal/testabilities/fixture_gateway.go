package testabilities

import (
	"bytes"
	"encoding/xml"
	"maps"
	"strconv"
	"strings"
	"testing"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/integrity"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
	"github.com/stretchr/testify/require"
)

// PaymentKey is the shared secret used by the simulated gateway unless overridden.
const PaymentKey = "de74310368a4718a48e0e244fbf3e22e2ae117f2"

// GatewayFixture simulates the payment gateway producing response documents.
type GatewayFixture interface {
	WithPaymentKey(key string) GatewayFixture
	WithIntegrity(opts ...func(*integrity.Config)) GatewayFixture
	WithSchemas(set *schema.Set) GatewayFixture
	Success(op schema.Operation) DocumentFixture
	Error(code int, message string) string
}

// DocumentFixture builds one success document. The hash is computed when the document is rendered.
type DocumentFixture interface {
	With(field schema.Field, value string) DocumentFixture
	Without(field schema.Field) DocumentFixture
	// Tampered replaces the value after the hash has been computed.
	Tampered(field schema.Field, value string) DocumentFixture
	WithHash(hash string) DocumentFixture
	WithTag(tag, value string) DocumentFixture
	Repeated(field schema.Field, value string) DocumentFixture
	Hash() string
	Values() map[schema.Field]string
	XML() string
}

var sampleValues = map[schema.Field]string{
	schema.FieldTransactionID:       "227840174",
	schema.FieldPaymentSlipLink:     "https://gateway.example/download/227840174/slip.pdf",
	schema.FieldExpirationNotice:    "Der Zahlschein ist 14 Tage gültig.",
	schema.FieldInfotext1:           "Fish & Chips <Ltd>",
	schema.FieldInfotext2:           "",
	schema.FieldResult:              "0",
	schema.FieldOriginTransactionID: "227840174",
	schema.FieldRefundTransactionID: "227840175",
}

type gatewayFixture struct {
	testing.TB
	paymentKey string
	integrity  []func(*integrity.Config)
	schemas    *schema.Set
}

func newGatewayFixture(t testing.TB) *gatewayFixture {
	return &gatewayFixture{
		TB:         t,
		paymentKey: PaymentKey,
		schemas:    schema.Builtin(),
	}
}

func (g *gatewayFixture) WithPaymentKey(key string) GatewayFixture {
	g.paymentKey = key
	return g
}

func (g *gatewayFixture) WithIntegrity(opts ...func(*integrity.Config)) GatewayFixture {
	g.integrity = append(g.integrity, opts...)
	return g
}

func (g *gatewayFixture) WithSchemas(set *schema.Set) GatewayFixture {
	g.schemas = set
	return g
}

func (g *gatewayFixture) Success(op schema.Operation) DocumentFixture {
	g.Helper()
	s, ok := g.schemas.Success(op)
	require.Truef(g, ok, "gateway fixture has no schema for operation %q", op)

	values := make(map[schema.Field]string)
	for _, f := range s.Fields() {
		if f == s.DigestField() {
			continue
		}
		values[f] = sampleValues[f]
	}

	return &documentFixture{
		gateway:  g,
		schema:   s,
		values:   values,
		tampered: make(map[schema.Field]string),
		removed:  make(map[schema.Field]bool),
	}
}

func (g *gatewayFixture) Error(code int, message string) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString("<response>")
	writeElement(&b, string(schema.FieldResult), strconv.Itoa(code))
	writeElement(&b, string(schema.FieldErrorMessage), message)
	b.WriteString("</response>")
	return b.String()
}

type extraTag struct {
	tag   string
	value string
}

type documentFixture struct {
	gateway  *gatewayFixture
	schema   *schema.Schema
	values   map[schema.Field]string
	tampered map[schema.Field]string
	removed  map[schema.Field]bool
	hash     *string
	extra    []extraTag
}

func (d *documentFixture) With(field schema.Field, value string) DocumentFixture {
	d.values[field] = value
	return d
}

func (d *documentFixture) Without(field schema.Field) DocumentFixture {
	d.removed[field] = true
	return d
}

func (d *documentFixture) Tampered(field schema.Field, value string) DocumentFixture {
	d.tampered[field] = value
	return d
}

func (d *documentFixture) WithHash(hash string) DocumentFixture {
	d.hash = &hash
	return d
}

func (d *documentFixture) WithTag(tag, value string) DocumentFixture {
	d.extra = append(d.extra, extraTag{tag: tag, value: value})
	return d
}

func (d *documentFixture) Repeated(field schema.Field, value string) DocumentFixture {
	return d.WithTag(string(field), value)
}

// Hash returns the digest the gateway computes over the values set with With.
func (d *documentFixture) Hash() string {
	d.gateway.Helper()
	if d.hash != nil {
		return *d.hash
	}

	signer, err := integrity.New(d.gateway.integrity...)
	require.NoError(d.gateway, err, "gateway fixture should create signer")

	hash, err := signer.Sign(d.schema, d.values, d.gateway.paymentKey)
	require.NoError(d.gateway, err, "gateway fixture should sign values")
	return hash
}

// Values returns the values as rendered in the document, including the hash.
func (d *documentFixture) Values() map[schema.Field]string {
	values := maps.Clone(d.values)
	values[d.schema.DigestField()] = d.Hash()
	maps.Copy(values, d.tampered)
	for f := range d.removed {
		delete(values, f)
	}
	return values
}

func (d *documentFixture) XML() string {
	values := d.Values()

	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString("<response>")
	for _, f := range d.schema.Fields() {
		if value, ok := values[f]; ok {
			writeElement(&b, string(f), value)
		}
	}
	for _, e := range d.extra {
		writeElement(&b, e.tag, e.value)
	}
	b.WriteString("</response>")
	return b.String()
}

func writeElement(b *strings.Builder, tag, value string) {
	var escaped bytes.Buffer
	// EscapeText writes to a bytes.Buffer, which never fails
	_ = xml.EscapeText(&escaped, []byte(value))

	b.WriteString("<" + tag + ">")
	b.Write(escaped.Bytes())
	b.WriteString("</" + tag + ">")
}
