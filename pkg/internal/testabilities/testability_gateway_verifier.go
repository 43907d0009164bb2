package testabilities

import (
	"log/slog"
	"testing"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/verifier"
	"github.com/go-softwarelab/common/pkg/slogx"
	"github.com/go-softwarelab/common/pkg/to"
	"github.com/stretchr/testify/require"
)

type GatewayVerifierTestsFixture interface {
	Gateway() GatewayFixture
	Server() ServerFixture
	Verifier(opts ...func(*verifier.Config)) *verifier.Verifier
	Logger() *slog.Logger
}

type GatewayVerifierTestsAssertion interface {
	Outcome(verifier.Outcome) OutcomeAssertion
}

func New(t testing.TB, opts ...func(*Options)) (GatewayVerifierTestsFixture, GatewayVerifierTestsAssertion) {
	return Given(t, opts...), Then(t)
}

func Given(t testing.TB, opts ...func(*Options)) GatewayVerifierTestsFixture {
	f := &gatewayVerifierTestsFixture{
		TB: t,
	}

	options := to.OptionsWithDefault(Options{
		logger: slogx.NewTestLogger(f),
	}, opts...)

	f.logger = options.logger
	f.serverFixture = NewServerFixture(f)
	return f
}

func Then(t testing.TB) GatewayVerifierTestsAssertion {
	return &gatewayVerifierTestsAssertion{
		TB: t,
	}
}

type gatewayVerifierTestsFixture struct {
	testing.TB
	serverFixture ServerFixture
	logger        *slog.Logger
}

func (f *gatewayVerifierTestsFixture) Gateway() GatewayFixture {
	return newGatewayFixture(f)
}

func (f *gatewayVerifierTestsFixture) Server() ServerFixture {
	return f.serverFixture
}

// Verifier creates a verifier logging to the test output.
func (f *gatewayVerifierTestsFixture) Verifier(opts ...func(*verifier.Config)) *verifier.Verifier {
	f.Helper()
	opts = append([]func(*verifier.Config){verifier.WithLogger(f.logger)}, opts...)
	v, err := verifier.New(opts...)
	require.NoError(f, err, "verifier should be created")
	return v
}

func (f *gatewayVerifierTestsFixture) Logger() *slog.Logger {
	return f.logger
}

type gatewayVerifierTestsAssertion struct {
	testing.TB
}

func (a *gatewayVerifierTestsAssertion) Outcome(outcome verifier.Outcome) OutcomeAssertion {
	return newOutcomeAssertion(a, outcome)
}
