package testabilities

import (
	"testing"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/verifier"
	"github.com/stretchr/testify/assert"
)

type OutcomeAssertion interface {
	IsVerified() OutcomeAssertion
	HasStatus(status verifier.Status) OutcomeAssertion
	HasField(field schema.Field, value string) OutcomeAssertion
	HasValues(values map[schema.Field]string) OutcomeAssertion
	HasMissing(fields ...schema.Field) OutcomeAssertion
	HasAnomaly(kind schema.AnomalyKind) OutcomeAssertion
	HasNoAnomalies() OutcomeAssertion
	HasNoRecord() OutcomeAssertion
	HasReasonContaining(text string) OutcomeAssertion
}

type outcomeAssertion struct {
	testing.TB

	outcome verifier.Outcome
}

func newOutcomeAssertion(t testing.TB, outcome verifier.Outcome) OutcomeAssertion {
	return &outcomeAssertion{
		TB:      t,
		outcome: outcome,
	}
}

func (a *outcomeAssertion) IsVerified() OutcomeAssertion {
	a.Helper()
	assert.Equalf(a, verifier.Verified, a.outcome.Status, "outcome should be verified, got %s (reason: %q, missing: %v)",
		a.outcome.Status, a.outcome.Reason, a.outcome.Missing)
	assert.NoError(a, a.outcome.Err(), "verified outcome should not carry an error")
	return a
}

func (a *outcomeAssertion) HasStatus(status verifier.Status) OutcomeAssertion {
	a.Helper()
	assert.Equalf(a, status, a.outcome.Status, "outcome should have status %s (reason: %q)", status, a.outcome.Reason)
	return a
}

func (a *outcomeAssertion) HasField(field schema.Field, value string) OutcomeAssertion {
	a.Helper()
	actual, ok := a.outcome.Record.Get(field)
	if assert.Truef(a, ok, "record should contain field %s", field) {
		assert.Equal(a, value, actual)
	}
	return a
}

func (a *outcomeAssertion) HasValues(values map[schema.Field]string) OutcomeAssertion {
	a.Helper()
	assert.Equal(a, values, a.outcome.Record.Values(), "record should hold exactly the document values")
	return a
}

func (a *outcomeAssertion) HasMissing(fields ...schema.Field) OutcomeAssertion {
	a.Helper()
	assert.Equal(a, fields, a.outcome.Missing, "outcome should list missing fields")
	return a
}

func (a *outcomeAssertion) HasAnomaly(kind schema.AnomalyKind) OutcomeAssertion {
	a.Helper()
	for _, anomaly := range a.outcome.Anomalies {
		if anomaly.Kind == kind {
			return a
		}
	}
	a.Errorf("outcome should report anomaly %s, got %v", kind, a.outcome.Anomalies)
	return a
}

func (a *outcomeAssertion) HasNoAnomalies() OutcomeAssertion {
	a.Helper()
	assert.Empty(a, a.outcome.Anomalies, "outcome should not report anomalies")
	return a
}

func (a *outcomeAssertion) HasNoRecord() OutcomeAssertion {
	a.Helper()
	assert.True(a, a.outcome.Record.IsZero(), "outcome should not carry a record")
	return a
}

func (a *outcomeAssertion) HasReasonContaining(text string) OutcomeAssertion {
	a.Helper()
	assert.Contains(a, a.outcome.Reason, text)
	return a
}
