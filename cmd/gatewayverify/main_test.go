package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/integrity"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paymentKey = "de74310368a4718a48e0e244fbf3e22e2ae117f2"

func TestRunWithArgsExitCodes(t *testing.T) {
	tests := map[string]struct {
		document   string
		args       []string
		exitCode   int
		wantStatus string
	}{
		"verified update response": {
			document:   updateDocument(t, "T1", "4", paymentKey),
			args:       []string{"--operation", "update", "--secret", paymentKey},
			exitCode:   exitVerified,
			wantStatus: "verified",
		},
		"gateway error response": {
			document:   `<?xml version="1.0"?><response><result>1</result><error-message>shop not found</error-message></response>`,
			args:       []string{"--operation", "update", "--secret", paymentKey, "--status", "400"},
			exitCode:   exitGatewayError,
			wantStatus: "gateway_error",
		},
		"malformed response": {
			document:   `<response><transaction-id>T1</response>`,
			args:       []string{"--operation", "update", "--secret", paymentKey},
			exitCode:   exitParseFailure,
			wantStatus: "parse_failure",
		},
		"response missing a field": {
			document:   `<response><transaction-id>T1</transaction-id><result>4</result></response>`,
			args:       []string{"-o", "update", "--secret", paymentKey},
			exitCode:   exitParameterMismatch,
			wantStatus: "parameter_mismatch",
		},
		"response signed with another key": {
			document:   updateDocument(t, "T1", "4", "another key"),
			args:       []string{"--operation", "update", "--secret", paymentKey},
			exitCode:   exitIntegrityMismatch,
			wantStatus: "integrity_mismatch",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			// given:
			path := writeDocument(t, test.document)
			var stdout, stderr bytes.Buffer

			// when:
			code := runWithArgs(append(test.args, path), strings.NewReader(""), &stdout, &stderr)

			// then:
			assert.Equal(t, test.exitCode, code, "stderr: %s", stderr.String())

			var outcome map[string]any
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &outcome))
			assert.Equal(t, test.wantStatus, outcome["status"])
			assert.Equal(t, "update", outcome["operation"])
		})
	}
}

func TestRunWithArgsReadsStandardInput(t *testing.T) {
	// given:
	document := updateDocument(t, "T1", "4", paymentKey)
	var stdout, stderr bytes.Buffer

	// when:
	code := runWithArgs([]string{"--operation", "update", "--secret", paymentKey, "-"}, strings.NewReader(document), &stdout, &stderr)

	// then:
	assert.Equal(t, exitVerified, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), `"transaction-id": "T1"`)
}

func TestRunWithArgsTakesSecretFromEnvironment(t *testing.T) {
	// given:
	t.Setenv("GATEWAYVERIFY_VERIFIER_SECRET", paymentKey)
	path := writeDocument(t, updateDocument(t, "T1", "4", paymentKey))
	var stdout, stderr bytes.Buffer

	// when:
	code := runWithArgs([]string{"--operation", "update", path}, strings.NewReader(""), &stdout, &stderr)

	// then:
	assert.Equal(t, exitVerified, code, "stderr: %s", stderr.String())
	assert.NotContains(t, stdout.String(), paymentKey)
	assert.NotContains(t, stderr.String(), paymentKey)
}

func TestRunWithArgsUsageErrors(t *testing.T) {
	path := writeDocument(t, updateDocument(t, "T1", "4", paymentKey))

	tests := map[string]struct {
		args    []string
		wantErr string
	}{
		"missing operation": {
			args:    []string{"--secret", paymentKey, path},
			wantErr: "operation",
		},
		"missing file argument": {
			args:    []string{"--operation", "update", "--secret", paymentKey},
			wantErr: "accepts 1 arg",
		},
		"missing secret": {
			args:    []string{"--operation", "update", path},
			wantErr: "payment key is required",
		},
		"unreadable file": {
			args:    []string{"--operation", "update", "--secret", paymentKey, filepath.Join(t.TempDir(), "absent.xml")},
			wantErr: "failed to read response file",
		},
		"unknown flag": {
			args:    []string{"--operation", "update", "--verbose", path},
			wantErr: "unknown flag",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			// given:
			t.Setenv("GATEWAYVERIFY_VERIFIER_SECRET", "")
			var stdout, stderr bytes.Buffer

			// when:
			code := runWithArgs(test.args, strings.NewReader(""), &stdout, &stderr)

			// then:
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), test.wantErr)
		})
	}
}

func TestRunWithArgsListsOperations(t *testing.T) {
	// given:
	var stdout, stderr bytes.Buffer

	// when:
	code := runWithArgs([]string{"operations"}, strings.NewReader(""), &stdout, &stderr)

	// then:
	assert.Equal(t, exitVerified, code)
	assert.Equal(t, "cancel\ncreate\nrefund\nresend_email\nupdate\n", stdout.String())
}

func updateDocument(t *testing.T, transactionID, result, key string) string {
	t.Helper()

	signer, err := integrity.New()
	require.NoError(t, err)

	update, ok := schema.Builtin().Success(schema.OperationUpdate)
	require.True(t, ok)

	hash, err := signer.Sign(update, map[schema.Field]string{
		schema.FieldTransactionID: transactionID,
		schema.FieldResult:        result,
	}, key)
	require.NoError(t, err)

	return `<?xml version="1.0" encoding="UTF-8"?>` +
		"<response>" +
		"<transaction-id>" + transactionID + "</transaction-id>" +
		"<result>" + result + "</result>" +
		"<hash>" + hash + "</hash>" +
		"</response>"
}

func writeDocument(t *testing.T, document string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "response.xml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))
	return path
}
