package defs_test

import (
	"testing"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/defs"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevelStr(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected defs.LogLevel
	}{
		"lower case":  {input: "debug", expected: defs.LogLevelDebug},
		"upper case":  {input: "WARN", expected: defs.LogLevelWarn},
		"mixed case":  {input: "Error", expected: defs.LogLevelError},
		"with spaces": {input: " info ", expected: defs.LogLevelInfo},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			// when:
			level, err := defs.ParseLogLevelStr(test.input)

			// then:
			require.NoError(t, err)
			require.Equal(t, test.expected, level)
		})
	}
}

func TestParseEnumsRejectUnknownValues(t *testing.T) {
	_, err := defs.ParseLogLevelStr("verbose")
	require.Error(t, err)

	_, err = defs.ParseLogFormatStr("")
	require.Error(t, err)

	_, err = defs.ParseDigestAlgorithmStr("md5")
	require.Error(t, err)

	_, err = defs.ParseCanonicalizationStr("escaped")
	require.Error(t, err)
}

func TestParseDigestSettings(t *testing.T) {
	algorithm, err := defs.ParseDigestAlgorithmStr("SHA256")
	require.NoError(t, err)
	require.Equal(t, defs.DigestSHA256, algorithm)

	mode, err := defs.ParseCanonicalizationStr("Length-Prefixed")
	require.NoError(t, err)
	require.Equal(t, defs.CanonicalLengthPrefixed, mode)
}
