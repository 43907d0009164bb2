package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/defs"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopIfNil(t *testing.T) {
	// when:
	logger := logging.DefaultIfNil(nil)

	// then:
	require.NotNil(t, logger)
}

func TestChildAddsServiceName(t *testing.T) {
	// given:
	var buf bytes.Buffer
	logger, err := logging.New(&buf, defs.LogLevelDebug, defs.JSONFormat)
	require.NoError(t, err)

	// when:
	logging.Child(logger, "Verifier").Debug("hello", logging.Error(errors.New("boom")))

	// then:
	assert.Contains(t, buf.String(), `"service":"Verifier"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestNewRespectsLevel(t *testing.T) {
	// given:
	var buf bytes.Buffer
	logger, err := logging.New(&buf, defs.LogLevelWarn, defs.TextFormat)
	require.NoError(t, err)

	// when:
	logger.Info("skipped")
	logger.Warn("kept")

	// then:
	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "kept")
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := logging.New(&bytes.Buffer{}, defs.LogLevel("trace"), defs.JSONFormat)
	require.Error(t, err)

	_, err = logging.New(&bytes.Buffer{}, defs.LogLevelInfo, defs.LogFormat("xml"))
	require.Error(t, err)
}
