package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/defs"
	"github.com/go-softwarelab/common/pkg/slogx"
)

// New creates a logger writing to w with the given level and format.
func New(w io.Writer, level defs.LogLevel, format defs.LogFormat) (*slog.Logger, error) {
	slogLevel, err := slogx.LogLevel(level).GetSlogLevel()
	if err != nil {
		return nil, fmt.Errorf("unsupported log level: %w", err)
	}

	logFormat, err := slogx.ParseLogFormat(format)
	if err != nil {
		return nil, fmt.Errorf("unsupported log format: %w", err)
	}

	return slogx.NewLogger(
		slogx.WithLevel(slogLevel),
		slogx.WithFormat(logFormat),
		slogx.WithWriter(w),
	), nil
}
