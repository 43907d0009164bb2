package logging

import (
	"log/slog"

	"github.com/go-softwarelab/common/pkg/slogx"
)

const (
	ServiceKey   = slogx.ServiceKey
	ErrorKey     = slogx.ErrorKey
	OperationKey = "operation"
	StatusKey    = "status"
)

// Child returns a new logger with the given service name added to the logger attrs.
func Child(logger *slog.Logger, serviceName string) *slog.Logger {
	return slogx.Child(logger, serviceName)
}

func Error(err error) slog.Attr {
	return slogx.Error(err)
}

// DefaultIfNil returns the default logger if the given logger is nil.
func DefaultIfNil(logger *slog.Logger) *slog.Logger {
	return slogx.DefaultIfNil(logger)
}
