package defs

// LogLevel represents different log levels which can be configured.
type LogLevel string

// Supported log levels (based on slog).
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// ParseLogLevelStr parses a string into a LogLevel (case-insensitive).
func ParseLogLevelStr(level string) (LogLevel, error) {
	return parseEnumCaseInsensitive(level, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)
}

// LogFormat represents different log handler types which can be configured.
type LogFormat string

// Supported handler types (based on slog).
const (
	JSONFormat LogFormat = "json"
	TextFormat LogFormat = "text"
)

// ParseLogFormatStr parses a string into a LogFormat (case-insensitive).
func ParseLogFormatStr(format string) (LogFormat, error) {
	return parseEnumCaseInsensitive(format, JSONFormat, TextFormat)
}
