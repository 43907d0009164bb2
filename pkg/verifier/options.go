package verifier

import (
	"log/slog"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/constants"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/integrity"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
)

// Config is the configuration of the verifier.
type Config struct {
	Logger *slog.Logger

	// SuccessStatus is the HTTP status for which the success schema is selected.
	SuccessStatus int

	// Schemas maps operations to their success schema and provides the error schema.
	Schemas *schema.Set

	// Integrity configures how digests are recomputed.
	Integrity []func(*integrity.Config)

	// MaxBodySize limits the size of verified bodies. Zero or less means no limit.
	MaxBodySize int64
}

// WithLogger configures the verifier to use the provided logger.
func WithLogger(logger *slog.Logger) func(*Config) {
	// don't override the default
	if logger == nil {
		return func(cfg *Config) {}
	}

	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithSuccessStatus changes the HTTP status that selects the success schema.
func WithSuccessStatus(status int) func(*Config) {
	return func(cfg *Config) {
		cfg.SuccessStatus = status
	}
}

// WithSchemas replaces the built-in schema set.
func WithSchemas(set *schema.Set) func(*Config) {
	// don't override the default
	if set == nil {
		return func(cfg *Config) {}
	}

	return func(cfg *Config) {
		cfg.Schemas = set
	}
}

// WithIntegrity configures digest computation.
func WithIntegrity(opts ...func(*integrity.Config)) func(*Config) {
	return func(cfg *Config) {
		cfg.Integrity = append(cfg.Integrity, opts...)
	}
}

// WithMaxBodySize limits the size of verified bodies.
func WithMaxBodySize(size int64) func(*Config) {
	return func(cfg *Config) {
		cfg.MaxBodySize = size
	}
}

func defaultConfig() Config {
	return Config{
		Logger:        slog.Default(),
		SuccessStatus: constants.StatusOK,
		Schemas:       schema.Builtin(),
		MaxBodySize:   constants.DefaultMaxBodyBytes,
	}
}
