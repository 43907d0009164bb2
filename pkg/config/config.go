// Package config loads the verifier configuration from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/constants"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/defs"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/integrity"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/internal/logging"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/verifier"
	"github.com/spf13/viper"
)

// Config holds all verifier configuration.
type Config struct {
	Verifier VerifierConfig
	Log      LogConfig
}

// VerifierConfig holds gateway response verification settings.
type VerifierConfig struct {
	SuccessStatus    int
	Algorithm        defs.DigestAlgorithm
	Canonicalization defs.Canonicalization
	Separator        string
	MaxBodyBytes     int64
	Secret           Secret
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  defs.LogLevel
	Format defs.LogFormat
}

// Secret is the shared payment key. It never prints its value.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Reveal returns the secret value for digest computation.
func (s Secret) Reveal() string {
	return string(s)
}

// Load reads configuration from environment variables with the GATEWAYVERIFY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Verifier defaults
	v.SetDefault("verifier.success_status", constants.StatusOK)
	v.SetDefault("verifier.algorithm", string(defs.DigestSHA512))
	v.SetDefault("verifier.canonicalization", string(defs.CanonicalJoined))
	v.SetDefault("verifier.separator", constants.DigestSeparator)
	v.SetDefault("verifier.max_body_bytes", constants.DefaultMaxBodyBytes)
	v.SetDefault("verifier.secret", "")

	// Log defaults
	v.SetDefault("log.level", string(defs.LogLevelInfo))
	v.SetDefault("log.format", string(defs.TextFormat))

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"verifier.success_status":   constants.EnvPrefix + "_VERIFIER_SUCCESS_STATUS",
		"verifier.algorithm":        constants.EnvPrefix + "_VERIFIER_ALGORITHM",
		"verifier.canonicalization": constants.EnvPrefix + "_VERIFIER_CANONICALIZATION",
		"verifier.separator":        constants.EnvPrefix + "_VERIFIER_SEPARATOR",
		"verifier.max_body_bytes":   constants.EnvPrefix + "_VERIFIER_MAX_BODY_BYTES",
		"verifier.secret":           constants.EnvSecret,
		"log.level":                 constants.EnvPrefix + "_LOG_LEVEL",
		"log.format":                constants.EnvPrefix + "_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	algorithm, err := defs.ParseDigestAlgorithmStr(v.GetString("verifier.algorithm"))
	if err != nil {
		return nil, fmt.Errorf("invalid verifier.algorithm: %w", err)
	}
	canonicalization, err := defs.ParseCanonicalizationStr(v.GetString("verifier.canonicalization"))
	if err != nil {
		return nil, fmt.Errorf("invalid verifier.canonicalization: %w", err)
	}
	level, err := defs.ParseLogLevelStr(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log.level: %w", err)
	}
	format, err := defs.ParseLogFormatStr(v.GetString("log.format"))
	if err != nil {
		return nil, fmt.Errorf("invalid log.format: %w", err)
	}

	cfg := &Config{
		Verifier: VerifierConfig{
			SuccessStatus:    v.GetInt("verifier.success_status"),
			Algorithm:        algorithm,
			Canonicalization: canonicalization,
			Separator:        v.GetString("verifier.separator"),
			MaxBodyBytes:     v.GetInt64("verifier.max_body_bytes"),
			Secret:           Secret(v.GetString("verifier.secret")),
		},
		Log: LogConfig{
			Level:  level,
			Format: format,
		},
	}

	if cfg.Verifier.SuccessStatus < 100 || cfg.Verifier.SuccessStatus > 599 {
		return nil, fmt.Errorf("invalid verifier.success_status: %d is not an HTTP status", cfg.Verifier.SuccessStatus)
	}

	return cfg, nil
}

// Logger creates the logger described by the log settings.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	return logging.New(w, c.Log.Level, c.Log.Format)
}

// VerifierOptions maps the verifier settings onto verifier options.
func (c *Config) VerifierOptions(logger *slog.Logger) []func(*verifier.Config) {
	return []func(*verifier.Config){
		verifier.WithLogger(logger),
		verifier.WithSuccessStatus(c.Verifier.SuccessStatus),
		verifier.WithMaxBodySize(c.Verifier.MaxBodyBytes),
		verifier.WithIntegrity(
			integrity.WithAlgorithm(c.Verifier.Algorithm),
			integrity.WithCanonicalization(c.Verifier.Canonicalization),
			integrity.WithSeparator(c.Verifier.Separator),
		),
	}
}
