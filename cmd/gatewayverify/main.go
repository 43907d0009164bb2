// Command gatewayverify verifies a saved payment gateway response.
//
// It reads the response body from a file (or standard input when the file is "-"),
// prints the verification outcome as JSON and exits with a code describing the outcome.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/config"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/constants"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/verifier"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitVerified          = 0
	exitGatewayError      = 1
	exitUsage             = 2
	exitParseFailure      = 3
	exitParameterMismatch = 4
	exitIntegrityMismatch = 5
)

var errMissingSecret = errors.New("payment key is required: use --secret or " + constants.EnvSecret)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	exitCode := exitUsage

	var (
		operation string
		status    int
		secret    string
	)

	root := &cobra.Command{
		Use:           "gatewayverify --operation <name> [--status <code>] <response.xml|->",
		Short:         "Verify a payment gateway response",
		Long:          "Verifies a payment gateway response body against the schema of the operation and the digest it carries.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if secret == "" {
				secret = cfg.Verifier.Secret.Reveal()
			}
			if secret == "" {
				return errMissingSecret
			}
			if !cmd.Flags().Changed("status") {
				status = cfg.Verifier.SuccessStatus
			}

			op, err := schema.ParseOperation(operation)
			if err != nil {
				return fmt.Errorf("invalid --operation: %w", err)
			}

			body, err := readDocument(positional[0], stdin)
			if err != nil {
				return err
			}

			logger, err := cfg.Logger(stderr)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			v, err := verifier.New(cfg.VerifierOptions(logger)...)
			if err != nil {
				return fmt.Errorf("failed to create verifier: %w", err)
			}

			outcome := v.VerifyBytes(body, status, secret, op)

			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(outcome); err != nil {
				return fmt.Errorf("failed to write outcome: %w", err)
			}

			exitCode = exitCodeFor(outcome.Status)
			return nil
		},
	}

	root.Flags().StringVarP(&operation, "operation", "o", "", "gateway operation the response answers (create, update, refund, resend_email, cancel)")
	root.Flags().IntVarP(&status, "status", "s", 0, "HTTP status the response arrived with (defaults to the configured success status)")
	root.Flags().StringVar(&secret, "secret", "", "shared payment key (defaults to GATEWAYVERIFY_VERIFIER_SECRET)")
	_ = root.MarkFlagRequired("operation")

	root.AddCommand(&cobra.Command{
		Use:   "operations",
		Short: "List the operations with a built-in response schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, op := range schema.Builtin().Operations() {
				if _, err := fmt.Fprintln(stdout, op); err != nil {
					return fmt.Errorf("failed to write operations: %w", err)
				}
			}
			exitCode = exitVerified
			return nil
		},
	})

	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	return exitCode
}

func readDocument(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read response from standard input: %w", err)
		}
		return body, nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read response file: %w", err)
	}
	return body, nil
}

func exitCodeFor(status verifier.Status) int {
	switch status {
	case verifier.Verified:
		return exitVerified
	case verifier.GatewayError:
		return exitGatewayError
	case verifier.ParameterMismatch:
		return exitParameterMismatch
	case verifier.IntegrityMismatch:
		return exitIntegrityMismatch
	default:
		return exitParseFailure
	}
}
