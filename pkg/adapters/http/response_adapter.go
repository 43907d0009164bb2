package httpadapter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/bsv-blockchain/go-gateway-verifier/pkg/constants"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/internal/logging"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/schema"
	"github.com/bsv-blockchain/go-gateway-verifier/pkg/verifier"
	"github.com/go-softwarelab/common/pkg/to"
)

var (
	ErrNoResponse   = errors.New("no response to verify")
	ErrBodyTooLarge = errors.New("response body exceeds limit")
)

// Options configures the response verifier.
type Options struct {
	Logger      *slog.Logger
	MaxBodySize int64
}

// WithLogger configures the adapter to use the provided logger.
func WithLogger(logger *slog.Logger) func(*Options) {
	// don't override the default
	if logger == nil {
		return func(*Options) {}
	}

	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithMaxBodySize limits how many bytes of the body are read.
func WithMaxBodySize(size int64) func(*Options) {
	return func(opts *Options) {
		opts.MaxBodySize = size
	}
}

// ResponseVerifier connects received HTTP responses to the transport-agnostic verifier.
type ResponseVerifier struct {
	verifier    *verifier.Verifier
	logger      *slog.Logger
	maxBodySize int64
}

// NewResponseVerifier creates an adapter verifying HTTP responses of the gateway.
func NewResponseVerifier(v *verifier.Verifier, opts ...func(*Options)) *ResponseVerifier {
	if v == nil {
		panic("verifier must be provided to create response verifier")
	}

	options := to.OptionsWithDefault(Options{
		Logger:      slog.Default(),
		MaxBodySize: constants.DefaultMaxBodyBytes,
	}, opts...)

	return &ResponseVerifier{
		verifier:    v,
		logger:      logging.Child(options.Logger, "HTTPResponseVerifier"),
		maxBodySize: options.MaxBodySize,
	}
}

// Verify reads and closes the response body and verifies it as the response to the operation.
// Failures to read the body are reported as ParseFailure.
func (a *ResponseVerifier) Verify(resp *http.Response, secret string, op schema.Operation) verifier.Outcome {
	if resp == nil || resp.Body == nil {
		return readFailure(op, ErrNoResponse)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Warn("Failed to close response body", logging.Error(err))
		}
	}()

	a.logger.Debug("Processing HTTP response",
		slog.Int("status", resp.StatusCode),
		slog.String("contentType", resp.Header.Get("Content-Type")))

	if !isXML(resp.Header.Get("Content-Type")) {
		a.logger.Debug("Response is not announced as XML, verifying anyway")
	}

	body, err := a.readBody(resp.Body)
	if err != nil {
		a.logger.Warn("Failed to read response body", logging.Error(err))
		return readFailure(op, err)
	}

	return a.verifier.VerifyDocument(verifier.RawDocument{
		Body:   string(body),
		Status: resp.StatusCode,
	}, secret, op)
}

func (a *ResponseVerifier) readBody(body io.Reader) ([]byte, error) {
	if a.maxBodySize <= 0 {
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(body, a.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > a.maxBodySize {
		return nil, fmt.Errorf("%w of %d bytes", ErrBodyTooLarge, a.maxBodySize)
	}
	return data, nil
}

func isXML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == constants.ContentTypeXML || mediaType == "application/xml"
}

func readFailure(op schema.Operation, err error) verifier.Outcome {
	return verifier.Outcome{
		Status:    verifier.ParseFailure,
		Operation: op,
		Reason:    err.Error(),
	}
}
