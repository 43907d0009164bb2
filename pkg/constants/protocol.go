package constants

// Gateway response protocol constants.
// These values describe how the payment gateway answers API calls.
const (
	// StatusOK is the only HTTP status for which the gateway sends a success document.
	StatusOK = 200

	// DigestSeparator joins field values and the shared secret in the canonical digest input.
	DigestSeparator = ";"

	// ContentTypeXML is the content type announced by the gateway for response documents.
	ContentTypeXML = "text/xml"

	// DefaultMaxBodyBytes limits how much of a response body is read before verification.
	DefaultMaxBodyBytes int64 = 1 << 20
)

// Names of the configuration environment variables.
const (
	// EnvPrefix is the prefix of every environment variable read by the config package.
	EnvPrefix = "GATEWAYVERIFY"

	// EnvSecret holds the shared secret (payment key) when it is not passed explicitly.
	EnvSecret = EnvPrefix + "_VERIFIER_SECRET"
)
