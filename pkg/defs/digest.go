package defs

// DigestAlgorithm names the one-way hash used to compute response digests.
type DigestAlgorithm string

// Supported digest algorithms.
const (
	// DigestSHA512 is what the gateway uses for its response hashes.
	DigestSHA512 DigestAlgorithm = "sha512"
	DigestSHA256 DigestAlgorithm = "sha256"
)

// ParseDigestAlgorithmStr parses a string into a DigestAlgorithm (case-insensitive).
func ParseDigestAlgorithmStr(algorithm string) (DigestAlgorithm, error) {
	return parseEnumCaseInsensitive(algorithm, DigestSHA512, DigestSHA256)
}

// Canonicalization names the way field values are concatenated before hashing.
type Canonicalization string

// Supported canonicalization modes.
const (
	// CanonicalJoined joins values and secret with a separator, exactly as the gateway does.
	CanonicalJoined Canonicalization = "joined"

	// CanonicalLengthPrefixed writes every value with a varint length prefix,
	// so a separator inside a value cannot shift field boundaries.
	CanonicalLengthPrefixed Canonicalization = "length-prefixed"
)

// ParseCanonicalizationStr parses a string into a Canonicalization (case-insensitive).
func ParseCanonicalizationStr(mode string) (Canonicalization, error) {
	return parseEnumCaseInsensitive(mode, CanonicalJoined, CanonicalLengthPrefixed)
}
