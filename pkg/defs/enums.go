package defs

import (
	"fmt"
	"strings"

	"github.com/go-softwarelab/common/pkg/is"
)

func parseEnumCaseInsensitive[T ~string](value string, allowed ...T) (T, error) {
	var zero T
	if is.BlankString(value) {
		return zero, fmt.Errorf("empty value, expected one of %v", allowed)
	}

	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range allowed {
		if strings.ToLower(string(candidate)) == normalized {
			return candidate, nil
		}
	}

	return zero, fmt.Errorf("invalid value %q, expected one of %v", value, allowed)
}
