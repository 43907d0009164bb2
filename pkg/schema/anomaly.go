package schema

import "fmt"

// AnomalyKind names a protocol irregularity that did not prevent classification.
type AnomalyKind string

const (
	// AnomalyRepeatedField means a field tag appeared more than once. The last value was kept.
	AnomalyRepeatedField AnomalyKind = "repeated_field"

	// AnomalyMisnestedField means a field was closed by a different tag. Its value was dropped.
	AnomalyMisnestedField AnomalyKind = "misnested_field"

	// AnomalySeparatorInValue means a field value contains the digest separator.
	AnomalySeparatorInValue AnomalyKind = "separator_in_value"

	// AnomalyErrorWithOKStatus means an error document arrived with the success status.
	AnomalyErrorWithOKStatus AnomalyKind = "error_with_ok_status"
)

// Anomaly is a protocol irregularity observed while verifying one document.
type Anomaly struct {
	Kind  AnomalyKind `json:"kind"`
	Field Field       `json:"field,omitempty"`
}

func (a Anomaly) String() string {
	if a.Field == "" {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s(%s)", a.Kind, a.Field)
}
