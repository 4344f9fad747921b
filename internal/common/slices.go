package common

// UnknownStr is the fallback rendering for unrecognized enum values.
const UnknownStr = "unknown"

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}
