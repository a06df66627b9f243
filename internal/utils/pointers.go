// Package utils holds small generic helpers shared by the session and API code
package utils

// Value dereferences v, returning the zero value for a nil pointer.
// Optional AuthResponse fields are read this way.
func Value[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// Ptr returns a pointer to a copy of v
func Ptr[T any](v T) *T {
	return &v
}
