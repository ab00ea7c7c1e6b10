// Package utils holds small generic helpers shared across packages.
package utils

// Value dereferences v, returning T's zero value when v is nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v. Optional filter and update fields take
// pointers, so literals need a hop through Ptr.
func Ptr[T any](v T) *T {
	return &v
}
