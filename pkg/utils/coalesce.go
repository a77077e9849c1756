// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package utils

// Coalesce returns the first non-zero value from the provided values.
// If all values are zero, it returns the zero value of the type.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// CoalescePtr returns the value of the first non-nil pointer, or the fallback
// if every pointer is nil.
func CoalescePtr[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
