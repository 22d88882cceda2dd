// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package pointer provides generic helpers for optional values.

Backend payloads model absent fields as nil pointers; these helpers keep
call sites free of temporary variables.
*/
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value if p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning fallback if p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Clone returns a pointer to a copy of *p, or nil.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
