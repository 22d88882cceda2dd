// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package slice complements the standard [slices] package with generic
Map and Filter helpers.
*/
package slice

// Map applies transform to every element. A nil input yields nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter keeps the elements for which predicate holds.
func Filter[T any](input []T, predicate func(T) bool) []T {
	if input == nil {
		return nil
	}

	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}
