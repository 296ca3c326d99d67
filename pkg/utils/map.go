package utils

import "sort"

// Generates a sequence constructed by applying a function to all elements of a given input sequence
func Map[T any, U any](input []T, mapFunction func(T) U) []U {
	output := make([]U, len(input))

	for i := range input {
		output[i] = mapFunction(input[i])
	}

	return output
}

// Returns an array with all the keys of a map
func Keys[Key comparable, Value any](input map[Key]Value) []Key {
	keys := make([]Key, 0, len(input))

	for key := range input {
		keys = append(keys, key)
	}

	return keys
}

// Returns an array with all the keys of a string-keyed map, sorted
func SortedKeys[Value any](input map[string]Value) []string {
	keys := Keys(input)
	sort.Strings(keys)
	return keys
}

// Builds a set from a sequence of comparable items
func MakeSet[T comparable](input []T) map[T]struct{} {
	set := make(map[T]struct{}, len(input))

	for _, value := range input {
		set[value] = struct{}{}
	}

	return set
}
