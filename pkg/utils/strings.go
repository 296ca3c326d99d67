package utils

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Formats an uint value into an fixed width hex string of n characters
func FormatUintHex[T constraints.Unsigned](value T, chars int) string {
	leadingZerosFormat := "0x%0" + fmt.Sprint(chars) + "s"
	return fmt.Sprintf(leadingZerosFormat, strconv.FormatUint(uint64(value), 16))
}

// Returns an string containing all formatted sequence items separated by a given separator
func FormatSlice[T any](input []T, separator string) string {
	var builder strings.Builder

	for i, value := range input {
		builder.WriteString(fmt.Sprint(value))

		if i < len(input)-1 {
			builder.WriteString(separator)
		}
	}

	return builder.String()
}
