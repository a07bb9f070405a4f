package textutil

import (
	"strings"
	"unicode/utf8"
)

// Split tokenizes input on any character contained in delimiters.
//
// Every maximal run of non-delimiter characters becomes one element, empty
// runs included, so consecutive delimiters produce empty strings and an input
// made only of n delimiters yields n+1 empty elements. The delimiters
// themselves are dropped. An empty input yields an empty, non-nil slice.
func Split(input string, delimiters string) []string {
	if input == "" {
		return []string{}
	}

	var parts []string
	start := 0
	for i := 0; i < len(input); {
		r, width := utf8.DecodeRuneInString(input[i:])
		// an invalid byte is data, even when U+FFFD is a delimiter
		invalid := r == utf8.RuneError && width == 1
		if !invalid && strings.ContainsRune(delimiters, r) {
			parts = append(parts, input[start:i])
			start = i + width
		}
		i += width
	}
	parts = append(parts, input[start:])

	return parts
}

// Lines splits input into lines, ignoring a single trailing newline so that
// a puzzle input ending in "\n" does not produce a spurious last element.
func Lines(input string) []string {
	return Split(strings.TrimSuffix(input, "\n"), "\n")
}
