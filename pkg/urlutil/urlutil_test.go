package urlutil

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		year     int
		day      int
		expected string
	}{
		{
			name:     "default advent of code endpoint",
			template: "https://adventofcode.com/{year}/day/{day}/input",
			year:     2023,
			day:      1,
			expected: "https://adventofcode.com/2023/day/1/input",
		},
		{
			name:     "two digit day is not padded",
			template: "https://adventofcode.com/{year}/day/{day}/input",
			year:     2015,
			day:      25,
			expected: "https://adventofcode.com/2015/day/25/input",
		},
		{
			name:     "mirror with query and default port",
			template: "HTTP://Mirror.Example:80/inputs?y={year}&d={day}",
			year:     2020,
			day:      7,
			expected: "http://mirror.example/inputs?y=2020&d=7",
		},
		{
			name:     "local test server keeps explicit port",
			template: "http://127.0.0.1:8080/{year}/day/{day}/input/",
			year:     2022,
			day:      3,
			expected: "http://127.0.0.1:8080/2022/day/3/input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandTemplate(tt.template, tt.year, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.String())
		})
	}
}

func TestExpandTemplate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{name: "missing year placeholder", template: "https://adventofcode.com/2023/day/{day}/input"},
		{name: "missing day placeholder", template: "https://adventofcode.com/{year}/day/1/input"},
		{name: "relative url", template: "/{year}/day/{day}/input"},
		{name: "unsupported scheme", template: "ftp://adventofcode.com/{year}/day/{day}/input"},
		{name: "unparsable url", template: "https://advent of code.com:port/{year}/{day}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandTemplate(tt.template, 2023, 1)
			assert.Error(t, err)
		})
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trailing slash removed",
			input:    "https://adventofcode.com/2023/day/1/input/",
			expected: "https://adventofcode.com/2023/day/1/input",
		},
		{
			name:     "fragment removed",
			input:    "https://adventofcode.com/2023/day/1#part2",
			expected: "https://adventofcode.com/2023/day/1",
		},
		{
			name:     "default https port removed",
			input:    "https://adventofcode.com:443/2023",
			expected: "https://adventofcode.com/2023",
		},
		{
			name:     "root path kept",
			input:    "https://adventofcode.com/",
			expected: "https://adventofcode.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := url.Parse(tt.input)
			require.NoError(t, err)

			result := Canonicalize(*parsed)
			assert.Equal(t, tt.expected, result.String())

			again := Canonicalize(result)
			assert.Equal(t, result.String(), again.String(), "must be idempotent")
		})
	}
}
