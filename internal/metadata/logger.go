package metadata

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const DefaultLogLevel = "warn"

// ParseLevel accepts zerolog level names, case-insensitively.
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLogLevel
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	if parsed == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return parsed, nil
}

// NewLogger builds a timestamped logger writing to w.
// json=false renders a human readable console format.
func NewLogger(w io.Writer, level string, json bool) (zerolog.Logger, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	}
	return zerolog.New(out).Level(parsed).With().Timestamp().Logger(), nil
}
