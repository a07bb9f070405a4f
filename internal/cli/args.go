package cmd

import (
	"fmt"
	"strconv"

	"github.com/rohmanhakim/rudolf/internal/puzzle"
)

func parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("year must be a number, got %q", raw)
	}
	return year, nil
}

func parseIdentifier(rawYear string, rawDay string) (puzzle.Identifier, error) {
	year, err := parseYear(rawYear)
	if err != nil {
		return puzzle.Identifier{}, err
	}
	day, err := strconv.Atoi(rawDay)
	if err != nil {
		return puzzle.Identifier{}, fmt.Errorf("day must be a number, got %q", rawDay)
	}
	id := puzzle.NewIdentifier(year, day)
	if idErr := id.Validate(); idErr != nil {
		return puzzle.Identifier{}, idErr
	}
	return id, nil
}
