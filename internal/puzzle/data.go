package puzzle

import (
	"fmt"
)

const (
	FirstYear = 2015
	FirstDay  = 1
	LastDay   = 25
)

/*
Identifier
  - Composite lookup key for a puzzle input
  - Immutable once constructed
  - Puzzle text for a given year and day never changes upstream,
    so an Identifier maps to at most one text for the lifetime of the store
*/
type Identifier struct {
	year int
	day  int
}

func NewIdentifier(year int, day int) Identifier {
	return Identifier{
		year: year,
		day:  day,
	}
}

func (i Identifier) Year() int {
	return i.year
}

func (i Identifier) Day() int {
	return i.day
}

// Validate rejects identifiers that cannot name a published puzzle.
// It does not check whether the puzzle has been released yet.
func (i Identifier) Validate() *IdentifierError {
	if i.year < FirstYear {
		return &IdentifierError{
			Message: fmt.Sprintf("year %d is before %d", i.year, FirstYear),
			Cause:   ErrCauseYearOutOfRange,
		}
	}
	if i.day < FirstDay || i.day > LastDay {
		return &IdentifierError{
			Message: fmt.Sprintf("day %d is outside %d..%d", i.day, FirstDay, LastDay),
			Cause:   ErrCauseDayOutOfRange,
		}
	}
	return nil
}

func (i Identifier) String() string {
	return fmt.Sprintf("%d/day/%02d", i.year, i.day)
}

// Record is one persisted puzzle input. Records are append-only.
type Record struct {
	identifier Identifier
	text       string
}

func NewRecord(identifier Identifier, text string) Record {
	return Record{
		identifier: identifier,
		text:       text,
	}
}

func (r Record) Identifier() Identifier {
	return r.identifier
}

func (r Record) Text() string {
	return r.text
}

// Size is the text length in bytes.
func (r Record) Size() int {
	return len(r.text)
}
