package fasta

import (
	"fmt"
	"strings"
)

// MaxSequences is the most records accepted in one submission.
const MaxSequences = 100

// DuplicateHeaderError is returned when two records share the same
// full header line.
type DuplicateHeaderError struct {
	Header string
}

func (e *DuplicateHeaderError) Error() string {
	return fmt.Sprintf("duplicate FASTA header found: %q. Please ensure all FASTA headers are unique", e.Header)
}

// DuplicateIDError is returned when two distinct headers reduce to the
// same sequence identifier.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate sequence ID found: %q. Please ensure all sequence IDs are unique", e.ID)
}

// MalformedHeaderError is returned when a header has no non-empty
// character after the '>' delimiter.
type MalformedHeaderError struct{}

func (e *MalformedHeaderError) Error() string {
	return "invalid FASTA header(s) found. Please ensure that each header starts with '>' plus at least one more non-empty character"
}

// TooManySequencesError is returned when a submission exceeds
// MaxSequences records.
type TooManySequencesError struct {
	Count int
}

func (e *TooManySequencesError) Error() string {
	return fmt.Sprintf("too many sequences: %d provided. Please limit the number of sequences to %d or fewer", e.Count, MaxSequences)
}

// Validate parses raw FASTA text and checks it against the submission
// rules: unique headers, unique sequence IDs, well-formed headers, and
// at most MaxSequences records. On success it returns the sequence IDs
// in header-encounter order. Validation is all-or-nothing: the first
// violated rule fails the whole submission.
func Validate(raw string) ([]string, error) {
	records, err := Parse(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}

	seqIDs := make([]string, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		id := SequenceID(rec.Header)
		if seen[id] {
			return nil, &DuplicateIDError{ID: id}
		}
		seen[id] = true
		seqIDs = append(seqIDs, id)
	}

	valid := 0
	for _, rec := range records {
		if len(strings.TrimSpace(rec.Header)) > 0 {
			valid++
		}
	}
	if valid != len(records) {
		return nil, &MalformedHeaderError{}
	}

	if len(records) > MaxSequences {
		return nil, &TooManySequencesError{Count: len(records)}
	}

	return seqIDs, nil
}
