package models

import "time"

// NoMatchLabel marks a rank slot for which the engine returned fewer
// matches than requested.
const NoMatchLabel = "No match found"

// LevelResult holds the outcome for one taxonomy level of one result
// record. Scored is false both when the engine returned no match for
// the slot (Label is NoMatchLabel) and when the match's entity carried
// an empty label for the level (all fields empty); in both cases the
// Hit and Similarity columns are left blank on export.
type LevelResult struct {
	Label      string  `json:"label"`
	Hit        string  `json:"hit,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
	Scored     bool    `json:"scored"`
}

// Record is one flattened result row: the matches for one input
// sequence at one rank, across all taxonomy levels.
type Record struct {
	SequenceID string                 `json:"sequence_id"`
	Rank       int                    `json:"rank"`
	Levels     map[string]LevelResult `json:"levels"`
}

// CountMismatch reports a discrepancy between the number of submitted
// sequences and the number of result slots the engine returned. The
// missing IDs are a best-effort diagnostic: identifiers absent from
// the union of all match-carried IDs.
type CountMismatch struct {
	Submitted  int      `json:"submitted"`
	Returned   int      `json:"returned"`
	MissingIDs []string `json:"missing_ids,omitempty"`
}

// Run is one completed identification request: the validated input,
// the settings used, and the assembled results. A Run is constructed
// fresh per submission and never mutated afterwards.
type Run struct {
	ID          string              `json:"id"`
	SequenceIDs []string            `json:"sequence_ids"`
	Model       string              `json:"model"`
	TopN        int                 `json:"top_n"`
	Records     map[string][]Record `json:"records"`
	Warning     *CountMismatch      `json:"warning,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
