// Package engine talks to the TaxoTagger search service. The service
// embeds the submitted DNA sequences and performs a semantic similarity
// search against its reference database; this package only moves bytes
// and decodes the response.
package engine

import "context"

// Match is one candidate result for an input sequence at one taxonomy
// level: the ID of the matched reference sequence, the cosine
// similarity between the input and the match (0 = no match, 1 =
// perfect match), and the matched entity's taxonomy labels keyed by
// level name.
type Match struct {
	ID       string            `json:"id"`
	Distance float64           `json:"distance"`
	Entity   map[string]string `json:"entity"`
}

// Results maps a taxonomy level to the ranked match lists for each
// submitted sequence. The outer slice is indexed by submission order,
// the inner slice by rank (best first). The engine guarantees one
// result slot per submitted sequence in submission order; callers must
// length-check against their submission before trusting the indexing.
type Results map[string][][]Match

// Searcher is the contract this application expects of the search
// engine: given a FASTA file on disk, an embedding model ID, and a
// per-sequence result limit, return ranked matches per taxonomy level.
type Searcher interface {
	Search(ctx context.Context, fastaPath, modelID string, limit int) (Results, error)
}
