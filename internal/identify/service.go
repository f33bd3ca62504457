// Package identify runs one identification request end to end:
// validate the FASTA input, hand it to the search engine through a
// temporary file, and assemble the returned matches into result
// records. Each request gets a fresh Run; nothing is shared between
// submissions.
package identify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mycoai/taxotagger-web/internal/engine"
	"github.com/mycoai/taxotagger-web/internal/fasta"
	"github.com/mycoai/taxotagger-web/internal/models"
	"github.com/mycoai/taxotagger-web/internal/results"
	"github.com/mycoai/taxotagger-web/internal/taxonomy"
)

// TopN bounds for one request.
const (
	MinTopN     = 1
	MaxTopN     = 5
	DefaultTopN = 2
)

type Service struct {
	searcher engine.Searcher
}

func NewService(searcher engine.Searcher) *Service {
	return &Service{searcher: searcher}
}

// NormalizeTopN applies the default for zero and rejects out-of-range
// values.
func NormalizeTopN(topN int) (int, error) {
	if topN == 0 {
		return DefaultTopN, nil
	}
	if topN < MinTopN || topN > MaxTopN {
		return 0, fmt.Errorf("top_n must be between %d and %d, got %d", MinTopN, MaxTopN, topN)
	}
	return topN, nil
}

// Run validates fastaContent, submits it to the search engine, and
// returns the assembled run. Validation failures and engine failures
// abort the request; a result-count mismatch does not, and is recorded
// on the run as a warning instead.
func (s *Service) Run(ctx context.Context, fastaContent, modelID string, topN int) (*models.Run, error) {
	topN, err := NormalizeTopN(topN)
	if err != nil {
		return nil, err
	}
	if modelID == "" {
		modelID = os.Getenv("TAXOTAGGER_MODEL")
	}
	if modelID == "" {
		modelID = taxonomy.DefaultModel()
	}
	if !taxonomy.ValidModel(modelID) {
		return nil, fmt.Errorf("unknown embedding model: %s", modelID)
	}

	seqIDs, err := fasta.Validate(fastaContent)
	if err != nil {
		return nil, err
	}
	if len(seqIDs) == 0 {
		return nil, fmt.Errorf("no FASTA records found in input")
	}

	res, err := s.search(ctx, fastaContent, modelID, topN)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	run := &models.Run{
		ID:          fmt.Sprintf("run_%d", now.UnixNano()),
		SequenceIDs: seqIDs,
		Model:       modelID,
		TopN:        topN,
		CreatedAt:   now,
	}
	run.Records, run.Warning = results.Assemble(res, seqIDs, topN, taxonomy.Levels)
	if run.Warning != nil {
		slog.Warn("Result count mismatch",
			"submitted", run.Warning.Submitted,
			"returned", run.Warning.Returned,
			"missing_ids", run.Warning.MissingIDs)
	}

	slog.Info("Identification run complete", "run_id", run.ID, "sequences", len(seqIDs), "model", modelID, "top_n", topN)
	return run, nil
}

// search writes the FASTA content to a temporary file for the duration
// of one engine call. The file is removed on every path out.
func (s *Service) search(ctx context.Context, fastaContent, modelID string, topN int) (engine.Results, error) {
	tmp, err := os.CreateTemp("", "taxotagger-*.fasta")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary FASTA file: %w", err)
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil {
			slog.Error("Failed to remove temporary FASTA file", "path", tmp.Name(), "err", err)
		}
	}()

	if _, err := tmp.WriteString(fastaContent); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temporary FASTA file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary FASTA file: %w", err)
	}

	res, err := s.searcher.Search(ctx, tmp.Name(), modelID, topN)
	if err != nil {
		return nil, &EngineError{Err: err}
	}
	return res, nil
}

// EngineError wraps a failure from the external search engine. The
// engine's own message is preserved so it can be surfaced to the user
// unmodified.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return "search engine failed: " + e.Err.Error()
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
