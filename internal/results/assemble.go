// Package results reshapes the engine's nested per-level match lists
// into flat per-(sequence, rank) records, and renders those records for
// display and export.
package results

import (
	"sort"

	"github.com/mycoai/taxotagger-web/internal/engine"
	"github.com/mycoai/taxotagger-web/internal/models"
)

// Assemble flattens res into one record per (sequence, rank). seqIDs
// must be the validated identifiers in submission order; the engine's
// per-sequence indexing is positional against that order. If the
// returned slot count does not match len(seqIDs) a CountMismatch is
// reported and assembly continues best-effort.
//
// Two distinct degradations are folded into each record:
//   - A rank beyond what the engine returned for a sequence/level gets
//     the NoMatchLabel sentinel with no hit or score.
//   - A match whose entity has an empty value for the level gets empty
//     label, hit, and score. The slot existed; the label did not.
func Assemble(res engine.Results, seqIDs []string, topN int, levels []string) (map[string][]models.Record, *models.CountMismatch) {
	var warning *models.CountMismatch
	if len(levels) > 0 {
		returned := len(res[levels[0]])
		if returned != len(seqIDs) {
			warning = &models.CountMismatch{
				Submitted:  len(seqIDs),
				Returned:   returned,
				MissingIDs: missingIDs(res, seqIDs, levels),
			}
		}
	}

	bySeq := make(map[string][]models.Record, len(seqIDs))
	for i, seqID := range seqIDs {
		records := make([]models.Record, 0, topN)
		for j := 0; j < topN; j++ {
			rec := models.Record{
				SequenceID: seqID,
				Rank:       j + 1,
				Levels:     make(map[string]models.LevelResult, len(levels)),
			}
			for _, level := range levels {
				perSeq := res[level]
				if i >= len(perSeq) || j >= len(perSeq[i]) {
					rec.Levels[level] = models.LevelResult{Label: models.NoMatchLabel}
					continue
				}
				match := perSeq[i][j]
				if label := match.Entity[level]; label != "" {
					rec.Levels[level] = models.LevelResult{
						Label:      label,
						Hit:        match.ID,
						Similarity: match.Distance,
						Scored:     true,
					}
				} else {
					rec.Levels[level] = models.LevelResult{}
				}
			}
			records = append(records, rec)
		}
		bySeq[seqID] = records
	}
	return bySeq, warning
}

// missingIDs returns the submitted identifiers that appear in no
// match's ID across any level. Once the positional correspondence is
// broken, match-carried IDs are the only way to tell which inputs the
// engine actually processed.
func missingIDs(res engine.Results, seqIDs []string, levels []string) []string {
	processed := make(map[string]bool)
	for _, level := range levels {
		for _, ranked := range res[level] {
			for _, match := range ranked {
				if match.ID != "" {
					processed[match.ID] = true
				}
			}
		}
	}

	var missing []string
	for _, id := range seqIDs {
		if !processed[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}
