package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mycoai/taxotagger-web/internal/models"
	"github.com/mycoai/taxotagger-web/internal/taxonomy"
)

// Flatten combines the per-sequence record lists of a run into one flat
// table, sequences in submission order, ranks in ascending order.
func Flatten(run *models.Run) []models.Record {
	var flat []models.Record
	for _, seqID := range run.SequenceIDs {
		flat = append(flat, run.Records[seqID]...)
	}
	return flat
}

// csvHeader builds the export column names: Sequence_ID, Rank, then a
// {Level, Level_Hit, Level_Similarity} triple per taxonomy level.
func csvHeader(levels []string) []string {
	header := []string{"Sequence_ID", "Rank"}
	for _, level := range levels {
		col := taxonomy.Capitalize(level)
		header = append(header, col, col+"_Hit", col+"_Similarity")
	}
	return header
}

// WriteCSV writes the flat result table to w. Similarity is written at
// full precision; hit and similarity cells are blank for unscored
// slots. The exported rows are the stored records, not the merged
// display view.
func WriteCSV(w io.Writer, records []models.Record, levels []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(levels)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.SequenceID, strconv.Itoa(rec.Rank)}
		for _, level := range levels {
			lr := rec.Levels[level]
			if lr.Scored {
				row = append(row, lr.Label, lr.Hit, strconv.FormatFloat(lr.Similarity, 'g', -1, 64))
			} else {
				row = append(row, lr.Label, "", "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename stamps the download name with the run time, matching
// the taxotagger_results_2006-01-02_15.04.05.csv convention.
func ExportFilename(ext string, at time.Time) string {
	return fmt.Sprintf("taxotagger_results_%s.%s", at.Format("2006-01-02_15.04.05"), ext)
}
