package results

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mycoai/taxotagger-web/internal/models"
	"github.com/mycoai/taxotagger-web/internal/taxonomy"
)

// DisplayTable is the view rendered for one input sequence: a header
// row and one row per rank, with each level cell merged into a single
// "Label (Hit;Similarity)" string. It is derived from the stored
// records and never written back to them.
type DisplayTable struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// DisplayRows builds the display table for one sequence's records.
// Scored cells are merged into "Label (Hit;Similarity)" with the
// similarity rounded to three decimals; unscored cells show the label
// as-is, which is either the no-match sentinel or the empty string.
func DisplayRows(records []models.Record, levels []string) DisplayTable {
	header := make([]string, 0, len(levels)+1)
	header = append(header, "Rank")
	for _, level := range levels {
		header = append(header, taxonomy.Capitalize(level))
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, 0, len(levels)+1)
		row = append(row, strconv.Itoa(rec.Rank))
		for _, level := range levels {
			lr := rec.Levels[level]
			if lr.Scored {
				row = append(row, fmt.Sprintf("%s (%s;%s)", lr.Label, lr.Hit, formatSimilarity(lr.Similarity)))
			} else {
				row = append(row, lr.Label)
			}
		}
		rows = append(rows, row)
	}
	return DisplayTable{Header: header, Rows: rows}
}

// formatSimilarity rounds to three decimals and trims trailing zeros,
// so 0.95 displays as "0.95" rather than "0.950".
func formatSimilarity(sim float64) string {
	return strconv.FormatFloat(math.Round(sim*1000)/1000, 'g', -1, 64)
}
