package results

import (
	"fmt"
	"io"

	"github.com/mycoai/taxotagger-web/internal/models"
	"github.com/parquet-go/parquet-go"
)

// parquetLevel is one taxonomy level cell of a parquet row.
type parquetLevel struct {
	Level      string  `parquet:"level"`
	Label      string  `parquet:"label"`
	Hit        string  `parquet:"hit"`
	Similarity float64 `parquet:"similarity"`
	Scored     bool    `parquet:"scored"`
}

// parquetRow is one flat result row in the parquet export.
type parquetRow struct {
	SequenceID string         `parquet:"sequence_id"`
	Rank       int32          `parquet:"rank"`
	Levels     []parquetLevel `parquet:"levels,list"`
}

// WriteParquet writes the flat result table to w as parquet, one row
// per (sequence, rank) with a list of per-level cells in level order.
func WriteParquet(w io.Writer, records []models.Record, levels []string) error {
	pw := parquet.NewGenericWriter[parquetRow](w)

	rows := make([]parquetRow, 0, len(records))
	for _, rec := range records {
		row := parquetRow{
			SequenceID: rec.SequenceID,
			Rank:       int32(rec.Rank),
			Levels:     make([]parquetLevel, 0, len(levels)),
		}
		for _, level := range levels {
			lr := rec.Levels[level]
			row.Levels = append(row.Levels, parquetLevel{
				Level:      level,
				Label:      lr.Label,
				Hit:        lr.Hit,
				Similarity: lr.Similarity,
				Scored:     lr.Scored,
			})
		}
		rows = append(rows, row)
	}

	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
