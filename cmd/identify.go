package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mycoai/taxotagger-web/internal/engine"
	"github.com/mycoai/taxotagger-web/internal/fasta"
	"github.com/mycoai/taxotagger-web/internal/identify"
	"github.com/mycoai/taxotagger-web/internal/results"
	"github.com/mycoai/taxotagger-web/internal/taxonomy"
	"github.com/spf13/cobra"
)

func newIdentifyCmd() *cobra.Command {
	var (
		model   string
		topN    int
		format  string
		output  string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "identify [fasta files...]",
		Short: "Identify DNA barcode sequences from FASTA files",
		Long: `Runs a taxonomy identification for the sequences in one or more FASTA
files and writes the combined result table.

Multiple files are joined before submission; the per-file sequence caps and
header uniqueness rules apply to the combined input.`,
		Example: `  # Identify sequences with the default model
  taxotagger-web identify sample.fasta

  # Top 5 matches per sequence, parquet output
  taxotagger-web identify --top-n 5 --format parquet -o results.parquet sample.fasta`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var contents []string
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				contents = append(contents, string(data))
			}
			fastaContent := fasta.JoinFiles(contents...)

			service := identify.NewService(engine.NewClient(baseURL, ""))
			run, err := service.Run(cmd.Context(), fastaContent, model, topN)
			if err != nil {
				return err
			}

			if run.Warning != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: submitted %d sequences but the engine returned %d result slots\n",
					run.Warning.Submitted, run.Warning.Returned)
				for _, id := range run.Warning.MissingIDs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  not processed: %s\n", id)
				}
			}

			if output == "" {
				output = results.ExportFilename(format, run.CreatedAt)
			}
			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer out.Close()

			switch format {
			case "csv":
				err = results.WriteCSV(out, results.Flatten(run), taxonomy.Levels)
			case "yaml":
				err = results.WriteYAML(out, run)
			case "parquet":
				err = results.WriteParquet(out, results.Flatten(run), taxonomy.Levels)
			default:
				return fmt.Errorf("unsupported format: %s (supported: csv, yaml, parquet)", format)
			}
			if err != nil {
				return err
			}

			absPath, _ := filepath.Abs(output)
			fmt.Fprintf(cmd.OutOrStdout(), "Results for %d sequences saved to: %s\n", len(run.SequenceIDs), absPath)
			return nil
		},
	}

	modelIDs := make([]string, 0, len(taxonomy.Models))
	for _, m := range taxonomy.Models {
		modelIDs = append(modelIDs, m.ID)
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Embedding model ("+strings.Join(modelIDs, ", ")+")")
	cmd.Flags().IntVarP(&topN, "top-n", "n", identify.DefaultTopN, "Number of top matches per sequence (1-5)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format (csv, yaml, parquet)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: timestamped name in the current directory)")
	cmd.Flags().StringVar(&baseURL, "engine-url", "", "TaxoTagger service URL (default: $TAXOTAGGER_URL)")

	return cmd
}
