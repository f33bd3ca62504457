package cmd

import (
	"fmt"
	"os"

	"github.com/mycoai/taxotagger-web/internal/fasta"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [fasta files...]",
		Short: "Validate FASTA input without running a search",
		Long: `Checks FASTA files against the submission rules: unique headers, unique
sequence IDs, well-formed headers, and at most 100 sequences in total.`,
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

			seqIDs, err := fasta.Validate(fasta.JoinFiles(contents...))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d valid sequences (max: %d)\n", len(seqIDs), fasta.MaxSequences)
			for _, id := range seqIDs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", id)
			}
			return nil
		},
	}

	return cmd
}
