package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxotagger-web",
		Short: "DNA barcode taxonomy identification, powered by semantic search",
		Long: `TaxoTagger Web is the front-end for the TaxoTagger search engine.

It serves a browser interface for submitting DNA barcode sequences in FASTA
format, and a CLI for running identifications and exporting the results.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newIdentifyCmd())
	cmd.AddCommand(newValidateCmd())

	return cmd
}
