package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mycoai/taxotagger-web/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Long: `Starts the TaxoTagger web interface on the specified port.

The web interface accepts FASTA text or file uploads, forwards the sequences
to the TaxoTagger search service, and displays the nearest-neighbor taxonomy
matches with a CSV download of the full result table.`,
		Example: `  # Start server on default port 8501
  taxotagger-web serve

  # Start server on custom port
  taxotagger-web serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := handlers.New()

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/validate", handler.HandleValidate)
			mux.HandleFunc("/api/search", handler.HandleSearch)
			mux.HandleFunc("/api/models", handler.HandleModels)
			mux.HandleFunc("/api/runs", handler.HandleRuns)
			mux.HandleFunc("/api/runs/", handler.HandleRunDetail)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("TaxoTagger interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8501", "Port to listen on")

	return cmd
}
