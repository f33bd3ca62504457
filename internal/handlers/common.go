package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mycoai/taxotagger-web/internal/engine"
	"github.com/mycoai/taxotagger-web/internal/fasta"
	"github.com/mycoai/taxotagger-web/internal/identify"
	"github.com/mycoai/taxotagger-web/internal/models"
	"github.com/mycoai/taxotagger-web/internal/storage"
)

// maxUploadBytes caps one uploaded FASTA file at 10MB.
const maxUploadBytes = 10 * 1024 * 1024

type Handler struct {
	runStore        *storage.RunStore
	identifyService *identify.Service
}

func New() *Handler {
	return &Handler{
		runStore:        storage.New(),
		identifyService: identify.NewService(engine.NewClient("", "")),
	}
}

// NewWithService wires a custom searcher pipeline, used by tests.
func NewWithService(svc *identify.Service) *Handler {
	return &Handler{
		runStore:        storage.New(),
		identifyService: svc,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// statusForError maps pipeline failures to HTTP statuses: engine
// failures are a bad gateway, everything else is the user's input.
func statusForError(err error) int {
	var engineErr *identify.EngineError
	if errors.As(err, &engineErr) {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

// Run helpers
func (h *Handler) getRunOrError(w http.ResponseWriter, runID string) (*models.Run, bool) {
	run, exists := h.runStore.Get(runID)
	if !exists {
		h.writeError(w, "Run not found", http.StatusNotFound)
		return nil, false
	}
	return run, true
}

// readFastaContent extracts the submitted FASTA text from either a
// JSON body ({"fasta": ...}) or a multipart form with one or more
// files under the "files" field. File contents are joined with a
// newline so records cannot run together across file boundaries.
func (h *Handler) readFastaContent(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(contentType, "application/json") {
		var request struct {
			Fasta string `json:"fasta"`
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
		if err != nil {
			return "", fmt.Errorf("failed to read request body: %w", err)
		}
		if err := json.Unmarshal(body, &request); err != nil {
			return "", fmt.Errorf("invalid JSON: %w", err)
		}
		if request.Fasta == "" {
			return "", fmt.Errorf("fasta is required")
		}
		return request.Fasta, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", fmt.Errorf("failed to parse form: %w", err)
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		if fastaText := r.FormValue("fasta"); fastaText != "" {
			return fastaText, nil
		}
		return "", fmt.Errorf("no FASTA files or text provided")
	}

	var contents []string
	for _, fh := range r.MultipartForm.File["files"] {
		file, err := fh.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		file.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read uploaded file %s: %w", fh.Filename, err)
		}
		contents = append(contents, string(data))
	}
	return fasta.JoinFiles(contents...), nil
}

