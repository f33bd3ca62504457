package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mycoai/taxotagger-web/internal/taxonomy"
)

// HandleSearch runs one identification request: validate the FASTA
// input, submit it to the search engine, assemble the results, and
// store the run for later retrieval and export.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var fastaContent, model string
	var topN int

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var request struct {
			Fasta string `json:"fasta"`
			Model string `json:"model"`
			TopN  int    `json:"top_n"`
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
		if err != nil {
			h.writeError(w, "Failed to read request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := json.Unmarshal(body, &request); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if request.Fasta == "" {
			h.writeError(w, "fasta is required", http.StatusBadRequest)
			return
		}
		fastaContent = request.Fasta
		model = request.Model
		topN = request.TopN
	} else {
		var err error
		fastaContent, err = h.readFastaContent(r)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		model = r.FormValue("model")
		if v := r.FormValue("top_n"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				h.writeError(w, "top_n must be an integer", http.StatusBadRequest)
				return
			}
			topN = n
		}
	}

	run, err := h.identifyService.Run(r.Context(), fastaContent, model, topN)
	if err != nil {
		h.writeError(w, err.Error(), statusForError(err))
		return
	}
	h.runStore.Set(run.ID, run)

	h.writeJSON(w, run)
}

// HandleModels lists the embedding models available for the UI
// dropdown, along with the taxonomy levels results are grouped by.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, map[string]any{
		"models":  taxonomy.Models,
		"default": taxonomy.DefaultModel(),
		"levels":  taxonomy.Levels,
	})
}
