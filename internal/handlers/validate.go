package handlers

import (
	"net/http"

	"github.com/mycoai/taxotagger-web/internal/fasta"
)

// HandleValidate checks submitted FASTA input without running a
// search, so the UI can confirm the input before the user commits to
// an identification run.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fastaContent, err := h.readFastaContent(r)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	seqIDs, err := fasta.Validate(fastaContent)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := map[string]any{
		"sequence_ids":  seqIDs,
		"count":         len(seqIDs),
		"max_sequences": fasta.MaxSequences,
	}
	h.writeJSON(w, response)
}
