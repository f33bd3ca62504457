package handlers

import (
	"net/http"
	"strings"

	"github.com/mycoai/taxotagger-web/internal/models"
	"github.com/mycoai/taxotagger-web/internal/results"
	"github.com/mycoai/taxotagger-web/internal/taxonomy"
)

// HandleRuns lists all stored identification runs.
func (h *Handler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		runs := h.runStore.GetAll()
		runList := make([]*models.Run, 0, len(runs))
		for _, run := range runs {
			runList = append(runList, run)
		}
		h.writeJSON(w, runList)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleRunDetail serves one run: the raw run JSON, the merged display
// tables, or the CSV export, depending on the trailing path segment.
func (h *Handler) HandleRunDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	runID, subresource := path, ""
	if idx := strings.Index(path, "/"); idx >= 0 {
		runID, subresource = path[:idx], path[idx+1:]
	}

	run, ok := h.getRunOrError(w, runID)
	if !ok {
		return
	}

	switch subresource {
	case "":
		h.writeJSON(w, run)
	case "tables":
		h.serveTables(w, run)
	case "csv":
		h.serveCSV(w, run)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

// serveTables renders the view-only display tables, one per input
// sequence, with each level cell merged into "Label (Hit;Similarity)".
func (h *Handler) serveTables(w http.ResponseWriter, run *models.Run) {
	tables := make(map[string]results.DisplayTable, len(run.SequenceIDs))
	for _, seqID := range run.SequenceIDs {
		tables[seqID] = results.DisplayRows(run.Records[seqID], taxonomy.Levels)
	}
	h.writeJSON(w, map[string]any{
		"sequence_ids": run.SequenceIDs,
		"tables":       tables,
	})
}

// serveCSV streams the combined flat result table as a timestamped CSV
// download. The export keeps full-precision similarity scores and the
// separate label/hit/similarity columns.
func (h *Handler) serveCSV(w http.ResponseWriter, run *models.Run) {
	filename := results.ExportFilename("csv", run.CreatedAt)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := results.WriteCSV(w, results.Flatten(run), taxonomy.Levels); err != nil {
		h.writeError(w, "Failed to write CSV: "+err.Error(), http.StatusInternalServerError)
	}
}
