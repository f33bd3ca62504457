package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mycoai/taxotagger-web/internal/engine"
	"github.com/mycoai/taxotagger-web/internal/identify"
	"github.com/mycoai/taxotagger-web/internal/models"
	"github.com/mycoai/taxotagger-web/internal/taxonomy"
)

type fakeSearcher struct {
	results engine.Results
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, fastaPath, modelID string, limit int) (engine.Results, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func searcherFor(n int) *fakeSearcher {
	res := make(engine.Results)
	for _, level := range taxonomy.Levels {
		perSeq := make([][]engine.Match, 0, n)
		for i := 0; i < n; i++ {
			perSeq = append(perSeq, []engine.Match{
				{ID: "ref", Distance: 0.9, Entity: map[string]string{level: "label"}},
			})
		}
		res[level] = perSeq
	}
	return &fakeSearcher{results: res}
}

func testHandler(searcher engine.Searcher) *Handler {
	return NewWithService(identify.NewService(searcher))
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write form field: %v", err)
		}
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleValidate(t *testing.T) {
	tests := []struct {
		name       string
		fasta      string
		wantStatus int
		wantCount  int
	}{
		{
			name:       "valid input",
			fasta:      ">a\nATGC\n>b\nCGTA\n",
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:       "duplicate headers rejected",
			fasta:      ">a\nATGC\n>a\nCGTA\n",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed header rejected",
			fasta:      ">\nATGC\n",
			wantStatus: http.StatusBadRequest,
		},
	}

	handler := testHandler(searcherFor(2))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(map[string]string{"fasta": tt.fasta})
			req := httptest.NewRequest("POST", "/api/validate", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.HandleValidate(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var response struct {
				SequenceIDs []string `json:"sequence_ids"`
				Count       int      `json:"count"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if response.Count != tt.wantCount {
				t.Errorf("Expected count %d, got %d", tt.wantCount, response.Count)
			}
		})
	}
}

func TestHandleValidateMultipartFiles(t *testing.T) {
	handler := testHandler(searcherFor(2))

	// Two files, the first without a trailing newline.
	body, contentType := multipartBody(t, map[string]string{
		"one.fasta": ">a\nATGC",
		"two.fasta": ">b\nCGTA\n",
	}, nil)
	req := httptest.NewRequest("POST", "/api/validate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleValidate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var response struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Count != 2 {
		t.Errorf("Expected 2 sequences across files, got %d", response.Count)
	}
}

func TestHandleSearch(t *testing.T) {
	handler := testHandler(searcherFor(2))

	body, contentType := multipartBody(t, nil, map[string]string{
		"fasta": ">a\nATGC\n>b\nCGTA\n",
		"model": "MycoAI-CNN",
		"top_n": "1",
	})
	req := httptest.NewRequest("POST", "/api/search", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleSearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var run models.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("Failed to decode run: %v", err)
	}
	if len(run.SequenceIDs) != 2 {
		t.Errorf("Expected 2 sequence IDs, got %v", run.SequenceIDs)
	}
	if run.Warning != nil {
		t.Errorf("Expected no warning, got %+v", run.Warning)
	}

	// The run is retrievable afterwards.
	stored, exists := handler.runStore.Get(run.ID)
	if !exists {
		t.Fatal("Expected run to be stored")
	}
	if stored.Model != "MycoAI-CNN" {
		t.Errorf("Expected stored model MycoAI-CNN, got %s", stored.Model)
	}
}

func TestHandleSearchEngineFailure(t *testing.T) {
	t.Setenv("TAXOTAGGER_MODEL", "")
	handler := testHandler(&fakeSearcher{err: errors.New("index unavailable")})

	body, _ := json.Marshal(map[string]any{"fasta": ">a\nATGC\n", "top_n": 1})
	req := httptest.NewRequest("POST", "/api/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.HandleSearch(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "index unavailable") {
		t.Errorf("Expected engine message surfaced, got %q", rec.Body.String())
	}
}

func TestHandleSearchValidationFailure(t *testing.T) {
	t.Setenv("TAXOTAGGER_MODEL", "")
	handler := testHandler(searcherFor(1))

	body, _ := json.Marshal(map[string]any{"fasta": ">a one\nATGC\n>a two\nCGTA\n"})
	req := httptest.NewRequest("POST", "/api/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.HandleSearch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "a") || !strings.Contains(rec.Body.String(), "unique") {
		t.Errorf("Expected duplicate-ID message, got %q", rec.Body.String())
	}
}

func TestHandleRunDetailAndCSV(t *testing.T) {
	t.Setenv("TAXOTAGGER_MODEL", "")
	handler := testHandler(searcherFor(1))

	// Seed a run through the search handler.
	body, _ := json.Marshal(map[string]any{"fasta": ">a\nATGC\n", "top_n": 2})
	req := httptest.NewRequest("POST", "/api/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.HandleSearch(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Search failed: %d %s", rec.Code, rec.Body.String())
	}
	var run models.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("Failed to decode run: %v", err)
	}

	// Detail endpoint.
	req = httptest.NewRequest("GET", "/api/runs/"+run.ID, nil)
	rec = httptest.NewRecorder()
	handler.HandleRunDetail(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	// Display tables endpoint.
	req = httptest.NewRequest("GET", "/api/runs/"+run.ID+"/tables", nil)
	rec = httptest.NewRecorder()
	handler.HandleRunDetail(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for tables, got %d", rec.Code)
	}
	var tables struct {
		SequenceIDs []string `json:"sequence_ids"`
		Tables      map[string]struct {
			Header []string   `json:"header"`
			Rows   [][]string `json:"rows"`
		} `json:"tables"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tables); err != nil {
		t.Fatalf("Failed to decode tables: %v", err)
	}
	if len(tables.Tables["a"].Rows) != 2 {
		t.Errorf("Expected 2 display rows, got %d", len(tables.Tables["a"].Rows))
	}

	// CSV download.
	req = httptest.NewRequest("GET", "/api/runs/"+run.ID+"/csv", nil)
	rec = httptest.NewRecorder()
	handler.HandleRunDetail(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for CSV, got %d", rec.Code)
	}
	if disposition := rec.Header().Get("Content-Disposition"); !strings.Contains(disposition, "taxotagger_results_") {
		t.Errorf("Expected timestamped attachment, got %q", disposition)
	}
	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	// Header plus one row per rank.
	if len(rows) != 3 {
		t.Errorf("Expected 3 CSV rows, got %d", len(rows))
	}

	// Unknown run.
	req = httptest.NewRequest("GET", "/api/runs/nope", nil)
	rec = httptest.NewRecorder()
	handler.HandleRunDetail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestHandleModels(t *testing.T) {
	handler := testHandler(searcherFor(1))

	req := httptest.NewRequest("GET", "/api/models", nil)
	rec := httptest.NewRecorder()
	handler.HandleModels(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var response struct {
		Models  []taxonomy.Model `json:"models"`
		Default string           `json:"default"`
		Levels  []string         `json:"levels"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Models) == 0 {
		t.Error("Expected at least one model")
	}
	if response.Default == "" {
		t.Error("Expected a default model")
	}
	if len(response.Levels) != len(taxonomy.Levels) {
		t.Errorf("Expected %d levels, got %d", len(taxonomy.Levels), len(response.Levels))
	}
}
