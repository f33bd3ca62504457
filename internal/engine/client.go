package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Client is an HTTP Searcher backed by a TaxoTagger service instance.
type Client struct {
	BaseURL    string
	Token      string
	httpClient *http.Client
}

// NewClient creates a client for the given service URL. An empty url
// falls back to TAXOTAGGER_URL, then to a local default. The token is
// optional and read from TAXOTAGGER_TOKEN when empty. No request
// timeout is imposed here: embedding large batches can be slow, and
// cancellation belongs to the caller's context.
func NewClient(url, token string) *Client {
	if url == "" {
		url = os.Getenv("TAXOTAGGER_URL")
	}
	if url == "" {
		url = "http://localhost:8000"
	}
	if token == "" {
		token = os.Getenv("TAXOTAGGER_TOKEN")
	}
	return &Client{
		BaseURL:    url,
		Token:      token,
		httpClient: &http.Client{},
	}
}

type searchRequest struct {
	Fasta   string `json:"fasta"`
	ModelID string `json:"model_id"`
	Limit   int    `json:"limit"`
}

// Search submits the FASTA file at fastaPath to the search service and
// decodes the per-level ranked matches. Engine failures are returned as
// errors carrying the service's own message; this layer adds no retry.
func (c *Client) Search(ctx context.Context, fastaPath, modelID string, limit int) (Results, error) {
	fastaContent, err := os.ReadFile(fastaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read FASTA file: %w", err)
	}

	body, err := json.Marshal(searchRequest{
		Fasta:   string(fastaContent),
		ModelID: modelID,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call search service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search service returned status %d: %s", resp.StatusCode, string(msg))
	}

	var results Results
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return results, nil
}
