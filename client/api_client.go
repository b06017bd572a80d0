package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"news-verifier/models"
)

// APIClient talks to a running verifier over HTTP
type APIClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewAPIClient creates a client for the given /classify endpoint
func NewAPIClient(endpoint string, timeout time.Duration) *APIClient {
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &APIClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Classify posts a news text to the remote verifier
func (c *APIClient) Classify(ctx context.Context, text string, id *string) (*models.ClassificationResponse, error) {
	body, err := json.Marshal(models.ClassificationRequest{Text: text, ID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr models.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var out models.ClassificationResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &out, nil
}
