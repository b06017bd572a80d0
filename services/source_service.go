package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"news-verifier/models"
	"news-verifier/utils"

	"go.uber.org/zap"
)

// maxQueryRunes is the longest query the search API accepts
const maxQueryRunes = 512

// maxResponseBytes bounds how much of a search response is read
const maxResponseBytes = 1 << 20

// SourceSearcher finds supporting article URLs for a news text.
// Implementations never fail: any error yields an empty slice.
type SourceSearcher interface {
	SearchSources(ctx context.Context, query string, pageSize int) []string
}

// NewsDataService queries the newsdata.io "latest" endpoint
type NewsDataService struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewNewsDataService creates a search client with a fixed request timeout
func NewNewsDataService(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *NewsDataService {
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	return &NewsDataService{
		apiKey:     apiKey,
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type newsDataResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Link string `json:"link"`
	} `json:"results"`
}

// SearchSources returns up to pageSize article URLs matching query.
// Without an API key it returns immediately without a network call.
func (s *NewsDataService) SearchSources(ctx context.Context, query string, pageSize int) []string {
	if s.apiKey == "" {
		return []string{}
	}
	if pageSize <= 0 || pageSize > models.MaxSources {
		pageSize = models.MaxSources
	}

	urls, err := s.search(ctx, query, pageSize)
	if err != nil {
		s.logger.Warn("News search failed", zap.Error(err))
		return []string{}
	}

	s.logger.Debug("News search complete", zap.Int("sources", len(urls)))
	return urls
}

func (s *NewsDataService) search(ctx context.Context, query string, pageSize int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("apikey", s.apiKey)
	params.Set("q", truncateRunes(query, maxQueryRunes))
	params.Set("language", "en")
	params.Set("size", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var data newsDataResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if data.Status != "" && data.Status != "success" {
		return nil, fmt.Errorf("search API status %q", data.Status)
	}

	links := make([]string, 0, len(data.Results))
	for _, r := range data.Results {
		links = append(links, r.Link)
	}
	return utils.CompactStrings(links, pageSize), nil
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
