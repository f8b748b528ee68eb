package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/number-classifier/internal/common"
	"github.com/Veraticus/number-classifier/internal/service"
)

// DefaultBaseURL is the public Numbers API endpoint.
const DefaultBaseURL = "http://numbersapi.com"

// maxResponseBytes caps how much of a Numbers API response is read.
const maxResponseBytes = 64 << 10

var validFactTypes = map[string]bool{
	"math":   true,
	"trivia": true,
	"date":   true,
	"year":   true,
}

// numbersAPIClient implements service.FactFetcher for the Numbers API.
type numbersAPIClient struct {
	httpClient *http.Client
	baseURL    string
	factType   string
}

type numbersAPIResponse struct {
	Text  string `json:"text"`
	Type  string `json:"type"`
	Found bool   `json:"found"`
}

// newNumbersAPIClient creates a new Numbers API client.
func newNumbersAPIClient(cfg Config) (service.FactFetcher, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid numbers API base URL: %q", common.ErrInvalidConfig, baseURL)
	}

	factType := cfg.Type
	if factType == "" {
		factType = "math"
	}
	if !validFactTypes[factType] {
		return nil, fmt.Errorf("%w: unsupported fact type: %s", common.ErrInvalidConfig, factType)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &numbersAPIClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		factType: factType,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Fact fetches a fun fact about n.
func (c *numbersAPIClient) Fact(ctx context.Context, n *big.Int) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/%s?json=true", c.baseURL, n.String(), c.factType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("Requesting fun fact", "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrFactUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %w", common.ErrFactUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: numbers API error: %d - %s", common.ErrFactUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var fact numbersAPIResponse
	if err := json.Unmarshal(body, &fact); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %w", common.ErrFactUnavailable, err)
	}

	text := strings.TrimSpace(fact.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty fact text", common.ErrFactUnavailable)
	}
	return text, nil
}
