package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/recall-search-service/internal/domain"
	"github.com/couchcryptid/recall-search-service/internal/observability"
)

// noMatchesMessage is the API's recognized empty-result payload. The live
// API serves it with HTTP 404, so it is checked on both 200 and 404.
const noMatchesMessage = "No matches found!"

// Client performs the single GET request against the openFDA food
// enforcement endpoint and classifies the raw response. It never retries.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an openFDA enforcement API client. An empty apiKey is
// allowed; the API then applies its anonymous rate limits.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch executes one query and classifies the outcome. The search expression
// is placed into the URL verbatim: its grammar already uses "+" for spaces,
// and the API expects quotes and brackets unescaped.
func (c *Client) Fetch(ctx context.Context, spec domain.QuerySpec) (domain.RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(spec), nil)
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("enforcement API request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.APIRequestDuration.Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("read response: %w", err)
	}

	var payload apiResponse
	decodeErr := json.Unmarshal(body, &payload)

	if decodeErr == nil && payload.Error != nil && payload.Error.Message == noMatchesMessage {
		c.logger.Debug("no matches for query", "search", spec.SearchExpression())
		return domain.RawResponse{NoMatches: true}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return domain.RawResponse{}, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	if decodeErr != nil {
		return domain.RawResponse{}, fmt.Errorf("decode response: %w", decodeErr)
	}

	result := domain.RawResponse{
		Total:   payload.Meta.Results.Total,
		Results: payload.Results,
	}
	if result.Total > len(result.Results) {
		c.logger.Warn("result set truncated",
			"total", result.Total,
			"returned", len(result.Results),
			"limit", spec.Limit,
		)
		c.metrics.TruncatedResults.Inc()
	}
	return result, nil
}

// requestURL assembles the final URL: base + api_key + search expression +
// limit. An empty expression omits the search parameter entirely, which the
// API treats as an unfiltered query.
func (c *Client) requestURL(spec domain.QuerySpec) string {
	u := c.baseURL + "?"
	if c.apiKey != "" {
		u += "api_key=" + url.QueryEscape(c.apiKey) + "&"
	}
	if expr := spec.SearchExpression(); expr != "" {
		u += "search=" + expr + "&"
	}
	return u + "limit=" + strconv.Itoa(spec.Limit)
}

// openFDA API response types.

type apiResponse struct {
	Meta    meta             `json:"meta"`
	Results []map[string]any `json:"results"`
	Error   *apiError        `json:"error"`
}

type meta struct {
	Results metaResults `json:"results"`
}

type metaResults struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
