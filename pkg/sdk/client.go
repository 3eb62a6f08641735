package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "casefind-go-sdk"
)

// Client is an HTTP client for the casefind service.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// New creates a Client for the service at baseURL (scheme and host,
// without the /v1 prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("casefind: base URL required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("casefind: invalid base URL %q", baseURL)
	}

	cfg := &clientConfig{
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.apiKey,
		userAgent:  cfg.userAgent,
		httpClient: hc,
	}, nil
}

// Search runs a relevance query against the scenario catalog.
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	var resp SearchResponse
	err := c.do(ctx, http.MethodPost, "/v1/search", nil, req, &resp)
	return resp, err
}

// Suggest returns autocomplete candidates for a partial input.
// limit <= 0 uses the server default; types narrows the suggestion
// sources ("scenario_title", "category", "common_phrase").
func (c *Client) Suggest(ctx context.Context, text string, limit int, types ...string) (SuggestResponse, error) {
	q := url.Values{}
	q.Set("q", text)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(types) > 0 {
		q.Set("types", strings.Join(types, ","))
	}

	var resp SuggestResponse
	err := c.do(ctx, http.MethodGet, "/v1/suggest", q, nil, &resp)
	return resp, err
}

// Analytics fetches aggregated usage counters. top <= 0 uses the
// server default for the top-queries list.
func (c *Client) Analytics(ctx context.Context, top int) (AnalyticsReport, error) {
	var q url.Values
	if top > 0 {
		q = url.Values{"top": []string{strconv.Itoa(top)}}
	}

	var report AnalyticsReport
	err := c.do(ctx, http.MethodGet, "/v1/analytics", q, nil, &report)
	return report, err
}

// Categories lists the distinct scenario categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/scenarios/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Ready probes the service's readiness endpoint. A not-ready service
// returns its report together with ErrUnavailable; /readyz answers 503
// with the report in the body rather than an error envelope.
func (c *Client) Ready(ctx context.Context) (HealthReport, error) {
	status, raw, err := c.doRaw(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return HealthReport{}, err
	}

	var report HealthReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return HealthReport{}, fmt.Errorf("casefind: decode response: %w", err)
	}
	if status != http.StatusOK {
		return report, &APIError{
			StatusCode: status,
			Code:       "catalog_unavailable",
			Message:    "service not ready",
		}
	}
	return report, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	status, raw, err := c.doRaw(ctx, method, path, query, in)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		return decodeError(status, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("casefind: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, in any) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("casefind: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, nil, fmt.Errorf("casefind: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("casefind: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("casefind: read response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func decodeError(status int, raw []byte) *APIError {
	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	apiErr := &APIError{StatusCode: status}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Message
	} else {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
