package yahooapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahooapi_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client is a client for the Yahoo Finance style screener API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client requests go through.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
	// batchSize caps the number of symbols per quote request; larger
	// symbol sets are split into multiple requests.
	batchSize int
	// maxConcurrency limits concurrent batch requests when splitting.
	maxConcurrency int
}

// ClientOption is a configuration option for the API client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithBatchSize caps symbols per quote request. Values <= 0 mean a
// single request for the full set.
func WithBatchSize(n int) ClientOption {
	return func(c *Client) {
		c.batchSize = n
	}
}

// WithMaxConcurrency limits concurrent batch requests. Defaults to 1.
func WithMaxConcurrency(n int) ClientOption {
	return func(c *Client) {
		c.maxConcurrency = n
	}
}

// NewClient creates a new screener API client.
func NewClient(options ...ClientOption) *Client {
	var client = &Client{
		baseURL:        defaultBaseURL,
		httpClient:     http.DefaultClient,
		header:         http.Header{},
		query:          url.Values{},
		maxConcurrency: 1,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// getJSON performs a GET request against path with query params and
// decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	query := url.Values{}
	for k, vs := range c.query {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return fmt.Errorf("not found: %s", path)
	case http.StatusTooManyRequests:
		return fmt.Errorf("rate limited")
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("unauthorized")
	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return fmt.Errorf("unexpected status code %d: %s", res.StatusCode, string(b))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
