package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 1 << 20

// Result is the response payload of the generation endpoint. Every field
// other than imageUrl is ignored.
type Result struct {
	ImageURL string `json:"imageUrl,omitempty"`
}

// Usable reports whether the result carries an image reference.
func (r Result) Usable() bool {
	return r.ImageURL != ""
}

// Fetcher performs one generation request.
type Fetcher interface {
	Fetch(ctx context.Context) (Result, error)
}

// Client calls a fixed generation endpoint over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for endpoint. A zero timeout leaves the
// request bounded only by the caller's context.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the underlying http.Client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Endpoint returns the URL requested by Fetch.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch issues GET against the endpoint. Transport errors, non-2xx statuses
// and bodies that are not JSON come back as *RequestError. Valid JSON that
// does not match Result's shape yields an empty Result.
func (c *Client) Fetch(ctx context.Context) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Result{}, &RequestError{URL: c.endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, &RequestError{URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return Result{}, &RequestError{URL: c.endpoint, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > MaxBodyBytes {
		return Result{}, &RequestError{URL: c.endpoint, Status: resp.StatusCode, Err: ErrBodyTooLarge}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &RequestError{URL: c.endpoint, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	res, err := Decode(body)
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		reqErr.URL = c.endpoint
		reqErr.Status = resp.StatusCode
	}
	return res, err
}

// Decode parses a response body. Invalid JSON is a *RequestError; a
// well-formed document of another shape is an empty Result.
func Decode(body []byte) (Result, error) {
	if !json.Valid(body) {
		return Result{}, &RequestError{Err: ErrMalformedBody}
	}

	var res Result
	if err := json.Unmarshal(body, &res); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Result{}, nil
		}
		return Result{}, &RequestError{Err: fmt.Errorf("decode body: %w", err)}
	}
	return res, nil
}
