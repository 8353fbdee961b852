package common

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// Client is a thin JSON client for integration tests running against a live
// server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithToken returns a copy of the client that authenticates as the holder of
// the given bearer token.
func (c *Client) WithToken(token string) *Client {
	return &Client{baseURL: c.baseURL, token: token, http: c.http}
}

type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) Decode(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("failed to decode response %q: %v", r.Body, err)
	}
}

func (c *Client) GET(t *testing.T, path string) *Response {
	return c.do(t, http.MethodGet, path, nil)
}

func (c *Client) POST(t *testing.T, path string, body any) *Response {
	return c.do(t, http.MethodPost, path, body)
}

func (c *Client) PUT(t *testing.T, path string, body any) *Response {
	return c.do(t, http.MethodPut, path, body)
}

func (c *Client) PATCH(t *testing.T, path string, body any) *Response {
	return c.do(t, http.MethodPatch, path, body)
}

func (c *Client) DELETE(t *testing.T, path string) *Response {
	return c.do(t, http.MethodDelete, path, nil)
}

func (c *Client) do(t *testing.T, method, path string, body any) *Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}
}
