package inpost

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// HttpResponse is the transport-level result handed to the decoders: the
// status code plus the parsed JSON body. Bodies that are not valid JSON
// are kept as the raw string so error responses stay inspectable.
type HttpResponse struct {
	Status  int
	Body    any
	Headers http.Header
}

// IsError reports whether the status indicates a failed request.
func (r *HttpResponse) IsError() bool {
	return r.Status >= 400
}

// httpClient is one API session: an http.Client with a bounded timeout
// and a mutable set of default headers. The token manager rewrites the
// Authorization header in place after a refresh.
type httpClient struct {
	client *http.Client

	mu      sync.RWMutex
	headers map[string]string
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{
		client:  &http.Client{Timeout: timeout},
		headers: make(map[string]string),
	}
}

// SetHeader sets a default header sent with every request.
func (c *httpClient) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[key] = value
}

// Header returns the current value of a default header.
func (c *httpClient) Header(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers[key]
}

func (c *httpClient) Get(ctx context.Context, rawURL string, headers map[string]string) (*HttpResponse, error) {
	return c.request(ctx, http.MethodGet, rawURL, nil, headers)
}

// PostForm issues a form-encoded POST, as the token endpoint requires.
func (c *httpClient) PostForm(ctx context.Context, rawURL string, form url.Values, headers map[string]string) (*HttpResponse, error) {
	merged := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	for key, value := range headers {
		merged[key] = value
	}
	return c.request(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()), merged)
}

func (c *httpClient) request(ctx context.Context, method, rawURL string, body io.Reader, headers map[string]string) (*HttpResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	c.mu.RUnlock()
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(rc io.ReadCloser) {
		_ = rc.Close()
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			parsed = string(raw)
		}
	}

	return &HttpResponse{
		Status:  resp.StatusCode,
		Body:    parsed,
		Headers: resp.Header,
	}, nil
}

// Close releases the session's idle connections. Safe to call more than
// once, and without any prior request.
func (c *httpClient) Close() {
	c.client.CloseIdleConnections()
}
