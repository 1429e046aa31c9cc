package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Client posts notification payloads to third-party endpoints.
type Client struct {
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// New creates a Client with OpenTelemetry instrumentation. timeout bounds a single call.
func New(timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Logger: log,
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// PostJSON marshals body with sonic and posts it. It returns the status code
// whenever a response was received, and a *StatusError for non-2xx codes.
func (c *Client) PostJSON(ctx context.Context, endpoint string, body any) (int, error) {
	b, err := sonic.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}
	return c.post(ctx, endpoint, "application/json", bytes.NewReader(b))
}

// PostForm posts values as application/x-www-form-urlencoded.
func (c *Client) PostForm(ctx context.Context, endpoint string, values url.Values) (int, error) {
	return c.post(ctx, endpoint, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, body io.Reader) (int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.Logger != nil {
			c.Logger.Warn("outbound request failed",
				zap.String("endpoint", endpoint),
				zap.Int("status_code", resp.StatusCode),
				zap.String("body", string(respBody)))
		}
		return resp.StatusCode, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return resp.StatusCode, nil
}
