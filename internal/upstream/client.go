package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saasrevops/revenue-gateway/internal"
)

// Client issues requests against the platform API. It owns no state beyond
// the connection pool: the bearer token of the inbound request is forwarded
// verbatim, and every call carries an x-correlation-id so a failure can be
// matched to upstream logs.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	correlationID := internal.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	req.Header.Set("x-correlation-id", correlationID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if token := internal.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resource := resourceLabel(path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(method, resource).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(method, resource, "error").Inc()
		c.logger.Warn("upstream request failed",
			"method", method,
			"path", path,
			"correlation_id", correlationID,
			"error", err)
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(method, resource, statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.parseError(resp, correlationID)
		c.logger.Warn("upstream returned error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"correlation_id", apiErr.CorrelationID,
			"message", apiErr.Message)
		return apiErr
	}

	c.logger.Debug("upstream call succeeded",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"correlation_id", correlationID)

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}

	return nil
}

// parseError reads the error envelope from a non-2xx response. Bodies that
// are not the envelope fall back to raw text, and a missing correlation id
// falls back to the one this client sent.
func (c *Client) parseError(resp *http.Response, sentCorrelationID string) *APIError {
	apiErr := &APIError{
		StatusCode:    resp.StatusCode,
		Message:       http.StatusText(resp.StatusCode),
		CorrelationID: sentCorrelationID,
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil || len(bodyBytes) == 0 {
		return apiErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
		if envelope.CorrelationID != "" {
			apiErr.CorrelationID = envelope.CorrelationID
		}
		return apiErr
	}

	if text := strings.TrimSpace(string(bodyBytes)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}

// resourceLabel keeps metric cardinality bounded: only the leading path
// segment (admin, catalog, revenue, payments, ledger) is recorded.
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx > 0 {
		return trimmed[:idx]
	}
	if idx := strings.IndexByte(trimmed, '?'); idx > 0 {
		return trimmed[:idx]
	}
	return trimmed
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
