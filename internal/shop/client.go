// Package shop is the typed client for the remote commerce API. It is the
// single HTTP entry point of the console: every request flows through
// Client.call, which attaches the session's bearer token, decodes error
// responses into *Error exactly once, and records a metric per upstream
// call. The client never swallows a failure and performs no retries or
// caching; notification side effects belong to the web layer.
package shop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hegerb/rohlik-admin/internal/session"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewClient builds a client for the shop API rooted at baseURL (including
// the /api prefix). The http.Client is shared so the caller controls the
// timeout and the otelhttp transport.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	meter := otel.Meter("github.com/hegerb/rohlik-admin/internal/shop")

	requests, err := meter.Int64Counter("shop.client.requests",
		metric.WithDescription("Requests issued against the shop API"))
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}

	duration, err := meter.Float64Histogram("shop.client.duration",
		metric.WithDescription("Shop API request duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &Client{
		baseURL:  baseURL,
		http:     httpClient,
		logger:   logger,
		requests: requests,
		duration: duration,
	}, nil
}

// call performs one JSON round trip. A bearer token present in ctx is
// attached as the Authorization header; login and register run without
// one. A nil out discards the response body (e.g. DELETE returning 204).
func (c *Client) call(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if token, ok := session.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		c.record(ctx, op, "network_error", elapsed)
		c.logger.Error("shop request failed", "operation", op, "error", err)
		return &Error{Kind: KindNetwork, Message: "server unreachable", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.record(ctx, op, statusClass(resp.StatusCode), elapsed)

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp)
		c.logger.Warn("shop request rejected",
			"operation", op, "status", resp.StatusCode, "kind", apiErr.Kind)
		return apiErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", op, err)
		}
	}

	c.logger.Debug("shop request completed",
		"operation", op, "status", resp.StatusCode, "duration_ms", elapsed)
	return nil
}

// decodeError turns a non-2xx response into a typed *Error, preferring the
// server-supplied message when the body carries one under "message" or
// "error".
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{
		Kind:   kindForStatus(resp.StatusCode),
		Status: resp.StatusCode,
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else if body.Error != "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

func (c *Client) record(ctx context.Context, op, status string, elapsedMs float64) {
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("status", status),
	)
	c.requests.Add(ctx, 1, attrs)
	c.duration.Record(ctx, elapsedMs, attrs)
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
