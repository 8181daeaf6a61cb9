// Package windy implements the HTTP client for the Windy Point Forecast
// API. Request validation and response navigation live in the forecast
// package; this package only carries the transport.
package windy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/windy-forecast/forecast"
	"github.com/couchcryptid/windy-forecast/internal/observability"
)

// DefaultBaseURL is the production point-forecast endpoint.
const DefaultBaseURL = "https://api.windy.com/api/point-forecast/v2"

// Client calls the Windy Point Forecast API. Each call executes exactly
// one POST; there is no retry, caching, or rate limiting.
type Client struct {
	key        string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
}

// Client metrics register once on the default registry regardless of how
// many clients the process creates.
var (
	metricsOnce   sync.Once
	sharedMetrics *observability.Metrics
)

func clientMetrics() *observability.Metrics {
	metricsOnce.Do(func() { sharedMetrics = observability.NewMetrics() })
	return sharedMetrics
}

// NewClient creates a point-forecast client for the given API key.
// timeout bounds each HTTP call; cancellation within that bound is the
// caller's via context.
func NewClient(key string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		key: key,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: DefaultBaseURL,
		logger:  logger,
		metrics: clientMetrics(),
		clock:   clockwork.NewRealClock(),
	}
}

// SetBaseURL overrides the forecast endpoint, for staging or test servers.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// PointForecast fetches one forecast. Model, parameters and levels accept
// free-form spellings; they are normalized and checked against the model's
// parameter set before anything goes on the wire (unsupported parameters
// are dropped with a warning). Nil parameters and levels take the
// catalog defaults.
func (c *Client) PointForecast(ctx context.Context, lat, lon float64, model string, parameters, levels []string) (*forecast.Response, error) {
	req, err := forecast.NewPointRequest(lat, lon, model, parameters, levels, c.key, c.logger)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Do executes a single pre-built request.
func (c *Client) Do(ctx context.Context, req *forecast.PointRequest) (*forecast.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := c.clock.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RequestsTotal.WithLabelValues(string(req.Model), "transport_error").Inc()
		return nil, fmt.Errorf("point forecast request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.RequestDuration.WithLabelValues(string(req.Model)).Observe(c.clock.Since(start).Seconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		c.metrics.RequestsTotal.WithLabelValues(string(req.Model), "status_error").Inc()
		return nil, &StatusError{Code: resp.StatusCode, Body: b}
	}

	var fr forecast.Response
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		c.metrics.RequestsTotal.WithLabelValues(string(req.Model), "decode_error").Inc()
		return nil, &DecodeError{Err: err}
	}

	c.metrics.RequestsTotal.WithLabelValues(string(req.Model), "success").Inc()
	c.logger.Debug("point forecast fetched",
		"model", string(req.Model),
		"parameters", len(req.Parameters),
		"timestamps", len(fr.Timestamps),
	)
	return &fr, nil
}

// Result carries the outcome of an asynchronous forecast call.
type Result struct {
	Response *forecast.Response
	Err      error
}

// PointForecastAsync runs PointForecast in a goroutine and delivers the
// single outcome on the returned channel, which is closed afterwards.
// Cancelling ctx aborts the in-flight call and delivers the cancellation
// error instead of a partial response.
func (c *Client) PointForecastAsync(ctx context.Context, lat, lon float64, model string, parameters, levels []string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		resp, err := c.PointForecast(ctx, lat, lon, model, parameters, levels)
		out <- Result{Response: resp, Err: err}
	}()
	return out
}
