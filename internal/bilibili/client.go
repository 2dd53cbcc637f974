// Package bilibili implements the metadata client for the Bilibili web API.
package bilibili

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/JakeFAU/fxbilibili/internal/logging"
	"github.com/JakeFAU/fxbilibili/internal/metrics"
	"github.com/JakeFAU/fxbilibili/internal/video"
)

// DefaultEndpoint is the video view endpoint.
const DefaultEndpoint = "https://api.bilibili.com/x/web-interface/wbi/view"

// Config controls client behavior.
type Config struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
	// Transport overrides the pooled default transport. Mostly for tests.
	Transport http.RoundTripper
	// TracerProvider records a client span per fetch. Nil uses the global provider.
	TracerProvider trace.TracerProvider
}

// Client implements video.MetadataFetcher against the view endpoint.
// A single Client is shared by all requests.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

var _ video.MetadataFetcher = (*Client)(nil)

// New builds a Client.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	base := cfg.Transport
	if base == nil {
		base = newHTTPTransport()
	}
	// Spans stay local: no trace headers are sent to the public API.
	otelOpts := []otelhttp.Option{
		otelhttp.WithPropagators(propagation.NewCompositeTextMapPropagator()),
	}
	if cfg.TracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(cfg.TracerProvider))
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(base, otelOpts...),
		},
		logger: logger,
	}
}

// Fetch looks up a single video. Every call goes to the network.
func (c *Client) Fetch(ctx context.Context, id video.ID) (video.Info, error) {
	start := time.Now()
	info, err := c.fetch(ctx, id)
	elapsed := time.Since(start)

	logger := logging.WithTrace(ctx, c.logger)
	var apiErr *APIError
	switch {
	case err == nil:
		metrics.ObserveUpstream(metrics.OutcomeOK, elapsed)
		logger.Debug("video metadata fetched",
			zap.Stringer("video_id", id),
			zap.Duration("duration", elapsed),
		)
	case errors.As(err, &apiErr):
		metrics.ObserveUpstream(metrics.OutcomeAPIError, elapsed)
		logger.Warn("metadata API returned no data",
			zap.Stringer("video_id", id),
			zap.Int("code", apiErr.Code),
			zap.String("message", apiErr.Message),
		)
	default:
		metrics.ObserveUpstream(metrics.OutcomeHTTPError, elapsed)
		logger.Warn("metadata API request failed",
			zap.Stringer("video_id", id),
			zap.Error(err),
		)
	}
	return info, err
}

func (c *Client) fetch(ctx context.Context, id video.ID) (video.Info, error) {
	req, err := c.newRequest(ctx, id)
	if err != nil {
		return video.Info{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return video.Info{}, &HTTPError{Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("close response body", zap.Error(cerr))
		}
	}()

	var envelope Envelope[ViewData]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return video.Info{}, &HTTPError{Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)}
	}
	if envelope.Data == nil {
		return video.Info{}, &APIError{Code: envelope.Code, Message: envelope.Message}
	}
	return toInfo(*envelope.Data), nil
}

func (c *Client) newRequest(ctx context.Context, id video.ID) (*http.Request, error) {
	endpoint, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, &HTTPError{Err: fmt.Errorf("parse endpoint: %w", err)}
	}
	name, value := id.QueryParam()
	endpoint.RawQuery = url.Values{name: []string{value}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &HTTPError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	return req, nil
}

func toInfo(data ViewData) video.Info {
	info := video.Info{
		Title:        data.Title,
		PublishTime:  data.PubDate,
		ModifiedTime: data.CTime,
		Duration:     data.Duration,
		AuthorName:   data.Owner.Name,
	}
	if text, ok := data.Description().Text(); ok {
		info.Description = &text
	}
	// The thumbnail is always reported, even when the API sends an empty pic.
	pic := data.Pic
	info.ThumbnailURL = &pic
	return info
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
	}
}
