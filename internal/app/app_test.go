package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/JakeFAU/fxbilibili/internal/config"
	"github.com/JakeFAU/fxbilibili/internal/telemetry"
)

func TestNewApp_RequiresLogger(t *testing.T) {
	t.Parallel()

	_, err := NewApp(context.Background(), testConfig("http://127.0.0.1:1/view"), "test", nil)
	require.Error(t, err)
}

func TestApp_EndToEnd(t *testing.T) {
	t.Parallel()

	var upstreamCalls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls.Add(1)
		if r.URL.Query().Get("aid") != "1" {
			http.Error(w, "unexpected query", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":0,"message":"0","ttl":1,"data":{"title":"End to end","pic":"https://i0.hdslb.com/a.jpg",`+
			`"pubdate":0,"ctime":0,"desc":"d","duration":1,"owner":{"name":"u"}}}`)
	}))
	t.Cleanup(upstream.Close)

	a, err := NewApp(context.Background(), testConfig(upstream.URL+"/view"), "test", zap.NewNop())
	require.NoError(t, err)
	defer a.Close(context.Background())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	client := &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	base := "http://" + ln.Addr().String()

	req, err := http.NewRequest(http.MethodGet, base+"/video/av1", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	resp, err := client.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusPermanentRedirect, resp.StatusCode)
	require.Equal(t, "https://www.bilibili.com/video/av1", resp.Header.Get("Location"))

	req, err = http.NewRequest(http.MethodGet, base+"/video/av1", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "Twitterbot/1.0")
	resp, err = client.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int32(1), upstreamCalls.Load())

	cancel()
	require.NoError(t, <-done)
}

func TestApp_TracesInboundAndUpstreamCalls(t *testing.T) {
	t.Parallel()

	var forwarded atomic.Value
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded.Store(r.Header.Get("Traceparent"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":0,"message":"0","ttl":1,"data":{"title":"Traced","pic":"","duration":1,"owner":{"name":"u"}}}`)
	}))
	t.Cleanup(upstream.Close)

	cfg := testConfig(upstream.URL + "/view")
	cfg.Telemetry.TracingEnabled = true
	cfg.Telemetry.SampleRate = 1
	exporter := tracetest.NewInMemoryExporter()
	a, err := NewApp(context.Background(), cfg, "test", zap.NewNop(), telemetry.WithSyncExporter(exporter))
	require.NoError(t, err)
	defer a.Close(context.Background())

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/video/BV17x411w7KC", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "TelegramBot (like TwitterBot)")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	kinds := map[trace.SpanKind]tracetest.SpanStub{}
	for _, span := range spans {
		kinds[span.SpanKind] = span
	}
	server, client := kinds[trace.SpanKindServer], kinds[trace.SpanKindClient]
	require.Equal(t, "GET /video/BV{code}", server.Name)
	require.Equal(t, server.SpanContext.TraceID(), client.SpanContext.TraceID())
	require.Empty(t, forwarded.Load())
}

func testConfig(endpoint string) config.Config {
	return config.Config{
		Server:    config.ServerConfig{Host: "127.0.0.1", Port: 8080, RequestTimeoutSeconds: 5, ShutdownTimeoutSeconds: 2},
		Upstream:  config.UpstreamConfig{Endpoint: endpoint, TimeoutSeconds: 2},
		Site:      config.SiteConfig{RepositoryURL: "https://github.com/cubewhy/fxbilibili"},
		Telemetry: config.TelemetryConfig{ServiceName: "fxbilibili-test"},
	}
}
