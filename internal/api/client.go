package api

import (
	"context"
	"net/url"
	"time"

	"github.com/ninebyfour/ninebyfour-go/errs"
	"github.com/ninebyfour/ninebyfour-go/internal/credentials"
	"github.com/ninebyfour/ninebyfour-go/internal/observability"
)

// Config carries the immutable configuration owned by a Client.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Credentials       credentials.Store
	// Transport overrides the default HTTP transport; tests inject fakes here.
	Transport Transport
}

// Client composes builder, transport, validator, and codec into the three
// public operations of the API surface. A Client holds no per-call mutable
// state; all operations are safe for concurrent use. Construct one per
// process and pass it to whatever needs it.
type Client struct {
	builder   *RequestBuilder
	transport Transport
}

// NewClient constructs a client from the configuration.
func NewClient(cfg Config) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = NewHTTPTransport(cfg.Timeout, cfg.RequestsPerSecond)
	}
	return &Client{
		builder:   NewRequestBuilder(cfg.BaseURL, cfg.Credentials),
		transport: transport,
	}
}

// Request performs a full round trip and decodes the response into T.
func Request[T any](ctx context.Context, c *Client, ep Endpoint, body any, query url.Values) (T, error) {
	var zero T
	req, err := c.builder.Build(ctx, ep, body, query)
	if err != nil {
		record(ep, time.Time{}, err)
		return zero, err
	}
	started := time.Now()
	raw, status, err := c.transport.Do(ctx, ep.Operation(), req)
	if err == nil {
		err = Validate(ep.Operation(), status, raw)
	}
	record(ep, started, err)
	if err != nil {
		return zero, err
	}
	out, err := decode[T](ep.Operation(), raw)
	if err != nil {
		observability.Telemetry().IncCounter(observability.MetricFailures, 1,
			map[string]string{"operation": ep.Operation(), "kind": string(errs.KindDecoding)})
		return zero, err
	}
	return out, nil
}

// RequestVoid performs a round trip, validates the status, and discards the body.
func RequestVoid(ctx context.Context, c *Client, ep Endpoint, body any) error {
	req, err := c.builder.Build(ctx, ep, body, nil)
	if err != nil {
		record(ep, time.Time{}, err)
		return err
	}
	started := time.Now()
	raw, status, err := c.transport.Do(ctx, ep.Operation(), req)
	if err == nil {
		err = Validate(ep.Operation(), status, raw)
	}
	record(ep, started, err)
	return err
}

// Upload sends a multipart form and decodes the response into T.
func Upload[T any](ctx context.Context, c *Client, ep Endpoint, form *Form) (T, error) {
	var zero T
	req, err := c.builder.BuildMultipart(ctx, ep, form)
	if err != nil {
		record(ep, time.Time{}, err)
		return zero, err
	}
	started := time.Now()
	raw, status, err := c.transport.Do(ctx, ep.Operation(), req)
	if err == nil {
		err = Validate(ep.Operation(), status, raw)
	}
	record(ep, started, err)
	if err != nil {
		return zero, err
	}
	return decode[T](ep.Operation(), raw)
}

func record(ep Endpoint, started time.Time, err error) {
	labels := map[string]string{"operation": ep.Operation()}
	observability.Telemetry().IncCounter(observability.MetricRequests, 1, labels)
	if !started.IsZero() {
		elapsed := float64(time.Since(started).Milliseconds())
		observability.Telemetry().ObserveHistogram(observability.MetricRequestLatency, elapsed, labels)
	}
	if err != nil {
		kind := errs.KindOf(err)
		observability.Telemetry().IncCounter(observability.MetricFailures, 1,
			map[string]string{"operation": ep.Operation(), "kind": string(kind)})
		observability.Log().Debug("request failed",
			observability.F("operation", ep.Operation()),
			observability.F("kind", string(kind)),
		)
	}
}
