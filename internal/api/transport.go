package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ninebyfour/ninebyfour-go/errs"
)

// Transport executes one built request and returns the raw body and status.
// Implementations perform no retries; a failed call is reported once. The
// operation name labels errors and metrics only.
type Transport interface {
	Do(ctx context.Context, operation string, req *http.Request) (body []byte, status int, err error)
}

// HTTPTransport executes requests over net/http with an optional client-side
// rate limiter bounding total request rate across all callers.
type HTTPTransport struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPTransport creates a transport with the provided timeout. A
// requestsPerSecond of zero disables rate limiting.
func NewHTTPTransport(timeout time.Duration, requestsPerSecond float64) *HTTPTransport {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := new(http.Client)
	client.Timeout = timeout
	t := &HTTPTransport{client: client, limiter: nil}
	if requestsPerSecond > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return t
}

// Do implements Transport. Every transport-level failure (DNS, timeout,
// reset, TLS) collapses into one network kind; the caller's remedy is the
// same regardless of cause.
func (t *HTTPTransport) Do(ctx context.Context, operation string, req *http.Request) ([]byte, int, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, 0, errs.New(operation, errs.KindNetwork, errs.WithCause(err))
		}
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, 0, errs.New(operation, errs.KindNetwork, errs.WithCause(err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errs.New(operation, errs.KindNetwork, errs.WithCause(err))
	}
	return body, resp.StatusCode, nil
}
