package api

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ninebyfour/ninebyfour-go/errs"
	"github.com/ninebyfour/ninebyfour-go/internal/credentials"
)

// RequestBuilder turns an endpoint plus optional body and query parameters
// into a transport-ready request. Building performs no network I/O; its only
// side effect is a single credential read for authenticated endpoints, taken
// fresh per request so login and logout are observed on the next call.
type RequestBuilder struct {
	baseURL string
	creds   credentials.Store
}

// NewRequestBuilder constructs a builder for the fixed base URL.
func NewRequestBuilder(baseURL string, creds credentials.Store) *RequestBuilder {
	return &RequestBuilder{baseURL: strings.TrimRight(baseURL, "/"), creds: creds}
}

// Build assembles a JSON request. A nil body produces no payload and no
// content type; a missing credential on an authenticated endpoint fails
// before any network call.
func (b *RequestBuilder) Build(ctx context.Context, ep Endpoint, body any, query url.Values) (*http.Request, error) {
	var payload []byte
	if body != nil {
		raw, err := encodeBody(ep.Operation(), body)
		if err != nil {
			return nil, err
		}
		payload = raw
	}
	req, err := b.base(ctx, ep, query, payload)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := b.authorize(ep, req); err != nil {
		return nil, err
	}
	return req, nil
}

// BuildMultipart assembles an upload request carrying the encoded form.
func (b *RequestBuilder) BuildMultipart(ctx context.Context, ep Endpoint, form *Form) (*http.Request, error) {
	req, err := b.base(ctx, ep, nil, form.Encode())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.ContentType())
	if err := b.authorize(ep, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (b *RequestBuilder) base(ctx context.Context, ep Endpoint, query url.Values, payload []byte) (*http.Request, error) {
	target, err := url.Parse(b.baseURL + ep.Path())
	if err != nil {
		return nil, errs.New(ep.Operation(), errs.KindInvalidResponse, errs.WithCause(err))
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	var reader *bytes.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, string(ep.Method()), target.String(), reader)
	if err != nil {
		return nil, errs.New(ep.Operation(), errs.KindInvalidResponse, errs.WithCause(err))
	}
	return req, nil
}

func (b *RequestBuilder) authorize(ep Endpoint, req *http.Request) error {
	if !ep.RequiresAuth() {
		return nil
	}
	token, ok := b.creds.Token()
	if !ok || token == "" {
		return errs.New(ep.Operation(), errs.KindUnauthorized,
			errs.WithMessage("no credential stored"))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
