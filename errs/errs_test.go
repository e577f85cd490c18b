package errs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormattingIncludesKindAndCause(t *testing.T) {
	err := New(
		"artists.list",
		KindHTTP,
		WithHTTP(500),
		WithMessage("internal failure"),
		WithRawMessage(`{"error":"internal failure"}`),
		WithCause(errors.New("status 500")),
	)

	out := err.Error()
	if !strings.Contains(out, "op=artists.list") {
		t.Fatalf("expected operation marker in error string: %s", out)
	}
	if !strings.Contains(out, "kind=http_error") {
		t.Fatalf("expected kind in error string: %s", out)
	}
	if !strings.Contains(out, "http=500") {
		t.Fatalf("expected status in error string: %s", out)
	}
	if !strings.Contains(out, "cause=\"status 500\"") {
		t.Fatalf("expected wrapped cause in error string: %s", out)
	}
}

func TestKindOfUnwrapsWrappedEnvelopes(t *testing.T) {
	inner := New("users.me", KindUnauthorized)
	wrapped := fmt.Errorf("load current user: %w", inner)
	if got := KindOf(wrapped); got != KindUnauthorized {
		t.Fatalf("expected unauthorized kind, got %s", got)
	}
	if !IsKind(wrapped, KindUnauthorized) {
		t.Fatal("expected IsKind to match through wrapping")
	}
}

func TestKindOfForeignErrorDefaultsToNetwork(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindNetwork {
		t.Fatalf("expected network kind for foreign error, got %s", got)
	}
}

func TestUserMessagePerKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", New("users.me", KindUnauthorized), "Session expired. Please log in again."},
		{"forbidden", New("artists.delete", KindForbidden), "You don't have permission to perform this action."},
		{"http", New("waitlist.join", KindHTTP, WithHTTP(409), WithMessage("already on waitlist")), "Error 409: already on waitlist"},
		{"http no message", New("waitlist.join", KindHTTP, WithHTTP(502)), "Error 502: Unknown error"},
		{"decoding", New("artists.list", KindDecoding), "Failed to process server response."},
		{"network", New("artists.list", KindNetwork), "Network connection failed. Please check your internet."},
		{"invalid", New("artists.list", KindInvalidResponse), "Invalid response from server."},
		{"foreign", errors.New("boom"), "Network connection failed. Please check your internet."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UserMessage(tc.err); got != tc.want {
				t.Fatalf("UserMessage=%q want %q", got, tc.want)
			}
		})
	}
}

func TestSurfacedPropagates(t *testing.T) {
	sentinel := New("auth.login", KindHTTP, WithHTTP(400))
	err := Surfaced(context.Background(), func(context.Context) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected surfaced error, got %v", err)
	}
}

func TestBestEffortSwallows(t *testing.T) {
	ok := BestEffort(context.Background(), func(context.Context) error {
		return New("messages.unread", KindNetwork)
	})
	if ok {
		t.Fatal("expected failure to report false")
	}
	if !BestEffort(context.Background(), func(context.Context) error { return nil }) {
		t.Fatal("expected success to report true")
	}
}
