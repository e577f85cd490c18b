// Package errs provides structured error types and helpers for the NineByFour client.
package errs

import (
	"errors"
	"strconv"
	"strings"
)

// Kind identifies a terminal failure category. Every error produced by the
// client pipeline carries exactly one Kind; kinds are never nested.
type Kind string

const (
	// KindUnauthorized indicates a missing, invalid, or expired credential.
	KindUnauthorized Kind = "unauthorized"
	// KindForbidden indicates the action is not permitted for the current identity.
	KindForbidden Kind = "forbidden"
	// KindHTTP indicates a non-2xx status outside the dedicated auth codes.
	KindHTTP Kind = "http_error"
	// KindDecoding indicates a 2xx response whose body could not be parsed.
	KindDecoding Kind = "decoding_error"
	// KindNetwork indicates a transport-level failure with no response obtained.
	KindNetwork Kind = "network"
	// KindInvalidResponse indicates malformed request construction or an
	// unparseable response envelope.
	KindInvalidResponse Kind = "invalid_response"
)

// E captures structured error information produced across the client stack.
type E struct {
	Kind      Kind
	Operation string
	HTTP      int
	Message   string
	RawMsg    string

	cause error
}

// Option configures an error envelope.
type Option func(*E)

// New constructs an error envelope for the operation and failure kind.
func New(operation string, kind Kind, opts ...Option) *E {
	e := &E{
		Kind:      kind,
		Operation: strings.TrimSpace(operation),
		HTTP:      0,
		Message:   "",
		RawMsg:    "",
		cause:     nil,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// WithMessage attaches a human-readable message to the error.
func WithMessage(message string) Option {
	trimmed := strings.TrimSpace(message)
	return func(e *E) {
		e.Message = trimmed
	}
}

// WithHTTP records the associated HTTP status code.
func WithHTTP(status int) Option {
	return func(e *E) {
		e.HTTP = status
	}
}

// WithRawMessage captures the raw server error body.
func WithRawMessage(msg string) Option {
	return func(e *E) {
		e.RawMsg = msg
	}
}

// WithCause sets the underlying cause error.
func WithCause(err error) Option {
	return func(e *E) {
		e.cause = err
	}
}

func (e *E) Error() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string

	operation := strings.TrimSpace(e.Operation)
	if operation == "" {
		operation = "unknown"
	}
	parts = append(parts, "op="+operation)

	kind := strings.TrimSpace(string(e.Kind))
	if kind == "" {
		kind = "unknown"
	}
	parts = append(parts, "kind="+kind)

	if e.HTTP > 0 {
		parts = append(parts, "http="+strconv.Itoa(e.HTTP))
	}
	if e.Message != "" {
		parts = append(parts, "message="+strconv.Quote(e.Message))
	}
	if e.RawMsg != "" {
		parts = append(parts, "raw_msg="+strconv.Quote(e.RawMsg))
	}
	if e.cause != nil {
		parts = append(parts, "cause="+strconv.Quote(e.cause.Error()))
	}

	return strings.Join(parts, " ")
}

func (e *E) Unwrap() error { return e.cause }

// KindOf extracts the failure kind from err, unwrapping as needed.
// Errors produced outside this package report KindNetwork, matching the
// remedy a caller has for any unclassified failure.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) && e != nil {
		return e.Kind
	}
	return KindNetwork
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage renders the text shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if !errors.As(err, &e) || e == nil {
		return "Network connection failed. Please check your internet."
	}
	switch e.Kind {
	case KindUnauthorized:
		return "Session expired. Please log in again."
	case KindForbidden:
		return "You don't have permission to perform this action."
	case KindHTTP:
		msg := e.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return "Error " + strconv.Itoa(e.HTTP) + ": " + msg
	case KindDecoding:
		return "Failed to process server response."
	case KindNetwork:
		return "Network connection failed. Please check your internet."
	case KindInvalidResponse:
		return "Invalid response from server."
	default:
		return "An unexpected error occurred."
	}
}
