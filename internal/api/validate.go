package api

import (
	"net/http"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/ninebyfour/ninebyfour-go/errs"
)

// Validate maps a response status to an outcome. Any 2xx status is a
// success regardless of body content; decoding happens in a separate stage.
func Validate(operation string, status int, body []byte) error {
	switch {
	case status >= 200 && status <= 299:
		return nil
	case status == http.StatusUnauthorized:
		return errs.New(operation, errs.KindUnauthorized, errs.WithHTTP(status))
	case status == http.StatusForbidden:
		return errs.New(operation, errs.KindForbidden, errs.WithHTTP(status))
	default:
		message := extractErrorMessage(body)
		if message == "" {
			message = "Unknown error"
		}
		return errs.New(operation, errs.KindHTTP,
			errs.WithHTTP(status),
			errs.WithMessage(message),
			errs.WithRawMessage(string(body)),
		)
	}
}

// extractErrorMessage pulls the server-supplied error text from an error
// body. A JSON object is consulted for its "message" then "error" fields;
// a non-JSON body is returned as raw text. The empty string means no
// message was found and the caller should fall back to a literal.
func extractErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msg, ok := envelope["message"].(string); ok {
			return msg
		}
		if msg, ok := envelope["error"].(string); ok {
			return msg
		}
		return ""
	}
	if !utf8.Valid(body) {
		return ""
	}
	return string(body)
}
