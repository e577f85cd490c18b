package api

import (
	json "github.com/goccy/go-json"

	"github.com/ninebyfour/ninebyfour-go/errs"
)

// decode parses validated response bytes into the target type. A failure
// here is distinct from validation: the server said 200 but the body does
// not have the expected shape.
func decode[T any](operation string, data []byte) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, errs.New(operation, errs.KindDecoding,
			errs.WithCause(err),
			errs.WithRawMessage(string(data)),
		)
	}
	return out, nil
}

// encodeBody serializes a request body to JSON. Failures are construction
// errors surfaced before any network call.
func encodeBody(operation string, body any) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, errs.New(operation, errs.KindInvalidResponse, errs.WithCause(err))
	}
	return raw, nil
}
