package api

import (
	"testing"

	"github.com/ninebyfour/ninebyfour-go/errs"
)

func TestValidateAccepts2xxRegardlessOfBody(t *testing.T) {
	for _, status := range []int{200, 201, 204, 226, 299} {
		if err := Validate("op", status, []byte("not json at all")); err != nil {
			t.Fatalf("status %d: unexpected error %v", status, err)
		}
	}
}

func TestValidateAuthStatuses(t *testing.T) {
	if kind := errs.KindOf(Validate("op", 401, nil)); kind != errs.KindUnauthorized {
		t.Fatalf("401 kind=%s", kind)
	}
	if kind := errs.KindOf(Validate("op", 403, nil)); kind != errs.KindForbidden {
		t.Fatalf("403 kind=%s", kind)
	}
}

func TestValidateMessageExtractionOrdering(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 429, `{"message":"rate limited"}`, "Error 429: rate limited"},
		{"error field", 500, `{"error":"broken"}`, "Error 500: broken"},
		{"message wins over error", 500, `{"message":"primary","error":"secondary"}`, "Error 500: primary"},
		{"object without fields", 500, `{"detail":"nope"}`, "Error 500: Unknown error"},
		{"raw text body", 503, `service unavailable`, "Error 503: service unavailable"},
		{"empty body", 500, ``, "Error 500: Unknown error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate("op", tc.status, []byte(tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errs.UserMessage(err); got != tc.want {
				t.Fatalf("message=%q want %q", got, tc.want)
			}
		})
	}
}

func TestValidateNonUTF8BodyFallsToLiteral(t *testing.T) {
	err := Validate("op", 500, []byte{0xFF, 0xFE, 0xFD})
	if got := errs.UserMessage(err); got != "Error 500: Unknown error" {
		t.Fatalf("message=%q", got)
	}
}
