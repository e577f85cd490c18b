// Package schema defines the wire types exchanged with the NineByFour backend.
package schema

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// FlexInt decodes an integer that the backend may emit either as a native
// number or as a numeric string. Postgres bigint aggregates (COUNT(*)) are
// serialized as strings by the backend's driver, so both forms appear in
// production payloads. The numeric form is preferred; the string form is
// parsed as a fallback.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	var native int
	if err := json.Unmarshal(data, &native); err == nil {
		*n = FlexInt(native)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("flexint: %s is neither number nor string", string(data))
	}
	parsed, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("flexint: parse %q: %w", text, err)
	}
	*n = FlexInt(parsed)
	return nil
}

// MarshalJSON implements json.Marshaler, always emitting the numeric form.
func (n FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(n))), nil
}

// Int returns the plain integer value.
func (n FlexInt) Int() int { return int(n) }
