package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Numeric is a body field that accepts both JSON numbers and strings.
//
// The text is kept so the `numeric` rule decides validity: 10, 1e1, "10"
// and "8.5" pass, "It was very good" is reported as a field error instead
// of a bind failure. Quoted strings are never rewritten.
type Numeric string

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("value must be a number or a numeric string")
	}
	*n = Numeric(plainDecimal(num.String()))
	return nil
}

// plainDecimal rewrites exponent notation (1e1, 2.5E-1) as decimal text so
// the numeric rule judges the value, not its spelling. Out-of-range values
// keep their text and fail validation.
func plainDecimal(raw string) string {
	if !strings.ContainsAny(raw, "eE") {
		return raw
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float64 parses the value. Call it only after validation passed.
func (n Numeric) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}
