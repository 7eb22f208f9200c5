package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedAmountError reports a purchase amount that could not be parsed
// after stripping currency formatting. It is row-local: the loader records
// it and nulls the value instead of aborting the load.
type MalformedAmountError struct {
	Raw string
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("malformed purchase amount %q", e.Raw)
}

// ParseAmount converts a currency-formatted string ("$1,234.50") to a float.
// Already-numeric input passes through unchanged, so normalization is
// idempotent. The amount must never be silently coerced to zero: callers get
// a MalformedAmountError for anything that does not parse.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &MalformedAmountError{Raw: raw}
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &MalformedAmountError{Raw: raw}
	}
	return v, nil
}
