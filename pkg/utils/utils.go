package utils

import (
	"strconv"
	"time"
)

// NowTimestamp formats the current time like the backend's row timestamps
// (ISO-8601 in UTC), so locally stamped rows sort and render the same as
// server-echoed ones.
func NowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseDecimal parses an opaque decimal string from a push payload.
func ParseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func Float64Ptr(v float64) *float64 {
	return &v
}

func StringPtr(v string) *string {
	return &v
}
