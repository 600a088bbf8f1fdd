package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// CoerceNumber converts a raw JSON value to a finite number. Numbers are
// used as-is, numeric strings are parsed, and everything else (including
// a missing value) becomes 0.
func CoerceNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var v float64
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		v = parsed
	case 't':
		if string(raw) == "true" {
			return 1
		}
		return 0
	default:
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0
		}
	}

	return Finite(v)
}

// Finite maps NaN and infinities to 0.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CoerceString converts a raw JSON value to a string. Strings are used
// as-is and numbers keep their literal text, so an id written as 17 reads
// back as "17". Anything else becomes "".
func CoerceString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	default:
		return ""
	}
}

// maxUnixMilli bounds numeric dates to a range that fits in an int64.
const maxUnixMilli = 1e17

// CoerceTime converts a raw JSON value to a time. RFC 3339 strings are
// parsed, numbers (bare or quoted) are Unix milliseconds, and anything
// else becomes the zero time.
func CoerceTime(raw json.RawMessage) time.Time {
	s := strings.TrimSpace(CoerceString(raw))
	if s == "" {
		return time.Time{}
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return parsed
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil && math.Abs(ms) < maxUnixMilli {
		return time.UnixMilli(int64(ms)).UTC()
	}
	return time.Time{}
}
