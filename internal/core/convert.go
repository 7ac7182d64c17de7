package core

// convert.go provides value coercion for loosely typed spreadsheet cells.
//
// Rows arrive from JSON decoding (float64, string, nil), from spreadsheet
// intake (float64, string) or from Go callers (any integer type). These
// helpers give every stage one view of "number", "text" and "blank".

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// asNumber returns v as a float64 if it is any numeric kind.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		f := float64(n)
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// isNumber reports whether v is numeric.
func isNumber(v any) bool {
	_, ok := asNumber(v)
	return ok
}

// isString reports whether v is a Go string.
func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// textOf renders a cell as trimmed text. Numbers use the shortest
// representation ("150", not "150.000000"); nil renders as "".
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return strings.TrimSpace(t.String())
	}
	if f, ok := asNumber(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// isBlank reports whether a cell is nil or whitespace-only text.
func isBlank(v any) bool {
	return textOf(v) == ""
}

// present reports whether row has a non-nil value under key.
func present(row RawRow, key string) bool {
	v, ok := row[key]
	return ok && v != nil
}

// maxWholeNumber bounds quantities and pallets, whatever form they arrive in.
const maxWholeNumber = math.MaxInt32

// parsePositiveInt accepts a whole number in 1..maxWholeNumber given either
// as a number or as base-10 text.
func parsePositiveInt(v any) (int, bool) {
	if s, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 || n > maxWholeNumber {
			return 0, false
		}
		return n, true
	}

	f, ok := asNumber(v)
	if !ok || f <= 0 || f != math.Trunc(f) || f > maxWholeNumber {
		return 0, false
	}
	return int(f), true
}

// typeName names the JSON type of v, as reported in validation issues.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any, RawRow:
		return "object"
	}
	if isNumber(v) {
		return "number"
	}
	return "unknown"
}
