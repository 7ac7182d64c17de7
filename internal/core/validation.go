package core

// validation.go checks the shape of incoming rows before the pipeline runs.
//
// Validation is exhaustive: every field of every row is checked and all
// problems are returned together, each tagged with the offending row's
// LINE (or its index when LINE is unusable). Callers show the full list so
// a spreadsheet can be fixed in one pass.

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Issue codes reported by ValidateRows.
const (
	IssueInvalidType = "invalid_type"
)

// LineRef identifies the row an issue belongs to. It renders as the row's
// own LINE number when known, otherwise as "Index {i}".
type LineRef struct {
	Number    int
	HasNumber bool
	Index     int
}

func (l LineRef) String() string {
	if l.HasNumber {
		return strconv.Itoa(l.Number)
	}
	return fmt.Sprintf("Index %d", l.Index)
}

// MarshalJSON renders a number when the LINE is known, a string otherwise.
func (l LineRef) MarshalJSON() ([]byte, error) {
	if l.HasNumber {
		return json.Marshal(l.Number)
	}
	return json.Marshal(l.String())
}

// Issue describes one shape or type problem in the input. Line is nil for
// the root issue, which belongs to no row.
type Issue struct {
	Line          *LineRef `json:"line,omitempty"`
	Field         string   `json:"field"`
	Error         string   `json:"error"`
	ReceivedValue string   `json:"receivedValue,omitempty"`
	ExpectedValue string   `json:"expectedValue,omitempty"`
	Code          string   `json:"code"`
}

// kind is the accepted type set of one field.
type kind int

const (
	kindNumber kind = iota
	kindString
	kindStringOrNumber
	kindNullableNumber
)

func (k kind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindNullableNumber:
		return "number | null"
	default:
		return "string | number"
	}
}

func (k kind) accepts(v any) bool {
	switch k {
	case kindNumber:
		return isNumber(v)
	case kindString:
		return isString(v)
	case kindNullableNumber:
		return v == nil || isNumber(v)
	default:
		return isString(v) || isNumber(v)
	}
}

// fieldRule is the validation rule for one reserved key.
type fieldRule struct {
	Key      string
	Kind     kind
	Required bool
}

// rowRules lists the reserved keys in report order.
var rowRules = []fieldRule{
	{Key: KeyLine, Kind: kindNumber, Required: true},
	{Key: KeySKU, Kind: kindString, Required: true},
	{Key: KeyMake, Kind: kindString, Required: true},
	{Key: KeyModel, Kind: kindString, Required: true},
	{Key: KeyDescription, Kind: kindString, Required: true},
	{Key: KeyQtyRequired, Kind: kindNumber, Required: true},
	{Key: KeyQtyAllocated, Kind: kindNullableNumber},
	{Key: KeyOrigin, Kind: kindString},
	{Key: KeyEAN, Kind: kindNumber},
	{Key: KeyPallet, Kind: kindNumber},
	{Key: KeyCarton, Kind: kindStringOrNumber, Required: true},
	{Key: KeyQuantity, Kind: kindNumber, Required: true},
}

var reservedKeys = func() map[string]bool {
	m := make(map[string]bool, len(rowRules))
	for _, r := range rowRules {
		m[r.Key] = true
	}
	return m
}()

// ValidateRows checks that input is an array of well-formed rows.
//
// On success it returns normalized copies of the rows (QTY ALLOC is set to
// nil when absent) and no issues. On failure it returns nil rows and every
// issue found. A non-array input yields a single issue on field "root".
func ValidateRows(input any) ([]RawRow, []Issue) {
	elems, ok := asArray(input)
	if !ok {
		return nil, []Issue{{
			Field:         "root",
			Error:         fmt.Sprintf("Expected array, received %s", typeName(input)),
			ReceivedValue: typeName(input),
			ExpectedValue: "array",
			Code:          IssueInvalidType,
		}}
	}

	rows := make([]RawRow, 0, len(elems))
	var issues []Issue

	for i, elem := range elems {
		row, rowIssues := validateRow(i, elem)
		issues = append(issues, rowIssues...)
		if len(rowIssues) == 0 {
			rows = append(rows, row)
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return rows, nil
}

// validateRow checks a single element and returns its normalized copy.
func validateRow(index int, elem any) (RawRow, []Issue) {
	src, ok := asObject(elem)
	if !ok {
		return nil, []Issue{{
			Line:          &LineRef{Index: index},
			Field:         "row",
			Error:         fmt.Sprintf("Expected object, received %s", typeName(elem)),
			ReceivedValue: typeName(elem),
			ExpectedValue: "object",
			Code:          IssueInvalidType,
		}}
	}

	line := lineOf(index, src)
	var issues []Issue

	for _, rule := range rowRules {
		v, exists := src[rule.Key]
		if !exists {
			if rule.Required {
				issues = append(issues, Issue{
					Line:          &line,
					Field:         rule.Key,
					Error:         "Required",
					ReceivedValue: "undefined",
					ExpectedValue: rule.Kind.String(),
					Code:          IssueInvalidType,
				})
			}
			continue
		}
		if !rule.Kind.accepts(v) {
			issues = append(issues, typeIssue(line, rule.Key, rule.Kind, v))
		}
	}

	// Catch-all keys, sorted so the report order is stable.
	extra := make([]string, 0, len(src))
	for k := range src {
		if !reservedKeys[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		if !kindStringOrNumber.accepts(src[k]) {
			issues = append(issues, typeIssue(line, k, kindStringOrNumber, src[k]))
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}

	row := make(RawRow, len(src)+1)
	for k, v := range src {
		row[k] = v
	}
	if _, ok := row[KeyQtyAllocated]; !ok {
		row[KeyQtyAllocated] = nil
	}
	return row, nil
}

func typeIssue(line LineRef, field string, k kind, v any) Issue {
	return Issue{
		Line:          &line,
		Field:         field,
		Error:         fmt.Sprintf("Expected %s, received %s", k, typeName(v)),
		ReceivedValue: typeName(v),
		ExpectedValue: k.String(),
		Code:          IssueInvalidType,
	}
}

// lineOf returns the row's LINE when it is a whole number.
func lineOf(index int, row map[string]any) LineRef {
	ref := LineRef{Index: index}
	if f, ok := asNumber(row[KeyLine]); ok && f == float64(int(f)) {
		ref.Number = int(f)
		ref.HasNumber = true
	}
	return ref
}

func asArray(v any) ([]any, bool) {
	switch a := v.(type) {
	case []any:
		return a, true
	case []map[string]any:
		out := make([]any, len(a))
		for i := range a {
			out[i] = a[i]
		}
		return out, true
	case []RawRow:
		out := make([]any, len(a))
		for i := range a {
			out[i] = a[i]
		}
		return out, true
	default:
		return nil, false
	}
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case RawRow:
		return m, m != nil
	default:
		return nil, false
	}
}

// FormatIssues renders issues as "Line 3, Field 'QTY': Expected number..."
// lines for logs and plain-text responses.
func FormatIssues(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		if is.Line == nil {
			out[i] = fmt.Sprintf("Field '%s': %s", is.Field, is.Error)
			continue
		}
		out[i] = fmt.Sprintf("Line %s, Field '%s': %s", is.Line, is.Field, is.Error)
	}
	return out
}
