package core

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	// DefaultMaxRangeSpan caps how many cartons one range string may denote.
	DefaultMaxRangeSpan = 10000

	// HardMaxRangeSpan applies when MaxSpan is zero or larger than it.
	HardMaxRangeSpan = 1_000_000
)

// rangeSeparators are tried in order; the first one found in the input wins.
// Tokens that contain other tokens ("-->" contains "-") must come first.
var rangeSeparators = []string{"-->", "->", "=>", "→", "—", "–", "~", "-"}

// RangeExpander turns a carton field such as "265-->267" or "150" into the
// carton numbers it denotes.
type RangeExpander struct {
	// MaxSpan limits the number of cartons in one range. Zero leaves only
	// HardMaxRangeSpan in force.
	MaxSpan int
}

var defaultExpander = RangeExpander{MaxSpan: DefaultMaxRangeSpan}

// ExpandCtnRange expands s with the default span limit.
func ExpandCtnRange(s string) ([]int, error) {
	return defaultExpander.Expand(s)
}

// Expand returns the ordered carton numbers s denotes.
func (e RangeExpander) Expand(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, newError(CodeInvalidInput, "carton value is empty")
	}
	if !onlyRangeChars(s) {
		return nil, newError(CodeInvalidInput, "carton value %q contains invalid characters", s)
	}

	var out []int
	if sep, ok := findSeparator(s); ok {
		r, err := e.expandRange(s, sep)
		if err != nil {
			return nil, err
		}
		out = r
	} else {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, newError(CodeInvalidNumberFormat, "carton number %q is not a valid integer", s)
		}
		if n <= 0 {
			return nil, newError(CodeInvalidNumberValue, "carton number must be positive, got %d", n)
		}
		out = []int{n}
	}

	for _, n := range out {
		if n <= 0 {
			return nil, newError(CodeInvalidRangeValues, "expanded carton %d is not positive", n)
		}
	}
	return out, nil
}

func (e RangeExpander) expandRange(s, sep string) ([]int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return nil, newError(CodeInvalidRangeFormat, "range %q must have exactly one %q separator", s, sep)
	}

	startStr := strings.TrimSpace(parts[0])
	endStr := strings.TrimSpace(parts[1])
	start, errStart := strconv.Atoi(startStr)
	end, errEnd := strconv.Atoi(endStr)
	if errStart != nil || errEnd != nil {
		return nil, newError(CodeInvalidRangeNumbers, "range %q has non-numeric bounds", s)
	}

	if start > end {
		return nil, newError(CodeInvalidRangeOrder, "range start %d is greater than end %d", start, end)
	}
	if start <= 0 || end <= 0 {
		return nil, newError(CodeInvalidRangeValues, "range bounds must be positive, got %d and %d", start, end)
	}
	// end-start cannot overflow once both bounds are positive.
	span := uint64(end-start) + 1
	if limit := e.limit(); span > uint64(limit) {
		return nil, newError(CodeRangeTooLarge, "range %q spans %d cartons, limit is %d", s, span, limit)
	}

	out := make([]int, 0, span)
	for i := 0; i < int(span); i++ {
		out = append(out, start+i)
	}
	return out, nil
}

// limit is the effective span cap.
func (e RangeExpander) limit() int {
	if e.MaxSpan <= 0 || e.MaxSpan > HardMaxRangeSpan {
		return HardMaxRangeSpan
	}
	return e.MaxSpan
}

// findSeparator returns the first separator, in priority order, present in s.
func findSeparator(s string) (string, bool) {
	for _, sep := range rangeSeparators {
		if strings.Contains(s, sep) {
			return sep, true
		}
	}
	return "", false
}

// onlyRangeChars reports whether s consists of ASCII digits, whitespace and
// separator tokens only.
func onlyRangeChars(s string) bool {
	for _, sep := range rangeSeparators {
		s = strings.ReplaceAll(s, sep, " ")
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}
		return false
	}
	return true
}
