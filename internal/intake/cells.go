package intake

import (
	"regexp"
	"strconv"
	"strings"
)

// textColumns keep their cell text even when it looks like a number.
var textColumns = map[string]bool{
	"SKU MIN":         true,
	"MAKE":            true,
	"MODEL":           true,
	"DESCRIPTION MIN": true,
	"ORIGIN":          true,
}

// cartonColumn matches CTN and CTN_n, whose values may be ranges.
var cartonColumn = regexp.MustCompile(`^CTN(_\d+)?$`)

var spaceRun = regexp.MustCompile(`\s+`)

// groupedNumber matches numbers written with thousands separators: 1,250 or 12,000.5.
var groupedNumber = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// CleanCell removes common spreadsheet export artifacts from a cell value:
// surrounding whitespace, an Excel formula prefix (="...") and stray quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// normalizeHeader upper-cases a header and collapses inner whitespace, so
// " qty  req match" and "QTY REQ MATCH" name the same column.
func normalizeHeader(h string) string {
	return strings.ToUpper(spaceRun.ReplaceAllString(CleanCell(h), " "))
}

// typeCell converts one cleaned cell for the given column. Empty cells are
// reported as absent; text and carton columns stay strings; anything else
// that parses as a number becomes a float64. Commas are only dropped when
// they group thousands, so "1,2" stays text.
func typeCell(column, raw string) (any, bool) {
	v := CleanCell(raw)
	if v == "" {
		return nil, false
	}
	if textColumns[column] || cartonColumn.MatchString(column) {
		return v, true
	}
	num := v
	if groupedNumber.MatchString(num) {
		num = strings.ReplaceAll(num, ",", "")
	}
	if f, err := strconv.ParseFloat(num, 64); err == nil {
		return f, true
	}
	return v, true
}

// buildRows maps records to rows. The first non-blank record is the header;
// with no LINE column, LINE is set to the 1-based record number.
func buildRows(records [][]string) ([]map[string]any, error) {
	start := -1
	for i, rec := range records {
		if !blankRecord(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrMissingHeader
	}

	header := make([]string, len(records[start]))
	hasLine := false
	for i, h := range records[start] {
		header[i] = normalizeHeader(h)
		if header[i] == "LINE" {
			hasLine = true
		}
	}

	var rows []map[string]any
	for i := start + 1; i < len(records); i++ {
		rec := records[i]
		if blankRecord(rec) {
			continue
		}

		row := make(map[string]any, len(header)+1)
		for j, cell := range rec {
			if j >= len(header) || header[j] == "" {
				continue
			}
			if v, ok := typeCell(header[j], cell); ok {
				row[header[j]] = v
			}
		}
		if !hasLine {
			row["LINE"] = float64(i + 1)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if CleanCell(c) != "" {
			return false
		}
	}
	return true
}
