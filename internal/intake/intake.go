// Package intake turns uploaded spreadsheet exports into untyped rows ready
// for core.ValidateRows.
//
// Both CSV and XLSX files are read the same way: the first non-blank row is
// the header, every following non-blank row becomes one map keyed by header.
// Cells are cleaned of common export artifacts and typed (see typeCell).
package intake

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format is a supported upload format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	// ErrEmptyFile is returned when a file has a header but no data rows.
	ErrEmptyFile = errors.New("empty file: no data rows found")

	// ErrMissingHeader is returned when a file has no non-blank row at all.
	ErrMissingHeader = errors.New("missing header row")
)

// DetectFormat picks the format from a file name's extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported format %q: upload a .csv or .xlsx file", filepath.Ext(filename))
	}
}

// Read decodes r according to filename's extension. sheet selects the
// worksheet of an XLSX file; empty means the first sheet.
func Read(r io.Reader, filename, sheet string) ([]map[string]any, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return ReadXLSX(r, sheet)
	default:
		return ReadCSV(r)
	}
}

// Rows converts intake output into the []any shape produced by JSON decoding.
func Rows(rows []map[string]any) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}
