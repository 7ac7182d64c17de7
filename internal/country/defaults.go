package country

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var defaultCountries []byte

// ParseEntries decodes a YAML list of entries.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse country entries: %w", err)
	}
	return entries, nil
}

// DefaultEntries returns the embedded country list.
func DefaultEntries() []Entry {
	entries, err := ParseEntries(defaultCountries)
	if err != nil {
		panic(fmt.Sprintf("embedded countries.yaml: %v", err))
	}
	return entries
}

// NewDefaultTable builds a table from the embedded country list.
func NewDefaultTable() *Table {
	return NewTable(DefaultEntries())
}

// LoadFile adds the entries of a YAML file to t and returns how many were read.
func (t *Table) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read country file: %w", err)
	}
	entries, err := ParseEntries(data)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		t.AddEntry(e)
	}
	return len(entries), nil
}
