// Package country resolves free-text country-of-origin names to ISO 3166-1
// alpha-2 codes.
//
// A Table is built from the embedded default list, optionally extended from
// a YAML file and a Postgres alias table at startup, and is safe for
// concurrent lookups afterwards. Cached wraps any Resolver with an LRU.
package country

import (
	"strings"
	"sync"
)

// Resolver maps an origin name to a country code.
type Resolver interface {
	Resolve(name string) (code string, ok bool)
}

// Entry describes one country and the names it is known by.
type Entry struct {
	Code    string   `yaml:"code"`    // ISO 3166-1 alpha-2
	Alpha3  string   `yaml:"alpha3"`  // ISO 3166-1 alpha-3
	Name    string   `yaml:"name"`    // Common English name
	Aliases []string `yaml:"aliases"` // Other spellings and abbreviations
}

// Table is an in-memory name → code index.
type Table struct {
	mu     sync.RWMutex
	names  map[string]string // normalized name → alpha-2
	codes  map[string]bool   // known alpha-2 codes
	alpha3 map[string]string // alpha-3 → alpha-2
}

// NewTable builds a table from entries.
func NewTable(entries []Entry) *Table {
	t := &Table{
		names:  make(map[string]string),
		codes:  make(map[string]bool),
		alpha3: make(map[string]string),
	}
	for _, e := range entries {
		t.AddEntry(e)
	}
	return t
}

// AddEntry indexes e. Entries without a two-letter code are ignored.
func (t *Table) AddEntry(e Entry) {
	code := strings.ToUpper(strings.TrimSpace(e.Code))
	if len(code) != 2 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.codes[code] = true
	if a3 := strings.ToUpper(strings.TrimSpace(e.Alpha3)); len(a3) == 3 {
		t.alpha3[a3] = code
	}
	for _, name := range append([]string{e.Name}, e.Aliases...) {
		if key := NormalizeName(name); key != "" {
			t.names[key] = code
		}
	}
}

// AddAlias maps one more name to code. It reports false for a malformed code.
func (t *Table) AddAlias(code, alias string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	key := NormalizeName(alias)
	if len(code) != 2 || key == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.codes[code] = true
	t.names[key] = code
	return true
}

// Resolve returns the alpha-2 code for a country name, alias, alpha-2 or
// alpha-3 code.
func (t *Table) Resolve(name string) (string, bool) {
	raw := strings.ToUpper(strings.TrimSpace(name))
	if raw == "" {
		return "", false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(raw) == 2 && t.codes[raw] {
		return raw, true
	}
	if code, ok := t.alpha3[raw]; ok {
		return code, true
	}
	code, ok := t.names[NormalizeName(name)]
	return code, ok
}

// Len returns the number of indexed names.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}
