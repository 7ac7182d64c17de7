package core

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// blockKeyRegex matches the members of a field group: CTN, QTY_2, PAL_10, ...
var blockKeyRegex = regexp.MustCompile(`^(PAL|CTN|QTY)(_\d+)?$`)

// CountryResolver maps a free-text origin name to a short country code.
type CountryResolver interface {
	Resolve(name string) (code string, ok bool)
}

// Extractor turns one row into its carton items.
type Extractor struct {
	Countries CountryResolver
	Ranges    RangeExpander

	// StrictGroups makes a group with only one of CTN/QTY fail the row with
	// CodeIncompleteGroup instead of being skipped.
	StrictGroups bool
}

// NewExtractor creates an extractor with the default range limit.
func NewExtractor(countries CountryResolver) *Extractor {
	return &Extractor{
		Countries: countries,
		Ranges:    defaultExpander,
	}
}

// block is one (CTN, QTY, PAL) key triple sharing a suffix.
type block struct {
	suffix string
	ctnKey string
	qtyKey string
	palKey string
}

func newBlock(suffix string) block {
	return block{
		suffix: suffix,
		ctnKey: KeyCarton + suffix,
		qtyKey: KeyQuantity + suffix,
		palKey: KeyPallet + suffix,
	}
}

// ExtractBlocks emits one ProcessedItem per carton of every complete field
// group in row. Any failing group aborts the whole row.
func (x *Extractor) ExtractBlocks(row RawRow, base BaseItem) ([]ProcessedItem, error) {
	if row == nil {
		return nil, newError(CodeInvalidRowData, "row data is missing or not an object")
	}
	if strings.TrimSpace(base.Description) == "" || strings.TrimSpace(base.Category) == "" {
		return nil, newError(CodeInvalidBaseItem, "description and category are required")
	}
	if !hasCartonKey(row) {
		return nil, newError(CodeNoCtnData, "row has no CTN columns")
	}

	coo := x.originCode(row)

	var items []ProcessedItem
	for _, b := range discoverBlocks(row) {
		hasCtn, hasQty := present(row, b.ctnKey), present(row, b.qtyKey)
		if !hasCtn || !hasQty {
			if x.StrictGroups && (hasCtn || hasQty) {
				return nil, newError(CodeIncompleteGroup, "group %q needs both %s and %s", groupName(b), b.ctnKey, b.qtyKey)
			}
			continue
		}

		blockItems, err := x.extractBlock(row, b, base, coo)
		if err != nil {
			return nil, err
		}
		items = append(items, blockItems...)
	}

	if len(items) == 0 {
		return nil, newError(CodeNoProcessedItems, "row produced no carton items")
	}
	if err := checkItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (x *Extractor) extractBlock(row RawRow, b block, base BaseItem, coo string) ([]ProcessedItem, error) {
	qty, ok := parsePositiveInt(row[b.qtyKey])
	if !ok {
		return nil, newError(CodeInvalidQuantity, "%s must be a positive integer, got %q", b.qtyKey, textOf(row[b.qtyKey]))
	}

	var pal *int
	if v := row[b.palKey]; !isBlank(v) {
		n, ok := parsePositiveInt(v)
		if !ok {
			return nil, newError(CodeInvalidPallet, "%s must be a positive integer, got %q", b.palKey, textOf(v))
		}
		pal = intPtr(n)
	}

	cartons, err := x.Ranges.Expand(textOf(row[b.ctnKey]))
	if err != nil {
		return nil, wrapError(CodeCtnExpansion, err, "%s: %s", b.ctnKey, err.Error())
	}

	items := make([]ProcessedItem, 0, len(cartons))
	for _, ctn := range cartons {
		item := ProcessedItem{
			Description: base.Description,
			Category:    base.Category,
			COO:         coo,
			Ctn:         ctn,
			Qty:         qty,
			TotalQty:    qty,
		}
		if pal != nil {
			item.Pal = intPtr(*pal)
		}
		items = append(items, item)
	}
	return items, nil
}

// originCode resolves ORIGIN. Blank origin yields "", unknown origin "N/A".
func (x *Extractor) originCode(row RawRow) string {
	origin := textOf(row[KeyOrigin])
	if origin == "" {
		return ""
	}
	if x.Countries == nil {
		return NotApplicableCode
	}
	if code, ok := x.Countries.Resolve(origin); ok {
		return code
	}
	return NotApplicableCode
}

func hasCartonKey(row RawRow) bool {
	for k := range row {
		if strings.HasPrefix(k, KeyCarton) {
			return true
		}
	}
	return false
}

// discoverBlocks collects the distinct group suffixes in row, base group
// first, then by ascending group number.
func discoverBlocks(row RawRow) []block {
	seen := make(map[string]bool)
	for k := range row {
		m := blockKeyRegex.FindStringSubmatch(k)
		if m == nil {
			continue
		}
		seen[m[2]] = true
	}

	suffixes := make([]string, 0, len(seen))
	for s := range seen {
		suffixes = append(suffixes, s)
	}
	sort.Slice(suffixes, func(i, j int) bool {
		oi, oj := suffixOrder(suffixes[i]), suffixOrder(suffixes[j])
		if oi != oj {
			return oi < oj
		}
		return suffixes[i] < suffixes[j]
	})

	blocks := make([]block, len(suffixes))
	for i, s := range suffixes {
		blocks[i] = newBlock(s)
	}
	return blocks
}

// suffixOrder maps "" to -1 and "_n" to n.
func suffixOrder(suffix string) int {
	if suffix == "" {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimPrefix(suffix, "_"))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

func groupName(b block) string {
	if b.suffix == "" {
		return "base"
	}
	return strings.TrimPrefix(b.suffix, "_")
}

// checkItems enforces the ProcessedItem invariants on extractor output.
func checkItems(items []ProcessedItem) error {
	for i, it := range items {
		switch {
		case it.Description == "" || it.Category == "":
			return newError(CodeOutputValidation, "item %d: missing description or category", i)
		case it.Ctn <= 0:
			return newError(CodeOutputValidation, "item %d: carton must be positive", i)
		case it.Qty <= 0 || it.TotalQty <= 0:
			return newError(CodeOutputValidation, "item %d: quantity must be positive", i)
		case it.Pal != nil && *it.Pal <= 0:
			return newError(CodeOutputValidation, "item %d: pallet must be positive", i)
		}
	}
	return nil
}
