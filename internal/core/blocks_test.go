package core

import (
	"errors"
	"testing"
)

type mapResolver map[string]string

func (m mapResolver) Resolve(name string) (string, bool) {
	code, ok := m[name]
	return code, ok
}

var widget = BaseItem{Description: "Widget", Category: "M-100"}

func TestExtractBlocks_SingleGroup(t *testing.T) {
	x := NewExtractor(nil)
	row := RawRow{KeyCarton: "100-102", KeyQuantity: 25.0, KeyPallet: 2.0}

	items, err := x.ExtractBlocks(row, widget)
	if err != nil {
		t.Fatalf("ExtractBlocks error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, it := range items {
		if it.Ctn != 100+i {
			t.Errorf("items[%d].Ctn = %d, want %d", i, it.Ctn, 100+i)
		}
		if it.Qty != 25 || it.TotalQty != 25 {
			t.Errorf("items[%d] qty = %d/%d, want 25/25", i, it.Qty, it.TotalQty)
		}
		if it.Pal == nil || *it.Pal != 2 {
			t.Errorf("items[%d].Pal = %v, want 2", i, it.Pal)
		}
		if it.Description != "Widget" || it.Category != "M-100" {
			t.Errorf("items[%d] base = %q/%q", i, it.Description, it.Category)
		}
	}

	*items[0].Pal = 99
	if *items[1].Pal != 2 {
		t.Error("items share a pallet pointer")
	}
}

func TestExtractBlocks_SuffixGroups(t *testing.T) {
	x := NewExtractor(nil)
	row := RawRow{
		KeyCarton: "1-2", KeyQuantity: 5.0,
		"CTN_10": "20", "QTY_10": 1.0,
		"CTN_2": 7.0, "QTY_2": "3", "PAL_2": 4.0,
	}

	items, err := x.ExtractBlocks(row, widget)
	if err != nil {
		t.Fatalf("ExtractBlocks error = %v", err)
	}

	wantCtns := []int{1, 2, 7, 20}
	if len(items) != len(wantCtns) {
		t.Fatalf("got %d items, want %d", len(items), len(wantCtns))
	}
	for i, want := range wantCtns {
		if items[i].Ctn != want {
			t.Errorf("items[%d].Ctn = %d, want %d (base group first, then by suffix number)", i, items[i].Ctn, want)
		}
	}
	if items[2].Qty != 3 || items[2].Pal == nil || *items[2].Pal != 4 {
		t.Errorf("group 2 item = %+v", items[2])
	}
	if items[0].Pal != nil {
		t.Errorf("base group should have no pallet, got %d", *items[0].Pal)
	}
}

func TestExtractBlocks_ItemCountProperty(t *testing.T) {
	x := NewExtractor(nil)
	rows := []struct {
		row  RawRow
		want int
	}{
		{RawRow{KeyCarton: "1-4", KeyQuantity: 1.0}, 4},
		{RawRow{KeyCarton: "1-4", KeyQuantity: 1.0, "CTN_2": "8-9"}, 4},
		{RawRow{KeyCarton: "1", KeyQuantity: 1.0, "QTY_3": 5.0, "CTN_4": "3-5", "QTY_4": 2.0}, 4},
		{RawRow{KeyCarton: "5", KeyQuantity: 1.0, "PAL_7": 1.0}, 1},
	}

	for i, tt := range rows {
		items, err := x.ExtractBlocks(tt.row, widget)
		if err != nil {
			t.Fatalf("row %d: ExtractBlocks error = %v", i, err)
		}
		if len(items) != tt.want {
			t.Errorf("row %d: got %d items, want %d", i, len(items), tt.want)
		}
	}
}

func TestExtractBlocks_StrictGroups(t *testing.T) {
	x := NewExtractor(nil)
	x.StrictGroups = true

	_, err := x.ExtractBlocks(RawRow{KeyCarton: "1", KeyQuantity: 1.0, "CTN_2": "5"}, widget)
	if CodeOf(err) != CodeIncompleteGroup {
		t.Errorf("code = %s, want %s", CodeOf(err), CodeIncompleteGroup)
	}

	// A pallet without CTN or QTY is not a partial group.
	if _, err := x.ExtractBlocks(RawRow{KeyCarton: "1", KeyQuantity: 1.0, "PAL_3": 2.0}, widget); err != nil {
		t.Errorf("pallet-only group: unexpected error %v", err)
	}
}

func TestExtractBlocks_Errors(t *testing.T) {
	x := NewExtractor(nil)
	tests := []struct {
		name string
		row  RawRow
		base BaseItem
		want Code
	}{
		{"nil row", nil, widget, CodeInvalidRowData},
		{"blank description", RawRow{KeyCarton: "1", KeyQuantity: 1.0}, BaseItem{Description: " ", Category: "M"}, CodeInvalidBaseItem},
		{"no carton keys", RawRow{KeyQuantity: 1.0}, widget, CodeNoCtnData},
		{"zero quantity", RawRow{KeyCarton: "1", KeyQuantity: 0.0}, widget, CodeInvalidQuantity},
		{"fractional quantity", RawRow{KeyCarton: "1", KeyQuantity: 2.5}, widget, CodeInvalidQuantity},
		{"text quantity", RawRow{KeyCarton: "1", KeyQuantity: "many"}, widget, CodeInvalidQuantity},
		{"huge text quantity", RawRow{KeyCarton: "1", KeyQuantity: "3000000000"}, widget, CodeInvalidQuantity},
		{"huge numeric quantity", RawRow{KeyCarton: "1", KeyQuantity: 3000000000.0}, widget, CodeInvalidQuantity},
		{"huge text pallet", RawRow{KeyCarton: "1", KeyQuantity: 1.0, KeyPallet: "3000000000"}, widget, CodeInvalidPallet},
		{"negative pallet", RawRow{KeyCarton: "1", KeyQuantity: 1.0, KeyPallet: -1.0}, widget, CodeInvalidPallet},
		{"bad range", RawRow{KeyCarton: "9-1", KeyQuantity: 1.0}, widget, CodeCtnExpansion},
		{"only partial groups", RawRow{KeyCarton: "1", "QTY_2": 1.0}, widget, CodeNoProcessedItems},
		{"null carton", RawRow{KeyCarton: nil, KeyQuantity: 1.0}, widget, CodeNoProcessedItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := x.ExtractBlocks(tt.row, tt.base)
			if got := CodeOf(err); got != tt.want {
				t.Errorf("code = %s, want %s (err = %v)", got, tt.want, err)
			}
		})
	}
}

func TestExtractBlocks_ExpansionErrorWrapsCause(t *testing.T) {
	_, err := NewExtractor(nil).ExtractBlocks(RawRow{KeyCarton: "9-1", KeyQuantity: 1.0}, widget)

	var e *Error
	if !errors.As(err, &e) || e.Code != CodeCtnExpansion {
		t.Fatalf("err = %v, want %s", err, CodeCtnExpansion)
	}
	if CodeOf(e.Err) != CodeInvalidRangeOrder {
		t.Errorf("cause code = %s, want %s", CodeOf(e.Err), CodeInvalidRangeOrder)
	}
}

func TestExtractBlocks_BlankPalletIgnored(t *testing.T) {
	items, err := NewExtractor(nil).ExtractBlocks(RawRow{KeyCarton: "1", KeyQuantity: 1.0, KeyPallet: "  "}, widget)
	if err != nil {
		t.Fatalf("ExtractBlocks error = %v", err)
	}
	if items[0].HasPallet() {
		t.Errorf("blank pallet should be undefined, got %d", *items[0].Pal)
	}
}

func TestExtractBlocks_Origin(t *testing.T) {
	resolver := mapResolver{"Germany": "DE"}
	tests := []struct {
		name      string
		countries CountryResolver
		origin    any
		want      string
	}{
		{"known", resolver, "Germany", "DE"},
		{"unknown", resolver, "Atlantis", NotApplicableCode},
		{"no resolver", nil, "Germany", NotApplicableCode},
		{"blank", resolver, "", ""},
		{"absent", resolver, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := RawRow{KeyCarton: "1", KeyQuantity: 1.0}
			if tt.origin != nil {
				row[KeyOrigin] = tt.origin
			}
			items, err := NewExtractor(tt.countries).ExtractBlocks(row, widget)
			if err != nil {
				t.Fatalf("ExtractBlocks error = %v", err)
			}
			if items[0].COO != tt.want {
				t.Errorf("COO = %q, want %q", items[0].COO, tt.want)
			}
		})
	}
}
