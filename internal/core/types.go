package core

import "encoding/json"

// Reserved row keys.
const (
	KeyLine           = "LINE"
	KeySKU            = "SKU MIN"
	KeyMake           = "MAKE"
	KeyModel          = "MODEL"
	KeyDescription    = "DESCRIPTION MIN"
	KeyQtyRequired    = "QTY REQ MATCH"
	KeyQtyAllocated   = "QTY ALLOC"
	KeyOrigin         = "ORIGIN"
	KeyEAN            = "EAN"
	KeyPallet         = "PAL"
	KeyCarton         = "CTN"
	KeyQuantity       = "QTY"
	NotApplicableCode = "N/A"
)

// Carton markers assigned by CalculateNumberOfCtns.
const (
	MarkerFirst  = "1"
	MarkerRepeat = "*"
)

// RawRow is one spreadsheet row keyed by column header.
// Values are string, a number (float64, Go integer or json.Number) or nil.
type RawRow map[string]any

// BaseItem holds the fields shared by every item produced from one row.
type BaseItem struct {
	Description string // From DESCRIPTION MIN
	Category    string // From MODEL
}

// ProcessedItem is one carton line of the normalized packing list.
type ProcessedItem struct {
	Description  string `json:"description"`
	Category     string `json:"category"`
	COO          string `json:"coo,omitempty"`
	Ctn          int    `json:"ctn"`
	Qty          int    `json:"qty"`
	TotalQty     int    `json:"totalQty"`
	Pal          *int   `json:"pal,omitempty"`
	NumberOfCtns string `json:"numberOfCtns,omitempty"`
}

// HasPallet reports whether the item carries a pallet number.
func (p ProcessedItem) HasPallet() bool {
	return p.Pal != nil
}

// Summary contains totals over a processed batch.
type Summary struct {
	ProcessedRows int `json:"processedRows"` // Number of emitted items
	TotalPcs      int `json:"totalPcs"`      // Sum of item quantities
}

// Output is the success payload of Processor.ProcessData.
type Output struct {
	Data    []ProcessedItem `json:"data"`
	Summary Summary         `json:"summary"`
}

// Result is the two-variant envelope used when a result crosses a
// transport boundary: either OK with a Value, or a failure Code and Message.
type Result[T any] struct {
	OK      bool
	Value   T
	Code    Code
	Message string
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{OK: true, Value: v}
}

// Fail builds a failed result.
func Fail[T any](code Code, message string) Result[T] {
	return Result[T]{Code: code, Message: message}
}

// ResultOf folds a (value, error) pair into a Result.
// Errors that are not *Error are reported with CodeUnexpected.
func ResultOf[T any](v T, err error) Result[T] {
	if err == nil {
		return Ok(v)
	}
	return Fail[T](CodeOf(err), err.Error())
}

// MarshalJSON renders {ok:true,value} or {ok:false,code,message}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.OK {
		return json.Marshal(struct {
			OK    bool `json:"ok"`
			Value T    `json:"value"`
		}{true, r.Value})
	}
	return json.Marshal(struct {
		OK      bool   `json:"ok"`
		Code    Code   `json:"code"`
		Message string `json:"message"`
	}{false, r.Code, r.Message})
}

func intPtr(v int) *int {
	return &v
}
