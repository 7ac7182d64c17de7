// Package core provides the business logic for packing-list normalization.
//
// This package is the heart of the service, containing all domain logic
// independent of any transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Architecture
//
// Rows exported from a shipping spreadsheet pass through these stages:
//
//   - Row validation: [ValidateRows] checks the shape and types of every row
//     and reports every problem with its line number.
//   - Range expansion: [ExpandCtnRange] turns "100-102" into 100, 101, 102.
//   - Block extraction: [Extractor.ExtractBlocks] discovers the repeated
//     CTN/QTY/PAL groups of a row and emits one item per carton.
//   - Aggregation: [Processor.ProcessData] drives extraction row by row,
//     skipping bad rows without aborting the batch.
//   - Ordering: [SortPackingListItems] then [CalculateNumberOfCtns].
//
// # Field Groups
//
// A row may carry several shipment lines side by side:
//
//	CTN     QTY  PAL  CTN_1    QTY_1  PAL_1
//	1-3     10   1    7-->9    4      2
//
// Each suffix ("", "_1", "_2", ...) forms one block. A block needs both its
// CTN and QTY keys; PAL is optional.
//
// # Error Handling
//
// Expected failures are returned as *[Error] values carrying a stable code
// (see codes.go). [ResultOf] folds a (value, error) pair into the
// [Result] envelope used on the wire. [Describe] maps a code to a
// user-facing message with a suggested action.
package core
