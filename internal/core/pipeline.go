package core

// pipeline.go drives extraction over a validated batch.
//
// The batch policy is partial success: a row that cannot be processed is
// skipped with a diagnostic and the rest of the batch continues. The call
// only fails when no row produced any item.
//
// Extraction may run on several goroutines (Processor.Workers). Results are
// always merged in the original row order, so the output and the
// first-diagnostic rule are the same as in sequential mode.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Processor runs the normalization pipeline.
type Processor struct {
	extractor *Extractor
	workers   int
	logger    *slog.Logger
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithWorkers sets how many rows are extracted concurrently.
// Values below 2 keep extraction sequential.
func WithWorkers(n int) ProcessorOption {
	return func(p *Processor) {
		p.workers = n
	}
}

// WithLogger sets the logger used for run and diagnostic entries.
func WithLogger(l *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProcessor creates a processor around an extractor.
func NewProcessor(extractor *Extractor, opts ...ProcessorOption) *Processor {
	if extractor == nil {
		extractor = NewExtractor(nil)
	}
	p := &Processor{
		extractor: extractor,
		workers:   1,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// rowOutcome is the extraction result of one row.
type rowOutcome struct {
	items      []ProcessedItem
	diagnostic string
}

// ProcessData normalizes validated rows into a sorted, carton-numbered
// packing list.
//
// A nil slice fails with CodeInvalidInputType and an empty one with
// CodeEmptyInput. Rows that fail are skipped; if every row fails the call
// fails with CodeProcessingFailed citing the first failing row, or with
// CodeNoValidData when nothing was reported.
func (p *Processor) ProcessData(ctx context.Context, rows []RawRow) (Output, error) {
	if rows == nil {
		return Output{}, newError(CodeInvalidInputType, "input must be an array of rows")
	}
	if len(rows) == 0 {
		return Output{}, newError(CodeEmptyInput, "input contains no rows")
	}

	start := time.Now()
	logger := p.logger.With("run_id", uuid.NewString(), "rows", len(rows))

	outcomes := p.extractAll(ctx, rows)

	var (
		items       []ProcessedItem
		diagnostics []string
	)
	for _, o := range outcomes {
		if o.diagnostic != "" {
			diagnostics = append(diagnostics, o.diagnostic)
			continue
		}
		items = append(items, o.items...)
	}

	if len(items) == 0 {
		if len(diagnostics) > 0 {
			logger.Warn("packing list rejected", "skipped_rows", len(diagnostics), "first", diagnostics[0])
			return Output{}, newError(CodeProcessingFailed, "no rows could be processed: %s", diagnostics[0])
		}
		return Output{}, newError(CodeNoValidData, "no valid data found in input")
	}

	for _, d := range diagnostics {
		logger.Warn("row skipped", "diagnostic", d)
	}

	summary := Summary{ProcessedRows: len(items)}
	for _, it := range items {
		summary.TotalPcs += it.Qty
	}

	data := CalculateNumberOfCtns(SortPackingListItems(items))

	logger.Info("packing list processed",
		"items", summary.ProcessedRows,
		"total_pcs", summary.TotalPcs,
		"skipped_rows", len(diagnostics),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return Output{Data: data, Summary: summary}, nil
}

// extractAll returns one outcome per row, indexed like rows.
func (p *Processor) extractAll(ctx context.Context, rows []RawRow) []rowOutcome {
	outcomes := make([]rowOutcome, len(rows))

	if p.workers < 2 || len(rows) < 2 {
		for i, row := range rows {
			outcomes[i] = p.processRow(i, row)
		}
		return outcomes
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			outcomes[i] = p.processRow(i, row)
			return nil
		})
	}
	_ = g.Wait() // processRow never fails the group

	return outcomes
}

// processRow extracts one row, turning any failure into a diagnostic.
func (p *Processor) processRow(index int, row RawRow) rowOutcome {
	label := rowLabel(index, row)

	base := BaseItem{
		Description: textOf(row[KeyDescription]),
		Category:    textOf(row[KeyModel]),
	}
	if base.Description == "" || base.Category == "" {
		return rowOutcome{diagnostic: fmt.Sprintf("Line %s: missing base data", label)}
	}

	items, err := p.extractor.ExtractBlocks(row, base)
	if err != nil {
		return rowOutcome{diagnostic: fmt.Sprintf("Line %s: %s (%s)", label, err.Error(), CodeOf(err))}
	}
	return rowOutcome{items: items}
}

// rowLabel is the row's LINE, or its 1-based position when LINE is unusable.
func rowLabel(index int, row RawRow) string {
	if ref := lineOf(index, row); ref.HasNumber {
		return ref.String()
	}
	return fmt.Sprintf("%d", index+1)
}
