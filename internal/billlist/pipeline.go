// Package billlist fetches raw bill records, orders them, and maps each
// through the formatter with row-level fault isolation.
package billlist

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/billedapp/billflow/internal/domain/entity"
	"github.com/billedapp/billflow/internal/format"
	"github.com/billedapp/billflow/internal/store"
)

// Pipeline turns the stored bill collection into display-ready view models.
type Pipeline struct {
	store  store.Store
	logger *zap.Logger
}

// NewPipeline creates a pipeline over the given store. A nil store is a
// valid "not wired up" configuration: Fetch then resolves to an absent
// result instead of an error.
func NewPipeline(s store.Store, logger *zap.Logger) *Pipeline {
	return &Pipeline{store: s, logger: logger}
}

// Fetch lists the stored bills sorted by raw date, newest first, each with
// its date and status formatted for display. A row whose date fails to
// format keeps its raw date and is logged; it is never dropped. Store
// failures propagate unchanged. With no store configured the result is a
// nil slice and a nil error, distinguishable from an empty list.
func (p *Pipeline) Fetch(ctx context.Context) ([]entity.BillView, error) {
	if p.store == nil {
		return nil, nil
	}

	snapshot, err := p.store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}

	sorted := sortByRawDate(snapshot)

	views := make([]entity.BillView, 0, len(sorted))
	for _, doc := range sorted {
		view := entity.BillView{
			Bill:   doc,
			Date:   doc.Date,
			Status: format.FormatStatus(doc.Status),
		}

		formatted, err := format.FormatDate(doc.Date)
		if err != nil {
			// Corrupted data may have been introduced; keep the raw
			// date for this row and let the batch resolve.
			p.logger.Warn("Failed to format bill date",
				zap.Error(err),
				zap.Any("bill", doc))
		} else {
			view.Date = formatted
		}

		views = append(views, view)
	}

	p.logger.Debug("Fetched bills", zap.Int("length", len(views)))
	return views, nil
}

// sortByRawDate orders bills descending by the raw, unformatted date string.
// Lexical comparison is only correct for zero-padded YYYY-MM-DD input; ties
// place the later input item first.
func sortByRawDate(bills []entity.Bill) []entity.Bill {
	sorted := make([]entity.Bill, len(bills))
	for i, b := range bills {
		sorted[len(bills)-1-i] = b
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}
