// Package review implements the manager dashboard: status buckets with
// collapsible panels, single-ticket selection, and accept/refuse decisions.
package review

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/billedapp/billflow/internal/dispatcher"
	"github.com/billedapp/billflow/internal/domain/entity"
	"github.com/billedapp/billflow/internal/domain/event"
	"github.com/billedapp/billflow/internal/identity"
	"github.com/billedapp/billflow/internal/preview"
	"github.com/billedapp/billflow/internal/render"
	"github.com/billedapp/billflow/internal/route"
	"github.com/billedapp/billflow/internal/store"
)

// Workflow drives one reviewer session. Its state (selected ticket, panel
// toggle counters) is owned exclusively by this instance; rendering code
// never mutates it directly.
type Workflow struct {
	store     store.Store
	renderer  render.Renderer
	navigator route.Navigator
	resolver  identity.Resolver
	logger    *zap.Logger

	dispatcher dispatcher.Dispatcher
	preview    *preview.Preview

	selectedTicketID string
	counters         map[entity.Status]int
}

// Option configures the workflow.
type Option func(*Workflow)

// WithDispatcher sets an event dispatcher notified after review decisions.
func WithDispatcher(d dispatcher.Dispatcher) Option {
	return func(w *Workflow) {
		w.dispatcher = d
	}
}

// New creates a reviewer session. A nil store follows the "not wired up"
// convention: updates become silent no-ops and listings resolve absent. A
// nil resolver disables identity exclusion, as in test contexts.
func New(s store.Store, r render.Renderer, nav route.Navigator, resolver identity.Resolver, logger *zap.Logger, opts ...Option) *Workflow {
	w := &Workflow{
		store:     s,
		renderer:  r,
		navigator: nav,
		resolver:  resolver,
		logger:    logger,
		preview:   preview.New(r, preview.AdminFactor),
		counters: map[entity.Status]int{
			entity.StatusPending:  0,
			entity.StatusAccepted: 0,
			entity.StatusRefused:  0,
		},
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// SelectedTicketID returns the currently expanded ticket, empty when none.
func (w *Workflow) SelectedTicketID() string {
	return w.selectedTicketID
}

// ToggleCount returns how many times the panel for a status was toggled.
func (w *Workflow) ToggleCount(status entity.Status) int {
	return w.counters[status]
}

// FilterByStatus returns the bills in one status bucket, relative order
// preserved. Bills belonging to the current reviewer or to the excluded
// test identities are hidden when a resolver is configured.
func (w *Workflow) FilterByStatus(bills []entity.Bill, status entity.Status) []entity.Bill {
	filtered := []entity.Bill{}
	if len(bills) == 0 {
		return filtered
	}

	excluded := make(map[string]bool)
	if w.resolver != nil {
		for _, email := range w.resolver.ExcludedEmails() {
			excluded[email] = true
		}
	}

	for _, bill := range bills {
		if bill.Status == status && !excluded[bill.Email] {
			filtered = append(filtered, bill)
		}
	}
	return filtered
}

// TogglePanel flips one status panel between expanded and collapsed based
// on the parity of its counter: even renders the filtered card list and
// points the arrow down, odd clears the panel and points it sideways.
// Ticket click handlers are rebound synchronously on every expand, with
// prior handlers removed first so repeated toggles never double-bind.
func (w *Workflow) TogglePanel(status entity.Status, bills []entity.Bill) {
	filtered := w.FilterByStatus(bills, status)

	if w.counters[status]%2 == 0 {
		w.renderer.SetStyle(arrowSelector(status), "transform", "rotate(0deg)")
		w.renderer.SetHTML(containerSelector(status), Cards(filtered))

		for _, bill := range filtered {
			bill := bill
			selector := cardSelector(bill.ID)
			w.renderer.OffClick(selector)
			w.renderer.OnClick(selector, func() {
				w.SelectTicket(bill, bills)
			})
		}
	} else {
		w.renderer.SetStyle(arrowSelector(status), "transform", "rotate(90deg)")

		for _, bill := range filtered {
			w.renderer.OffClick(cardSelector(bill.ID))
		}

		w.renderer.SetHTML(containerSelector(status), "")
	}

	w.counters[status]++
}

// SelectTicket expands or collapses the clicked ticket. Clicking the
// already-selected ticket collapses it back to the idle panel; clicking any
// other ticket resets every card's style, highlights the clicked one, and
// renders its review form. At most one ticket is ever expanded.
func (w *Workflow) SelectTicket(bill entity.Bill, allBills []entity.Bill) {
	if w.selectedTicketID == bill.ID {
		w.renderer.SetStyle(cardSelector(bill.ID), "background", defaultCardBackground)
		w.renderer.SetHTML(detailPanelSelector, bigBilledIconHTML)
		w.renderer.SetStyle(navbarSelector, "height", "120vh")
		w.selectedTicketID = ""
	} else {
		for _, b := range allBills {
			w.renderer.SetStyle(cardSelector(b.ID), "background", defaultCardBackground)
		}
		w.renderer.SetStyle(cardSelector(bill.ID), "background", selectedCardBackground)
		w.renderer.SetHTML(detailPanelSelector, DetailForm(bill))
		w.renderer.SetStyle(navbarSelector, "height", "150vh")
		w.selectedTicketID = bill.ID
		w.bindDetailControls(bill)
	}
}

// bindDetailControls points the detail panel's eye, accept, and refuse
// controls at the now-current bill.
func (w *Workflow) bindDetailControls(bill entity.Bill) {
	w.renderer.OffClick(eyeIconSelector)
	w.renderer.OnClick(eyeIconSelector, func() {
		w.preview.Render(adminModalSelector, bill.FileURL)
	})

	w.renderer.OffClick(acceptButtonSelector)
	w.renderer.OnClick(acceptButtonSelector, func() {
		w.Accept(context.Background(), bill, w.renderer.Value(commentFieldSelector))
	})

	w.renderer.OffClick(refuseButtonSelector)
	w.renderer.OnClick(refuseButtonSelector, func() {
		w.Refuse(context.Background(), bill, w.renderer.Value(commentFieldSelector))
	})
}

// Accept marks the bill accepted with the reviewer's comment and returns to
// the dashboard. Navigation is not gated on the update's outcome.
func (w *Workflow) Accept(ctx context.Context, bill entity.Bill, comment string) {
	w.review(ctx, bill, entity.StatusAccepted, comment, event.TypeBillAccepted)
}

// Refuse marks the bill refused with the reviewer's comment and returns to
// the dashboard. Navigation is not gated on the update's outcome.
func (w *Workflow) Refuse(ctx context.Context, bill entity.Bill, comment string) {
	w.review(ctx, bill, entity.StatusRefused, comment, event.TypeBillRefused)
}

func (w *Workflow) review(ctx context.Context, bill entity.Bill, status entity.Status, comment string, eventType event.Type) {
	updated := bill
	updated.Status = status
	updated.CommentAdmin = comment

	// Fire and forget: the update settles in the background while the
	// reviewer is already back on the dashboard.
	w.UpdateBill(ctx, updated)

	if w.dispatcher != nil {
		w.dispatcher.DispatchAsync(ctx, event.NewEvent(eventType, bill.ID, map[string]interface{}{
			"previous_status": string(bill.Status),
			"new_status":      string(status),
			"comment_admin":   comment,
		}))
	}

	w.navigator.Navigate(route.KeyDashboard)
}

// UpdateBill issues the full record through the store, keyed by the bill
// ID. The returned channel delivers the update's outcome and may be
// ignored; a rejection is logged and swallowed, never surfaced to the
// reviewer. With no store configured this is a silent no-op returning nil.
//
// Swallowing update failures mirrors the dashboard's historical behavior
// and is a known gap, not a guarantee.
func (w *Workflow) UpdateBill(ctx context.Context, bill entity.Bill) <-chan error {
	if w.store == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		defer close(done)

		data, err := json.Marshal(bill)
		if err != nil {
			w.logger.Error("Failed to encode bill update",
				zap.String("id", bill.ID),
				zap.Error(err))
			done <- err
			return
		}

		_, err = w.store.Bills().Update(ctx, store.UpdateOp{
			Data:     string(data),
			Selector: bill.ID,
		})
		if err != nil {
			w.logger.Error("Failed to update bill",
				zap.String("id", bill.ID),
				zap.Error(err))
		}
		done <- err
	}()

	return done
}

// AllBills fetches the raw, unformatted list across every user. Store
// rejections propagate unchanged; with no store configured the result is
// absent (nil slice, nil error).
func (w *Workflow) AllBills(ctx context.Context) ([]entity.Bill, error) {
	if w.store == nil {
		return nil, nil
	}

	snapshot, err := w.store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}

	bills := make([]entity.Bill, len(snapshot))
	copy(bills, snapshot)
	return bills, nil
}
