package feed

import (
	"sync"

	"meatstore-backend/internal/models"
)

// Listener receives the full order set whenever it changes. The slice
// handed over is a private copy; listeners may keep it.
type Listener interface {
	OrdersChanged(orders []models.OrderRecord)
}

// Feed is the in-memory order set the aggregation engine reads from.
// Each mutation replaces or extends the snapshot and notifies
// listeners; the engine recomputes from the whole set every time, so
// the feed never carries deltas.
type Feed struct {
	mu        sync.RWMutex
	orders    []models.OrderRecord
	listeners []Listener
}

func New() *Feed {
	return &Feed{}
}

// Subscribe registers a listener. Not safe to call concurrently with
// Replace/Append; wire all listeners during startup.
func (f *Feed) Subscribe(l Listener) {
	f.listeners = append(f.listeners, l)
}

// Replace swaps the whole order set, used on startup and full reloads.
func (f *Feed) Replace(orders []models.OrderRecord) {
	f.mu.Lock()
	f.orders = append([]models.OrderRecord(nil), orders...)
	f.mu.Unlock()
	f.notify()
}

// Append adds one finalized order to the set. An order ID already
// present (a retried storefront batch) is skipped so revenue never
// double-counts; reports whether the order was added.
func (f *Feed) Append(order models.OrderRecord) bool {
	f.mu.Lock()
	for _, o := range f.orders {
		if o.OrderID == order.OrderID {
			f.mu.Unlock()
			return false
		}
	}
	f.orders = append(f.orders, order)
	f.mu.Unlock()
	f.notify()
	return true
}

// Remove drops an order by ID, used when an operator voids a sale.
// Reports whether anything was removed.
func (f *Feed) Remove(orderID string) bool {
	f.mu.Lock()
	removed := false
	kept := f.orders[:0]
	for _, o := range f.orders {
		if o.OrderID == orderID {
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	f.orders = kept
	f.mu.Unlock()

	if removed {
		f.notify()
	}
	return removed
}

// Snapshot returns a copy of the current order set.
func (f *Feed) Snapshot() []models.OrderRecord {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]models.OrderRecord(nil), f.orders...)
}

func (f *Feed) notify() {
	snapshot := f.Snapshot()
	for _, l := range f.listeners {
		l.OrdersChanged(snapshot)
	}
}
