package feed

import (
	"testing"
	"time"

	"meatstore-backend/internal/models"
	"meatstore-backend/internal/reporting"
)

func TestNormalizePrefersProductsOverItems(t *testing.T) {
	raw := RawOrder{
		OrderID:       "ORD-1",
		Products:      []RawItem{{Name: "Eggs", Quantity: 2, Total: 120}},
		Items:         []RawItem{{Name: "stale", Quantity: 9, Total: 999}},
		PaymentMethod: "cash",
	}

	got := Normalize(raw)
	if len(got.Items) != 1 || got.Items[0].Name != "Eggs" {
		t.Fatalf("expected products field to win, got %+v", got.Items)
	}
}

func TestNormalizeFallsBackToItems(t *testing.T) {
	raw := RawOrder{
		ID:    "abc123",
		Items: []RawItem{{Name: "Chicken", Qty: 1, Total: 320}},
	}

	got := Normalize(raw)
	if got.OrderID != "abc123" {
		t.Errorf("order id = %q, want fallback to id field", got.OrderID)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 1 {
		t.Errorf("qty alias not honored: %+v", got.Items)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	raw := RawOrder{
		OrderID: "ORD-2",
		Items: []RawItem{
			{Name: "  Mutton ", Price: 650},         // no qty, no total
			{Name: "Eggs", Quantity: 2, Total: 120}, // fully specified
		},
	}

	got := Normalize(raw)
	first := got.Items[0]
	if first.Name != "Mutton" {
		t.Errorf("name not trimmed: %q", first.Name)
	}
	if first.Quantity != 1 {
		t.Errorf("missing quantity must default to 1, got %v", first.Quantity)
	}
	if first.Total != 650 {
		t.Errorf("total must derive from price*qty, got %v", first.Total)
	}
	if got.Total != 770 {
		t.Errorf("order total must fall back to item sum, got %v", got.Total)
	}
	if got.CreatedAt.IsZero() {
		t.Error("missing createdAt must be stamped")
	}
}

func TestNormalizeCustomerNamePrecedence(t *testing.T) {
	got := Normalize(RawOrder{OrderID: "o", CustomerName: "Ravi", Customer: "legacy"})
	if got.Customer != "Ravi" {
		t.Errorf("customer = %q, want customerName to win", got.Customer)
	}

	got = Normalize(RawOrder{OrderID: "o", Customer: "legacy"})
	if got.Customer != "legacy" {
		t.Errorf("customer = %q, want legacy field fallback", got.Customer)
	}
}

type captureListener struct {
	calls [][]models.OrderRecord
}

func (c *captureListener) OrdersChanged(orders []models.OrderRecord) {
	c.calls = append(c.calls, orders)
}

func TestFeedNotifiesListeners(t *testing.T) {
	f := New()
	l := &captureListener{}
	f.Subscribe(l)

	now := time.Now()
	f.Replace([]models.OrderRecord{{OrderID: "o1", CreatedAt: now}})
	f.Append(models.OrderRecord{OrderID: "o2", CreatedAt: now})

	if len(l.calls) != 2 {
		t.Fatalf("got %d notifications, want 2", len(l.calls))
	}
	if len(l.calls[1]) != 2 {
		t.Errorf("second snapshot has %d orders, want 2", len(l.calls[1]))
	}

	// Mutating a snapshot must not touch the feed.
	snap := f.Snapshot()
	snap[0].OrderID = "mutated"
	if f.Snapshot()[0].OrderID != "o1" {
		t.Error("snapshot must be a copy")
	}
}

func TestFeedAppendSkipsDuplicates(t *testing.T) {
	f := New()
	l := &captureListener{}
	f.Subscribe(l)

	order := models.OrderRecord{
		OrderID:       "ORD-000007",
		PaymentMethod: "cash",
		Total:         120,
		Items:         []models.OrderItem{{Name: "Eggs", Quantity: 2, Total: 120}},
		CreatedAt:     time.Now(),
	}

	if !f.Append(order) {
		t.Fatal("first append rejected")
	}
	if f.Append(order) {
		t.Error("re-appending the same order id must be skipped")
	}
	if n := len(f.Snapshot()); n != 1 {
		t.Fatalf("feed holds %d orders after duplicate append, want 1", n)
	}
	if len(l.calls) != 1 {
		t.Error("duplicate append must not notify listeners")
	}

	// A retried ingest must not inflate revenue.
	sum := reporting.Summarize(f.Snapshot())
	if got := sum.Rows[0].TotalRevenue; got != 120 {
		t.Errorf("revenue = %v after duplicate append, want 120", got)
	}
	if got := sum.Rows[0].OrderCount; got != 1 {
		t.Errorf("order count = %d, want 1", got)
	}
}

func TestFeedRemove(t *testing.T) {
	f := New()
	l := &captureListener{}
	f.Subscribe(l)

	now := time.Now()
	f.Replace([]models.OrderRecord{
		{OrderID: "o1", CreatedAt: now},
		{OrderID: "o2", CreatedAt: now},
	})

	if !f.Remove("o1") {
		t.Fatal("remove of existing order reported false")
	}
	if snap := f.Snapshot(); len(snap) != 1 || snap[0].OrderID != "o2" {
		t.Errorf("feed after remove = %+v, want only o2", snap)
	}
	if len(l.calls) != 2 {
		t.Errorf("got %d notifications, want 2 (replace + remove)", len(l.calls))
	}

	if f.Remove("missing") {
		t.Error("remove of unknown order must report false")
	}
	if len(l.calls) != 2 {
		t.Error("no-op remove must not notify")
	}
}
