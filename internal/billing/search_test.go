package billing

import (
	"testing"

	"meatstore-backend/internal/models"
)

var catalog = []models.Product{
	{ID: "p1", Name: "Fresh Chicken Breast", Category: "Chicken", Price: 320, Weight: "500g"},
	{ID: "p2", Name: "Chicken Thighs", Category: "Chicken", Price: 160, Weight: "450g"},
	{ID: "p3", Name: "Mutton Curry Cut", Category: "Mutton", Price: 650, OriginalPrice: 700, Weight: "500g"},
	{ID: "p4", Name: "Farm Fresh Eggs", Category: "Eggs", Price: 120, Weight: "12 pcs"},
}

func TestSearchCatalog(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"substring match", "chicken", []string{"Fresh Chicken Breast", "Chicken Thighs"}},
		{"case insensitive", "MUTTON", []string{"Mutton Curry Cut"}},
		{"mid-word match", "resh", []string{"Fresh Chicken Breast", "Farm Fresh Eggs"}},
		{"no match", "fish", nil},
		{"blank term returns nothing", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchCatalog(tt.term, catalog)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.Name != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, p.Name, tt.want[i])
				}
			}
		})
	}
}

func TestApplyCatalogSelection(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.ApplyCatalogSelection(catalog[2]) // Mutton Curry Cut

	d := s.Draft()
	if d.Name != "Mutton Curry Cut" {
		t.Errorf("name = %q", d.Name)
	}
	if d.SellingPrice != "650" {
		t.Errorf("selling price = %q, want 650", d.SellingPrice)
	}
	if d.MRP != "700" {
		t.Errorf("mrp = %q, want 700", d.MRP)
	}
	if d.Quantity != "1" || d.Discount != "0" {
		t.Errorf("quantity/discount not defaulted: %+v", d)
	}
	if d.Weight != "500g" {
		t.Errorf("weight = %q, want catalog nominal weight", d.Weight)
	}

	// prefill is not a commit
	if n := len(s.ActiveBill().Items); n != 0 {
		t.Errorf("selection committed %d items", n)
	}

	// non-numeric nominal weight falls back to factor 1 when priced
	if got := s.DraftAmount(); got != 650 {
		t.Errorf("draft amount = %v, want 650 (weight factor 1)", got)
	}
}

func TestApplyCatalogSelectionWithoutMRP(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.ApplyCatalogSelection(catalog[0])
	if d := s.Draft(); d.MRP != "320" {
		t.Errorf("mrp should fall back to price, got %q", d.MRP)
	}
}
