package billing

import (
	"math"
	"testing"

	"meatstore-backend/internal/models"
)

func strptr(s string) *string { return &s }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDraftComputation(t *testing.T) {
	tests := []struct {
		name       string
		draft      Draft
		wantAmount float64
		wantTotal  float64
	}{
		{
			name:       "plain unit sale",
			draft:      Draft{SellingPrice: "180", Quantity: "2"},
			wantAmount: 360,
			wantTotal:  360,
		},
		{
			name:       "discounted line",
			draft:      Draft{SellingPrice: "45", Quantity: "1", Discount: "5"},
			wantAmount: 45,
			wantTotal:  40,
		},
		{
			name:       "weight factor applies",
			draft:      Draft{SellingPrice: "400", Quantity: "1", Weight: "0.5"},
			wantAmount: 200,
			wantTotal:  200,
		},
		{
			name:       "non-numeric weight defaults to 1",
			draft:      Draft{SellingPrice: "100", Quantity: "2", Weight: "500g approx"},
			wantAmount: 200,
			wantTotal:  200,
		},
		{
			name:       "non-numeric price coerces to zero",
			draft:      Draft{SellingPrice: "abc", Quantity: "3"},
			wantAmount: 0,
			wantTotal:  0,
		},
		{
			name:       "non-numeric discount coerces to zero",
			draft:      Draft{SellingPrice: "50", Quantity: "1", Discount: "x"},
			wantAmount: 50,
			wantTotal:  50,
		},
		{
			name:       "empty quantity defaults to 1",
			draft:      Draft{SellingPrice: "60"},
			wantAmount: 60,
			wantTotal:  60,
		},
		{
			name:       "discount can exceed amount",
			draft:      Draft{SellingPrice: "10", Quantity: "1", Discount: "25"},
			wantAmount: 10,
			wantTotal:  -15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DraftAmount(tt.draft); !almostEqual(got, tt.wantAmount) {
				t.Errorf("DraftAmount = %v, want %v", got, tt.wantAmount)
			}
			if got := DraftTotal(tt.draft); !almostEqual(got, tt.wantTotal) {
				t.Errorf("DraftTotal = %v, want %v", got, tt.wantTotal)
			}
		})
	}
}

func TestPreviewMatchesCommit(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.SetDraft(DraftPatch{
		Name:         strptr("Chicken Breast"),
		SellingPrice: strptr("320"),
		Quantity:     strptr("2"),
		Discount:     strptr("15"),
		Weight:       strptr("0.5"),
	})

	previewAmount := s.DraftAmount()
	previewTotal := s.DraftTotal()

	item, ok := s.CommitLineItem()
	if !ok {
		t.Fatal("commit rejected a valid draft")
	}
	if !almostEqual(item.Amount, previewAmount) {
		t.Errorf("committed amount %v differs from preview %v", item.Amount, previewAmount)
	}
	if !almostEqual(item.Total, previewTotal) {
		t.Errorf("committed total %v differs from preview %v", item.Total, previewTotal)
	}
}

func TestCommitValidation(t *testing.T) {
	tests := []struct {
		name  string
		patch DraftPatch
		want  bool
	}{
		{
			name:  "all required present",
			patch: DraftPatch{Name: strptr("Eggs"), SellingPrice: strptr("120"), Quantity: strptr("1")},
			want:  true,
		},
		{
			name:  "missing name",
			patch: DraftPatch{SellingPrice: strptr("120"), Quantity: strptr("1")},
			want:  false,
		},
		{
			name:  "missing price",
			patch: DraftPatch{Name: strptr("Eggs"), Quantity: strptr("1")},
			want:  false,
		},
		{
			name:  "blank quantity rejected",
			patch: DraftPatch{Name: strptr("Eggs"), SellingPrice: strptr("120"), Quantity: strptr("  ")},
			want:  false,
		},
		{
			name:  "zero price accepted by default policy",
			patch: DraftPatch{Name: strptr("Freebie"), SellingPrice: strptr("0"), Quantity: strptr("1")},
			want:  true,
		},
		{
			name:  "negative quantity accepted",
			patch: DraftPatch{Name: strptr("Return"), SellingPrice: strptr("50"), Quantity: strptr("-1")},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(DefaultPolicy())
			s.SetDraft(tt.patch)
			before := len(s.ActiveBill().Items)
			_, ok := s.CommitLineItem()
			if ok != tt.want {
				t.Fatalf("CommitLineItem ok = %v, want %v", ok, tt.want)
			}
			after := len(s.ActiveBill().Items)
			if !ok && after != before {
				t.Error("rejected commit modified the bill")
			}
		})
	}
}

func TestCommitClearsDraft(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.SetDraft(DraftPatch{Name: strptr("Eggs"), SellingPrice: strptr("60"), Quantity: strptr("3"), Discount: strptr("2")})
	if _, ok := s.CommitLineItem(); !ok {
		t.Fatal("commit failed")
	}
	d := s.Draft()
	if d.Name != "" || d.SellingPrice != "" || d.Quantity != "1" || d.Discount != "0" {
		t.Errorf("draft not reset to defaults after commit: %+v", d)
	}
}

func TestDraftPatchMerges(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.SetDraft(DraftPatch{Name: strptr("Mutton Curry Cut"), SellingPrice: strptr("650")})
	s.SetDraft(DraftPatch{Quantity: strptr("2")})

	d := s.Draft()
	if d.Name != "Mutton Curry Cut" || d.SellingPrice != "650" || d.Quantity != "2" {
		t.Errorf("partial patch replaced instead of merged: %+v", d)
	}
}

func TestOpenBillDoesNotActivate(t *testing.T) {
	s := NewSession(DefaultPolicy())
	id := s.OpenBill()
	if id != 2 {
		t.Errorf("second bill id = %d, want 2", id)
	}
	if s.ActiveIndex() != 0 {
		t.Error("opening a bill must not switch the active tab")
	}
	s.SelectBill(1)
	if s.ActiveIndex() != 1 {
		t.Error("explicit select did not switch tabs")
	}
}

func TestSelectBillOutOfRange(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.OpenBill()
	s.SelectBill(5)
	if s.ActiveIndex() != 0 {
		t.Error("out-of-range select must be a no-op")
	}
	s.SelectBill(-1)
	if s.ActiveIndex() != 0 {
		t.Error("negative select must be a no-op")
	}
}

func TestBillIsolation(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.OpenBill()

	s.SetDraft(DraftPatch{Name: strptr("Chicken Thighs"), SellingPrice: strptr("160"), Quantity: strptr("1")})
	if _, ok := s.CommitLineItem(); !ok {
		t.Fatal("commit to bill 1 failed")
	}

	s.SelectBill(1)
	if got := s.SubTotal(); got != 0 {
		t.Errorf("bill 2 subtotal = %v, want 0", got)
	}
	if n := len(s.ActiveBill().Items); n != 0 {
		t.Errorf("bill 2 has %d items, want 0", n)
	}

	s.SetDraft(DraftPatch{Name: strptr("Eggs"), SellingPrice: strptr("60"), Quantity: strptr("1")})
	if _, ok := s.CommitLineItem(); !ok {
		t.Fatal("commit to bill 2 failed")
	}

	s.SelectBill(0)
	if got := s.SubTotal(); !almostEqual(got, 160) {
		t.Errorf("bill 1 subtotal changed to %v after committing to bill 2", got)
	}
}

func TestRemoveAndReAdd(t *testing.T) {
	s := NewSession(DefaultPolicy())

	add := func(name, sp, qty, disc string) {
		s.SetDraft(DraftPatch{Name: strptr(name), SellingPrice: strptr(sp), Quantity: strptr(qty), Discount: strptr(disc)})
		if _, ok := s.CommitLineItem(); !ok {
			t.Fatalf("commit %s failed", name)
		}
	}

	add("Chicken Breast", "180", "2", "0")
	add("Eggs", "45", "1", "5")
	wantSub := s.SubTotal()
	wantDisc := s.LineDiscount()

	if !s.RemoveLineItem(1) {
		t.Fatal("remove failed")
	}
	add("Eggs", "45", "1", "5")

	if got := s.SubTotal(); !almostEqual(got, wantSub) {
		t.Errorf("subtotal after remove/re-add = %v, want %v", got, wantSub)
	}
	if got := s.LineDiscount(); !almostEqual(got, wantDisc) {
		t.Errorf("line discount after remove/re-add = %v, want %v", got, wantDisc)
	}
}

func TestRemoveLineItemOutOfRange(t *testing.T) {
	s := NewSession(DefaultPolicy())
	if s.RemoveLineItem(0) {
		t.Error("removing from an empty bill must be a no-op")
	}
	if s.RemoveLineItem(-3) {
		t.Error("negative index must be a no-op")
	}
}

func TestBuildPaymentDraft(t *testing.T) {
	s := NewSession(DefaultPolicy())

	add := func(sp, qty, disc string) {
		s.SetDraft(DraftPatch{Name: strptr("x"), SellingPrice: strptr(sp), Quantity: strptr(qty), Discount: strptr(disc)})
		if _, ok := s.CommitLineItem(); !ok {
			t.Fatal("commit failed")
		}
	}
	add("180", "2", "0")
	add("45", "1", "5")

	draft := s.BuildPaymentDraft("10", "0", models.PaymentCash)
	if !almostEqual(draft.SubTotal, 400) {
		t.Errorf("subTotal = %v, want 400", draft.SubTotal)
	}
	if !almostEqual(draft.LineDiscount, 5) {
		t.Errorf("lineDiscount = %v, want 5", draft.LineDiscount)
	}
	if !almostEqual(draft.PayableAmount, 385) {
		t.Errorf("payable = %v, want 385", draft.PayableAmount)
	}
	if draft.Method != models.PaymentCash {
		t.Errorf("method = %q, want %q", draft.Method, models.PaymentCash)
	}
}

func TestPaymentDraftRecomputes(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.SetDraft(DraftPatch{Name: strptr("x"), SellingPrice: strptr("100"), Quantity: strptr("1")})
	s.CommitLineItem()

	first := s.BuildPaymentDraft("0", "0", models.PaymentUPI)

	s.SetDraft(DraftPatch{Name: strptr("y"), SellingPrice: strptr("50"), Quantity: strptr("1")})
	s.CommitLineItem()

	second := s.BuildPaymentDraft("0", "0", models.PaymentUPI)
	if !almostEqual(second.SubTotal, first.SubTotal+50) {
		t.Errorf("payment draft did not recompute: %v then %v", first.SubTotal, second.SubTotal)
	}
}

func TestPaymentDraftCoercesJunkDiscounts(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.SetDraft(DraftPatch{Name: strptr("x"), SellingPrice: strptr("100"), Quantity: strptr("1")})
	s.CommitLineItem()

	draft := s.BuildPaymentDraft("oops", "", models.PaymentCash)
	if !almostEqual(draft.PayableAmount, 100) {
		t.Errorf("junk discounts must coerce to 0, payable = %v", draft.PayableAmount)
	}
}

func TestFinalizePolicy(t *testing.T) {
	strict := Policy{AllowNegativePayable: false, AllowZeroPrice: false}

	t.Run("negative payable rejected", func(t *testing.T) {
		s := NewSession(strict)
		s.SetDraft(DraftPatch{Name: strptr("x"), SellingPrice: strptr("50"), Quantity: strptr("1")})
		s.CommitLineItem()
		if _, ok := s.FinalizePayment("100", "0", models.PaymentCash); ok {
			t.Error("strict policy must reject negative payable")
		}
		if _, ok := s.FinalizePayment("10", "0", models.PaymentCash); !ok {
			t.Error("positive payable must finalize")
		}
	})

	t.Run("zero price commit rejected", func(t *testing.T) {
		s := NewSession(strict)
		s.SetDraft(DraftPatch{Name: strptr("x"), SellingPrice: strptr("0"), Quantity: strptr("1")})
		if _, ok := s.CommitLineItem(); ok {
			t.Error("strict policy must reject zero-price commits")
		}
	})

	t.Run("default policy allows both", func(t *testing.T) {
		s := NewSession(DefaultPolicy())
		s.SetDraft(DraftPatch{Name: strptr("x"), SellingPrice: strptr("50"), Quantity: strptr("1")})
		s.CommitLineItem()
		draft, ok := s.FinalizePayment("100", "0", models.PaymentCash)
		if !ok {
			t.Fatal("default policy must accept negative payable")
		}
		if !almostEqual(draft.PayableAmount, -50) {
			t.Errorf("payable = %v, want -50", draft.PayableAmount)
		}
	})
}

func TestResetActiveBill(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.OpenBill()
	s.SelectBill(1)
	s.AttachCustomer("Ravi", "9876543210")
	s.SetDraft(DraftPatch{Name: strptr("Eggs"), SellingPrice: strptr("60"), Quantity: strptr("2")})
	s.CommitLineItem()
	s.SetDraft(DraftPatch{Name: strptr("pending")})

	s.ResetActiveBill()

	b := s.ActiveBill()
	if b.ID != 2 {
		t.Errorf("bill id changed to %d after reset, want 2", b.ID)
	}
	if len(b.Items) != 0 || b.Customer != nil {
		t.Errorf("reset left state behind: %+v", b)
	}
	if s.ActiveIndex() != 1 {
		t.Error("reset must not switch tabs")
	}
	if s.Draft().Name != "" {
		t.Error("reset must clear the pending draft")
	}
}

func TestAttachCustomer(t *testing.T) {
	s := NewSession(DefaultPolicy())
	s.AttachCustomer("Ravi", "9876543210")
	b := s.ActiveBill()
	if b.Customer == nil || b.Customer.Name != "Ravi" || b.Customer.Phone != "9876543210" {
		t.Errorf("customer not attached: %+v", b.Customer)
	}
}
