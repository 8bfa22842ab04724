package billing

import (
	"strings"

	"meatstore-backend/internal/models"
)

// Policy controls the two validation gaps the reference counter leaves
// open on purpose: discounts that push the payable below zero, and
// committing a line at a zero/negative override price. Defaults keep
// both allowed; stricter shops flip them in config.
type Policy struct {
	AllowNegativePayable bool
	AllowZeroPrice       bool
}

// DefaultPolicy reproduces the reference counter behavior.
func DefaultPolicy() Policy {
	return Policy{AllowNegativePayable: true, AllowZeroPrice: true}
}

// Session owns one operator's set of draft bills. It is pure in-memory
// state with single-writer ownership (one session per terminal); nothing
// here does I/O or blocks. Every operation is a no-op on bad input
// rather than an error: the counter must never interrupt a sale.
type Session struct {
	policy Policy
	bills  []*models.Bill
	active int
	draft  Draft
}

// NewSession starts with one empty bill, selected, and a clean draft.
func NewSession(policy Policy) *Session {
	return &Session{
		policy: policy,
		bills:  []*models.Bill{{ID: 1}},
		active: 0,
		draft:  defaultDraft(),
	}
}

// OpenBill appends a new empty bill and returns its id. The new tab is
// NOT selected automatically; the operator switches to it explicitly.
func (s *Session) OpenBill() int {
	id := len(s.bills) + 1
	s.bills = append(s.bills, &models.Bill{ID: id})
	return id
}

// SelectBill switches the active tab. Out-of-range indexes are ignored.
func (s *Session) SelectBill(index int) {
	if index < 0 || index >= len(s.bills) {
		return
	}
	s.active = index
}

// ActiveIndex returns the selected tab position.
func (s *Session) ActiveIndex() int {
	return s.active
}

// Bills returns a copy of every bill for display.
func (s *Session) Bills() []models.Bill {
	out := make([]models.Bill, len(s.bills))
	for i, b := range s.bills {
		out[i] = *b
		out[i].Items = append([]models.LineItem(nil), b.Items...)
	}
	return out
}

// ActiveBill returns a copy of the selected bill.
func (s *Session) ActiveBill() models.Bill {
	b := *s.bills[s.active]
	b.Items = append([]models.LineItem(nil), b.Items...)
	return b
}

// AttachCustomer sets the customer reference on the active bill.
func (s *Session) AttachCustomer(name, phone string) {
	s.bills[s.active].Customer = &models.Customer{Name: name, Phone: phone}
}

// Draft returns the pending line item.
func (s *Session) Draft() Draft {
	return s.draft
}

// SetDraft merges a partial update into the pending line item.
func (s *Session) SetDraft(patch DraftPatch) {
	if patch.Name != nil {
		s.draft.Name = *patch.Name
	}
	if patch.MRP != nil {
		s.draft.MRP = *patch.MRP
	}
	if patch.SellingPrice != nil {
		s.draft.SellingPrice = *patch.SellingPrice
	}
	if patch.Quantity != nil {
		s.draft.Quantity = *patch.Quantity
	}
	if patch.Discount != nil {
		s.draft.Discount = *patch.Discount
	}
	if patch.Weight != nil {
		s.draft.Weight = *patch.Weight
	}
}

// ClearDraft resets the pending line item to defaults.
func (s *Session) ClearDraft() {
	s.draft = defaultDraft()
}

// DraftAmount prices the pending line item for live preview.
func (s *Session) DraftAmount() float64 {
	return DraftAmount(s.draft)
}

// DraftTotal is the previewed line total after discount.
func (s *Session) DraftTotal() float64 {
	return DraftTotal(s.draft)
}

// CommitLineItem validates that name, selling price and quantity were
// entered, appends the priced item to the active bill and resets the
// draft. The committed values come from the same compute functions as
// the preview. Returns false (and changes nothing) when validation or
// policy rejects the draft.
func (s *Session) CommitLineItem() (models.LineItem, bool) {
	d := s.draft
	if strings.TrimSpace(d.Name) == "" ||
		strings.TrimSpace(d.SellingPrice) == "" ||
		strings.TrimSpace(d.Quantity) == "" {
		return models.LineItem{}, false
	}

	item := models.LineItem{
		Name:         d.Name,
		MRP:          parseAmount(d.MRP),
		SellingPrice: parseAmount(d.SellingPrice),
		Quantity:     parseQuantity(d.Quantity),
		Discount:     parseAmount(d.Discount),
		WeightFactor: parseWeightFactor(d.Weight),
		Amount:       DraftAmount(d),
		Total:        DraftTotal(d),
	}

	if !s.policy.AllowZeroPrice && item.SellingPrice <= 0 {
		return models.LineItem{}, false
	}

	bill := s.bills[s.active]
	bill.Items = append(bill.Items, item)
	s.draft = defaultDraft()
	return item, true
}

// RemoveLineItem deletes by position from the active bill. Out-of-range
// indexes are ignored.
func (s *Session) RemoveLineItem(index int) bool {
	bill := s.bills[s.active]
	if index < 0 || index >= len(bill.Items) {
		return false
	}
	bill.Items = append(bill.Items[:index], bill.Items[index+1:]...)
	return true
}

// SubTotal is the sum of line totals on the active bill.
func (s *Session) SubTotal() float64 {
	var sum float64
	for _, item := range s.bills[s.active].Items {
		sum += item.Total
	}
	return sum
}

// LineDiscount is the sum of per-line discounts on the active bill.
func (s *Session) LineDiscount() float64 {
	var sum float64
	for _, item := range s.bills[s.active].Items {
		sum += item.Discount
	}
	return sum
}

// TotalQuantity sums quantities on the active bill, for the tab footer.
func (s *Session) TotalQuantity() float64 {
	var sum float64
	for _, item := range s.bills[s.active].Items {
		sum += item.Quantity
	}
	return sum
}

// BuildPaymentDraft snapshots the active bill's payment computation.
// Discount fields arrive as typed; unparsable input counts as zero.
// The result is recomputed on every call, never cached.
func (s *Session) BuildPaymentDraft(additionalDiscount, offerDiscount, method string) models.PaymentDraft {
	sub := s.SubTotal()
	line := s.LineDiscount()
	additional := parseAmount(additionalDiscount)
	offer := parseAmount(offerDiscount)

	return models.PaymentDraft{
		BillID:             s.bills[s.active].ID,
		SubTotal:           sub,
		LineDiscount:       line,
		AdditionalDiscount: additional,
		OfferDiscount:      offer,
		PayableAmount:      sub - line - additional - offer,
		Method:             method,
	}
}

// ResetActiveBill clears the active bill after a completed sale. The
// tab keeps its id and stays selected for the next customer.
func (s *Session) ResetActiveBill() {
	bill := s.bills[s.active]
	bill.Items = nil
	bill.Customer = nil
	s.draft = defaultDraft()
}

// FinalizePayment builds the payment draft and applies policy. A
// negative payable is rejected (false, no-op) when the policy disallows
// it; otherwise the draft is returned for the caller to persist.
func (s *Session) FinalizePayment(additionalDiscount, offerDiscount, method string) (models.PaymentDraft, bool) {
	draft := s.BuildPaymentDraft(additionalDiscount, offerDiscount, method)
	if !s.policy.AllowNegativePayable && draft.PayableAmount < 0 {
		return models.PaymentDraft{}, false
	}
	return draft, true
}
