package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"meatstore-backend/internal/billing"
	"meatstore-backend/internal/feed"
	"meatstore-backend/internal/metrics"
	"meatstore-backend/internal/models"
	"meatstore-backend/internal/repositories"
)

// Finalize failure modes surfaced to the handler layer.
var (
	ErrEmptyBill       = errors.New("cannot finalize an empty bill")
	ErrNegativePayable = errors.New("payable amount below zero is not allowed")
)

// BillingService owns the terminal sessions. Each terminal key maps to
// one in-memory session; all session mutations go through the service
// mutex since the billing core itself is single-writer.
type BillingService struct {
	mu       sync.Mutex
	sessions map[string]*billing.Session
	policy   billing.Policy

	orderRepo *repositories.OrderRepository
	orderFeed *feed.Feed
}

func NewBillingService(policy billing.Policy, orderRepo *repositories.OrderRepository, orderFeed *feed.Feed) *BillingService {
	return &BillingService{
		sessions:  make(map[string]*billing.Session),
		policy:    policy,
		orderRepo: orderRepo,
		orderFeed: orderFeed,
	}
}

// session returns the terminal's session, creating it on first use.
// Callers must hold s.mu.
func (s *BillingService) session(terminal string) *billing.Session {
	sess, ok := s.sessions[terminal]
	if !ok {
		sess = billing.NewSession(s.policy)
		s.sessions[terminal] = sess
		log.Printf("[Billing] New session for terminal %s", terminal)
	}
	return sess
}

// SessionState is the terminal's full view: every tab, the selection,
// the pending draft and its live preview.
type SessionState struct {
	Bills         []models.Bill `json:"bills"`
	ActiveIndex   int           `json:"active_index"`
	Draft         billing.Draft `json:"draft"`
	DraftAmount   float64       `json:"draft_amount"`
	DraftTotal    float64       `json:"draft_total"`
	SubTotal      float64       `json:"sub_total"`
	LineDiscount  float64       `json:"line_discount"`
	TotalQuantity float64       `json:"total_quantity"`
}

func (s *BillingService) state(sess *billing.Session) SessionState {
	return SessionState{
		Bills:         sess.Bills(),
		ActiveIndex:   sess.ActiveIndex(),
		Draft:         sess.Draft(),
		DraftAmount:   sess.DraftAmount(),
		DraftTotal:    sess.DraftTotal(),
		SubTotal:      sess.SubTotal(),
		LineDiscount:  sess.LineDiscount(),
		TotalQuantity: sess.TotalQuantity(),
	}
}

// State returns the current session view for a terminal.
func (s *BillingService) State(terminal string) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(s.session(terminal))
}

// OpenBill adds a tab without switching to it.
func (s *BillingService) OpenBill(terminal string) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(terminal)
	sess.OpenBill()
	return s.state(sess)
}

// SelectBill switches tabs; out-of-range indexes change nothing.
func (s *BillingService) SelectBill(terminal string, index int) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(terminal)
	sess.SelectBill(index)
	return s.state(sess)
}

// PatchDraft merges a partial draft edit.
func (s *BillingService) PatchDraft(terminal string, patch billing.DraftPatch) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(terminal)
	sess.SetDraft(patch)
	return s.state(sess)
}

// ClearDraft resets the pending line item.
func (s *BillingService) ClearDraft(terminal string) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(terminal)
	sess.ClearDraft()
	return s.state(sess)
}

// SelectProduct prefills the draft from a catalog pick.
func (s *BillingService) SelectProduct(terminal string, p models.Product) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(terminal)
	sess.ApplyCatalogSelection(p)
	return s.state(sess)
}

// CommitLineItem appends the draft to the active bill. Committed
// reports whether validation accepted it.
func (s *BillingService) CommitLineItem(terminal string) (SessionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(terminal)
	_, ok := sess.CommitLineItem()
	return s.state(sess), ok
}

// RemoveLineItem deletes a line by position.
func (s *BillingService) RemoveLineItem(terminal string, index int) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(terminal)
	sess.RemoveLineItem(index)
	return s.state(sess)
}

// AttachCustomer sets the customer on the active bill.
func (s *BillingService) AttachCustomer(terminal, name, phone string) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(terminal)
	sess.AttachCustomer(name, phone)
	return s.state(sess)
}

// PreviewPayment computes the payment draft without committing anything.
func (s *BillingService) PreviewPayment(terminal, additionalDiscount, offerDiscount, method string) models.PaymentDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(terminal).BuildPaymentDraft(additionalDiscount, offerDiscount, method)
}

// FinalizePayment closes the sale: validates policy, persists the order,
// pushes it into the reporting feed and resets the bill for the next
// customer. The session is not touched when persistence fails.
func (s *BillingService) FinalizePayment(ctx context.Context, terminal, additionalDiscount, offerDiscount, method string) (*models.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(terminal)
	bill := sess.ActiveBill()
	if len(bill.Items) == 0 {
		return nil, ErrEmptyBill
	}

	draft, ok := sess.FinalizePayment(additionalDiscount, offerDiscount, method)
	if !ok {
		return nil, ErrNegativePayable
	}

	orderID, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order number: %w", err)
	}

	order := &models.OrderRecord{
		OrderID:       orderID,
		Items:         make([]models.OrderItem, 0, len(bill.Items)),
		Total:         draft.PayableAmount,
		PaymentMethod: draft.Method,
		CreatedAt:     time.Now(),
	}
	if bill.Customer != nil {
		order.Customer = bill.Customer.Name
		order.Phone = bill.Customer.Phone
	}
	for _, item := range bill.Items {
		order.Items = append(order.Items, models.OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Total:    item.Total,
			Weight:   item.WeightFactor,
		})
	}

	if _, err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	sess.ResetActiveBill()
	s.orderFeed.Append(*order)
	metrics.BillsFinalized.WithLabelValues(draft.Method).Inc()
	log.Printf("[Billing] Finalized %s on terminal %s: %.2f via %s", orderID, terminal, draft.PayableAmount, draft.Method)

	return order, nil
}
