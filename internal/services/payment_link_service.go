package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"meatstore-backend/internal/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentLinkService creates Razorpay payment links for online channel
// sales at the counter, letting the customer pay on their phone while
// the bill stays open on the terminal.
type PaymentLinkService struct {
	keyID         string
	keySecret     string
	webhookSecret string
}

func NewPaymentLinkService(keyID, keySecret, webhookSecret string) *PaymentLinkService {
	return &PaymentLinkService{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

// Enabled reports whether credentials are configured. Cash-only shops
// run without them.
func (s *PaymentLinkService) Enabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

func (s *PaymentLinkService) client() *razorpay.Client {
	if !s.Enabled() {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// PaymentLink is the subset of the Razorpay link the terminal needs.
type PaymentLink struct {
	LinkID   string  `json:"link_id"`
	ShortURL string  `json:"short_url"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

// CreateLink creates a payment link for a finalized payment draft.
// Amounts go to Razorpay in paise.
func (s *PaymentLinkService) CreateLink(draft models.PaymentDraft, customer *models.Customer) (*PaymentLink, error) {
	client := s.client()
	if client == nil {
		return nil, fmt.Errorf("online payments are not configured")
	}
	if draft.PayableAmount <= 0 {
		return nil, fmt.Errorf("payment link requires a positive payable amount")
	}

	amountPaise := int(draft.PayableAmount*100 + 0.5)

	linkData := map[string]interface{}{
		"amount":      amountPaise,
		"currency":    "INR",
		"description": fmt.Sprintf("Counter sale, bill #%d", draft.BillID),
		"reference_id": fmt.Sprintf("bill_%d_%d", draft.BillID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"bill_id": draft.BillID,
			"method":  draft.Method,
		},
	}
	if customer != nil && customer.Name != "" {
		linkData["customer"] = map[string]interface{}{
			"name":    customer.Name,
			"contact": customer.Phone,
		}
	}

	link, err := client.PaymentLink.Create(linkData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	result := &PaymentLink{Amount: draft.PayableAmount}
	if id, ok := link["id"].(string); ok {
		result.LinkID = id
	}
	if url, ok := link["short_url"].(string); ok {
		result.ShortURL = url
	}
	if status, ok := link["status"].(string); ok {
		result.Status = status
	}

	log.Printf("[Payments] Created payment link %s for bill %d (%.2f)", result.LinkID, draft.BillID, draft.PayableAmount)
	return result, nil
}

// VerifyWebhookSignature verifies the webhook signature. Verification
// passes when no secret is configured, matching link-only setups that
// never registered a webhook.
func (s *PaymentLinkService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true
	}

	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}
