package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"meatstore-backend/internal/models"
	"meatstore-backend/internal/services"
	"meatstore-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	paymentLinkService *services.PaymentLinkService
	billingService     *services.BillingService
}

func NewPaymentHandler(paymentLinkService *services.PaymentLinkService, billingService *services.BillingService) *PaymentHandler {
	return &PaymentHandler{
		paymentLinkService: paymentLinkService,
		billingService:     billingService,
	}
}

// GetStatus handles GET /api/payments/status
// Tells the terminal whether online payment links are available.
func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]bool{
		"online_enabled": h.paymentLinkService.Enabled(),
	})
}

// GetChannels handles GET /api/payments/channels
// Serves the payment modal's method list so the terminal and the
// summary classification never disagree on spelling.
func (h *PaymentHandler) GetChannels(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, models.PaymentChannels)
}

type createLinkRequest struct {
	AdditionalDiscount string           `json:"additional_discount"`
	OfferDiscount      string           `json:"offer_discount"`
	Method             string           `json:"method"`
	Customer           *models.Customer `json:"customer,omitempty"`
}

// CreateLink handles POST /api/billing/sessions/{terminal}/payment/link
// Builds the payment draft for the active bill and turns it into a
// Razorpay link the customer pays on their phone.
func (h *PaymentHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid payment link payload")
		return
	}

	terminal := mux.Vars(r)["terminal"]
	draft := h.billingService.PreviewPayment(terminal, req.AdditionalDiscount, req.OfferDiscount, req.Method)

	link, err := h.paymentLinkService.CreateLink(draft, req.Customer)
	if err != nil {
		utils.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, link)
}

// Webhook handles POST /api/payments/webhook
// Razorpay calls this when a payment link settles. Verification uses
// the raw body, so read before decoding.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "failed to read webhook body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.paymentLinkService.VerifyWebhookSignature(body, signature) {
		utils.Error(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	var payload struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}

	// Link settlement is informational here: the sale was already
	// finalized at the terminal once the operator saw the payment land.
	log.Printf("[Payments] Webhook event: %s", payload.Event)
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
