package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"meatstore-backend/internal/billing"
	"meatstore-backend/internal/models"
	"meatstore-backend/internal/services"
	"meatstore-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

func terminalFrom(r *http.Request) string {
	return mux.Vars(r)["terminal"]
}

// GetSession handles GET /api/billing/sessions/{terminal}
func (h *BillingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.billingService.State(terminalFrom(r)))
}

// OpenBill handles POST /api/billing/sessions/{terminal}/bills
func (h *BillingHandler) OpenBill(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.billingService.OpenBill(terminalFrom(r)))
}

// SelectBill handles PUT /api/billing/sessions/{terminal}/bills/{index}/select
func (h *BillingHandler) SelectBill(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid bill index")
		return
	}
	utils.JSON(w, http.StatusOK, h.billingService.SelectBill(terminalFrom(r), index))
}

// PatchDraft handles PATCH /api/billing/sessions/{terminal}/draft
func (h *BillingHandler) PatchDraft(w http.ResponseWriter, r *http.Request) {
	var patch billing.DraftPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid draft payload")
		return
	}
	utils.JSON(w, http.StatusOK, h.billingService.PatchDraft(terminalFrom(r), patch))
}

// ClearDraft handles DELETE /api/billing/sessions/{terminal}/draft
func (h *BillingHandler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.billingService.ClearDraft(terminalFrom(r)))
}

// SelectProduct handles POST /api/billing/sessions/{terminal}/draft/product
// The terminal sends the catalog product it picked from search results.
func (h *BillingHandler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid product payload")
		return
	}
	utils.JSON(w, http.StatusOK, h.billingService.SelectProduct(terminalFrom(r), product))
}

// CommitLineItem handles POST /api/billing/sessions/{terminal}/items
func (h *BillingHandler) CommitLineItem(w http.ResponseWriter, r *http.Request) {
	state, ok := h.billingService.CommitLineItem(terminalFrom(r))
	if !ok {
		// Incomplete drafts are normal at the counter; report without
		// changing anything.
		utils.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": "draft is missing name, selling price or quantity",
			"state": state,
		})
		return
	}
	utils.JSON(w, http.StatusOK, state)
}

// RemoveLineItem handles DELETE /api/billing/sessions/{terminal}/items/{index}
func (h *BillingHandler) RemoveLineItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid item index")
		return
	}
	utils.JSON(w, http.StatusOK, h.billingService.RemoveLineItem(terminalFrom(r), index))
}

// AttachCustomer handles PUT /api/billing/sessions/{terminal}/customer
func (h *BillingHandler) AttachCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid customer payload")
		return
	}
	utils.JSON(w, http.StatusOK, h.billingService.AttachCustomer(terminalFrom(r), customer.Name, customer.Phone))
}

type paymentRequest struct {
	AdditionalDiscount string `json:"additional_discount"`
	OfferDiscount      string `json:"offer_discount"`
	Method             string `json:"method"`
}

// PreviewPayment handles POST /api/billing/sessions/{terminal}/payment/preview
func (h *BillingHandler) PreviewPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid payment payload")
		return
	}
	draft := h.billingService.PreviewPayment(terminalFrom(r), req.AdditionalDiscount, req.OfferDiscount, req.Method)
	utils.JSON(w, http.StatusOK, draft)
}

// FinalizePayment handles POST /api/billing/sessions/{terminal}/payment
func (h *BillingHandler) FinalizePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid payment payload")
		return
	}

	order, err := h.billingService.FinalizePayment(r.Context(), terminalFrom(r), req.AdditionalDiscount, req.OfferDiscount, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyBill):
			utils.Error(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, services.ErrNegativePayable):
			utils.Error(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.Error(w, http.StatusInternalServerError, "failed to finalize payment")
		}
		return
	}

	utils.JSON(w, http.StatusCreated, order)
}
