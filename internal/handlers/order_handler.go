package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"meatstore-backend/internal/feed"
	"meatstore-backend/internal/metrics"
	"meatstore-backend/internal/models"
	"meatstore-backend/internal/repositories"
	"meatstore-backend/internal/services"
	"meatstore-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type OrderHandler struct {
	orderRepo      *repositories.OrderRepository
	orderFeed      *feed.Feed
	summaryService *services.SummaryService
}

func NewOrderHandler(orderRepo *repositories.OrderRepository, orderFeed *feed.Feed, summaryService *services.SummaryService) *OrderHandler {
	return &OrderHandler{
		orderRepo:      orderRepo,
		orderFeed:      orderFeed,
		summaryService: summaryService,
	}
}

// IngestOrders handles POST /api/orders
// Accepts a batch of raw storefront orders, normalizes them and feeds
// them into persistence and reporting. Duplicate order IDs are skipped.
func (h *OrderHandler) IngestOrders(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var raw []feed.RawOrder
	if err := json.Unmarshal(body, &raw); err != nil {
		// A single order object is also accepted.
		var one feed.RawOrder
		if err := json.Unmarshal(body, &one); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid order payload")
			return
		}
		raw = []feed.RawOrder{one}
	}

	accepted, duplicates := 0, 0
	for _, ro := range raw {
		record := feed.Normalize(ro)
		if record.OrderID == "" {
			continue
		}
		inserted, err := h.persist(r.Context(), record)
		if err != nil {
			log.Printf("[Orders] Failed to ingest %s: %v", record.OrderID, err)
			continue
		}
		if inserted {
			accepted++
		} else {
			duplicates++
		}
	}

	utils.JSON(w, http.StatusOK, map[string]int{"accepted": accepted, "duplicates": duplicates, "received": len(raw)})
}

// persist writes the order and, only when it is actually new, pushes it
// into the reporting feed. A duplicate must not reach the feed: the DB
// keeps one row and the feed would otherwise double the revenue.
func (h *OrderHandler) persist(ctx context.Context, record models.OrderRecord) (bool, error) {
	inserted, err := h.orderRepo.Create(ctx, &record)
	if err != nil {
		return false, err
	}
	if !inserted {
		return false, nil
	}
	h.orderFeed.Append(record)
	metrics.OrdersIngested.Inc()
	return true, nil
}

// DeleteOrder handles DELETE /api/orders/{id}
// Voids a sale: the order leaves persistence and the reporting feed,
// and live summaries recompute without it.
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	removed, err := h.orderRepo.Delete(r.Context(), orderID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "failed to delete order")
		return
	}
	if !removed {
		utils.Error(w, http.StatusNotFound, "order not found")
		return
	}

	h.orderFeed.Remove(orderID)
	log.Printf("[Orders] Deleted %s", orderID)
	utils.JSON(w, http.StatusOK, map[string]string{"deleted": orderID})
}

// ListOrders handles GET /api/orders
// Query params: range, start, end, search (same filters as the summary).
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	query, err := summaryQueryFrom(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	orders := h.summaryService.Orders(query)
	if orders == nil {
		orders = []models.OrderRecord{}
	}
	utils.JSON(w, http.StatusOK, orders)
}
