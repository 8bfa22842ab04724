package http

import (
	"meatstore-backend/internal/feed"
	"meatstore-backend/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	billingHandler *handlers.BillingHandler,
	catalogHandler *handlers.CatalogHandler,
	orderHandler *handlers.OrderHandler,
	summaryHandler *handlers.SummaryHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
	hub *feed.Hub,
) *mux.Router {
	r := mux.NewRouter()

	// Billing terminal sessions
	billingAPI := r.PathPrefix("/api/billing/sessions/{terminal}").Subrouter()
	billingAPI.HandleFunc("", billingHandler.GetSession).Methods("GET")
	billingAPI.HandleFunc("/bills", billingHandler.OpenBill).Methods("POST")
	billingAPI.HandleFunc("/bills/{index}/select", billingHandler.SelectBill).Methods("PUT")
	billingAPI.HandleFunc("/draft", billingHandler.PatchDraft).Methods("PATCH")
	billingAPI.HandleFunc("/draft", billingHandler.ClearDraft).Methods("DELETE")
	billingAPI.HandleFunc("/draft/product", billingHandler.SelectProduct).Methods("POST")
	billingAPI.HandleFunc("/items", billingHandler.CommitLineItem).Methods("POST")
	billingAPI.HandleFunc("/items/{index}", billingHandler.RemoveLineItem).Methods("DELETE")
	billingAPI.HandleFunc("/customer", billingHandler.AttachCustomer).Methods("PUT")
	billingAPI.HandleFunc("/payment/preview", billingHandler.PreviewPayment).Methods("POST")
	billingAPI.HandleFunc("/payment", billingHandler.FinalizePayment).Methods("POST")
	billingAPI.HandleFunc("/payment/link", paymentHandler.CreateLink).Methods("POST")

	// Product catalog
	r.HandleFunc("/api/catalog", catalogHandler.ListProducts).Methods("GET")
	r.HandleFunc("/api/catalog/products", catalogHandler.UpsertProduct).Methods("PUT")

	// Order feed
	r.HandleFunc("/api/orders", orderHandler.IngestOrders).Methods("POST")
	r.HandleFunc("/api/orders", orderHandler.ListOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", orderHandler.DeleteOrder).Methods("DELETE")

	// Sales summary
	r.HandleFunc("/api/summary", summaryHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/summary/export", summaryHandler.Export).Methods("GET")

	// Online payments
	r.HandleFunc("/api/payments/status", paymentHandler.GetStatus).Methods("GET")
	r.HandleFunc("/api/payments/channels", paymentHandler.GetChannels).Methods("GET")
	r.HandleFunc("/api/payments/webhook", paymentHandler.Webhook).Methods("POST")

	// Live summary updates
	r.HandleFunc("/ws/summary", hub.HandleWebSocket)

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
