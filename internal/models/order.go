package models

import "time"

// OrderItem is one product line inside a persisted order.
// PricePerUnitWeight is nil when the source record never reported one;
// the summary average skips those occurrences instead of counting zeros.
type OrderItem struct {
	Name               string   `json:"name"`
	Category           string   `json:"category,omitempty"`
	Quantity           float64  `json:"quantity"`
	Total              float64  `json:"total"`
	Weight             float64  `json:"weight,omitempty"`
	PricePerUnitWeight *float64 `json:"price_per_unit_weight,omitempty"`
}

// OrderRecord is a finalized order as the aggregation engine sees it:
// already normalized, read-only. PaymentMethod is free text from the
// counter ("Cash", "online", ...); classification happens downstream.
type OrderRecord struct {
	OrderID       string      `json:"order_id"`
	Customer      string      `json:"customer"`
	Phone         string      `json:"phone,omitempty"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
}
