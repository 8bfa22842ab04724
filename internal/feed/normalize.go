package feed

import (
	"strings"
	"time"

	"meatstore-backend/internal/models"
)

// RawItem is one item as the storefront sends it. Numeric fields come
// in loosely typed; zero quantity means the field was absent.
type RawItem struct {
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	Quantity           float64  `json:"quantity"`
	Qty                float64  `json:"qty"`
	Total              float64  `json:"total"`
	Price              float64  `json:"price"`
	Weight             float64  `json:"weight"`
	PricePerUnitWeight *float64 `json:"pricePerUnitWeight"`
}

// RawOrder is the storefront's order payload. Older storefront builds
// send line items under "products", newer ones under "items"; both
// shapes arrive in production.
type RawOrder struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	Customer      string    `json:"customer"`
	CustomerName  string    `json:"customerName"`
	Phone         string    `json:"phone"`
	Products      []RawItem `json:"products"`
	Items         []RawItem `json:"items"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"paymentMethod"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Normalize maps a raw storefront order onto the canonical record the
// aggregation engine consumes. "products" wins over "items" when both
// are present, matching the storefront's own precedence.
func Normalize(raw RawOrder) models.OrderRecord {
	items := raw.Products
	if len(items) == 0 {
		items = raw.Items
	}

	record := models.OrderRecord{
		OrderID:       firstNonEmpty(raw.OrderID, raw.ID),
		Customer:      firstNonEmpty(raw.CustomerName, raw.Customer),
		Phone:         raw.Phone,
		Total:         raw.Total,
		PaymentMethod: raw.PaymentMethod,
		CreatedAt:     raw.CreatedAt,
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	record.Items = make([]models.OrderItem, 0, len(items))
	var itemTotal float64
	for _, it := range items {
		qty := it.Quantity
		if qty == 0 {
			qty = it.Qty
		}
		if qty == 0 {
			qty = 1
		}
		total := it.Total
		if total == 0 {
			total = it.Price * qty
		}
		itemTotal += total

		record.Items = append(record.Items, models.OrderItem{
			Name:               strings.TrimSpace(it.Name),
			Category:           it.Category,
			Quantity:           qty,
			Total:              total,
			Weight:             it.Weight,
			PricePerUnitWeight: it.PricePerUnitWeight,
		})
	}

	// Order total falls back to the item sum when the storefront
	// omitted it.
	if record.Total == 0 {
		record.Total = itemTotal
	}

	return record
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
