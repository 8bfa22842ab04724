package models

// SummaryRow holds one product's aggregated figures across a filtered
// order set. AvgPriceSamples counts how many item occurrences reported a
// price-per-unit-weight; zero samples renders as "unavailable" in exports.
type SummaryRow struct {
	ProductName     string  `json:"product_name"`
	Category        string  `json:"category"`
	TotalQuantity   float64 `json:"total_quantity"`
	TotalWeight     float64 `json:"total_weight"`
	AvgPricePerUnit float64 `json:"avg_price_per_unit_weight"`
	AvgPriceSamples int     `json:"avg_price_samples"`
	CashRevenue     float64 `json:"cash_revenue"`
	OnlineRevenue   float64 `json:"online_revenue"`
	TotalRevenue    float64 `json:"total_revenue"`
	OrderCount      int     `json:"order_count"`
}
