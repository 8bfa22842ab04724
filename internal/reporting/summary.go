package reporting

import (
	"strings"

	"meatstore-backend/internal/models"
)

// UnknownProduct groups order items that arrived without a name.
const UnknownProduct = "Unknown"

// OverallLabel names the synthetic roll-up row in exports.
const OverallLabel = "Overall"

// Summary is the result of one aggregation pass: per-product rows in
// first-seen order plus the distinct order count of the whole filtered
// set (needed for the overall row, where summing per-row counts would
// double-count multi-product orders).
type Summary struct {
	Rows           []models.SummaryRow `json:"rows"`
	DistinctOrders int                 `json:"distinct_orders"`
}

// FilterOrders keeps orders whose createdAt falls inside the window and
// which match the search term against customer name or order ID,
// case-insensitively. An empty term matches everything.
func FilterOrders(orders []models.OrderRecord, w Window, term string) []models.OrderRecord {
	needle := strings.ToLower(strings.TrimSpace(term))

	var kept []models.OrderRecord
	for _, o := range orders {
		if !w.Contains(o.CreatedAt) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(o.Customer), needle) &&
			!strings.Contains(strings.ToLower(o.OrderID), needle) {
			continue
		}
		kept = append(kept, o)
	}
	return kept
}

// normalizeMethod lowercases and trims a payment method for the
// cash/online split. Only exact "cash" and "online" classify; anything
// else is best-effort-unknown and feeds total revenue alone.
func normalizeMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}

type productAccumulator struct {
	row      models.SummaryRow
	priceSum float64
	orderIDs map[string]struct{}
}

// Summarize groups every item of every order by product name and
// accumulates quantity, weight and revenue. The source orders are never
// mutated; each call recomputes from scratch, so replaying the same
// snapshot is idempotent.
func Summarize(orders []models.OrderRecord) Summary {
	groups := make(map[string]*productAccumulator)
	var keys []string
	allOrders := make(map[string]struct{})

	for _, o := range orders {
		allOrders[o.OrderID] = struct{}{}
		method := normalizeMethod(o.PaymentMethod)

		for _, item := range o.Items {
			name := item.Name
			if strings.TrimSpace(name) == "" {
				name = UnknownProduct
			}

			acc, ok := groups[name]
			if !ok {
				acc = &productAccumulator{
					row:      models.SummaryRow{ProductName: name, Category: item.Category},
					orderIDs: make(map[string]struct{}),
				}
				groups[name] = acc
				keys = append(keys, name)
			}

			acc.row.TotalQuantity += item.Quantity
			acc.row.TotalWeight += item.Weight
			acc.row.TotalRevenue += item.Total
			switch method {
			case "cash":
				acc.row.CashRevenue += item.Total
			case "online":
				acc.row.OnlineRevenue += item.Total
			}
			if item.PricePerUnitWeight != nil {
				acc.priceSum += *item.PricePerUnitWeight
				acc.row.AvgPriceSamples++
			}
			acc.orderIDs[o.OrderID] = struct{}{}
		}
	}

	rows := make([]models.SummaryRow, 0, len(keys))
	for _, name := range keys {
		acc := groups[name]
		if acc.row.AvgPriceSamples > 0 {
			acc.row.AvgPricePerUnit = acc.priceSum / float64(acc.row.AvgPriceSamples)
		}
		acc.row.OrderCount = len(acc.orderIDs)
		rows = append(rows, acc.row)
	}

	return Summary{Rows: rows, DistinctOrders: len(allOrders)}
}

// BuildOverallRow sums every per-product row column-wise. Its order
// count is the distinct count across the whole filtered set, not the
// sum of per-row counts.
func BuildOverallRow(s Summary) models.SummaryRow {
	overall := models.SummaryRow{
		ProductName: OverallLabel,
		OrderCount:  s.DistinctOrders,
	}
	for _, row := range s.Rows {
		overall.TotalQuantity += row.TotalQuantity
		overall.TotalWeight += row.TotalWeight
		overall.CashRevenue += row.CashRevenue
		overall.OnlineRevenue += row.OnlineRevenue
		overall.TotalRevenue += row.TotalRevenue
	}
	return overall
}
