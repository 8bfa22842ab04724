package reporting

import (
	"fmt"

	"meatstore-backend/internal/models"
)

// TableHeader is the fixed export column order. Store accountants
// consume these files; header text and ordering are a compatibility
// surface and must not change.
var TableHeader = []string{
	"Product",
	"Category",
	"Total Quantity",
	"Total Weight",
	"Avg Price/Weight",
	"Cash Revenue",
	"Online Revenue",
	"Total Revenue",
	"Order Count",
}

// ExportTable lays the summary out as header + product rows + overall
// row. This in-memory table is the hand-off contract to the spreadsheet
// writers; the engine's job ends here.
func ExportTable(rows []models.SummaryRow, overall models.SummaryRow) [][]string {
	table := make([][]string, 0, len(rows)+2)
	table = append(table, TableHeader)
	for _, row := range rows {
		table = append(table, tableRow(row))
	}
	table = append(table, tableRow(overall))
	return table
}

func tableRow(row models.SummaryRow) []string {
	avg := "unavailable"
	if row.AvgPriceSamples > 0 {
		avg = fmt.Sprintf("%.2f", row.AvgPricePerUnit)
	}
	return []string{
		row.ProductName,
		row.Category,
		fmt.Sprintf("%g", row.TotalQuantity),
		fmt.Sprintf("%.3f", row.TotalWeight),
		avg,
		fmt.Sprintf("%.2f", row.CashRevenue),
		fmt.Sprintf("%.2f", row.OnlineRevenue),
		fmt.Sprintf("%.2f", row.TotalRevenue),
		fmt.Sprintf("%d", row.OrderCount),
	}
}
