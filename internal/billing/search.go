package billing

import (
	"strconv"
	"strings"

	"meatstore-backend/internal/models"
)

// SearchCatalog filters a catalog snapshot by case-insensitive substring
// match on the product name. It runs only when the operator submits a
// search; a blank term returns nil so the caller keeps whatever results
// were already showing.
func SearchCatalog(term string, products []models.Product) []models.Product {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)

	var matches []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

// ApplyCatalogSelection prefills the draft from a chosen product: the
// catalog price becomes the selling price and the nominal weight carries
// over when it parses as a factor. This is a convenience prefill, not a
// commit.
func (s *Session) ApplyCatalogSelection(p models.Product) {
	mrp := p.OriginalPrice
	if mrp == 0 {
		mrp = p.Price
	}
	s.draft = Draft{
		Name:         p.Name,
		MRP:          formatAmount(mrp),
		SellingPrice: formatAmount(p.Price),
		Quantity:     "1",
		Discount:     "0",
		Weight:       p.Weight,
	}
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
