package billing

import (
	"strconv"
	"strings"
)

// Draft is the pending line item as typed at the counter. Fields stay
// strings until commit: entry speed matters more than early validation,
// so bad numerics coerce to safe values instead of erroring.
type Draft struct {
	Name         string `json:"name"`
	MRP          string `json:"mrp"`
	SellingPrice string `json:"selling_price"`
	Quantity     string `json:"quantity"`
	Discount     string `json:"discount"`
	Weight       string `json:"weight"`
}

// DraftPatch is a partial update to the draft; nil fields are left alone.
type DraftPatch struct {
	Name         *string `json:"name,omitempty"`
	MRP          *string `json:"mrp,omitempty"`
	SellingPrice *string `json:"selling_price,omitempty"`
	Quantity     *string `json:"quantity,omitempty"`
	Discount     *string `json:"discount,omitempty"`
	Weight       *string `json:"weight,omitempty"`
}

func defaultDraft() Draft {
	return Draft{Quantity: "1", Discount: "0"}
}

// parseAmount coerces operator input to a number, 0 when unparsable.
// A computed total must never carry NaN to cash-handling staff.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseQuantity defaults to 1 when absent or non-numeric. Zero and
// negative quantities are accepted as typed.
func parseQuantity(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return v
}

// parseWeightFactor defaults to 1 when absent or non-numeric, so a
// product whose catalog weight is a display string like "500g approx"
// simply prices per unit.
func parseWeightFactor(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return v
}

// DraftAmount computes sellingPrice x quantity x weight factor. The same
// function prices the live preview and the committed item, so the two
// can never drift.
func DraftAmount(d Draft) float64 {
	return parseAmount(d.SellingPrice) * parseQuantity(d.Quantity) * parseWeightFactor(d.Weight)
}

// DraftTotal is DraftAmount minus the line discount.
func DraftTotal(d Draft) float64 {
	return DraftAmount(d) - parseAmount(d.Discount)
}
