package models

// LineItem is one committed product row on a bill. Amount and Total are
// derived at commit time from the other fields and are never edited on
// their own.
type LineItem struct {
	Name         string  `json:"name"`
	MRP          float64 `json:"mrp,omitempty"`
	SellingPrice float64 `json:"selling_price"`
	Quantity     float64 `json:"quantity"`
	Discount     float64 `json:"discount"`
	WeightFactor float64 `json:"weight_factor"`
	Amount       float64 `json:"amount"`
	Total        float64 `json:"total"`
}

// Customer is the opaque reference attached to a bill. Billing never
// interprets it beyond carrying it onto the finalized order.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Bill is one open draft sale (a POS tab). IDs are sequential per
// session and never reused; item order is display order.
type Bill struct {
	ID       int        `json:"id"`
	Items    []LineItem `json:"items"`
	Customer *Customer  `json:"customer,omitempty"`
}

// PaymentDraft is the discount/method computation preceding a sale.
// PayableAmount may go negative when discounts exceed the subtotal;
// whether that is accepted at finalize time is a policy decision.
type PaymentDraft struct {
	BillID             int     `json:"bill_id"`
	SubTotal           float64 `json:"sub_total"`
	LineDiscount       float64 `json:"line_discount"`
	AdditionalDiscount float64 `json:"additional_discount"`
	OfferDiscount      float64 `json:"offer_discount"`
	PayableAmount      float64 `json:"payable_amount"`
	Method             string  `json:"method"`
}
