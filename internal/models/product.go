package models

// ProductStatus values as stored in the catalog
const (
	ProductActive     = "active"
	ProductInactive   = "inactive"
	ProductOutOfStock = "out-of-stock"
)

// Product is a catalog record. The billing core reads these but never
// writes them; catalog administration lives outside this service.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Weight        string  `json:"weight"`
	Status        string  `json:"status"`
}
