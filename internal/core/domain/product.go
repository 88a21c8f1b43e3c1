package domain

import "github.com/govalues/decimal"

// Product is the catalog entity referenced by order items. The order
// subsystem only reads products to hydrate line items for display.
type Product struct {
	ID          uint64
	Name        string
	Description string
	ImageURL    string
	Price       decimal.Decimal
	Available   bool
}
