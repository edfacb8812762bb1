package model

import "github.com/shopspring/decimal"

// CartLine is one row of a shopper's in-progress order.
type CartLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// LineTotal is price x quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartCandidate is what the product browser hands to the cart on "Add to Cart".
type CartCandidate struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
	Unit  string          `json:"unit"`
}

// CartTotals are derived from the lines on every read.
type CartTotals struct {
	TotalItems int             `json:"totalItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}

// CartResponse is returned by GET /api/cart
type CartResponse struct {
	Items []CartLine `json:"items"`
	CartTotals
}
