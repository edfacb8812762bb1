// Package cart holds the shopper's in-progress order for one session.
//
// A Cart is a plain value with a mutation API; it does no I/O and is not safe for
// concurrent use. Callers that share a cart across goroutines serialize access
// (see services.CartService).
package cart

import (
	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat tax applied to the subtotal.
var TaxRate = decimal.New(1, -1)

// Cart is an ordered collection of lines; insertion order is display order.
type Cart struct {
	lines []model.CartLine
}

// New returns a cart holding a copy of lines. Lines with a non-positive quantity are dropped.
func New(lines []model.CartLine) *Cart {
	c := &Cart{lines: make([]model.CartLine, 0, len(lines))}
	for _, l := range lines {
		if l.Quantity > 0 {
			c.lines = append(c.lines, l)
		}
	}
	return c
}

func (c *Cart) index(id string) int {
	for i := range c.lines {
		if c.lines[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem increments the quantity of an existing line or appends a new one with quantity 1.
func (c *Cart) AddItem(candidate model.CartCandidate) {
	if i := c.index(candidate.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, model.CartLine{
		ID:       candidate.ID,
		Name:     candidate.Name,
		Price:    candidate.Price,
		Unit:     candidate.Unit,
		Image:    candidate.Image,
		Quantity: 1,
	})
}

// UpdateQuantity sets the quantity of a line; quantity <= 0 removes it.
// Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}
	if i := c.index(id); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

// RemoveItem deletes the line if present.
func (c *Cart) RemoveItem(id string) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

// Len is the number of distinct lines.
func (c *Cart) Len() int { return len(c.lines) }

// Lines returns a copy of the lines in display order.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of price x quantity.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// Tax is TaxRate of the subtotal.
func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(TaxRate)
}

// Total is subtotal plus tax.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Tax())
}

// Totals recomputes every derived field from the current lines.
func (c *Cart) Totals() model.CartTotals {
	subtotal := c.Subtotal()
	tax := subtotal.Mul(TaxRate)
	return model.CartTotals{
		TotalItems: c.TotalItems(),
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      subtotal.Add(tax),
	}
}

// Response renders the cart for the API.
func (c *Cart) Response() *model.CartResponse {
	return &model.CartResponse{
		Items:      c.Lines(),
		CartTotals: c.Totals(),
	}
}
