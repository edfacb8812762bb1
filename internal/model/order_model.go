package model

import "time"

// PaymentMethod is recorded on the order; no payment is processed.
type PaymentMethod string

const (
	PaymentCOD PaymentMethod = "cod"
	PaymentUPI PaymentMethod = "upi"
)

// CustomerDetails are the delivery fields entered at checkout.
type CustomerDetails struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Email    string `json:"email,omitempty"`
}

// CheckoutRequest is the payload of POST /api/checkout
type CheckoutRequest struct {
	CustomerDetails
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	UPIID         string        `json:"upiId,omitempty"`
}

// OrderRecord is an immutable snapshot of the cart plus customer details.
type OrderRecord struct {
	ID            string          `json:"id"`
	Customer      CustomerDetails `json:"customer"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	UPIID         *string         `json:"upiId"`
	Items         []CartLine      `json:"items"`
	CartTotals
	OrderDate time.Time `json:"orderDate"`
}

// OrderDateLayout renders dates the way the store's notifications show them,
// e.g. "10 June 2025 at 12:00 pm".
const OrderDateLayout = "2 January 2006 at 03:04 pm"

// FormattedDate renders the order date in loc.
func (o OrderRecord) FormattedDate(loc *time.Location) string {
	return o.OrderDate.In(loc).Format(OrderDateLayout)
}

// OrderReceipt is returned to the shopper after a successful checkout.
type OrderReceipt struct {
	Order        *OrderRecord `json:"order"`
	WhatsAppLink string       `json:"whatsappLink"`

	// WhatsAppOrderLink opens a chat with the full order summary prefilled.
	WhatsAppOrderLink string `json:"whatsappOrderLink"`
}
