package events

import (
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/shopspring/decimal"
)

type OrderLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderPlaced is published once per successful checkout.
type OrderPlaced struct {
	EventType     string                `json:"eventType"`
	OrderID       string                `json:"orderId"`
	Customer      model.CustomerDetails `json:"customer"`
	PaymentMethod model.PaymentMethod   `json:"paymentMethod"`
	UPIID         *string               `json:"upiId"`
	Items         []OrderLine           `json:"items"`
	TotalItems    int                   `json:"totalItems"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Total         decimal.Decimal       `json:"total"`
	OrderDate     time.Time             `json:"orderDate"`
	Timestamp     time.Time             `json:"timestamp"`
}

func NewOrderPlaced(o *model.OrderRecord) OrderPlaced {
	ev := OrderPlaced{
		EventType:     "OrderPlaced",
		OrderID:       o.ID,
		Customer:      o.Customer,
		PaymentMethod: o.PaymentMethod,
		UPIID:         o.UPIID,
		Items:         make([]OrderLine, 0, len(o.Items)),
		TotalItems:    o.TotalItems,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Total:         o.Total,
		OrderDate:     o.OrderDate.UTC(),
		Timestamp:     time.Now().UTC(),
	}
	for _, it := range o.Items {
		ev.Items = append(ev.Items, OrderLine{
			ID:       it.ID,
			Name:     it.Name,
			Unit:     it.Unit,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return ev
}
