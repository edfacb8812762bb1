// Package whatsapp builds wa.me click-to-chat links.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/shopspring/decimal"
)

const baseURL = "https://wa.me/"

// Link returns https://wa.me/<digits>?text=<message>. Non-digits are stripped
// from number; spaces in the message are encoded as %20.
func Link(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if message == "" {
		return baseURL + digits
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return baseURL + digits + "?text=" + text
}

// OrderStatusMessage asks the store about a placed order.
func OrderStatusMessage(orderID string) string {
	return fmt.Sprintf("Hi, I placed an order (%s) and wanted to check the status.", orderID)
}

// OrderSummaryMessage is the chat version of an order notification.
func OrderSummaryMessage(o *model.OrderRecord, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("*New Order - Mithila Bazaar*\n\n")
	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "• Name: %s\n", o.Customer.FullName)
	fmt.Fprintf(&b, "• Phone: %s\n", o.Customer.Phone)
	fmt.Fprintf(&b, "• Address: %s\n\n", o.Customer.Address)
	b.WriteString("*Order Items:*\n")
	for i, it := range o.Items {
		fmt.Fprintf(&b, "%d. %s (%s) x %d = %s\n", i+1, it.Name, it.Unit, it.Quantity, Rupees(it.LineTotal()))
	}
	fmt.Fprintf(&b, "\n*Total: %s*\n\n", Rupees(o.Total))
	fmt.Fprintf(&b, "Order Date: %s", o.FormattedDate(loc))
	return b.String()
}

// Rupees formats an amount with two decimals and the rupee sign.
func Rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
