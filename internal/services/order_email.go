package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/shopspring/decimal"
)

const OrderEmailSubject = "New Order - Mithila Bazaar"

// OrderEmail is the notification sent to the store for one order. Fields holds
// the discrete values (customer_name, order_items, ...) alongside the bodies.
type OrderEmail struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Fields  map[string]string
}

var orderEmailHTML = template.Must(template.New("order").Parse(`<h2>New Order Received - Mithila Bazaar</h2>
<h3>Customer Details</h3>
<ul>
<li>Full Name: {{.customer_name}}</li>
<li>Phone Number: {{.customer_phone}}</li>
<li>Address: {{.customer_address}}</li>
</ul>
<h3>Order Details</h3>
<pre>{{.order_items}}</pre>
<h3>Order Summary</h3>
<ul>
<li>Total Items: {{.total_items}}</li>
<li>Subtotal: ₹{{.order_subtotal}}</li>
<li>Tax (10%): ₹{{.order_tax}}</li>
<li>Grand Total: ₹{{.order_total}}</li>
</ul>
<p>Order Date: {{.order_date}}</p>
<p>Please contact the customer to confirm the order and arrange delivery.</p>
`))

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// orderItemsText lists one numbered line per cart line.
func orderItemsText(items []model.CartLine) string {
	lines := make([]string, 0, len(items))
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%d. %s (%s) - Quantity: %d - Price: ₹%s - Subtotal: ₹%s",
			i+1, it.Name, it.Unit, it.Quantity, money(it.Price), money(it.LineTotal())))
	}
	return strings.Join(lines, "\n")
}

// ComposeOrderEmail renders the store notification for o in loc's local time.
func ComposeOrderEmail(o *model.OrderRecord, to string, loc *time.Location) (*OrderEmail, error) {
	date := o.FormattedDate(loc)

	var text strings.Builder
	text.WriteString("New Order Received - Mithila Bazaar\n\n")
	text.WriteString("Customer Details:\n")
	fmt.Fprintf(&text, "- Full Name: %s\n", o.Customer.FullName)
	fmt.Fprintf(&text, "- Phone Number: %s\n", o.Customer.Phone)
	fmt.Fprintf(&text, "- Address: %s\n", o.Customer.Address)
	if o.Customer.Email != "" {
		fmt.Fprintf(&text, "- Email: %s\n", o.Customer.Email)
	}
	fmt.Fprintf(&text, "- Payment: %s", strings.ToUpper(string(o.PaymentMethod)))
	if o.UPIID != nil {
		fmt.Fprintf(&text, " (%s)", *o.UPIID)
	}
	text.WriteString("\n\nOrder Details:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&text, "- %s (%s) x %d = ₹%s\n", it.Name, it.Unit, it.Quantity, money(it.LineTotal()))
	}
	text.WriteString("\nOrder Summary:\n")
	fmt.Fprintf(&text, "- Total Items: %d\n", o.TotalItems)
	fmt.Fprintf(&text, "- Subtotal: ₹%s\n", money(o.Subtotal))
	fmt.Fprintf(&text, "- Tax (10%%): ₹%s\n", money(o.Tax))
	fmt.Fprintf(&text, "- Grand Total: ₹%s\n\n", money(o.Total))
	fmt.Fprintf(&text, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&text, "Order Date: %s\n\n", date)
	text.WriteString("Please contact the customer to confirm the order and arrange delivery.\n")

	fields := map[string]string{
		"to_email":         to,
		"subject":          OrderEmailSubject,
		"message":          text.String(),
		"customer_name":    o.Customer.FullName,
		"customer_phone":   o.Customer.Phone,
		"customer_address": o.Customer.Address,
		"order_subtotal":   money(o.Subtotal),
		"order_tax":        money(o.Tax),
		"order_total":      money(o.Total),
		"order_items":      orderItemsText(o.Items),
		"order_date":       date,
		"total_items":      strconv.Itoa(o.TotalItems),
	}

	var html bytes.Buffer
	if err := orderEmailHTML.Execute(&html, fields); err != nil {
		return nil, fmt.Errorf("render order email: %w", err)
	}

	return &OrderEmail{
		To:      to,
		Subject: OrderEmailSubject,
		Text:    text.String(),
		HTML:    html.String(),
		Fields:  fields,
	}, nil
}
