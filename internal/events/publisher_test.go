package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	key string
	msg amqp.Publishing
	err error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.key = key
	f.msg = msg
	return f.err
}

func (f *fakeChannel) Close() error { return nil }

func order() *model.OrderRecord {
	upi := "sita@upi"
	return &model.OrderRecord{
		ID:            "MBZ1718000000000",
		Customer:      model.CustomerDetails{FullName: "Sita Devi", Phone: "9876543210", Address: "Darbhanga"},
		PaymentMethod: model.PaymentUPI,
		UPIID:         &upi,
		Items: []model.CartLine{
			{ID: "4-0", Name: "Sattu", Unit: "1 kg", Price: decimal.RequireFromString("110"), Quantity: 2},
		},
		CartTotals: model.CartTotals{
			TotalItems: 2,
			Subtotal:   decimal.RequireFromString("220"),
			Tax:        decimal.RequireFromString("22"),
			Total:      decimal.RequireFromString("242"),
		},
		OrderDate: time.Now(),
	}
}

func TestPublishOrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch}

	require.NoError(t, p.PublishOrderPlaced(context.Background(), order()))

	assert.Equal(t, OrderPlacedQueue, ch.key)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "MBZ1718000000000", ch.msg.MessageId)

	var ev OrderPlaced
	require.NoError(t, json.Unmarshal(ch.msg.Body, &ev))
	assert.Equal(t, "OrderPlaced", ev.EventType)
	assert.Equal(t, "MBZ1718000000000", ev.OrderID)
	assert.Equal(t, model.PaymentUPI, ev.PaymentMethod)
	require.NotNil(t, ev.UPIID)
	assert.Equal(t, "sita@upi", *ev.UPIID)
	require.Len(t, ev.Items, 1)
	assert.Equal(t, 2, ev.Items[0].Quantity)
	assert.True(t, ev.Total.Equal(decimal.NewFromInt(242)))
}

func TestPublishOrderPlaced_Error(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}}
	assert.Error(t, p.PublishOrderPlaced(context.Background(), order()))
}
