package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"
)

// OrderDispatcher delivers a placed order to exactly one destination.
type OrderDispatcher interface {
	Name() string
	Dispatch(ctx context.Context, order *model.OrderRecord) error
}

// EmailDispatcher mails the order to the store inbox.
type EmailDispatcher struct {
	Sender   EmailSender
	To       string
	Location *time.Location
}

func NewEmailDispatcher(sender EmailSender, to string, loc *time.Location) *EmailDispatcher {
	return &EmailDispatcher{Sender: sender, To: to, Location: loc}
}

func (d *EmailDispatcher) Name() string { return "email" }

func (d *EmailDispatcher) Dispatch(ctx context.Context, order *model.OrderRecord) error {
	msg, err := ComposeOrderEmail(order, d.To, d.Location)
	if err != nil {
		return err
	}
	if err := d.Sender.SendEmail(ctx, []string{msg.To}, msg.Subject, msg.Text, msg.HTML); err != nil {
		return fmt.Errorf("send order email: %w", err)
	}
	slog.Info("Order email sent", "order_id", order.ID, "to", d.To)
	return nil
}

type orderLogAppender interface {
	Append(ctx context.Context, order *model.OrderRecord) error
}

// LogDispatcher appends the order to the durable order log.
type LogDispatcher struct {
	Repo orderLogAppender
}

func NewLogDispatcher(repo orderLogAppender) *LogDispatcher {
	return &LogDispatcher{Repo: repo}
}

func (d *LogDispatcher) Name() string { return "log" }

func (d *LogDispatcher) Dispatch(ctx context.Context, order *model.OrderRecord) error {
	if err := d.Repo.Append(ctx, order); err != nil {
		return err
	}
	slog.Info("Order appended to log", "order_id", order.ID)
	return nil
}

type orderPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *model.OrderRecord) error
}

// QueueDispatcher publishes an OrderPlaced event.
type QueueDispatcher struct {
	Publisher orderPublisher
}

func NewQueueDispatcher(p orderPublisher) *QueueDispatcher {
	return &QueueDispatcher{Publisher: p}
}

func (d *QueueDispatcher) Name() string { return "queue" }

func (d *QueueDispatcher) Dispatch(ctx context.Context, order *model.OrderRecord) error {
	if err := d.Publisher.PublishOrderPlaced(ctx, order); err != nil {
		return fmt.Errorf("publish order: %w", err)
	}
	slog.Info("Order published", "order_id", order.ID)
	return nil
}
