package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aryant0/mithila-bazaar/external/abstractapi"
	"github.com/aryant0/mithila-bazaar/external/whatsapp"
	"github.com/aryant0/mithila-bazaar/internal/cart"
	"github.com/aryant0/mithila-bazaar/internal/metrics"
	"github.com/aryant0/mithila-bazaar/internal/model"
)

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

// OrderService turns a session's cart into an order record, hands it to the
// configured dispatcher and clears the cart once dispatch succeeded.
type OrderService struct {
	Carts          *CartService
	Dispatcher     OrderDispatcher
	Validator      EmailValidator // optional reputation check
	WhatsAppNumber string
	Location       *time.Location

	now      func() time.Time
	mu       sync.Mutex
	inflight map[string]struct{}
	lastID   int64
}

func NewOrderService(carts *CartService, d OrderDispatcher, v EmailValidator, whatsappNumber string, loc *time.Location) *OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderService{
		Carts:          carts,
		Dispatcher:     d,
		Validator:      v,
		WhatsAppNumber: whatsappNumber,
		Location:       loc,
		now:            time.Now,
		inflight:       make(map[string]struct{}),
	}
}

func normalizeCheckout(req model.CheckoutRequest) model.CheckoutRequest {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	req.Email = strings.TrimSpace(req.Email)
	req.UPIID = strings.TrimSpace(req.UPIID)
	req.PaymentMethod = model.PaymentMethod(strings.ToLower(strings.TrimSpace(string(req.PaymentMethod))))
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentCOD
	}
	return req
}

// validateCheckout checks the delivery form. It does no I/O.
func validateCheckout(req model.CheckoutRequest) error {
	if req.FullName == "" {
		return newValidationError("fullName", "full name is required")
	}
	if req.Phone == "" {
		return newValidationError("phone", "phone number is required")
	}
	if !phoneRegex.MatchString(req.Phone) {
		return newValidationError("phone", "phone number must be exactly 10 digits")
	}
	if req.Address == "" {
		return newValidationError("address", "delivery address is required")
	}
	switch req.PaymentMethod {
	case model.PaymentCOD:
	case model.PaymentUPI:
		if req.UPIID == "" {
			return newValidationError("upiId", "UPI ID is required for UPI payment")
		}
	default:
		return newValidationError("paymentMethod", "payment method must be cod or upi")
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return newValidationError("email", "invalid email format")
		}
	}
	return nil
}

func (s *OrderService) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *OrderService) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

// nextOrderID returns MBZ<unix millis>, bumped when two orders share a millisecond.
func (s *OrderService) nextOrderID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := t.UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return "MBZ" + strconv.FormatInt(ms, 10)
}

func (s *OrderService) checkEmailReputation(ctx context.Context, email string) error {
	if s.Validator == nil || email == "" {
		return nil
	}
	err := s.Validator.Validate(ctx, email)
	if err == nil {
		return nil
	}
	if errors.Is(err, abstractapi.ErrRejected) {
		msg := strings.TrimPrefix(err.Error(), abstractapi.ErrRejected.Error()+": ")
		return newValidationError("email", msg)
	}
	// An unreachable reputation service does not block the order.
	slog.Warn("Email reputation check skipped", "error", err)
	return nil
}

// PlaceOrder validates req, dispatches the session's cart as an order and
// clears the cart. On any failure the cart is left as it was.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID string, req model.CheckoutRequest) (*model.OrderReceipt, error) {
	req = normalizeCheckout(req)
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	if !s.begin(sessionID) {
		return nil, ErrSubmissionInProgress
	}
	defer s.end(sessionID)

	if err := s.checkEmailReputation(ctx, req.Email); err != nil {
		return nil, err
	}

	var order *model.OrderRecord
	err := s.Carts.withLockedCart(ctx, sessionID, func(c *cart.Cart, save func() error) error {
		if c.Len() == 0 {
			return &ValidationError{Field: "cart", Message: ErrEmptyCart.Error(), Err: ErrEmptyCart}
		}

		order = s.snapshot(req, c)
		if err := s.Dispatcher.Dispatch(ctx, order); err != nil {
			metrics.OrdersSubmitted.WithLabelValues(s.Dispatcher.Name(), "failure").Inc()
			slog.Error("Order dispatch failed", "order_id", order.ID, "dispatcher", s.Dispatcher.Name(), "error", err)
			return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
		}
		metrics.OrdersSubmitted.WithLabelValues(s.Dispatcher.Name(), "success").Inc()

		c.Clear()
		if err := save(); err != nil {
			// the order is out; a stale cart is the lesser problem
			slog.Error("Cart not cleared after order", "order_id", order.ID, "error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &model.OrderReceipt{
		Order:             order,
		WhatsAppLink:      whatsapp.Link(s.WhatsAppNumber, whatsapp.OrderStatusMessage(order.ID)),
		WhatsAppOrderLink: whatsapp.Link(s.WhatsAppNumber, whatsapp.OrderSummaryMessage(order, s.Location)),
	}, nil
}

func (s *OrderService) snapshot(req model.CheckoutRequest, c *cart.Cart) *model.OrderRecord {
	now := s.now()
	o := &model.OrderRecord{
		ID:            s.nextOrderID(now),
		Customer:      req.CustomerDetails,
		PaymentMethod: req.PaymentMethod,
		Items:         c.Lines(),
		CartTotals:    c.Totals(),
		OrderDate:     now.UTC(),
	}
	if req.PaymentMethod == model.PaymentUPI {
		upi := req.UPIID
		o.UPIID = &upi
	}
	return o
}
