package services

import (
	"context"
	"fmt"

	"github.com/aryant0/mithila-bazaar/internal/cart"
	"github.com/aryant0/mithila-bazaar/internal/metrics"
	"github.com/aryant0/mithila-bazaar/internal/model"
	"github.com/aryant0/mithila-bazaar/internal/repository"
)

// CartService runs every cart operation as load, mutate, save under the
// session's lock, so each session has a single writer.
type CartService struct {
	Repo    repository.CartRepository
	Browser *ProductBrowser

	locks *sessionLocks
}

func NewCartService(r repository.CartRepository, b *ProductBrowser) *CartService {
	return &CartService{
		Repo:    r,
		Browser: b,
		locks:   newSessionLocks(),
	}
}

// Get returns the cart (items + totals)
func (s *CartService) Get(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	release := s.locks.lock(sessionID)
	defer release()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.Response(), nil
}

// AddItem resolves the catalog item to its cheapest in-stock variant and adds it.
func (s *CartService) AddItem(ctx context.Context, sessionID string, itemID int64) (*model.CartResponse, error) {
	candidate, err := s.Browser.CartCandidate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.AddCandidate(ctx, sessionID, candidate)
}

// AddCandidate adds one unit of candidate; an existing line is incremented.
func (s *CartService) AddCandidate(ctx context.Context, sessionID string, candidate model.CartCandidate) (*model.CartResponse, error) {
	return s.mutate(ctx, sessionID, "add", func(c *cart.Cart) {
		c.AddItem(candidate)
	})
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (*model.CartResponse, error) {
	return s.mutate(ctx, sessionID, "update", func(c *cart.Cart) {
		c.UpdateQuantity(lineID, quantity)
	})
}

// Remove removes an item from the cart
func (s *CartService) Remove(ctx context.Context, sessionID, lineID string) (*model.CartResponse, error) {
	return s.mutate(ctx, sessionID, "remove", func(c *cart.Cart) {
		c.RemoveItem(lineID)
	})
}

// Clear clears the cart (removes items)
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	release := s.locks.lock(sessionID)
	defer release()

	if err := s.Repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	metrics.CartMutations.WithLabelValues("clear").Inc()
	return nil
}

// withLockedCart hands fn the session's cart while holding its lock. fn may
// keep the lock across slow work such as dispatching an order. Nothing is saved;
// fn calls save itself.
func (s *CartService) withLockedCart(ctx context.Context, sessionID string, fn func(c *cart.Cart, save func() error) error) error {
	release := s.locks.lock(sessionID)
	defer release()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	return fn(c, func() error {
		return s.Repo.Save(ctx, sessionID, c.Lines())
	})
}

func (s *CartService) mutate(ctx context.Context, sessionID, op string, fn func(c *cart.Cart)) (*model.CartResponse, error) {
	release := s.locks.lock(sessionID)
	defer release()

	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(c)
	if err := s.Repo.Save(ctx, sessionID, c.Lines()); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	metrics.CartMutations.WithLabelValues(op).Inc()
	return c.Response(), nil
}

func (s *CartService) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	lines, err := s.Repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart.New(lines), nil
}
