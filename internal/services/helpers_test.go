package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aryant0/mithila-bazaar/external/catalogapi"
	"github.com/aryant0/mithila-bazaar/internal/model"
	"github.com/aryant0/mithila-bazaar/internal/repository"

	"github.com/shopspring/decimal"
)

func newTestBrowser(t *testing.T, src CatalogSource) (*ProductBrowser, *repository.ProductRepository) {
	t.Helper()
	if src == nil {
		src = catalogapi.NewMock()
	}
	products := repository.NewProductRepository()
	b := NewProductBrowser(src, products, "MAIN-CATEGORY", time.Minute)
	t.Cleanup(b.Close)
	return b, products
}

func newTestCarts(t *testing.T) (*CartService, *repository.MemoryCartRepository) {
	t.Helper()
	b, _ := newTestBrowser(t, nil)
	repo := repository.NewMemoryCartRepository()
	return NewCartService(repo, b), repo
}

func testCandidate(id, price string) model.CartCandidate {
	return model.CartCandidate{
		ID:    id,
		Name:  "Product " + id,
		Price: decimal.RequireFromString(price),
		Image: "/mbazaar.ico",
		Unit:  "1 kg",
	}
}

// recordingDispatcher records dispatched orders. When block is set, Dispatch
// waits on it before returning.
type recordingDispatcher struct {
	mu     sync.Mutex
	orders []*model.OrderRecord
	err    error
	block  chan struct{}
	called chan struct{}
}

func (d *recordingDispatcher) Name() string { return "test" }

func (d *recordingDispatcher) Dispatch(ctx context.Context, o *model.OrderRecord) error {
	if d.called != nil {
		d.called <- struct{}{}
	}
	if d.block != nil {
		<-d.block
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.orders = append(d.orders, o)
	return nil
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.orders)
}

type stubValidator struct {
	err   error
	calls int
}

func (v *stubValidator) Validate(ctx context.Context, email string) error {
	v.calls++
	return v.err
}

type stubSender struct {
	to      []string
	subject string
	text    string
	html    string
	err     error
}

func (s *stubSender) SendEmail(ctx context.Context, to []string, subject, text, html string) error {
	s.to, s.subject, s.text, s.html = to, subject, text, html
	return s.err
}
