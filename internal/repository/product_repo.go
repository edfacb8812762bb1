package repository

import (
	"sync"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"
)

// ProductRepository holds the admin-imported product list. While a list is
// present, the product browser reads from it instead of the catalog source.
type ProductRepository struct {
	mu         sync.RWMutex
	items      []model.CatalogItem
	imported   bool
	importedAt time.Time
	source     string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Replace swaps the whole list. There is no merge with a previous import.
func (r *ProductRepository) Replace(items []model.CatalogItem, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make([]model.CatalogItem, len(items))
	copy(r.items, items)
	r.imported = true
	r.importedAt = time.Now()
	r.source = source
}

// List returns the imported items and whether an import is active.
func (r *ProductRepository) List() ([]model.CatalogItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.imported {
		return nil, false
	}
	out := make([]model.CatalogItem, len(r.items))
	copy(out, r.items)
	return out, true
}

// FindByID looks up an imported item.
func (r *ProductRepository) FindByID(id int64) (model.CatalogItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ItemID == id {
			return it, true
		}
	}
	return model.CatalogItem{}, false
}

// Status describes the active import for the admin screen.
func (r *ProductRepository) Status() model.ImportStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := model.ImportStatus{Active: r.imported, Count: len(r.items), Source: r.source}
	if r.imported {
		at := r.importedAt
		st.ImportedAt = &at
	}
	return st
}

// Reset drops the imported list so the catalog source is used again.
func (r *ProductRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
	r.imported = false
	r.source = ""
}
