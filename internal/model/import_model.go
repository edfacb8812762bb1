package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportedProduct is the flat product shape produced by the admin importer.
type ImportedProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	MRP         decimal.Decimal `json:"mrp"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	InStock     bool            `json:"inStock"`
}

// ImportResult is returned after a successful import.
type ImportResult struct {
	Imported int                 `json:"imported"`
	Skipped  int                 `json:"skipped"`
	Products []ImportedProduct   `json:"products"`
	Preview  []map[string]string `json:"preview,omitempty"`
}

// ImportStatus describes the active imported list.
type ImportStatus struct {
	Active     bool       `json:"active"`
	Count      int        `json:"count"`
	Source     string     `json:"source,omitempty"`
	ImportedAt *time.Time `json:"importedAt,omitempty"`
}
