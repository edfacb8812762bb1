package model

import "github.com/shopspring/decimal"

// StockVariant is one priced, stocked SKU of a catalog item.
// Cat1..Cat5 are DEPARTMENT, MAIN-CATEGORY, SUB-CATEGORY, BRAND and SIZE-WEIGHT.
type StockVariant struct {
	MRP       decimal.Decimal `json:"mrp"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Stock     int             `json:"stock"`
	Cat1      string          `json:"cat1"`
	Cat2      string          `json:"cat2"`
	Cat3      string          `json:"cat3"`
	Cat4      string          `json:"cat4"`
	Cat5      string          `json:"cat5"`
}

// EffectivePrice is the sale price, or the MRP when no sale price is set.
func (v StockVariant) EffectivePrice() decimal.Decimal {
	if v.SalePrice.IsPositive() {
		return v.SalePrice
	}
	return v.MRP
}

// CatalogItem is a product header as returned by the catalog API.
type CatalogItem struct {
	ItemID      int64          `json:"itemId"`
	ItemName    string         `json:"itemName"`
	ShortName   string         `json:"shortName"`
	Description *string        `json:"description"`
	Stock       []StockVariant `json:"stock"`
}

// InStock reports whether any variant has stock left.
func (it CatalogItem) InStock() bool {
	for _, v := range it.Stock {
		if v.Stock > 0 {
			return true
		}
	}
	return false
}

// ItemPage is the paging envelope of GET /api/items.
type ItemPage struct {
	Items        []CatalogItem `json:"items"`
	Count        int           `json:"count"`
	TotalRecords int           `json:"total_records"`
	CurrentPage  int           `json:"current_page"`
	PerPage      int           `json:"per_page"`
	TotalPages   int           `json:"total_pages"`
}

// ItemQuery carries the listing parameters sent to a catalog source.
type ItemQuery struct {
	Search   string
	Category string
	Page     int
	Limit    int
	// ExactName matches Search against the whole item name instead of a prefix.
	ExactName bool
}

// CategoryValue is one value on a category axis (e.g. MAIN-CATEGORY).
type CategoryValue struct {
	CategoryValueID   int64  `json:"categoryValueId"`
	CategoryValueName string `json:"categoryValueName"`
	CatName           string `json:"catName"`
	CatStatus         string `json:"catStatus"`
}

// CategoryPage is the paging envelope of GET /api/categoryValues.
type CategoryPage struct {
	CategoryValues []CategoryValue `json:"categoryValues"`
	Count          int             `json:"count"`
	TotalRecords   int             `json:"total_records"`
	CurrentPage    int             `json:"current_page"`
	PerPage        int             `json:"per_page"`
	TotalPages     int             `json:"total_pages"`
}
