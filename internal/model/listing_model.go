package model

// ProductView is a catalog item as shown on a product card.
type ProductView struct {
	CatalogItem
	InStock bool `json:"inStock"`
	// Offer is the add-to-cart candidate; nil when the item cannot be added.
	Offer *CartCandidate `json:"offer,omitempty"`
}

// ProductListing is one page of the product browser.
type ProductListing struct {
	Items        []ProductView `json:"items"`
	Search       string        `json:"search"`
	Category     string        `json:"category"`
	CurrentPage  int           `json:"current_page"`
	PerPage      int           `json:"per_page"`
	TotalPages   int           `json:"total_pages"`
	TotalRecords int           `json:"total_records"`
	Pages        []int         `json:"pages"`
	HasPrevious  bool          `json:"has_previous"`
	HasNext      bool          `json:"has_next"`
	Source       string        `json:"source"`
}

const (
	ListingSourceCatalog  = "catalog"
	ListingSourceImported = "imported"
)

// BrowseQuery is what the shopper asked for.
type BrowseQuery struct {
	Search   string
	Category string
	Page     int
	PerPage  int
}
