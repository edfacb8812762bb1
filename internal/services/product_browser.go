package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/aryant0/mithila-bazaar/external/catalogapi"
	"github.com/aryant0/mithila-bazaar/internal/cache"
	"github.com/aryant0/mithila-bazaar/internal/catalog"
	"github.com/aryant0/mithila-bazaar/internal/metrics"
	"github.com/aryant0/mithila-bazaar/internal/model"
	"github.com/aryant0/mithila-bazaar/internal/repository"
)

// suggestionScan bounds how many source items are read to build suggestions.
const suggestionScan = 50

// CatalogSource is implemented by the remote catalog client and the mock catalog.
type CatalogSource interface {
	ListItems(ctx context.Context, q model.ItemQuery) (*model.ItemPage, error)
	GetItem(ctx context.Context, id int64) (*model.CatalogItem, error)
	ListCategories(ctx context.Context, catName string) (*model.CategoryPage, error)
}

// ProductBrowser serves the filtered, paginated catalog. When the admin has
// imported a product list it is used instead of the catalog source.
type ProductBrowser struct {
	Catalog      CatalogSource
	Products     *repository.ProductRepository
	CategoryAxis string

	categories *cache.TTLCache[[]model.CategoryValue]
}

func NewProductBrowser(src CatalogSource, products *repository.ProductRepository, axis string, categoryTTL time.Duration) *ProductBrowser {
	return &ProductBrowser{
		Catalog:      src,
		Products:     products,
		CategoryAxis: axis,
		categories:   cache.NewTTLCache[[]model.CategoryValue]("categories", categoryTTL, categoryTTL),
	}
}

// RevertToCatalog drops the imported list and the cached categories, so the
// next listing reads fresh from the catalog source.
func (b *ProductBrowser) RevertToCatalog() {
	b.Products.Reset()
	b.categories.Clear()
}

// Close stops the category cache.
func (b *ProductBrowser) Close() {
	b.categories.Stop()
}

// sourcePerPage accepts the two viewport page sizes and falls back to the default.
func sourcePerPage(n int) int {
	if n == catalog.MobilePerPage || n == catalog.DefaultPerPage {
		return n
	}
	return catalog.DefaultPerPage
}

// Browse returns one page of products. A failing catalog source yields an empty
// page rather than an error.
func (b *ProductBrowser) Browse(ctx context.Context, q model.BrowseQuery) *model.ProductListing {
	if q.Page < 1 {
		q.Page = 1
	}

	var page *model.ItemPage
	source := model.ListingSourceCatalog

	if items, ok := b.Products.List(); ok {
		source = model.ListingSourceImported
		page = catalog.Paginate(catalog.Filter(items, q.Search, q.Category), q.Page, catalog.ImportedPerPage)
	} else {
		perPage := sourcePerPage(q.PerPage)
		var err error
		page, err = b.Catalog.ListItems(ctx, model.ItemQuery{
			Search:   q.Search,
			Category: q.Category,
			Page:     q.Page,
			Limit:    perPage,
		})
		if err != nil {
			slog.Error("Catalog fetch failed", "error", err, "search", q.Search, "category", q.Category, "page", q.Page)
			metrics.CatalogFetchErrors.WithLabelValues("items").Inc()
			page = &model.ItemPage{Items: []model.CatalogItem{}, CurrentPage: q.Page, PerPage: perPage}
		}
	}

	return buildListing(page, q, source)
}

func buildListing(page *model.ItemPage, q model.BrowseQuery, source string) *model.ProductListing {
	current := page.CurrentPage
	if current < 1 {
		current = 1
	}
	totalPages := page.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	views := make([]model.ProductView, 0, len(page.Items))
	for _, it := range page.Items {
		views = append(views, toView(it))
	}

	return &model.ProductListing{
		Items:        views,
		Search:       q.Search,
		Category:     q.Category,
		CurrentPage:  current,
		PerPage:      page.PerPage,
		TotalPages:   totalPages,
		TotalRecords: page.TotalRecords,
		Pages:        catalog.PageWindow(current, totalPages, catalog.PageWindowSize),
		HasPrevious:  current > 1,
		HasNext:      current < totalPages,
		Source:       source,
	}
}

func toView(it model.CatalogItem) model.ProductView {
	v := model.ProductView{CatalogItem: it, InStock: it.InStock()}
	if offer, ok := catalog.Offer(it); ok {
		v.Offer = &offer
	}
	return v
}

// Item returns one product by id.
func (b *ProductBrowser) Item(ctx context.Context, id int64) (*model.ProductView, error) {
	if _, ok := b.Products.List(); ok {
		it, found := b.Products.FindByID(id)
		if !found {
			return nil, ErrItemNotFound
		}
		v := toView(it)
		return &v, nil
	}

	it, err := b.Catalog.GetItem(ctx, id)
	if errors.Is(err, catalogapi.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	if err != nil {
		slog.Error("Catalog item lookup failed", "item_id", id, "error", err)
		metrics.CatalogFetchErrors.WithLabelValues("item").Inc()
		return nil, err
	}
	v := toView(*it)
	return &v, nil
}

// CartCandidate resolves the variant that "Add to Cart" would put in the cart.
func (b *ProductBrowser) CartCandidate(ctx context.Context, id int64) (model.CartCandidate, error) {
	v, err := b.Item(ctx, id)
	if err != nil {
		return model.CartCandidate{}, err
	}
	if v.Offer == nil {
		return model.CartCandidate{}, ErrOutOfStock
	}
	return *v.Offer, nil
}

// Categories lists the values of catName, or of the configured axis when empty.
// With an imported list the main categories are taken from the imported items.
func (b *ProductBrowser) Categories(ctx context.Context, catName string) []model.CategoryValue {
	if catName == "" {
		catName = b.CategoryAxis
	}

	if items, ok := b.Products.List(); ok {
		return importedCategories(items, catName)
	}

	if cached, ok := b.categories.Get(catName); ok {
		return cached
	}

	page, err := b.Catalog.ListCategories(ctx, catName)
	if err != nil {
		slog.Error("Category fetch failed", "error", err, "cat_name", catName)
		metrics.CatalogFetchErrors.WithLabelValues("categories").Inc()
		return []model.CategoryValue{}
	}
	b.categories.Set(catName, page.CategoryValues)
	return page.CategoryValues
}

func importedCategories(items []model.CatalogItem, catName string) []model.CategoryValue {
	seen := map[string]struct{}{}
	names := []string{}
	for _, it := range items {
		for _, v := range it.Stock {
			if v.Cat2 == "" {
				continue
			}
			if _, dup := seen[v.Cat2]; !dup {
				seen[v.Cat2] = struct{}{}
				names = append(names, v.Cat2)
			}
		}
	}
	sort.Strings(names)

	out := make([]model.CategoryValue, 0, len(names))
	for i, n := range names {
		out = append(out, model.CategoryValue{
			CategoryValueID:   int64(i + 1),
			CategoryValueName: n,
			CatName:           catName,
			CatStatus:         "ACTIVE",
		})
	}
	return out
}

// Suggest returns up to five item names for a non-empty query.
func (b *ProductBrowser) Suggest(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}

	var items []model.CatalogItem
	if imported, ok := b.Products.List(); ok {
		items = imported
	} else {
		page, err := b.Catalog.ListItems(ctx, model.ItemQuery{Search: query, Page: 1, Limit: suggestionScan})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			slog.Warn("Suggestion fetch failed", "error", err, "query", query)
			metrics.CatalogFetchErrors.WithLabelValues("suggestions").Inc()
			return []string{}, nil
		}
		items = page.Items
		if page.TotalPages > 1 && !hasExactName(items, query) {
			items = append(items, b.exactMatches(ctx, query)...)
		}
	}

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.ItemName)
	}
	return catalog.Suggest(names, query, catalog.MaxSuggestions), nil
}

// exactMatches looks up items named query outright, for when the prefix scan
// was cut short. Failures only cost the exact match.
func (b *ProductBrowser) exactMatches(ctx context.Context, query string) []model.CatalogItem {
	page, err := b.Catalog.ListItems(ctx, model.ItemQuery{Search: query, ExactName: true, Page: 1, Limit: catalog.MaxSuggestions})
	if err != nil {
		slog.Warn("Exact suggestion fetch failed", "error", err, "query", query)
		return nil
	}
	return page.Items
}

func hasExactName(items []model.CatalogItem, query string) bool {
	q := strings.TrimSpace(query)
	for _, it := range items {
		if strings.EqualFold(it.ItemName, q) {
			return true
		}
	}
	return false
}
