package catalogapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/aryant0/mithila-bazaar/internal/catalog"
	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/shopspring/decimal"
)

const mockItemCount = 32

// Mock serves a fixed in-memory catalog with the same paging and predicates
// as the remote service.
type Mock struct {
	items      []model.CatalogItem
	categories []model.CategoryValue
}

func NewMock() *Mock {
	items := make([]model.CatalogItem, 0, mockItemCount)
	for i := 0; i < mockItemCount; i++ {
		desc := fmt.Sprintf("This is a description for mock product %d.", i+1)
		items = append(items, model.CatalogItem{
			ItemID:      int64(i + 1),
			ItemName:    fmt.Sprintf("Mock Product %d", i+1),
			ShortName:   fmt.Sprintf("Mock%d", i+1),
			Description: &desc,
			Stock: []model.StockVariant{{
				MRP:       decimal.NewFromInt(int64(100 + i*10)),
				SalePrice: decimal.NewFromInt(int64(80 + i*8)),
				Stock:     10 + i,
				Cat1:      "Department",
				Cat2:      "Category",
				Cat3:      "SubCategory",
				Cat4:      "Brand",
				Cat5:      "Size",
			}},
		})
	}

	return &Mock{
		items: items,
		categories: []model.CategoryValue{
			{CategoryValueID: 1, CategoryValueName: "Category", CatName: "MAIN-CATEGORY", CatStatus: "ACTIVE"},
			{CategoryValueID: 2, CategoryValueName: "Department", CatName: "DEPARTMENT", CatStatus: "ACTIVE"},
			{CategoryValueID: 3, CategoryValueName: "SubCategory", CatName: "SUB-CATEGORY", CatStatus: "ACTIVE"},
			{CategoryValueID: 4, CategoryValueName: "Brand", CatName: "BRAND", CatStatus: "ACTIVE"},
		},
	}
}

func (m *Mock) ListItems(ctx context.Context, q model.ItemQuery) (*model.ItemPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inStock := make([]model.CatalogItem, 0, len(m.items))
	for _, it := range m.items {
		if !it.InStock() {
			continue
		}
		if q.ExactName && !strings.EqualFold(it.ItemName, strings.TrimSpace(q.Search)) {
			continue
		}
		inStock = append(inStock, it)
	}
	return catalog.Paginate(catalog.Filter(inStock, q.Search, q.Category), q.Page, q.Limit), nil
}

func (m *Mock) GetItem(ctx context.Context, id int64) (*model.CatalogItem, error) {
	for _, it := range m.items {
		if it.ItemID == id {
			found := it
			return &found, nil
		}
	}
	return nil, fmt.Errorf("get item %d: %w", id, ErrNotFound)
}

func (m *Mock) ListCategories(ctx context.Context, catName string) (*model.CategoryPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values := []model.CategoryValue{}
	for _, c := range m.categories {
		if c.CatName == catName {
			values = append(values, c)
		}
	}
	return &model.CategoryPage{
		CategoryValues: values,
		Count:          len(values),
		TotalRecords:   len(values),
		CurrentPage:    1,
		PerPage:        categoryLimit,
		TotalPages:     1,
	}, nil
}
