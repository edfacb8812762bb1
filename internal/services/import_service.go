package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/metrics"
	"github.com/aryant0/mithila-bazaar/internal/model"
	"github.com/aryant0/mithila-bazaar/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	defaultImportCategory = "Uncategorized"
	previewRows           = 5
)

var (
	excelNameHeaders  = []string{"item name", "Item Name", "Product Name", "Name"}
	excelPriceHeaders = []string{"selling", "Selling", "Selling Price", "Price"}
)

// ImportService replaces the storefront's product list with admin-supplied data.
// Every import fully replaces the previous one.
type ImportService struct {
	Products *repository.ProductRepository
	now      func() time.Time
}

func NewImportService(p *repository.ProductRepository) *ImportService {
	return &ImportService{Products: p, now: time.Now}
}

// ImportJSON parses a JSON array of product objects.
func (s *ImportService) ImportJSON(ctx context.Context, data []byte) (*model.ImportResult, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		metrics.ProductImports.WithLabelValues("json", "invalid").Inc()
		return nil, fmt.Errorf("%w: expected a JSON array of products", ErrInvalidImport)
	}

	stamp := s.now().UnixMilli()
	products := make([]model.ImportedProduct, 0, len(rows))
	for i, row := range rows {
		products = append(products, productFromJSON(row, fmt.Sprintf("json_%d_%d", stamp, i)))
	}
	return s.replace("json", products, 0, nil), nil
}

func productFromJSON(row map[string]any, fallbackID string) model.ImportedProduct {
	p := model.ImportedProduct{
		ID:          firstString(row, "id"),
		Name:        firstString(row, "name"),
		Category:    firstString(row, "category"),
		Description: firstString(row, "description"),
		Unit:        firstString(row, "unit", "Weight/Quantity"),
		InStock:     true,
	}
	if p.ID == "" {
		p.ID = fallbackID
	}
	if p.Category == "" {
		p.Category = defaultImportCategory
	}

	if price, ok := firstNumber(row, "price", "mrp"); ok {
		p.Price = price
	}
	if mrp, ok := firstNumber(row, "mrp"); ok {
		p.MRP = mrp
	}
	if v, present := row["inStock"]; present {
		p.InStock = truthy(v)
	}
	return p
}

// ImportExcel reads the first sheet of an .xlsx workbook. The header row names
// the columns; rows without a name or a non-zero price are skipped. A sheet
// with no usable rows still replaces the list, leaving it empty.
func (s *ImportService) ImportExcel(ctx context.Context, r io.Reader) (*model.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		metrics.ProductImports.WithLabelValues("excel", "invalid").Inc()
		return nil, fmt.Errorf("%w: could not read spreadsheet", ErrInvalidImport)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		metrics.ProductImports.WithLabelValues("excel", "invalid").Inc()
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidImport)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		metrics.ProductImports.WithLabelValues("excel", "invalid").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	records := sheetRecords(rows)
	stamp := s.now().UnixMilli()

	products := make([]model.ImportedProduct, 0, len(records))
	skipped := 0
	for i, rec := range records {
		p := model.ImportedProduct{
			ID:       fmt.Sprintf("excel_%d_%d", stamp, i),
			Name:     firstString(rec, excelNameHeaders...),
			Category: defaultImportCategory,
			InStock:  true,
		}
		if price, ok := firstNumber(rec, excelPriceHeaders...); ok {
			p.Price = price
		}
		if mrp, ok := firstNumber(rec, "MRP"); ok {
			p.MRP = mrp
		}
		if p.Name == "" || p.Price.IsZero() {
			skipped++
			continue
		}
		products = append(products, p)
	}
	preview := make([]map[string]string, 0, previewRows)
	for i := 0; i < len(records) && i < previewRows; i++ {
		row := make(map[string]string, len(records[i]))
		for k, v := range records[i] {
			row[k] = fmt.Sprint(v)
		}
		preview = append(preview, row)
	}

	return s.replace("excel", products, skipped, preview), nil
}

// sheetRecords turns rows into header-keyed records. Blank rows are dropped.
func sheetRecords(rows [][]string) []map[string]any {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	out := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]any, len(header))
		empty := true
		for i, h := range header {
			if h == "" {
				continue
			}
			v := ""
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			if v != "" {
				empty = false
			}
			rec[h] = v
		}
		if !empty {
			out = append(out, rec)
		}
	}
	return out
}

func (s *ImportService) replace(format string, products []model.ImportedProduct, skipped int, preview []map[string]string) *model.ImportResult {
	items := make([]model.CatalogItem, 0, len(products))
	for i, p := range products {
		items = append(items, toCatalogItem(int64(i+1), p))
	}
	s.Products.Replace(items, format)

	metrics.ProductImports.WithLabelValues(format, "success").Inc()
	slog.Info("Product list replaced", "format", format, "imported", len(products), "skipped", skipped)

	return &model.ImportResult{
		Imported: len(products),
		Skipped:  skipped,
		Products: products,
		Preview:  preview,
	}
}

func toCatalogItem(id int64, p model.ImportedProduct) model.CatalogItem {
	mrp := p.MRP
	if mrp.IsZero() {
		mrp = p.Price
	}
	stock := 0
	if p.InStock {
		stock = 1
	}

	it := model.CatalogItem{
		ItemID:    id,
		ItemName:  p.Name,
		ShortName: p.ID,
		Stock: []model.StockVariant{{
			MRP:       mrp,
			SalePrice: p.Price,
			Stock:     stock,
			Cat2:      p.Category,
			Cat5:      p.Unit,
		}},
	}
	if p.Description != "" {
		desc := p.Description
		it.Description = &desc
	}
	return it
}

// firstString returns the first non-empty value among keys, rendered as text.
func firstString(row map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = strings.TrimSpace(t)
		case json.Number:
			s = t.String()
		case bool:
			if !t {
				continue
			}
			s = strconv.FormatBool(t)
		default:
			continue
		}
		if s != "" {
			return s
		}
	}
	return ""
}

// firstNumber returns the first non-zero numeric value among keys.
func firstNumber(row map[string]any, keys ...string) (decimal.Decimal, bool) {
	for _, k := range keys {
		v, ok := row[k]
		if !ok || v == nil {
			continue
		}
		var raw string
		switch t := v.(type) {
		case json.Number:
			raw = t.String()
		case string:
			raw = strings.NewReplacer("₹", "", ",", "", " ", "").Replace(t)
		default:
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsZero() {
			continue
		}
		return d, true
	}
	return decimal.Zero, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s != "" && s != "false" && s != "0" && s != "no"
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}
