// Package catalog holds the listing rules shared by every catalog source:
// name and category predicates, paging, the page-number window and search
// suggestions.
package catalog

import (
	"sort"
	"strings"

	"github.com/aryant0/mithila-bazaar/internal/model"
)

const (
	DefaultPerPage  = 8
	MobilePerPage   = 4
	ImportedPerPage = 24
	PageWindowSize  = 10
	MaxSuggestions  = 5
)

// MatchesName reports whether name equals or starts with search, ignoring case.
// An empty search matches everything.
func MatchesName(name, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(search))
}

// MatchesCategory reports whether any variant's main category (cat2) equals
// category exactly. An empty category matches everything.
func MatchesCategory(item model.CatalogItem, category string) bool {
	if category == "" {
		return true
	}
	for _, v := range item.Stock {
		if v.Cat2 == category {
			return true
		}
	}
	return false
}

// Filter applies both predicates and keeps the input order.
func Filter(items []model.CatalogItem, search, category string) []model.CatalogItem {
	out := make([]model.CatalogItem, 0, len(items))
	for _, it := range items {
		if MatchesName(it.ItemName, search) && MatchesCategory(it, category) {
			out = append(out, it)
		}
	}
	return out
}

// Paginate slices items into the page envelope. Pages start at 1; a page past
// the end yields no items.
func Paginate(items []model.CatalogItem, page, perPage int) *model.ItemPage {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	pageItems := make([]model.CatalogItem, end-start)
	copy(pageItems, items[start:end])

	return &model.ItemPage{
		Items:        pageItems,
		Count:        len(pageItems),
		TotalRecords: total,
		CurrentPage:  page,
		PerPage:      perPage,
		TotalPages:   totalPages,
	}
}

// PageWindow returns up to size consecutive page numbers centred on current
// and clamped to [1, totalPages].
func PageWindow(current, totalPages, size int) []int {
	if totalPages < 1 || size < 1 {
		return []int{}
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := current - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > totalPages {
		end = totalPages
		start = end - size + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Suggest returns up to limit distinct names matching query by exact-or-prefix,
// exact matches first, then alphabetical ignoring case. An empty query yields
// no suggestions.
func Suggest(names []string, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(names))
	matches := make([]string, 0, limit)
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		if strings.HasPrefix(strings.ToLower(n), q) {
			seen[n] = struct{}{}
			matches = append(matches, n)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := strings.ToLower(matches[i]), strings.ToLower(matches[j])
		ea, eb := a == q, b == q
		if ea != eb {
			return ea
		}
		if a != b {
			return a < b
		}
		return matches[i] < matches[j]
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
