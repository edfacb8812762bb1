package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"
)

// ErrNotFound is returned when the requested item does not exist.
var ErrNotFound = errors.New("catalog item not found")

const (
	itemFields     = "itemId,itemName,shortName,description,stock"
	categoryFields = "categoryValueId,categoryValueName,catName,catStatus"
	categoryLimit  = 200
)

// Client reads items and categories from the remote catalog service.
type Client struct {
	baseURL   string
	authToken string
	client    *http.Client
}

func NewClient(baseURL, authToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		authToken: authToken,
		client:    &http.Client{Timeout: timeout},
	}
}

// predicateOperators are stripped from user text so it stays a single clause value.
var predicateOperators = strings.NewReplacer(";", "", "=", "", "^", "", "<", "", ">", "", "!", "")

func predicateValue(s string) string {
	return strings.TrimSpace(predicateOperators.Replace(s))
}

// ItemPredicate renders the q parameter for an item listing: in-stock items,
// optionally narrowed by name prefix and main category.
func ItemPredicate(search, category string) string {
	return itemPredicate("itemName=^", search, category)
}

// ExactItemPredicate is ItemPredicate with a whole-name match.
func ExactItemPredicate(name, category string) string {
	return itemPredicate("itemName==", name, category)
}

func itemPredicate(nameOp, name, category string) string {
	parts := []string{"stock>0"}
	if s := predicateValue(name); s != "" {
		parts = append(parts, nameOp+s)
	}
	if c := predicateValue(category); c != "" {
		parts = append(parts, "cat2=="+c)
	}
	return strings.Join(parts, ";")
}

func (c *Client) ListItems(ctx context.Context, q model.ItemQuery) (*model.ItemPage, error) {
	params := url.Values{}
	params.Set("fields", itemFields)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.ExactName {
		params.Set("q", ExactItemPredicate(q.Search, q.Category))
	} else {
		params.Set("q", ItemPredicate(q.Search, q.Category))
	}

	var page model.ItemPage
	if err := c.get(ctx, "/api/items?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if page.Items == nil {
		page.Items = []model.CatalogItem{}
	}
	return &page, nil
}

func (c *Client) GetItem(ctx context.Context, id int64) (*model.CatalogItem, error) {
	params := url.Values{}
	params.Set("fields", itemFields)

	var item model.CatalogItem
	path := "/api/items/" + strconv.FormatInt(id, 10) + "?" + params.Encode()
	if err := c.get(ctx, path, &item); err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return &item, nil
}

func (c *Client) ListCategories(ctx context.Context, catName string) (*model.CategoryPage, error) {
	params := url.Values{}
	params.Set("fields", categoryFields)
	params.Set("limit", strconv.Itoa(categoryLimit))
	params.Set("q", "catName=="+catName)

	var page model.CategoryPage
	if err := c.get(ctx, "/api/categoryValues?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if page.CategoryValues == nil {
		page.CategoryValues = []model.CategoryValue{}
	}
	return &page, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Auth-Token", c.authToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog service error: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
