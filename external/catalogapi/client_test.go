package catalogapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemPredicate(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category string
		want     string
	}{
		{"empty", "", "", "stock>0"},
		{"trimmed prefix", " ric ", "", "stock>0;itemName=^ric"},
		{"prefix and category", "ric", "Grocery", "stock>0;itemName=^ric;cat2==Grocery"},
		{"clause separators stripped", "x;stock>-1", "Rice;cat1==Other", "stock>0;itemName=^xstock-1;cat2==Ricecat1Other"},
		{"operators only", ";==^", ";", "stock>0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemPredicate(tt.search, tt.category)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, strings.Count(got, ";"), 2)
		})
	}

	assert.Equal(t, "stock>0;itemName==Rice Bag", ExactItemPredicate("Rice Bag", ""))
}

func TestClient_ListItemsExactName(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[],"count":0,"total_records":0,"current_page":1,"per_page":5,"total_pages":0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	_, err := c.ListItems(context.Background(), model.ItemQuery{Search: "Rice Bag", Page: 1, Limit: 5, ExactName: true})
	require.NoError(t, err)
	assert.Equal(t, "stock>0;itemName==Rice Bag", gotQuery)
}

func TestClient_ListItems(t *testing.T) {
	var gotQuery, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/items", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotToken = r.Header.Get("X-Auth-Token")
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"itemId":5,"itemName":"Rice Bag","shortName":"RB","description":null,
			"stock":[{"mrp":120,"salePrice":99.5,"stock":3,"cat1":"Food","cat2":"Grocery","cat3":"Rice","cat4":"Local","cat5":"5 kg"}]}],
			"count":1,"total_records":9,"current_page":2,"per_page":8,"total_pages":2}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", time.Second)
	page, err := c.ListItems(context.Background(), model.ItemQuery{Search: "Ric", Category: "Grocery", Page: 2, Limit: 8})
	require.NoError(t, err)

	assert.Equal(t, "secret", gotToken)
	assert.Equal(t, "stock>0;itemName=^Ric;cat2==Grocery", gotQuery)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Rice Bag", page.Items[0].ItemName)
	assert.Nil(t, page.Items[0].Description)
	assert.Equal(t, "99.5", page.Items[0].Stock[0].SalePrice.String())
	assert.Equal(t, 2, page.TotalPages)
}

func TestClient_ListCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categoryValues", r.URL.Path)
		assert.Equal(t, "catName==MAIN-CATEGORY", r.URL.Query().Get("q"))
		assert.Equal(t, "200", r.URL.Query().Get("limit"))
		assert.Equal(t, "categoryValueId,categoryValueName,catName,catStatus", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"categoryValues":[{"categoryValueId":1,"categoryValueName":"Grocery","catName":"MAIN-CATEGORY","catStatus":"ACTIVE"}],"count":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", time.Second)
	page, err := c.ListCategories(context.Background(), "MAIN-CATEGORY")
	require.NoError(t, err)
	require.Len(t, page.CategoryValues, 1)
	assert.Equal(t, "Grocery", page.CategoryValues[0].CategoryValueName)
}

func TestClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/items/404":
			http.NotFound(w, r)
		case "/api/items":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			w.Write([]byte(`{not json`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", time.Second)

	_, err := c.GetItem(context.Background(), 404)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.ListItems(context.Background(), model.ItemQuery{Page: 1, Limit: 8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	_, err = c.ListCategories(context.Background(), "MAIN-CATEGORY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", 20*time.Millisecond)
	_, err := c.ListItems(context.Background(), model.ItemQuery{Page: 1, Limit: 8})
	assert.Error(t, err)
}
