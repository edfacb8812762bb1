package repository

import (
	"testing"

	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_ReplaceAndReset(t *testing.T) {
	repo := NewProductRepository()

	_, active := repo.List()
	assert.False(t, active)
	assert.False(t, repo.Status().Active)

	repo.Replace([]model.CatalogItem{{ItemID: 1, ItemName: "Makhana"}, {ItemID: 2, ItemName: "Sattu"}}, "json")
	items, active := repo.List()
	require.True(t, active)
	assert.Len(t, items, 2)

	st := repo.Status()
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, "json", st.Source)
	assert.NotNil(t, st.ImportedAt)

	it, ok := repo.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Sattu", it.ItemName)

	repo.Replace([]model.CatalogItem{{ItemID: 9, ItemName: "Chura"}}, "excel")
	items, _ = repo.List()
	require.Len(t, items, 1, "replace does not merge")
	_, ok = repo.FindByID(1)
	assert.False(t, ok)

	repo.Reset()
	_, active = repo.List()
	assert.False(t, active)
}

func TestProductRepository_EmptyImportIsActive(t *testing.T) {
	repo := NewProductRepository()
	repo.Replace(nil, "json")

	items, active := repo.List()
	assert.True(t, active)
	assert.Empty(t, items)
}
