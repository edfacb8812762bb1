package catalog

import (
	"strconv"

	"github.com/aryant0/mithila-bazaar/internal/model"
)

// PlaceholderImage is shown for every product card.
const PlaceholderImage = "/mbazaar.ico"

// CheapestInStock picks the in-stock variant with the lowest effective price.
// Ties go to the earlier variant. ok is false when nothing is in stock.
func CheapestInStock(item model.CatalogItem) (index int, variant model.StockVariant, ok bool) {
	index = -1
	for i, v := range item.Stock {
		if v.Stock <= 0 {
			continue
		}
		if index < 0 || v.EffectivePrice().LessThan(variant.EffectivePrice()) {
			index, variant = i, v
		}
	}
	return index, variant, index >= 0
}

// LineID identifies a variant of an item in the cart, e.g. "12-0".
func LineID(itemID int64, variantIndex int) string {
	return strconv.FormatInt(itemID, 10) + "-" + strconv.Itoa(variantIndex)
}

// Offer builds the add-to-cart candidate for item. ok is false when the item
// is out of stock and cannot be added.
func Offer(item model.CatalogItem) (model.CartCandidate, bool) {
	i, v, ok := CheapestInStock(item)
	if !ok {
		return model.CartCandidate{}, false
	}
	return model.CartCandidate{
		ID:    LineID(item.ItemID, i),
		Name:  item.ItemName,
		Price: v.EffectivePrice(),
		Image: PlaceholderImage,
		Unit:  v.Cat5,
	}, true
}
