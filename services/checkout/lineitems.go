package checkout

import (
	"context"
	"fmt"
	"math"

	"github.com/MarcGrol/agentcommerce/lib/myerrors"
	"github.com/MarcGrol/agentcommerce/lib/mymoney"
	"github.com/MarcGrol/agentcommerce/lib/myuuid"
)

// maxItemsCents bounds the sum of all lines, leaving room for shipping and tax in an int64.
const maxItemsCents = math.MaxInt64 / 4

// ItemRef points at a catalog product by id or sku. Any price sent along by a caller is ignored.
type ItemRef struct {
	ID        string
	SKU       string
	VariantID string
	Quantity  int
}

// LineItem is the protocol neutral rendering of an Item in cents.
type LineItem struct {
	ID         string
	ProductID  string
	SKU        string
	Title      string
	VariantID  string
	Quantity   int
	UnitAmount int64
	BaseAmount int64
	Discount   int64
	Subtotal   int64
	Tax        int64
	Total      int64
}

// buildItems resolves refs against the active catalog of the tenant.
// Unknown references are dropped. Quantities whose amount does not fit in cents are rejected.
func (s *Service) buildItems(c context.Context, tenantID string, refs []ItemRef) ([]Item, error) {
	items := []Item{}
	itemsCents := int64(0)
	for _, ref := range refs {
		product, found, err := s.products.LookupActive(c, tenantID, ref.ID, ref.SKU)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		unitCents := cents(product.Price)
		if unitCents > 0 && int64(ref.Quantity) > (maxItemsCents-itemsCents)/unitCents {
			return nil, myerrors.NewInvalidItemsError(fmt.Errorf("Quantity %d of %s exceeds the maximum order amount", ref.Quantity, product.SKU))
		}
		itemsCents += unitCents * int64(ref.Quantity)

		lineTotal := mymoney.CentsToDollars(unitCents * int64(ref.Quantity))
		items = append(items, Item{
			ID:        myuuid.Prefixed("li", s.uuider.Create()),
			ProductID: product.ID,
			SKU:       product.SKU,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  ref.Quantity,
			VariantID: ref.VariantID,
			LineTotal: lineTotal,
		})
	}
	return items, nil
}

func lineItemsOf(items []Item) []LineItem {
	lineItems := make([]LineItem, 0, len(items))
	for _, item := range items {
		unitAmount := cents(item.Price)
		baseAmount := unitAmount * int64(item.Quantity)
		lineItems = append(lineItems, LineItem{
			ID:         item.ID,
			ProductID:  item.ProductID,
			SKU:        item.SKU,
			Title:      item.Title,
			VariantID:  item.VariantID,
			Quantity:   item.Quantity,
			UnitAmount: unitAmount,
			BaseAmount: baseAmount,
			Discount:   0,
			Subtotal:   baseAmount,
			Tax:        0,
			Total:      baseAmount,
		})
	}
	return lineItems
}
