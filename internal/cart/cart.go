package cart

import "github.com/masstransitco/mtc-toys/internal/catalog"

// Item is one line in a shopper's cart. Unit prices are resolved from the
// catalog on every read so stale documents never expose outdated prices.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ItemView is an Item joined with its catalog product for API responses.
type ItemView struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents"`
	LineTotalCents int    `json:"line_total_cents"`
}

// Cart is the API shape of a shopper's cart with derived totals.
type Cart struct {
	Items         []ItemView `json:"items"`
	ItemCount     int        `json:"item_count"`
	SubtotalCents int        `json:"subtotal_cents"`
}

// document is the persisted shape. Only product ids and quantities are
// stored; everything else is derived.
type document struct {
	Items []Item `json:"items"`
}

func (d document) view() Cart {
	out := Cart{Items: make([]ItemView, 0, len(d.Items))}
	for _, item := range d.Items {
		product, err := catalog.Find(item.ProductID)
		if err != nil {
			// Products removed from the catalog drop out of the cart.
			continue
		}
		out.Items = append(out.Items, ItemView{
			ProductID:      item.ProductID,
			Name:           product.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
			LineTotalCents: product.PriceCents * item.Quantity,
		})
		out.ItemCount += item.Quantity
		out.SubtotalCents += product.PriceCents * item.Quantity
	}
	return out
}
