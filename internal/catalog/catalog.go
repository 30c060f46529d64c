package catalog

import (
	"sort"

	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
)

// Product is one sellable bundle. Prices are integer cents and are the only
// authoritative prices in the system; anything a client submits is discarded.
type Product struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	PriceCents  int    `json:"price_cents"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

var products = map[string]Product{
	"starter-bundle": {
		ID:          "starter-bundle",
		Slug:        "starter-bundle",
		Name:        "Indoor RC Plane for Kids – Starter Bundle",
		PriceCents:  5999,
		Description: "The perfect beginner RC airplane for kids ages 5+. Includes foam jet, easy-to-use controller, and mission cards for indoor flying.",
		Image:       "/products/starter-bundle.png",
	},
	"pro-bundle": {
		ID:          "pro-bundle",
		Slug:        "pro-bundle",
		Name:        "Indoor RC Plane for Kids – Pro Bundle",
		PriceCents:  8999,
		Description: "Best-selling RC plane bundle for kids with extended flight time. Perfect for young pilots ready for more indoor flying adventures.",
		Image:       "/products/pro-bundle.png",
	},
	"family-pack": {
		ID:          "family-pack",
		Slug:        "family-pack",
		Name:        "Indoor RC Planes – Family Pack (2 Jets)",
		PriceCents:  14999,
		Description: "Two complete RC plane sets for siblings or parent-child flying. Race, challenge, and learn together with beginner-friendly foam jets.",
		Image:       "/products/family-pack.png",
	},
}

// Find resolves a product by id.
func Find(id string) (Product, error) {
	product, ok := products[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeUnknownProduct, "unknown product").
			WithDetails(map[string]any{"product_id": id})
	}
	return product, nil
}

// FindBySlug resolves a product by its URL slug.
func FindBySlug(slug string) (Product, error) {
	for _, product := range products {
		if product.Slug == slug {
			return product, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// All returns every product, ordered by ascending price.
func All() []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceCents < out[j].PriceCents })
	return out
}
