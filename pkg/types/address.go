package types

import pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"

// ShippingAddress is the address snapshot frozen onto an order at checkout.
// Stored as jsonb; later edits to the shopper's address book do not touch it.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Validate checks that every field needed to ship a physical package is set.
func (a ShippingAddress) Validate() error {
	missing := []string{}
	if a.Street == "" {
		missing = append(missing, "street")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.State == "" {
		missing = append(missing, "state")
	}
	if a.Zip == "" {
		missing = append(missing, "zip")
	}
	if a.Country == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}
