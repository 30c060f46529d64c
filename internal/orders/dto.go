package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/masstransitco/mtc-toys/pkg/db/models"
	"github.com/masstransitco/mtc-toys/pkg/enums"
	"github.com/masstransitco/mtc-toys/pkg/money"
	"github.com/masstransitco/mtc-toys/pkg/types"
)

// AdminListFilters describe the inputs supported by the admin order list.
type AdminListFilters struct {
	Status *enums.OrderStatus
	Query  string
}

// OrderItemDTO is one frozen product line as returned by the API.
type OrderItemDTO struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents"`
	UnitPrice      string `json:"unit_price"`
}

// OrderDTO is the API shape of an order.
type OrderDTO struct {
	ID              uuid.UUID             `json:"id"`
	UserEmail       string                `json:"user_email"`
	Status          enums.OrderStatus     `json:"status"`
	SubtotalCents   int                   `json:"subtotal_cents"`
	ShippingCents   int                   `json:"shipping_cents"`
	TotalCents      int                   `json:"total_cents"`
	Total           string                `json:"total"`
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
	StripeSessionID *string               `json:"stripe_session_id,omitempty"`
	Items           []OrderItemDTO        `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToDTO maps a stored order to its API shape.
func ToDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			UnitPrice:      money.FormatUSD(item.UnitPriceCents),
		})
	}
	return OrderDTO{
		ID:              order.ID,
		UserEmail:       order.UserEmail,
		Status:          order.Status,
		SubtotalCents:   order.SubtotalCents,
		ShippingCents:   order.ShippingCents,
		TotalCents:      order.TotalCents,
		Total:           money.FormatUSD(order.TotalCents),
		ShippingAddress: order.ShippingAddress,
		StripeSessionID: order.StripeSessionID,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// ToDTOs maps a slice of stored orders.
func ToDTOs(orders []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		out = append(out, ToDTO(order))
	}
	return out
}
