package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/masstransitco/mtc-toys/pkg/enums"
	"github.com/masstransitco/mtc-toys/pkg/types"
)

// Order is the durable record of a purchase attempt. Totals and the address
// snapshot are immutable after creation; only status, the Stripe session
// reference, and updated_at change.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null"`
	UserEmail       string                `gorm:"column:user_email;not null"`
	Status          enums.OrderStatus     `gorm:"column:status;not null;default:'pending'"`
	SubtotalCents   int                   `gorm:"column:subtotal_cents;not null"`
	ShippingCents   int                   `gorm:"column:shipping_cents;not null"`
	TotalCents      int                   `gorm:"column:total_cents;not null"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	StripeSessionID *string               `gorm:"column:stripe_session_id"`
	Items           []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
