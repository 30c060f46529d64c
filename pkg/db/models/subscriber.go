package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is one mailing-list signup, upserted by email.
type Subscriber struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	Source       string    `gorm:"column:source;not null;default:'website'"`
	SubscribedAt time.Time `gorm:"column:subscribed_at;not null"`
}
