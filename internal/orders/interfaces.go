package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/masstransitco/mtc-toys/pkg/db/models"
	"github.com/masstransitco/mtc-toys/pkg/enums"
	"github.com/masstransitco/mtc-toys/pkg/pagination"
)

// Repository is the persistence surface for orders and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	FindBySessionIDForUser(ctx context.Context, sessionID string, userID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) (pagination.Page[models.Order], error)
	ListAdmin(ctx context.Context, filters AdminListFilters, page pagination.Params) (pagination.Page[models.Order], error)
	SetSessionID(ctx context.Context, id uuid.UUID, sessionID string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	TransitionFromPending(ctx context.Context, id uuid.UUID, to enums.OrderStatus) (bool, error)
}
