package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/masstransitco/mtc-toys/pkg/db/models"
	"github.com/masstransitco/mtc-toys/pkg/enums"
	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
	"github.com/masstransitco/mtc-toys/pkg/pagination"
)

// Service exposes order reads for shoppers and the admin console, plus the
// status transitions driven by payment events.
type Service interface {
	ListMine(ctx context.Context, userID uuid.UUID, page pagination.Params) (pagination.Page[OrderDTO], error)
	GetMine(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error)
	GetMineBySession(ctx context.Context, userID uuid.UUID, sessionID string) (OrderDTO, error)
	AdminList(ctx context.Context, filters AdminListFilters, page pagination.Params) (pagination.Page[OrderDTO], error)
	AdminGet(ctx context.Context, orderID uuid.UUID) (OrderDTO, error)
	AdminSetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (OrderDTO, error)
	MarkPaid(ctx context.Context, orderID uuid.UUID, sessionID string) (bool, error)
	MarkCancelled(ctx context.Context, orderID uuid.UUID) (bool, error)
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Repo Repository
}

type service struct {
	repo Repository
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, page pagination.Params) (pagination.Page[OrderDTO], error) {
	rows, err := s.repo.ListForUser(ctx, userID, page)
	if err != nil {
		return pagination.Page[OrderDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return mapPage(rows), nil
}

func (s *service) GetMine(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return ToDTO(*order), nil
}

func (s *service) GetMineBySession(ctx context.Context, userID uuid.UUID, sessionID string) (OrderDTO, error) {
	if sessionID == "" {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	order, err := s.repo.FindBySessionIDForUser(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return ToDTO(*order), nil
}

func (s *service) AdminList(ctx context.Context, filters AdminListFilters, page pagination.Params) (pagination.Page[OrderDTO], error) {
	rows, err := s.repo.ListAdmin(ctx, filters, page)
	if err != nil {
		return pagination.Page[OrderDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return mapPage(rows), nil
}

func (s *service) AdminGet(ctx context.Context, orderID uuid.UUID) (OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return ToDTO(*order), nil
}

func (s *service) AdminSetStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (OrderDTO, error) {
	if !status.IsValid() {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"status": status.String()})
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return ToDTO(*order), nil
}

// MarkPaid settles a pending order and records the Stripe session id from
// the event. Re-writing the session id covers orders whose id was not
// persisted at checkout time.
func (s *service) MarkPaid(ctx context.Context, orderID uuid.UUID, sessionID string) (bool, error) {
	if sessionID != "" {
		if err := s.repo.SetSessionID(ctx, orderID, sessionID); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record session id")
		}
	}
	changed, err := s.repo.TransitionFromPending(ctx, orderID, enums.OrderStatusPaid)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order paid")
	}
	return changed, nil
}

func (s *service) MarkCancelled(ctx context.Context, orderID uuid.UUID) (bool, error) {
	changed, err := s.repo.TransitionFromPending(ctx, orderID, enums.OrderStatusCancelled)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order cancelled")
	}
	return changed, nil
}

func mapPage(page pagination.Page[models.Order]) pagination.Page[OrderDTO] {
	return pagination.Page[OrderDTO]{
		Items: ToDTOs(page.Items),
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	}
}
