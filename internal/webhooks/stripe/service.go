package stripewebhook

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
	"github.com/masstransitco/mtc-toys/pkg/logger"
)

// orderTransitioner is the slice of the orders service driven by payment
// events. Both transitions only fire while the order is still pending.
type orderTransitioner interface {
	MarkPaid(ctx context.Context, orderID uuid.UUID, sessionID string) (bool, error)
	MarkCancelled(ctx context.Context, orderID uuid.UUID) (bool, error)
}

type ServiceParams struct {
	Orders orderTransitioner
	Logger *logger.Logger
}

type Service struct {
	orders orderTransitioner
	logg   *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders service required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Service{orders: params.Orders, logg: params.Logger}, nil
}

// HandleEvent applies a verified Stripe event to the order it references.
// Event types outside the checkout session lifecycle are ignored.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		return s.settleSession(ctx, event, true)
	case stripe.EventTypeCheckoutSessionExpired:
		return s.settleSession(ctx, event, false)
	default:
		return nil
	}
}

func (s *Service) settleSession(ctx context.Context, event *stripe.Event, paid bool) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout session event")
	}
	orderID, err := uuid.Parse(session.Metadata["order_id"])
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id missing from session metadata").
			WithDetails(map[string]any{"session_id": session.ID})
	}

	ctx = s.logg.WithOrderID(ctx, orderID.String())

	var changed bool
	if paid {
		changed, err = s.orders.MarkPaid(ctx, orderID, session.ID)
	} else {
		changed, err = s.orders.MarkCancelled(ctx, orderID)
	}
	if err != nil {
		return err
	}
	if !changed {
		s.logg.Info(ctx, "stripe event ignored, order already settled")
	}
	return nil
}
