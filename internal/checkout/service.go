package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	stripesdk "github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/masstransitco/mtc-toys/internal/catalog"
	"github.com/masstransitco/mtc-toys/internal/orders"
	"github.com/masstransitco/mtc-toys/pkg/config"
	"github.com/masstransitco/mtc-toys/pkg/db/models"
	"github.com/masstransitco/mtc-toys/pkg/enums"
	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
	"github.com/masstransitco/mtc-toys/pkg/logger"
	pkgstripe "github.com/masstransitco/mtc-toys/pkg/stripe"
	"github.com/masstransitco/mtc-toys/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ItemInput is one cart line submitted for checkout. Prices are never
// accepted from the client; they are resolved from the catalog.
type ItemInput struct {
	ProductID string
	Quantity  int
}

// Input captures everything needed to start a checkout.
type Input struct {
	UserID          uuid.UUID
	UserEmail       string
	Items           []ItemInput
	ShippingAddress types.ShippingAddress
}

// Result is returned to the client to hand control to Stripe.
type Result struct {
	OrderID     uuid.UUID `json:"order_id"`
	SessionID   string    `json:"session_id"`
	RedirectURL string    `json:"redirect_url"`
}

// Service executes checkout orchestration.
type Service interface {
	Execute(ctx context.Context, input Input) (Result, error)
}

type service struct {
	tx         txRunner
	ordersRepo orders.Repository
	sessions   pkgstripe.CheckoutSessionClient
	shipping   config.ShippingConfig
	site       config.SiteConfig
	logg       *logger.Logger
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	ordersRepo orders.Repository,
	sessions pkgstripe.CheckoutSessionClient,
	shipping config.ShippingConfig,
	site config.SiteConfig,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("checkout session client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:         tx,
		ordersRepo: ordersRepo,
		sessions:   sessions,
		shipping:   shipping,
		site:       site,
		logg:       logg,
	}, nil
}

func (s *service) Execute(ctx context.Context, input Input) (Result, error) {
	if input.UserID == uuid.Nil {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if input.UserEmail == "" {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "user email required")
	}
	if len(input.Items) == 0 {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}
	if err := input.ShippingAddress.Validate(); err != nil {
		return Result{}, err
	}

	lines, subtotal, err := resolveLines(input.Items)
	if err != nil {
		return Result{}, err
	}
	shippingCents := s.shipping.FlatRateCents
	total := subtotal + shippingCents

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          input.UserID,
		UserEmail:       input.UserEmail,
		Status:          enums.OrderStatusPending,
		SubtotalCents:   subtotal,
		ShippingCents:   shippingCents,
		TotalCents:      total,
		ShippingAddress: input.ShippingAddress,
		Items:           lines,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.ordersRepo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeOrderCreation, err, "create order")
	}

	ctx = s.logg.WithOrderID(ctx, order.ID.String())

	session, err := s.sessions.CreateCheckoutSession(ctx, s.sessionParams(order))
	if err != nil {
		// The order survives as a failed record for the admin console.
		if markErr := s.ordersRepo.UpdateStatus(ctx, order.ID, enums.OrderStatusFailed); markErr != nil {
			s.logg.Error(ctx, "mark order failed after session error", markErr)
		}
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment session")
	}

	if err := s.ordersRepo.SetSessionID(ctx, order.ID, session.ID); err != nil {
		s.logg.Error(ctx, "persist stripe session id", err)
	}

	return Result{OrderID: order.ID, SessionID: session.ID, RedirectURL: session.URL}, nil
}

func resolveLines(items []ItemInput) ([]models.OrderItem, int, error) {
	lines := make([]models.OrderItem, 0, len(items))
	subtotal := 0
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		product, err := catalog.Find(item.ProductID)
		if err != nil {
			return nil, 0, err
		}
		lines = append(lines, models.OrderItem{
			ID:             uuid.New(),
			ProductID:      product.ID,
			Name:           product.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: product.PriceCents,
		})
		subtotal += product.PriceCents * item.Quantity
	}
	return lines, subtotal, nil
}

func (s *service) sessionParams(order *models.Order) *stripesdk.CheckoutSessionParams {
	lineItems := make([]*stripesdk.CheckoutSessionLineItemParams, 0, len(order.Items)+1)
	for _, item := range order.Items {
		lineItems = append(lineItems, &stripesdk.CheckoutSessionLineItemParams{
			PriceData: &stripesdk.CheckoutSessionLineItemPriceDataParams{
				Currency: stripesdk.String(string(stripesdk.CurrencyUSD)),
				ProductData: &stripesdk.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripesdk.String(item.Name),
				},
				UnitAmount: stripesdk.Int64(int64(item.UnitPriceCents)),
			},
			Quantity: stripesdk.Int64(int64(item.Quantity)),
		})
	}
	lineItems = append(lineItems, &stripesdk.CheckoutSessionLineItemParams{
		PriceData: &stripesdk.CheckoutSessionLineItemPriceDataParams{
			Currency: stripesdk.String(string(stripesdk.CurrencyUSD)),
			ProductData: &stripesdk.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripesdk.String(s.shipping.Label),
			},
			UnitAmount: stripesdk.Int64(int64(order.ShippingCents)),
		},
		Quantity: stripesdk.Int64(1),
	})

	return &stripesdk.CheckoutSessionParams{
		Mode:               stripesdk.String(string(stripesdk.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripesdk.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripesdk.String(s.site.PublicURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripesdk.String(s.site.PublicURL + "/checkout/payment"),
		CustomerEmail:      stripesdk.String(order.UserEmail),
		Metadata: map[string]string{
			"order_id": order.ID.String(),
			"user_id":  order.UserID.String(),
		},
	}
}
