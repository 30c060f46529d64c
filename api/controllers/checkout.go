package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/masstransitco/mtc-toys/api/middleware"
	"github.com/masstransitco/mtc-toys/api/responses"
	"github.com/masstransitco/mtc-toys/api/validators"
	cartsvc "github.com/masstransitco/mtc-toys/internal/cart"
	checkoutsvc "github.com/masstransitco/mtc-toys/internal/checkout"
	ordersvc "github.com/masstransitco/mtc-toys/internal/orders"
	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
	"github.com/masstransitco/mtc-toys/pkg/logger"
	"github.com/masstransitco/mtc-toys/pkg/types"
)

type checkoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type checkoutRequest struct {
	Items           []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress shippingAddressBody   `json:"shipping_address" validate:"required"`
}

type shippingAddressBody struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country,omitempty"`
}

func (b shippingAddressBody) toAddress() types.ShippingAddress {
	country := b.Country
	if country == "" {
		country = "US"
	}
	return types.ShippingAddress{
		Street:  b.Street,
		City:    b.City,
		State:   b.State,
		Zip:     b.Zip,
		Country: country,
	}
}

// CreateCheckout freezes the submitted cart into a pending order and opens a
// Stripe checkout session for it. The shopper's cart is cleared once the
// session is handed off; a failed clear is logged but never fails the request.
func CreateCheckout(svc checkoutsvc.Service, carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		email := middleware.UserEmailFromContext(r.Context())
		if userID == "" || email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}
		uid, err := uuid.Parse(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]checkoutsvc.ItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, checkoutsvc.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		result, err := svc.Execute(r.Context(), checkoutsvc.Input{
			UserID:          uid,
			UserEmail:       email,
			Items:           items,
			ShippingAddress: payload.ShippingAddress.toAddress(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if carts != nil {
			if err := carts.Clear(r.Context(), userID); err != nil && logg != nil {
				ctx := logg.WithUserID(r.Context(), userID)
				logg.Error(ctx, "checkout.cart_clear_failed", err)
			}
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetCheckoutSession resolves the caller's order behind a Stripe session id,
// used by the storefront's success page.
func GetCheckoutSession(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}
		uid, err := uuid.Parse(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		order, err := svc.GetMineBySession(r.Context(), uid, chi.URLParam(r, "sessionId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
