package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/masstransitco/mtc-toys/api/responses"
	"github.com/masstransitco/mtc-toys/api/validators"
	addresssvc "github.com/masstransitco/mtc-toys/internal/address"
	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
	"github.com/masstransitco/mtc-toys/pkg/logger"
)

type addressRequest struct {
	Label     *string `json:"label,omitempty" validate:"omitempty,max=64"`
	Street    string  `json:"street" validate:"required"`
	City      string  `json:"city" validate:"required"`
	State     string  `json:"state" validate:"required"`
	Zip       string  `json:"zip" validate:"required"`
	Country   string  `json:"country,omitempty"`
	IsDefault bool    `json:"is_default,omitempty"`
}

func (b addressRequest) toInput() addresssvc.Input {
	return addresssvc.Input{
		Label:     b.Label,
		Street:    b.Street,
		City:      b.City,
		State:     b.State,
		Zip:       b.Zip,
		Country:   b.Country,
		IsDefault: b.IsDefault,
	}
}

// ListAddresses returns the caller's address book, default entry first.
func ListAddresses(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUserUUID(w, r, svc != nil, "address service unavailable", logg)
		if !ok {
			return
		}

		rows, err := svc.List(r.Context(), uid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CreateAddress adds an entry to the caller's address book.
func CreateAddress(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUserUUID(w, r, svc != nil, "address service unavailable", logg)
		if !ok {
			return
		}

		var payload addressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addr, err := svc.Create(r.Context(), uid, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, addr)
	}
}

// UpdateAddress replaces an entry the caller owns.
func UpdateAddress(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUserUUID(w, r, svc != nil, "address service unavailable", logg)
		if !ok {
			return
		}

		addressID, err := uuid.Parse(chi.URLParam(r, "addressId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address id"))
			return
		}

		var payload addressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addr, err := svc.Update(r.Context(), uid, addressID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, addr)
	}
}

// DeleteAddress removes an entry the caller owns.
func DeleteAddress(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUserUUID(w, r, svc != nil, "address service unavailable", logg)
		if !ok {
			return
		}

		addressID, err := uuid.Parse(chi.URLParam(r, "addressId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address id"))
			return
		}

		if err := svc.Delete(r.Context(), uid, addressID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// SetDefaultAddress moves the default flag to the given entry.
func SetDefaultAddress(svc addresssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := requireUserUUID(w, r, svc != nil, "address service unavailable", logg)
		if !ok {
			return
		}

		addressID, err := uuid.Parse(chi.URLParam(r, "addressId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address id"))
			return
		}

		if err := svc.SetDefault(r.Context(), uid, addressID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"default": true})
	}
}
