package controllers

import (
	"net/http"

	"github.com/masstransitco/mtc-toys/api/responses"
	"github.com/masstransitco/mtc-toys/api/validators"
	subscribersvc "github.com/masstransitco/mtc-toys/internal/subscribers"
	pkgerrors "github.com/masstransitco/mtc-toys/pkg/errors"
	"github.com/masstransitco/mtc-toys/pkg/logger"
)

type subscribeRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Source string `json:"source,omitempty" validate:"omitempty,max=64"`
}

// Subscribe records a marketing opt-in from the storefront.
func Subscribe(svc subscribersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscribers service unavailable"))
			return
		}

		var payload subscribeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		source := validators.SanitizeString(payload.Source, 64)
		if err := svc.Subscribe(r.Context(), payload.Email, source); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"subscribed": true})
	}
}
