package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/masstransitco/mtc-toys/api/responses"
	"github.com/masstransitco/mtc-toys/internal/catalog"
	"github.com/masstransitco/mtc-toys/pkg/logger"
)

// ListProducts returns the full catalog, cheapest bundle first.
func ListProducts(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.All())
	}
}

// GetProduct returns a single product by id.
func GetProduct(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := catalog.Find(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
