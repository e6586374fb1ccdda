package controllers

import (
	"net/http"

	"github.com/prontopizzas/pronto-backend/api/responses"
	"github.com/prontopizzas/pronto-backend/api/validators"
	"github.com/prontopizzas/pronto-backend/internal/checkout"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
)

// Checkout validates delivery details, prices the cart and places the order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkout.Request
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Location", "/api/tracking/"+result.OrderID.String())
		responses.WriteJSON(w, http.StatusCreated, result)
	}
}
