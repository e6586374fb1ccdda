package cart

import (
	"net/http"

	"github.com/prontopizzas/pronto-backend/api/responses"
	"github.com/prontopizzas/pronto-backend/api/validators"
	cartsvc "github.com/prontopizzas/pronto-backend/internal/cart"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
)

// CartQuote prices a client-held cart against the current catalog.
func CartQuote(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartsvc.QuoteCartInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, quote)
	}
}
