package orders

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/api/validators"
	"github.com/prontopizzas/pronto-backend/api/views"
	internalorders "github.com/prontopizzas/pronto-backend/internal/orders"
	"github.com/prontopizzas/pronto-backend/pkg/enums"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
)

const managementPath = "/OrderManagement"

// ManagementIndex lists every order with status and delete controls.
func ManagementIndex(svc internalorders.Service, renderer Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || renderer == nil {
			htmlError(w, r, renderer, logg, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			htmlError(w, r, renderer, logg, err)
			return
		}
		statuses := make([]string, 0, len(enums.OrderStatusProgression()))
		for _, status := range enums.OrderStatusProgression() {
			statuses = append(statuses, status.String())
		}
		render(w, r, renderer, logg, http.StatusOK, views.ManagementIndex, "Order management", views.OrdersList{Orders: list, Statuses: statuses})
	}
}

// ManagementUpdate sets an order's status. Blank statuses and unknown or
// malformed ids change nothing.
func ManagementUpdate(svc internalorders.Service, renderer Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			htmlError(w, r, renderer, logg, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, ok := managedOrderID(r)
		if ok {
			if err := svc.UpdateStatus(r.Context(), id, validators.FormValue(r, "status")); err != nil {
				htmlError(w, r, renderer, logg, err)
				return
			}
		}
		http.Redirect(w, r, managementPath, http.StatusSeeOther)
	}
}

// ManagementDelete removes an order; unknown ids are ignored.
func ManagementDelete(svc internalorders.Service, renderer Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			htmlError(w, r, renderer, logg, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, ok := managedOrderID(r)
		if ok {
			if err := svc.Delete(r.Context(), id); err != nil {
				htmlError(w, r, renderer, logg, err)
				return
			}
		}
		http.Redirect(w, r, managementPath, http.StatusSeeOther)
	}
}

func managedOrderID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(validators.FormValue(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
