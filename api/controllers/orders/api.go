package orders

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/api/responses"
	"github.com/prontopizzas/pronto-backend/api/validators"
	internalorders "github.com/prontopizzas/pronto-backend/internal/orders"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/prontopizzas/pronto-backend/pkg/types"
)

// List returns every order with its line-items and products.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, list)
	}
}

// Detail returns one order. A malformed id is reported as not found.
func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, order)
	}
}

// Create persists a posted order and answers 201 with its Location.
func Create(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload orderAPIRequest
		if err := validators.DecodeJSONBodyLenient(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateFromAPI(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Location", "/api/OrdersApi/"+order.OrderID.String())
		responses.WriteJSON(w, http.StatusCreated, order)
	}
}

// orderAPIRequest accepts the read shape back; nested products and
// per-line order ids are ignored.
type orderAPIRequest struct {
	OrderID         types.NullableUUID `json:"orderId"`
	OrderDate       *time.Time         `json:"orderDate"`
	CustomerName    string             `json:"customerName" validate:"max=200"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"max=500"`
	OrderStatus     *string            `json:"orderStatus" validate:"omitempty,max=50"`
	OrderProducts   []orderLineRequest `json:"orderProducts" validate:"dive"`
}

type orderLineRequest struct {
	PizzaID  uuid.UUID `json:"pizzaId"`
	Size     string    `json:"size" validate:"max=20"`
	Quantity int       `json:"quantity" validate:"lte=100"`
}

func (p orderAPIRequest) toInput() internalorders.OrderInput {
	input := internalorders.OrderInput{
		OrderID:         p.OrderID.UUID(),
		OrderDate:       p.OrderDate,
		CustomerName:    p.CustomerName,
		DeliveryAddress: p.DeliveryAddress,
		OrderStatus:     p.OrderStatus,
		LineItems:       make([]internalorders.LineItemInput, 0, len(p.OrderProducts)),
	}
	if input.OrderDate != nil {
		utc := input.OrderDate.UTC()
		input.OrderDate = &utc
	}
	for _, line := range p.OrderProducts {
		input.LineItems = append(input.LineItems, internalorders.LineItemInput{
			PizzaID:  line.PizzaID,
			Size:     line.Size,
			Quantity: line.Quantity,
		})
	}
	return input
}
