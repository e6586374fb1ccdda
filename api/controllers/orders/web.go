package orders

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/api/validators"
	"github.com/prontopizzas/pronto-backend/api/views"
	internalorders "github.com/prontopizzas/pronto-backend/internal/orders"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
)

const ordersPath = "/Orders"

// WebHandlers serves the customer-facing order pages.
type WebHandlers struct {
	Orders   internalorders.Service
	Products productLister
	Views    Renderer
	Logger   *logger.Logger
}

// NewWebHandlers wires the order page handlers.
func NewWebHandlers(orders internalorders.Service, products productLister, renderer Renderer, logg *logger.Logger) *WebHandlers {
	return &WebHandlers{Orders: orders, Products: products, Views: renderer, Logger: logg}
}

func (h *WebHandlers) unavailable(w http.ResponseWriter, r *http.Request) bool {
	if h.Orders == nil || h.Products == nil || h.Views == nil {
		htmlError(w, r, h.Views, h.Logger, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
		return true
	}
	return false
}

// Index lists every order.
func (h *WebHandlers) Index(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	list, err := h.Orders.List(r.Context())
	if err != nil {
		htmlError(w, r, h.Views, h.Logger, err)
		return
	}
	render(w, r, h.Views, h.Logger, http.StatusOK, views.OrdersIndex, "Orders", views.OrdersList{Orders: list})
}

// Details shows one order.
func (h *WebHandlers) Details(w http.ResponseWriter, r *http.Request) {
	h.showOrder(w, r, views.OrdersDetails, "Order details")
}

// DeleteConfirm asks before deleting.
func (h *WebHandlers) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	h.showOrder(w, r, views.OrdersDelete, "Delete order")
}

func (h *WebHandlers) showOrder(w http.ResponseWriter, r *http.Request, page, title string) {
	if h.unavailable(w, r) {
		return
	}
	order, err := h.loadRouteOrder(r)
	if err != nil {
		htmlError(w, r, h.Views, h.Logger, err)
		return
	}
	render(w, r, h.Views, h.Logger, http.StatusOK, page, title, views.OrderView{Order: *order})
}

// CreateForm shows an empty order with one blank line-item row.
func (h *WebHandlers) CreateForm(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	h.renderForm(w, r, http.StatusOK, views.OrdersCreate, views.OrderForm{Action: ordersPath + "/Create"})
}

// CreateSubmit stores a new order under a fresh id.
func (h *WebHandlers) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}

	var submitted orderForm
	input, rows, err := decodeOrderForm(r, &submitted)
	if err == nil {
		_, err = h.Orders.CreateFromForm(r.Context(), input)
	}
	if err != nil {
		form := formFromSubmission(submitted)
		form.Action = ordersPath + "/Create"
		h.renderRejected(w, r, views.OrdersCreate, form, rows, err)
		return
	}
	http.Redirect(w, r, ordersPath, http.StatusSeeOther)
}

// EditForm shows an existing order for editing.
func (h *WebHandlers) EditForm(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	order, err := h.loadRouteOrder(r)
	if err != nil {
		htmlError(w, r, h.Views, h.Logger, err)
		return
	}
	form := formFromOrder(*order)
	form.Action = ordersPath + "/Edit/" + order.OrderID.String()
	h.renderForm(w, r, http.StatusOK, views.OrdersEdit, form)
}

// EditSubmit replaces the order's fields and line-items. The route id must
// match the posted id.
func (h *WebHandlers) EditSubmit(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		htmlError(w, r, h.Views, h.Logger, notFound())
		return
	}

	var submitted orderForm
	input, rows, err := decodeOrderForm(r, &submitted)
	if formID, parseErr := uuid.Parse(strings.TrimSpace(submitted.OrderID)); parseErr != nil || formID != id {
		htmlError(w, r, h.Views, h.Logger, notFound())
		return
	}
	if err == nil {
		err = h.Orders.Update(r.Context(), id, input)
	}
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			form := formFromSubmission(submitted)
			form.Action = ordersPath + "/Edit/" + id.String()
			h.renderRejected(w, r, views.OrdersEdit, form, rows, err)
			return
		}
		htmlError(w, r, h.Views, h.Logger, err)
		return
	}
	http.Redirect(w, r, ordersPath, http.StatusSeeOther)
}

// DeleteSubmit removes the order; an unknown id still redirects.
func (h *WebHandlers) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if h.unavailable(w, r) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		htmlError(w, r, h.Views, h.Logger, notFound())
		return
	}
	if err := h.Orders.Delete(r.Context(), id); err != nil {
		htmlError(w, r, h.Views, h.Logger, err)
		return
	}
	http.Redirect(w, r, ordersPath, http.StatusSeeOther)
}

func (h *WebHandlers) loadRouteOrder(r *http.Request) (*internalorders.OrderDTO, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, notFound()
	}
	return h.Orders.Get(r.Context(), id)
}

func (h *WebHandlers) renderForm(w http.ResponseWriter, r *http.Request, status int, page string, form views.OrderForm) {
	form, err := formPage(r.Context(), h.Products, form)
	if err != nil {
		htmlError(w, r, h.Views, h.Logger, err)
		return
	}
	title := "Create order"
	if page == views.OrdersEdit {
		title = "Edit order"
	}
	render(w, r, h.Views, h.Logger, status, page, title, form)
}

// renderRejected re-shows a submission with its field messages. Errors that
// are not validation failures go to the error page.
func (h *WebHandlers) renderRejected(w http.ResponseWriter, r *http.Request, page string, form views.OrderForm, rows []int, err error) {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		htmlError(w, r, h.Views, h.Logger, err)
		return
	}
	fields, _ := typed.Details().(pkgerrors.FieldErrors)
	form.Errors = remapLineErrors(fields, rows)
	if len(form.Errors) == 0 {
		form.Errors = map[string]string{"form": typed.Message()}
	}
	h.Logger.Warn(h.Logger.WithField(r.Context(), "fields", form.Errors), "order form rejected")
	h.renderForm(w, r, http.StatusBadRequest, page, form)
}

// decodeOrderForm binds and parses the posted form. Rows index the kept
// line-items; a non-nil error is always a validation failure.
func decodeOrderForm(r *http.Request, dest *orderForm) (internalorders.OrderInput, []int, error) {
	if err := validators.DecodeForm(r, dest); err != nil {
		return internalorders.OrderInput{}, nil, err
	}
	input, rows, fields := dest.toInput()
	if len(fields) > 0 {
		return input, rows, pkgerrors.Validation("invalid order", fields)
	}
	return input, rows, nil
}
