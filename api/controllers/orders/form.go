package orders

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/api/middleware"
	"github.com/prontopizzas/pronto-backend/api/responses"
	"github.com/prontopizzas/pronto-backend/api/views"
	internalorders "github.com/prontopizzas/pronto-backend/internal/orders"
	productsvc "github.com/prontopizzas/pronto-backend/internal/products"
	"github.com/prontopizzas/pronto-backend/pkg/enums"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
)

const (
	formDateLayout  = "2006-01-02T15:04"
	maxLineQuantity = 100
)

// Renderer draws the HTML pages.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, page views.Page) error
	RenderError(w http.ResponseWriter, status int, message string)
}

// productLister feeds the pizza drop-down.
type productLister interface {
	List(ctx context.Context) ([]productsvc.ProductDTO, error)
}

// orderForm mirrors the create and edit form fields. Everything is kept as
// text so a rejected submission can be shown back unchanged.
type orderForm struct {
	OrderID         string          `form:"orderId"`
	OrderDate       string          `form:"orderDate"`
	CustomerName    string          `form:"customerName" validate:"max=200"`
	DeliveryAddress string          `form:"deliveryAddress" validate:"max=500"`
	OrderStatus     string          `form:"orderStatus" validate:"max=50"`
	OrderProducts   []orderFormLine `form:"orderProducts" validate:"dive"`
}

type orderFormLine struct {
	PizzaID  string `form:"pizzaId"`
	Size     string `form:"size" validate:"max=20"`
	Quantity string `form:"quantity"`
}

// toInput parses the text fields. Rows with a blank or non-positive quantity
// are skipped; rows maps each kept line back to its form row.
func (f orderForm) toInput() (internalorders.OrderInput, []int, pkgerrors.FieldErrors) {
	fields := pkgerrors.FieldErrors{}
	input := internalorders.OrderInput{
		CustomerName:    f.CustomerName,
		DeliveryAddress: f.DeliveryAddress,
	}

	if raw := strings.TrimSpace(f.OrderID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			fields["orderId"] = "must be a valid id"
		}
		input.OrderID = id
	}
	if raw := strings.TrimSpace(f.OrderDate); raw != "" {
		date, err := time.Parse(formDateLayout, raw)
		if err != nil {
			fields["orderDate"] = "must be a valid date"
		} else {
			date = date.UTC()
			input.OrderDate = &date
		}
	}
	if status := strings.TrimSpace(f.OrderStatus); status != "" {
		input.OrderStatus = &status
	}

	var rows []int
	for i, line := range f.OrderProducts {
		rawQty := strings.TrimSpace(line.Quantity)
		if rawQty == "" {
			continue
		}
		qty, err := strconv.Atoi(rawQty)
		if err != nil {
			fields[lineField(i, "quantity")] = "must be a whole number"
			continue
		}
		if qty > maxLineQuantity {
			fields[lineField(i, "quantity")] = fmt.Sprintf("must be at most %d", maxLineQuantity)
			continue
		}
		if qty <= 0 {
			continue
		}
		pizzaID, err := uuid.Parse(strings.TrimSpace(line.PizzaID))
		if err != nil {
			if strings.TrimSpace(line.PizzaID) == "" {
				fields[lineField(i, "pizzaId")] = "is required"
			} else {
				fields[lineField(i, "pizzaId")] = "must be a valid id"
			}
			continue
		}
		input.LineItems = append(input.LineItems, internalorders.LineItemInput{
			PizzaID:  pizzaID,
			Size:     line.Size,
			Quantity: qty,
		})
		rows = append(rows, i)
	}
	return input, rows, fields
}

func lineField(i int, name string) string {
	return fmt.Sprintf("orderProducts[%d].%s", i, name)
}

// remapLineErrors rewrites service field keys, which index the parsed line
// inputs before any merging, onto the submitted form rows.
func remapLineErrors(fields pkgerrors.FieldErrors, rows []int) map[string]string {
	out := make(map[string]string, len(fields))
	for key, msg := range fields {
		var idx int
		var name string
		if n, _ := fmt.Sscanf(key, "orderProducts[%d].%s", &idx, &name); n == 2 && idx < len(rows) {
			out[lineField(rows[idx], name)] = msg
			continue
		}
		out[key] = msg
	}
	return out
}

func formFromOrder(order internalorders.OrderDTO) views.OrderForm {
	form := views.OrderForm{
		OrderID:         order.OrderID.String(),
		CustomerName:    order.CustomerName,
		DeliveryAddress: order.DeliveryAddress,
		OrderStatus:     order.Status(),
	}
	if order.OrderDate != nil {
		form.OrderDate = order.OrderDate.UTC().Format(formDateLayout)
	}
	for _, item := range order.OrderProducts {
		form.Lines = append(form.Lines, views.OrderLine{
			PizzaID:  item.PizzaID.String(),
			Size:     item.Size,
			Quantity: strconv.Itoa(item.Quantity),
		})
	}
	return form
}

func formFromSubmission(f orderForm) views.OrderForm {
	form := views.OrderForm{
		OrderID:         f.OrderID,
		OrderDate:       f.OrderDate,
		CustomerName:    f.CustomerName,
		DeliveryAddress: f.DeliveryAddress,
		OrderStatus:     f.OrderStatus,
	}
	for _, line := range f.OrderProducts {
		form.Lines = append(form.Lines, views.OrderLine{PizzaID: line.PizzaID, Size: line.Size, Quantity: line.Quantity})
	}
	return form
}

// formPage fills the catalog options and guarantees one editable row.
func formPage(ctx context.Context, products productLister, form views.OrderForm) (views.OrderForm, error) {
	list, err := products.List(ctx)
	if err != nil {
		return form, err
	}
	form.Products = make([]views.ProductOption, 0, len(list))
	for _, p := range list {
		form.Products = append(form.Products, views.ProductOption{ID: p.PizzaID.String(), Name: p.PizzaName})
	}
	for _, size := range enums.ProductSizes() {
		form.Sizes = append(form.Sizes, size.String())
	}
	if len(form.Lines) == 0 {
		form.Lines = []views.OrderLine{{Quantity: "0"}}
	}
	return form, nil
}

func render(w http.ResponseWriter, r *http.Request, renderer Renderer, logg *logger.Logger, status int, name, title string, data any) {
	page := views.Page{
		Title:     title,
		CSRFToken: middleware.CSRFTokenFromContext(r.Context()),
		Data:      data,
	}
	if err := renderer.Render(w, status, name, page); err != nil {
		responses.WriteHTMLError(r.Context(), logg, w, renderer, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render page"))
	}
}

func htmlError(w http.ResponseWriter, r *http.Request, renderer Renderer, logg *logger.Logger, err error) {
	responses.WriteHTMLError(r.Context(), logg, w, renderer, err)
}

func notFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}
