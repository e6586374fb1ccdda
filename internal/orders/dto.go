package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/internal/products"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
)

// OrderDTO is the wire shape of an order with its line-items.
type OrderDTO struct {
	OrderID         uuid.UUID         `json:"orderId"`
	OrderDate       *time.Time        `json:"orderDate"`
	CustomerName    string            `json:"customerName"`
	DeliveryAddress string            `json:"deliveryAddress"`
	OrderStatus     *string           `json:"orderStatus"`
	OrderProducts   []OrderProductDTO `json:"orderProducts"`
}

// OrderProductDTO is a line-item; Product is set when the row was loaded with it.
type OrderProductDTO struct {
	OrderID  uuid.UUID            `json:"orderId"`
	PizzaID  uuid.UUID            `json:"pizzaId"`
	Size     string               `json:"size"`
	Quantity int                  `json:"quantity"`
	Product  *products.ProductDTO `json:"product,omitempty"`
}

// Status returns the status text, empty when unset.
func (o OrderDTO) Status() string {
	if o.OrderStatus == nil {
		return ""
	}
	return *o.OrderStatus
}

// ItemCount sums line-item quantities.
func (o OrderDTO) ItemCount() int {
	total := 0
	for _, item := range o.OrderProducts {
		total += item.Quantity
	}
	return total
}

// PizzaName is the linked product's name, or empty when not loaded.
func (i OrderProductDTO) PizzaName() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.PizzaName
}

// OrderInput is a create or full-replace request from any surface.
type OrderInput struct {
	OrderID         uuid.UUID
	OrderDate       *time.Time
	CustomerName    string
	DeliveryAddress string
	OrderStatus     *string
	LineItems       []LineItemInput
}

// LineItemInput is one submitted line-item.
type LineItemInput struct {
	PizzaID  uuid.UUID
	Size     string
	Quantity int
}

// FromModel maps an order row, including any preloaded associations.
func FromModel(o models.Order) OrderDTO {
	items := make([]OrderProductDTO, 0, len(o.OrderProducts))
	for _, op := range o.OrderProducts {
		item := OrderProductDTO{
			OrderID:  op.OrderID,
			PizzaID:  op.PizzaID,
			Size:     op.Size,
			Quantity: op.Quantity,
		}
		if op.Product != nil {
			p := products.FromModel(*op.Product)
			item.Product = &p
		}
		items = append(items, item)
	}
	return OrderDTO{
		OrderID:         o.OrderID,
		OrderDate:       o.OrderDate,
		CustomerName:    o.CustomerName,
		DeliveryAddress: o.DeliveryAddress,
		OrderStatus:     o.OrderStatus,
		OrderProducts:   items,
	}
}

// persistableLineItems drops non-positive quantities and merges repeated
// (pizza, size) rows so the composite key stays unique. origin holds the
// input index of the first row folded into each item. A counted row without
// a pizza is a validation error.
func persistableLineItems(orderID uuid.UUID, in []LineItemInput) (items []models.OrderProduct, origin []int, err error) {
	items = make([]models.OrderProduct, 0, len(in))
	index := map[string]int{}
	missing := pkgerrors.FieldErrors{}
	for i, item := range in {
		if item.Quantity <= 0 {
			continue
		}
		if item.PizzaID == uuid.Nil {
			missing[lineItemField(i, "pizzaId")] = "is required"
			continue
		}
		size := strings.TrimSpace(item.Size)
		key := item.PizzaID.String() + "|" + size
		if pos, ok := index[key]; ok {
			items[pos].Quantity += item.Quantity
			continue
		}
		index[key] = len(items)
		items = append(items, models.OrderProduct{
			OrderID:  orderID,
			PizzaID:  item.PizzaID,
			Size:     size,
			Quantity: item.Quantity,
		})
		origin = append(origin, i)
	}
	if len(missing) > 0 {
		return nil, nil, pkgerrors.Validation("line-items need a pizza", missing)
	}
	return items, origin, nil
}

func lineItemField(i int, name string) string {
	return fmt.Sprintf("orderProducts[%d].%s", i, name)
}
