package views

import (
	"github.com/prontopizzas/pronto-backend/internal/orders"
)

// ProductOption is one entry of the pizza drop-down.
type ProductOption struct {
	ID   string
	Name string
}

// OrderForm carries submitted or existing values back into the create and
// edit forms, with per-field messages keyed like the form fields.
type OrderForm struct {
	Action          string
	OrderID         string
	OrderDate       string
	CustomerName    string
	DeliveryAddress string
	OrderStatus     string
	Lines           []OrderLine
	Errors          map[string]string
	Products        []ProductOption
	Sizes           []string
}

// OrderLine is one editable line-item row.
type OrderLine struct {
	PizzaID  string
	Size     string
	Quantity string
}

// OrdersList feeds the index and management views.
type OrdersList struct {
	Orders   []orders.OrderDTO
	Statuses []string
}

// OrderView feeds the details and delete views.
type OrderView struct {
	Order orders.OrderDTO
}
