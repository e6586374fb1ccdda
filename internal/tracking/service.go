package tracking

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/internal/orders"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
)

const notFoundMessage = "order not found"

var guidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type orderReader interface {
	Get(ctx context.Context, id uuid.UUID) (*orders.OrderDTO, error)
}

// Result is the customer-facing tracking view of an order.
type Result struct {
	OrderID         string  `json:"orderId"`
	CustomerName    string  `json:"customerName"`
	DeliveryAddress string  `json:"deliveryAddress"`
	OrderStatus     string  `json:"orderStatus"`
	StatusDisplay   string  `json:"statusDisplay"`
	CurrentStep     int     `json:"currentStep"`
	Stages          []Stage `json:"stages"`
	Items           []Item  `json:"items"`
}

// Item is one tracked line-item.
type Item struct {
	PizzaName string `json:"pizzaName"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// Service looks up orders by public id.
type Service interface {
	Lookup(ctx context.Context, rawID string) (*Result, error)
}

type service struct {
	orders orderReader
	logg   *logger.Logger
}

// NewService builds the tracking service.
func NewService(orders orderReader, logg *logger.Logger) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{orders: orders, logg: logg}, nil
}

// ValidOrderID reports whether raw has the 8-4-4-4-12 hex shape.
func ValidOrderID(raw string) bool {
	return guidPattern.MatchString(raw)
}

// Lookup never distinguishes missing orders from failures.
func (s *service) Lookup(ctx context.Context, rawID string) (*Result, error) {
	rawID = strings.TrimSpace(rawID)
	if !ValidOrderID(rawID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			s.logg.Error(s.logg.WithOrderID(ctx, id.String()), "tracking lookup failed", err)
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}

	status := order.Status()
	step := CurrentStep(status)
	items := make([]Item, 0, len(order.OrderProducts))
	for _, op := range order.OrderProducts {
		items = append(items, Item{PizzaName: op.PizzaName(), Size: op.Size, Quantity: op.Quantity})
	}
	return &Result{
		OrderID:         order.OrderID.String(),
		CustomerName:    order.CustomerName,
		DeliveryAddress: order.DeliveryAddress,
		OrderStatus:     status,
		StatusDisplay:   StatusDisplay(status),
		CurrentStep:     step,
		Stages:          Stages(step),
		Items:           items,
	}, nil
}
