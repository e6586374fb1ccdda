package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/internal/cart"
	"github.com/prontopizzas/pronto-backend/internal/orders"
	"github.com/prontopizzas/pronto-backend/pkg/enums"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/prontopizzas/pronto-backend/pkg/types"
	"go.uber.org/multierr"
)

// DefaultReadyEstimate is used when no estimate is configured.
const DefaultReadyEstimate = 35 * time.Minute

type cartPricer interface {
	Build(ctx context.Context, input cart.QuoteCartInput) (*cart.Cart, error)
	Summarize(c *cart.Cart) cart.Quote
}

type orderSubmitter interface {
	Submit(ctx context.Context, input orders.OrderInput) (*orders.OrderDTO, error)
}

// Request is the checkout body: delivery details plus the cart intent.
type Request struct {
	Customer DeliveryDetails      `json:"customer"`
	Items    []cart.QuoteCartItem `json:"items"`
}

// Result confirms a submitted order.
type Result struct {
	OrderID          uuid.UUID   `json:"orderId"`
	Total            types.Money `json:"total"`
	EstimatedReadyAt time.Time   `json:"estimatedReadyAt"`
}

// Service turns a validated cart into a persisted order.
type Service interface {
	Submit(ctx context.Context, req Request) (*Result, error)
}

// ServiceParams groups the checkout collaborators.
type ServiceParams struct {
	Cart          cartPricer
	Orders        orderSubmitter
	Logger        *logger.Logger
	ReadyEstimate time.Duration
	InitialStatus string
	Now           func() time.Time
}

type service struct {
	cart          cartPricer
	orders        orderSubmitter
	logg          *logger.Logger
	readyEstimate time.Duration
	initialStatus string
	now           func() time.Time
}

// NewService constructs the checkout service.
func NewService(p ServiceParams) (Service, error) {
	if p.Cart == nil {
		return nil, fmt.Errorf("cart pricer required")
	}
	if p.Orders == nil {
		return nil, fmt.Errorf("order submitter required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.ReadyEstimate <= 0 {
		p.ReadyEstimate = DefaultReadyEstimate
	}
	if p.InitialStatus == "" {
		p.InitialStatus = enums.OrderStatusOrdered.String()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &service{
		cart:          p.Cart,
		orders:        p.Orders,
		logg:          p.Logger,
		readyEstimate: p.ReadyEstimate,
		initialStatus: p.InitialStatus,
		now:           p.Now,
	}, nil
}

// Submit validates details and cart together, then persists the order once.
func (s *service) Submit(ctx context.Context, req Request) (*Result, error) {
	var c *cart.Cart
	var cartErr error
	if len(req.Items) == 0 {
		cartErr = pkgerrors.Validation("cart is empty", pkgerrors.FieldErrors{"items": "cart is empty"})
	} else {
		c, cartErr = s.cart.Build(ctx, cart.QuoteCartInput{Items: req.Items})
	}
	if err := mergeValidation(req.Customer.Validate(), cartErr); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	input := BuildOrder(c, req.Customer, now)
	status := s.initialStatus
	input.OrderStatus = &status

	order, err := s.orders.Submit(ctx, input)
	if err != nil {
		return nil, err
	}

	quote := s.cart.Summarize(c)
	ctx = s.logg.WithOrderID(ctx, order.OrderID.String())
	s.logg.Info(s.logg.WithField(ctx, "item_count", quote.ItemCount), "checkout submitted")

	return &Result{
		OrderID:          order.OrderID,
		Total:            quote.Total,
		EstimatedReadyAt: now.Add(s.readyEstimate),
	}, nil
}

// BuildOrder maps a priced cart and delivery details to an order request.
func BuildOrder(c *cart.Cart, details DeliveryDetails, now time.Time) orders.OrderInput {
	status := enums.OrderStatusOrdered.String()
	date := now
	input := orders.OrderInput{
		OrderID:         uuid.New(),
		OrderDate:       &date,
		CustomerName:    details.CustomerName(),
		DeliveryAddress: details.DeliveryAddress(),
		OrderStatus:     &status,
	}
	if c == nil {
		return input
	}
	for _, item := range c.Items() {
		input.LineItems = append(input.LineItems, orders.LineItemInput{
			PizzaID:  item.ProductID,
			Size:     item.Size,
			Quantity: item.Quantity,
		})
	}
	return input
}

// mergeValidation flattens validation failures into one field map; any
// other error is returned as is.
func mergeValidation(errs ...error) error {
	combined := multierr.Combine(errs...)
	if combined == nil {
		return nil
	}
	fields := pkgerrors.FieldErrors{}
	for _, err := range multierr.Errors(combined) {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			return err
		}
		if details, ok := typed.Details().(pkgerrors.FieldErrors); ok {
			for k, v := range details {
				fields[k] = v
			}
		}
	}
	return pkgerrors.Validation("checkout validation failed", fields)
}
