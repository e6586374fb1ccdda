package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/internal/products"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity bounds a single cart line.
const MaxLineQuantity = 100

type catalog interface {
	Catalog(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

// Service prices client carts against the catalog.
type Service interface {
	Build(ctx context.Context, input QuoteCartInput) (*Cart, error)
	Quote(ctx context.Context, input QuoteCartInput) (*Quote, error)
	Summarize(c *Cart) Quote
}

// Quote is the priced cart returned to clients.
type Quote struct {
	Items     []QuoteLine `json:"items"`
	ItemCount int         `json:"itemCount"`
	Subtotal  types.Money `json:"subtotal"`
	GST       types.Money `json:"gst"`
	Total     types.Money `json:"total"`
}

// QuoteLine is one priced line of a quote.
type QuoteLine struct {
	PizzaID   uuid.UUID   `json:"pizzaId"`
	PizzaName string      `json:"pizzaName"`
	Size      string      `json:"size"`
	Quantity  int         `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
	LineTotal types.Money `json:"lineTotal"`
}

type service struct {
	catalog catalog
	gstRate decimal.Decimal
}

// NewService builds the quote service; gstRate is a fraction such as "0.15".
func NewService(catalog catalog, gstRate string) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	rate, err := decimal.NewFromString(gstRate)
	if err != nil {
		return nil, fmt.Errorf("parse gst rate %q: %w", gstRate, err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("gst rate must be non-negative")
	}
	return &service{catalog: catalog, gstRate: rate}, nil
}

// Build resolves each intent line to a catalog price and fills a cart.
func (s *service) Build(ctx context.Context, input QuoteCartInput) (*Cart, error) {
	fields := pkgerrors.FieldErrors{}
	ids := make([]uuid.UUID, 0, len(input.Items))
	for i, item := range input.Items {
		if item.PizzaID == uuid.Nil {
			fields[fmt.Sprintf("items[%d].pizzaId", i)] = "is required"
			continue
		}
		if item.Quantity < 1 || item.Quantity > MaxLineQuantity {
			fields[fmt.Sprintf("items[%d].quantity", i)] = fmt.Sprintf("must be between 1 and %d", MaxLineQuantity)
		}
		ids = append(ids, item.PizzaID)
	}

	found := map[uuid.UUID]models.Product{}
	if len(ids) > 0 {
		var err error
		found, err = s.catalog.Catalog(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	c := New()
	for i, item := range input.Items {
		if item.PizzaID == uuid.Nil {
			continue
		}
		product, ok := found[item.PizzaID]
		if !ok {
			fields[fmt.Sprintf("items[%d].pizzaId", i)] = "unknown pizza"
			continue
		}
		size, price, err := products.UnitPrice(product, item.Size)
		if err != nil {
			fields[fmt.Sprintf("items[%d].size", i)] = "must be an offered size"
			continue
		}
		if _, bad := fields[fmt.Sprintf("items[%d].quantity", i)]; bad {
			continue
		}
		c.Add(Item{
			ProductID:   product.PizzaID,
			ProductName: product.PizzaName,
			Size:        size.String(),
			Quantity:    item.Quantity,
			UnitPrice:   price,
		})
	}
	if len(fields) > 0 {
		return nil, pkgerrors.Validation("cart contains invalid items", fields)
	}
	return c, nil
}

func (s *service) Quote(ctx context.Context, input QuoteCartInput) (*Quote, error) {
	c, err := s.Build(ctx, input)
	if err != nil {
		return nil, err
	}
	quote := s.Summarize(c)
	return &quote, nil
}

// Summarize prices the cart with GST; every amount is rounded to cents.
func (s *service) Summarize(c *Cart) Quote {
	items := c.Items()
	lines := make([]QuoteLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, QuoteLine{
			PizzaID:   item.ProductID,
			PizzaName: item.ProductName,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: types.NewMoney(item.UnitPrice),
			LineTotal: types.NewMoney(item.LineTotal()),
		})
	}
	subtotal := c.Total().Round(2)
	gst := subtotal.Mul(s.gstRate).Round(2)
	return Quote{
		Items:     lines,
		ItemCount: c.ItemCount(),
		Subtotal:  types.NewMoney(subtotal),
		GST:       types.NewMoney(gst),
		Total:     types.NewMoney(subtotal.Add(gst)),
	}
}
