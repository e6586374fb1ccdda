package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	products map[uuid.UUID]models.Product
	err      error
}

func (s stubCatalog) Catalog(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := map[uuid.UUID]models.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func newCatalog() (stubCatalog, models.Product, models.Product) {
	margherita := models.Product{
		PizzaID:     uuid.New(),
		PizzaName:   "Margherita",
		SmallPrice:  price("10.99"),
		MediumPrice: price("14.99"),
		LargePrice:  price("18.99"),
	}
	smallOnly := models.Product{
		PizzaID:    uuid.New(),
		PizzaName:  "Kids",
		SmallPrice: price("7.00"),
	}
	return stubCatalog{products: map[uuid.UUID]models.Product{
		margherita.PizzaID: margherita,
		smallOnly.PizzaID:  smallOnly,
	}}, margherita, smallOnly
}

func TestNewServiceRejectsBadRate(t *testing.T) {
	catalog, _, _ := newCatalog()
	_, err := NewService(catalog, "fifteen")
	require.Error(t, err)
	_, err = NewService(catalog, "-0.1")
	require.Error(t, err)
	_, err = NewService(nil, "0.15")
	require.Error(t, err)
}

func TestQuoteAppliesGST(t *testing.T) {
	catalog, margherita, kids := newCatalog()
	svc, err := NewService(catalog, "0.15")
	require.NoError(t, err)

	quote, err := svc.Quote(context.Background(), QuoteCartInput{Items: []QuoteCartItem{
		{PizzaID: margherita.PizzaID, Size: "large", Quantity: 2},
		{PizzaID: kids.PizzaID, Size: "SMALL", Quantity: 1},
	}})
	require.NoError(t, err)

	require.Len(t, quote.Items, 2)
	assert.Equal(t, "Large", quote.Items[0].Size)
	assert.Equal(t, 3, quote.ItemCount)
	assert.True(t, quote.Subtotal.Equal(decimal.RequireFromString("44.98")), quote.Subtotal.String())
	assert.True(t, quote.GST.Equal(decimal.RequireFromString("6.75")), quote.GST.String())
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("51.73")), quote.Total.String())

	raw, err := json.Marshal(quote)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"gst":6.75`)
	assert.Contains(t, string(raw), `"subtotal":44.98`)
}

func TestQuoteMergesRepeatedLines(t *testing.T) {
	catalog, margherita, _ := newCatalog()
	svc, err := NewService(catalog, "0.15")
	require.NoError(t, err)

	c, err := svc.Build(context.Background(), QuoteCartInput{Items: []QuoteCartItem{
		{PizzaID: margherita.PizzaID, Size: "Small", Quantity: 1},
		{PizzaID: margherita.PizzaID, Size: "small", Quantity: 2},
	}})
	require.NoError(t, err)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 3, c.ItemCount())
}

func TestQuoteValidation(t *testing.T) {
	catalog, margherita, kids := newCatalog()
	svc, err := NewService(catalog, "0.15")
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), QuoteCartInput{Items: []QuoteCartItem{
		{PizzaID: uuid.New(), Size: "Small", Quantity: 1},
		{PizzaID: kids.PizzaID, Size: "Large", Quantity: 1},
		{PizzaID: margherita.PizzaID, Size: "Family", Quantity: 1},
		{PizzaID: margherita.PizzaID, Size: "Small", Quantity: 101},
		{Size: "Small", Quantity: 1},
	}})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	fields, ok := typed.Details().(pkgerrors.FieldErrors)
	require.True(t, ok)
	assert.Equal(t, "unknown pizza", fields["items[0].pizzaId"])
	assert.Contains(t, fields, "items[1].size")
	assert.Contains(t, fields, "items[2].size")
	assert.Contains(t, fields, "items[3].quantity")
	assert.Equal(t, "is required", fields["items[4].pizzaId"])
}

func TestQuoteCatalogError(t *testing.T) {
	svc, err := NewService(stubCatalog{err: errors.New("db down")}, "0.15")
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), QuoteCartInput{Items: []QuoteCartItem{{PizzaID: uuid.New(), Size: "Small", Quantity: 1}}})
	require.Error(t, err)
}

func TestQuoteEmptyCart(t *testing.T) {
	catalog, _, _ := newCatalog()
	svc, err := NewService(catalog, "0.15")
	require.NoError(t, err)

	quote, err := svc.Quote(context.Background(), QuoteCartInput{})
	require.NoError(t, err)
	assert.Empty(t, quote.Items)
	assert.True(t, quote.Total.IsZero())
}
