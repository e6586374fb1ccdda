package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/internal/checkout"
	productsvc "github.com/prontopizzas/pronto-backend/internal/products"
	"github.com/prontopizzas/pronto-backend/internal/tracking"
	"github.com/prontopizzas/pronto-backend/pkg/config"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/prontopizzas/pronto-backend/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	logg := testLogger()

	t.Run("ready without redis", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthReady(cfg, logg, stubPinger{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"redis":"disabled"`)
		assert.Equal(t, "test", rec.Header().Get("X-Pronto-Env"))
	})

	t.Run("database down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthReady(cfg, logg, stubPinger{err: errors.New("refused")}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("redis down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HealthReady(cfg, logg, stubPinger{}, stubPinger{err: errors.New("timeout")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

type stubProductService struct {
	products map[uuid.UUID]productsvc.ProductDTO
	created  *productsvc.ProductInput
	deleted  []uuid.UUID
}

func (s *stubProductService) List(context.Context) ([]productsvc.ProductDTO, error) {
	out := []productsvc.ProductDTO{}
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProductService) Get(_ context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func (s *stubProductService) Create(_ context.Context, input productsvc.ProductInput) (*productsvc.ProductDTO, error) {
	s.created = &input
	return &productsvc.ProductDTO{PizzaID: uuid.New(), PizzaName: input.PizzaName, SmallPrice: input.SmallPrice}, nil
}

func (s *stubProductService) Update(ctx context.Context, id uuid.UUID, input productsvc.ProductInput) (*productsvc.ProductDTO, error) {
	if _, ok := s.products[id]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	s.products[id] = productsvc.ProductDTO{PizzaID: id, PizzaName: input.PizzaName}
	return s.Get(ctx, id)
}

func (s *stubProductService) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubProductService) Catalog(context.Context, []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	return nil, nil
}

func TestProductsGet(t *testing.T) {
	id := uuid.New()
	svc := &stubProductService{products: map[uuid.UUID]productsvc.ProductDTO{id: {PizzaID: id, PizzaName: "Margherita"}}}
	logg := testLogger()

	rec := httptest.NewRecorder()
	ProductsGet(svc, logg).ServeHTTP(rec, withRouteParam(httptest.NewRequest(http.MethodGet, "/api/ProductsApi/"+id.String(), nil), "id", id.String()))
	require.Equal(t, http.StatusOK, rec.Code)
	var body productsvc.ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Margherita", body.PizzaName)

	for _, raw := range []string{"not-a-uuid", uuid.NewString()} {
		rec = httptest.NewRecorder()
		ProductsGet(svc, logg).ServeHTTP(rec, withRouteParam(httptest.NewRequest(http.MethodGet, "/api/ProductsApi/"+raw, nil), "id", raw))
		assert.Equal(t, http.StatusNotFound, rec.Code, raw)
	}
}

func TestProductsCreate(t *testing.T) {
	svc := &stubProductService{}
	logg := testLogger()

	body := `{"pizzaName":"  Hawaiian ","smallPrice":12.5}`
	rec := httptest.NewRecorder()
	ProductsCreate(svc, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ProductsApi", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Hawaiian", svc.created.PizzaName)
	assert.True(t, svc.created.SmallPrice.Decimal.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/api/ProductsApi/"))

	rec = httptest.NewRecorder()
	ProductsCreate(svc, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ProductsApi", strings.NewReader(`{"smallPrice":1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "pizzaName")

	rec = httptest.NewRecorder()
	ProductsCreate(svc, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/ProductsApi", strings.NewReader(`{"pizzaName":"x","crust":"thin"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductsUpdateAndDelete(t *testing.T) {
	id := uuid.New()
	svc := &stubProductService{products: map[uuid.UUID]productsvc.ProductDTO{id: {PizzaID: id, PizzaName: "Old"}}}
	logg := testLogger()

	req := withRouteParam(httptest.NewRequest(http.MethodPut, "/api/ProductsApi/"+id.String(), strings.NewReader(`{"pizzaName":"New"}`)), "id", id.String())
	rec := httptest.NewRecorder()
	ProductsUpdate(svc, logg).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New", svc.products[id].PizzaName)

	missing := uuid.NewString()
	req = withRouteParam(httptest.NewRequest(http.MethodPut, "/api/ProductsApi/"+missing, strings.NewReader(`{"pizzaName":"New"}`)), "id", missing)
	rec = httptest.NewRecorder()
	ProductsUpdate(svc, logg).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = withRouteParam(httptest.NewRequest(http.MethodDelete, "/api/ProductsApi/"+id.String(), nil), "id", id.String())
	rec = httptest.NewRecorder()
	ProductsDelete(svc, logg).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uuid.UUID{id}, svc.deleted)
}

func TestProductsServiceUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	ProductsList(nil, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ProductsApi", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type stubCheckoutService struct {
	req    checkout.Request
	result *checkout.Result
	err    error
}

func (s *stubCheckoutService) Submit(_ context.Context, req checkout.Request) (*checkout.Result, error) {
	s.req = req
	return s.result, s.err
}

func TestCheckout(t *testing.T) {
	orderID := uuid.New()
	ready := time.Date(2025, 9, 9, 19, 5, 0, 0, time.UTC)
	svc := &stubCheckoutService{result: &checkout.Result{
		OrderID:          orderID,
		Total:            types.NewMoney(decimal.RequireFromString("51.73")),
		EstimatedReadyAt: ready,
	}}

	body := `{"customer":{"firstName":"Jane","lastName":"Doe","phone":"021 555 0199","address":"1 Queen St","city":"Auckland","zipCode":"1010"},"items":[{"pizzaId":"` + uuid.NewString() + `","size":"Large","quantity":2}]}`
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Jane", svc.req.Customer.FirstName)
	require.Len(t, svc.req.Items, 1)
	assert.Equal(t, 2, svc.req.Items[0].Quantity)
	assert.Contains(t, rec.Body.String(), `"total":51.73`)
	assert.Equal(t, "/api/tracking/"+orderID.String(), rec.Header().Get("Location"))
}

func TestCheckoutValidationFailure(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.Validation("checkout failed", pkgerrors.FieldErrors{"customer.phone": "must contain exactly 10 digits"})}
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"customer":{},"items":[]}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "customer.phone")
}

type stubTrackingService struct{ result *tracking.Result }

func (s stubTrackingService) Lookup(_ context.Context, raw string) (*tracking.Result, error) {
	if s.result == nil || raw != s.result.OrderID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.result, nil
}

func TestTrackOrder(t *testing.T) {
	id := uuid.New()
	svc := stubTrackingService{result: &tracking.Result{OrderID: id.String(), OrderStatus: "Baking", StatusDisplay: "Baking in the oven", CurrentStep: 3}}

	rec := httptest.NewRecorder()
	TrackOrder(svc, testLogger()).ServeHTTP(rec, withRouteParam(httptest.NewRequest(http.MethodGet, "/api/tracking/"+id.String(), nil), "orderId", id.String()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"currentStep":3`)

	rec = httptest.NewRecorder()
	TrackOrder(svc, testLogger()).ServeHTTP(rec, withRouteParam(httptest.NewRequest(http.MethodGet, "/api/tracking/nope", nil), "orderId", "nope"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "order not found")
}
