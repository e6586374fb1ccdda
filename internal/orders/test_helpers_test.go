package orders

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prontopizzas/pronto-backend/internal/products"
	"github.com/prontopizzas/pronto-backend/pkg/config"
	"github.com/prontopizzas/pronto-backend/pkg/db"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	"github.com/prontopizzas/pronto-backend/pkg/events"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/prontopizzas/pronto-backend/pkg/metrics"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:orders_%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	schema := []string{`
CREATE TABLE products (
  pizza_id TEXT PRIMARY KEY,
  pizza_name TEXT NOT NULL DEFAULT '',
  pizza_description TEXT NOT NULL DEFAULT '',
  ingredients TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  small_price NUMERIC,
  medium_price NUMERIC,
  large_price NUMERIC,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE orders (
  order_id TEXT PRIMARY KEY,
  order_date DATETIME,
  customer_name TEXT NOT NULL DEFAULT '',
  delivery_address TEXT NOT NULL DEFAULT '',
  order_status TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE order_products (
  order_id TEXT NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
  pizza_id TEXT NOT NULL REFERENCES products(pizza_id) ON DELETE CASCADE,
  size TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  PRIMARY KEY (order_id, pizza_id, size)
);`}
	for _, stmt := range schema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

type recordingPublisher struct {
	events []events.EventType
	data   []any
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType events.EventType, data any) error {
	p.events = append(p.events, eventType)
	p.data = append(p.data, data)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type testHarness struct {
	conn      *gorm.DB
	svc       Service
	publisher *recordingPublisher
	registry  *prometheus.Registry
	now       time.Time
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	conn := setupOrdersTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	client := db.NewFromConn(conn, config.DriverSQLite)

	catalog, err := products.NewService(products.NewRepository(conn), client, nil, 0, logg)
	require.NoError(t, err)

	h := &testHarness{
		conn:      conn,
		publisher: &recordingPublisher{},
		registry:  prometheus.NewRegistry(),
		now:       time.Date(2025, 9, 9, 18, 30, 0, 0, time.UTC),
	}
	svc, err := NewService(ServiceParams{
		Repo:      NewRepository(conn),
		Tx:        client,
		Catalog:   catalog,
		Publisher: h.publisher,
		Metrics:   metrics.NewOrderMetrics(h.registry),
		Logger:    logg,
		Now:       func() time.Time { return h.now },
	})
	require.NoError(t, err)
	h.svc = svc
	return h
}

func (h *testHarness) mustProduct(t *testing.T, name string) models.Product {
	t.Helper()
	p := models.Product{PizzaID: uuid.New(), PizzaName: name}
	require.NoError(t, h.conn.Create(&p).Error)
	return p
}

func (h *testHarness) lineItemCount(t *testing.T, orderID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, h.conn.Model(&models.OrderProduct{}).Where("order_id = ?", orderID).Count(&count).Error)
	return count
}

func strPtr(s string) *string { return &s }
