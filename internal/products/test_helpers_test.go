package products

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/pkg/config"
	"github.com/prontopizzas/pronto-backend/pkg/db"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:products_%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
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

func newTestService(t *testing.T, conn *gorm.DB, cache MenuCache) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn, config.DriverSQLite), cache, time.Minute, logg)
	require.NoError(t, err)
	return svc
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, name string, small, medium, large string) models.Product {
	t.Helper()
	product := models.Product{
		PizzaID:   uuid.New(),
		PizzaName: name,
	}
	product.SmallPrice = decimalPtr(small)
	product.MediumPrice = decimalPtr(medium)
	product.LargePrice = decimalPtr(large)
	require.NoError(t, conn.Create(&product).Error)
	return product
}

func decimalPtr(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d := decimal.RequireFromString(raw)
	return &d
}

type fakeMenuCache struct {
	data    map[string]string
	gets    int
	deletes int
	getErr  error
}

func newFakeMenuCache() *fakeMenuCache {
	return &fakeMenuCache{data: map[string]string{}}
}

func (f *fakeMenuCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	f.gets++
	if f.getErr != nil {
		return false, f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), dest)
}

func (f *fakeMenuCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = string(raw)
	return nil
}

func (f *fakeMenuCache) Del(ctx context.Context, keys ...string) error {
	f.deletes++
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeMenuCache) CacheKey(parts ...string) string {
	return fmt.Sprint(parts)
}
