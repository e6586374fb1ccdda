package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders and their line-items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, order *models.Order) error
	CreateLineItems(ctx context.Context, items []models.OrderProduct) error
	UpdateScalars(ctx context.Context, order *models.Order) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
	DeleteLineItems(ctx context.Context, orderID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type catalog interface {
	Catalog(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}
