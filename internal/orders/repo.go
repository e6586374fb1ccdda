package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/prontopizzas/pronto-backend/internal/repo"
	"github.com/prontopizzas/pronto-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	repo.Base
}

// NewRepository builds the gorm-backed order repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Bind(tx)}
}

func (r *repository) withAssociations(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("OrderProducts", func(db *gorm.DB) *gorm.DB {
			return db.Order("pizza_id ASC").Order("size ASC")
		}).
		Preload("OrderProducts.Product")
}

func (r *repository) List(ctx context.Context) ([]models.Order, error) {
	var rows []models.Order
	err := r.withAssociations(ctx).
		Order("order_date DESC").
		Order("order_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.withAssociations(ctx).Where("order_id = ?", id).First(&order).Error
	if err != nil {
		return nil, repo.NotFound(err, "order not found")
	}
	return &order, nil
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Order{}).Where("order_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Omit("OrderProducts").Create(order).Error
}

func (r *repository) CreateLineItems(ctx context.Context, items []models.OrderProduct) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB(ctx).Omit("Product").Create(&items).Error
}

func (r *repository) UpdateScalars(ctx context.Context, order *models.Order) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", order.OrderID).
		Updates(map[string]any{
			"order_date":       order.OrderDate,
			"customer_name":    order.CustomerName,
			"delivery_address": order.DeliveryAddress,
			"order_status":     order.OrderStatus,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", id).
		Update("order_status", status)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteLineItems(ctx context.Context, orderID uuid.UUID) error {
	return r.DB(ctx).Where("order_id = ?", orderID).Delete(&models.OrderProduct{}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.DB(ctx).Where("order_id = ?", id).Delete(&models.Order{})
	return res.RowsAffected, res.Error
}
